package routes

import (
	"net/http"

	"souq/auth"
	"souq/cart"
	"souq/catalog"
	"souq/checkout"
	"souq/contact"
	"souq/drivers"
	"souq/middleware"
	"souq/orders"
	"souq/ratelim"
	"souq/relay"
	"souq/shifts"
	"souq/uploads"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, public, otp *ratelim.RateLimiter) {
	router.POST("/api/auth/register", public.Limit(auth.Register))
	router.POST("/api/auth/login", public.Limit(auth.Login))
	router.POST("/api/auth/request-otp", otp.Limit(auth.RequestOTPHandler))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/products", catalog.GetProducts)
	router.GET("/api/products/:productid", catalog.GetProduct)
	router.POST("/api/products", middleware.RequireAdmin(catalog.CreateProduct))
	router.PUT("/api/products/:productid", middleware.RequireAdmin(catalog.UpdateProduct))
	router.DELETE("/api/products/:productid", middleware.RequireAdmin(catalog.DeleteProduct))

	router.GET("/api/suppliers", catalog.GetSuppliers)
	router.POST("/api/suppliers", middleware.RequireAdmin(catalog.CreateSupplier))
	router.PUT("/api/suppliers/:supplierid", middleware.RequireAdmin(catalog.UpdateSupplier))
	router.DELETE("/api/suppliers/:supplierid", middleware.RequireAdmin(catalog.DeleteSupplier))

	router.GET("/api/promotions", catalog.GetActivePromotions)
	router.POST("/api/promotions", middleware.RequireAdmin(catalog.CreatePromotion))
	router.DELETE("/api/promotions/:promotionid", middleware.RequireAdmin(catalog.DeletePromotion))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handlers) {
	router.GET("/api/cart", middleware.OptionalAuth(h.GetCart))
	router.POST("/api/cart/items", middleware.OptionalAuth(h.AddItem))
	router.PATCH("/api/cart/items/:productid", middleware.OptionalAuth(h.UpdateQuantity))
	router.DELETE("/api/cart/items/:productid", middleware.OptionalAuth(h.RemoveItem))
	router.DELETE("/api/cart", middleware.OptionalAuth(h.ClearCart))
}

func AddCheckoutRoutes(router *httprouter.Router, h *checkout.Handlers, otp *ratelim.RateLimiter) {
	router.POST("/api/checkout", middleware.OptionalAuth(h.Start))
	router.GET("/api/checkout/:sessionid", middleware.OptionalAuth(h.GetSession))
	router.POST("/api/checkout/:sessionid/identity", middleware.OptionalAuth(h.Identity))
	router.POST("/api/checkout/:sessionid/address", middleware.OptionalAuth(h.Address))
	router.POST("/api/checkout/:sessionid/verify-otp", otp.Limit(h.VerifyOTP))
	router.POST("/api/checkout/:sessionid/submit", middleware.OptionalAuth(h.Submit))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.GET("/api/orders", middleware.RequireAdmin(orders.GetOrders))
	router.GET("/api/orders/counts", middleware.RequireAdmin(orders.GetOrderCounts))
	router.GET("/api/orders/mine", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/order/:orderid", orders.GetOrder)
	router.GET("/api/orders/order/:orderid/receipt", orders.PrintReceipt)
	router.PATCH("/api/orders/order/:orderid/status", middleware.RequireAdmin(orders.UpdateStatus))
	router.PATCH("/api/orders/order/:orderid/driver", middleware.RequireAdmin(orders.AssignDriver))
}

func AddShiftRoutes(router *httprouter.Router) {
	router.GET("/api/shifts/active", shifts.GetActiveShifts)
	router.GET("/api/shifts", middleware.RequireAdmin(shifts.GetShifts))
	router.POST("/api/shifts", middleware.RequireAdmin(shifts.CreateShift))
	router.PUT("/api/shifts/:shiftid", middleware.RequireAdmin(shifts.UpdateShift))
	router.DELETE("/api/shifts/:shiftid", middleware.RequireAdmin(shifts.DeleteShift))
}

func AddDriverRoutes(router *httprouter.Router) {
	router.GET("/api/drivers", middleware.RequireAdmin(drivers.GetDrivers))
	router.POST("/api/drivers", middleware.RequireAdmin(drivers.CreateDriver))
	router.PUT("/api/drivers/:driverid", middleware.RequireAdmin(drivers.UpdateDriver))
	router.DELETE("/api/drivers/:driverid", middleware.RequireAdmin(drivers.DeleteDriver))
}

func AddContactRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/contact", rl.Limit(contact.SubmitContact))
	router.GET("/api/contact", middleware.RequireAdmin(contact.GetSubmissions))
	router.PATCH("/api/contact/:contactid/read", middleware.RequireAdmin(contact.MarkRead))
}

func AddUploadRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/uploads/image", rl.Limit(middleware.RequireAdmin(uploads.UploadImage)))
}

func AddRelayRoutes(router *httprouter.Router, hub *relay.Hub) {
	router.GET("/ws/relay/:channel", relay.WebSocketHandler(hub))
}
