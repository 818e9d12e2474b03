package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"souq/auth"
	"souq/cart"
	"souq/checkout"
	"souq/orders"
	"souq/ratelim"
	"souq/relay"
	"souq/routes"
	"souq/shifts"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// setupRouter builds the router with all routes except the relay.
// Relay routes are added in main so the hub isn't passed around globally.
func setupRouter(public, otp *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	cartStore := cart.NewStore(cart.RedisStorage{})
	cartHandlers := cart.NewHandlers(cartStore)

	orchestrator := &checkout.Orchestrator{
		Sessions: checkout.NewSessionStore(cart.RedisStorage{}),
		Carts:    cartStore,
		Orders:   orders.Service{},
		Shifts:   shifts.Directory{},
		OTP:      auth.Verifier{},
	}
	checkoutHandlers := checkout.NewHandlers(orchestrator)

	routes.AddAuthRoutes(router, public, otp)
	routes.AddCatalogRoutes(router)
	routes.AddCartRoutes(router, cartHandlers)
	routes.AddCheckoutRoutes(router, checkoutHandlers, otp)
	routes.AddOrderRoutes(router)
	routes.AddShiftRoutes(router)
	routes.AddDriverRoutes(router)
	routes.AddContactRoutes(router, public)
	routes.AddUploadRoutes(router, public)
	routes.AddStaticRoutes(router)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	// public form posts get a loose budget; OTP issue/verify is the
	// brute-force surface and runs much tighter
	publicLimiter := ratelim.NewRateLimiter(5, 10)
	otpLimiter := ratelim.NewRateLimiter(rate.Every(2*time.Second), 3)

	// relay hub plus the Redis bridge feeding it
	hub := relay.NewHub()
	go hub.Run()
	bridgeCtx, stopBridge := context.WithCancel(context.Background())
	go relay.StartBridge(bridgeCtx, hub)

	router := setupRouter(publicLimiter, otpLimiter)
	routes.AddRelayRoutes(router, hub)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Cart-Session"},
		ExposedHeaders:   []string{"X-Cart-Session"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("Shutting down relay hub...")
		stopBridge()
		hub.Stop()
	})

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly")
}
