package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"souq/db"
	"souq/models"
	"souq/mq"
	"souq/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrders lists orders for the dashboard, newest first, with an
// optional ?status= filter.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			http.Error(w, "Unknown status", http.StatusBadRequest)
			return
		}
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrdersCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetOrders Find error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetOrders cursor.All error:", err)
		http.Error(w, "Error reading orders", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetMyOrders lists the authenticated customer's own orders.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrdersCollection.Find(ctx, bson.M{"customerId": userID}, opts)
	if err != nil {
		log.Println("GetMyOrders Find error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Error reading orders", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetOrder fetches one order by ID, used by the confirmation and
// tracking views.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("orderid")}).Decode(&order)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// GetOrderCounts backs the dashboard analytics cards.
func GetOrderCounts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	total, err := db.OrdersCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("GetOrderCounts total error:", err)
		http.Error(w, "Could not count orders", http.StatusInternalServerError)
		return
	}
	pending, err := db.OrdersCollection.CountDocuments(ctx, bson.M{"status": models.OrderPending})
	if err != nil {
		http.Error(w, "Could not count orders", http.StatusInternalServerError)
		return
	}
	delivered, err := db.OrdersCollection.CountDocuments(ctx, bson.M{"status": models.OrderDelivered})
	if err != nil {
		http.Error(w, "Could not count orders", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.OrderCounts{
		Total:     total,
		Pending:   pending,
		Delivered: delivered,
	})
}

// UpdateStatus moves an order through its lifecycle. Creation is always
// pending; every later transition comes through here from the dashboard.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !models.ValidOrderStatus(payload.Status) {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	orderID := ps.ByName("orderid")
	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"status": payload.Status, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Println("UpdateStatus error:", err)
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	mq.Emit(ctx, "dashboard", "order:status", utils.M{
		"orderId": orderID,
		"status":  payload.Status,
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": payload.Status})
}

// AssignDriver attaches an active driver to an order.
func AssignDriver(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		DriverID string `json:"driverId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.DriverID == "" {
		http.Error(w, "driverId is required", http.StatusBadRequest)
		return
	}

	var driver models.Driver
	err := db.DriversCollection.FindOne(ctx, bson.M{
		"driverId": payload.DriverID,
		"active":   true,
	}).Decode(&driver)
	if err != nil {
		http.Error(w, "Driver not found or inactive", http.StatusNotFound)
		return
	}

	orderID := ps.ByName("orderid")
	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"driverId": payload.DriverID, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Println("AssignDriver error:", err)
		http.Error(w, "Failed to assign driver", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	mq.Emit(ctx, "dashboard", "order:driver", utils.M{
		"orderId":  orderID,
		"driverId": payload.DriverID,
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"driverId": payload.DriverID})
}
