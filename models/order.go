package models

import "time"

// Order statuses. Creation always starts at pending; the dashboard owns
// every later transition.
const (
	OrderPending   = "pending"
	OrderInTransit = "in_transit"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// OrderLine captures the product at time of order. Price here is
// historical and never updated after creation.
type OrderLine struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type Order struct {
	OrderID     string      `json:"orderId" bson:"orderId"`
	OrderNumber string      `json:"orderNumber" bson:"orderNumber"`
	CustomerID  string      `json:"customerId,omitempty" bson:"customerId,omitempty"`
	Name        string      `json:"name" bson:"name"`
	Phone       string      `json:"phone" bson:"phone"`
	Address     string      `json:"address" bson:"address"`
	Latitude    *float64    `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty" bson:"longitude,omitempty"`
	ShiftID     string      `json:"shiftId" bson:"shiftId"`
	DriverID    string      `json:"driverId,omitempty" bson:"driverId,omitempty"`
	Lines       []OrderLine `json:"lines" bson:"lines"`
	Subtotal    float64     `json:"subtotal" bson:"subtotal"`
	Tax         float64     `json:"tax" bson:"tax"`
	Total       float64     `json:"total" bson:"total"`
	Status      string      `json:"status" bson:"status"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// OrderInput is the immutable payload checkout hands to order creation.
type OrderInput struct {
	CustomerID string      `json:"customerId,omitempty"`
	Name       string      `json:"name"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	Latitude   *float64    `json:"latitude,omitempty"`
	Longitude  *float64    `json:"longitude,omitempty"`
	ShiftID    string      `json:"shiftId"`
	Lines      []OrderLine `json:"lines"`
}

// OrderCounts backs the dashboard analytics cards.
type OrderCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Delivered int64 `json:"delivered"`
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderInTransit, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
