package orders

import (
	"math"
	"strings"
	"testing"

	"souq/models"
)

func TestBuildOrderTotals(t *testing.T) {
	input := models.OrderInput{
		Name:    "Sara",
		Phone:   "0501234567",
		Address: "King Fahd Rd 12",
		ShiftID: "morning",
		Lines: []models.OrderLine{
			{ProductID: "a", Name: "A", Price: 10.00, Quantity: 2},
			{ProductID: "b", Name: "B", Price: 5.00, Quantity: 1},
		},
	}

	order, err := BuildOrder(input)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if order.Subtotal != 25.00 {
		t.Fatalf("expected subtotal 25.00, got %v", order.Subtotal)
	}
	if math.Abs(order.Tax-3.75) > 1e-9 {
		t.Fatalf("expected tax 3.75, got %v", order.Tax)
	}
	if math.Abs(order.Total-28.75) > 1e-9 {
		t.Fatalf("expected total 28.75, got %v", order.Total)
	}
	if order.Status != models.OrderPending {
		t.Fatalf("orders must start pending, got %s", order.Status)
	}
	if !strings.HasPrefix(order.OrderNumber, "ORD") {
		t.Fatalf("unexpected order number %s", order.OrderNumber)
	}
}

func TestBuildOrderRejectsEmptyAndInvalidLines(t *testing.T) {
	if _, err := BuildOrder(models.OrderInput{}); err == nil {
		t.Fatal("empty order must be rejected")
	}

	bad := models.OrderInput{
		Lines: []models.OrderLine{{ProductID: "a", Price: 5, Quantity: 0}},
	}
	if _, err := BuildOrder(bad); err == nil {
		t.Fatal("zero-quantity line must be rejected")
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{models.OrderPending, models.OrderInTransit, models.OrderDelivered, models.OrderCancelled} {
		if !models.ValidOrderStatus(s) {
			t.Fatalf("%s should be valid", s)
		}
	}
	if models.ValidOrderStatus("shipped") {
		t.Fatal("unknown status should be invalid")
	}
}
