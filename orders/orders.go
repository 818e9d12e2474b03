package orders

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"souq/cart"
	"souq/db"
	"souq/models"
	"souq/mq"
	"souq/utils"
)

// Service persists orders. It satisfies checkout.OrderCreator.
type Service struct{}

// NewOrderNumber builds the human-readable number shown to customers.
func NewOrderNumber() string {
	return "ORD" + strconv.FormatInt(time.Now().UnixNano()%1e6, 10) + utils.GenerateRandomDigitString(4)
}

// BuildOrder computes totals from the immutable input lines. Tax math
// goes through the cart package so there is exactly one tax rate.
func BuildOrder(input models.OrderInput) (models.Order, error) {
	if len(input.Lines) == 0 {
		return models.Order{}, fmt.Errorf("order has no lines")
	}
	subtotal := 0.0
	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return models.Order{}, fmt.Errorf("line %s has quantity %d", line.ProductID, line.Quantity)
		}
		if line.Price < 0 {
			return models.Order{}, fmt.Errorf("line %s has negative price", line.ProductID)
		}
		subtotal += float64(line.Quantity) * line.Price
	}

	now := time.Now()
	return models.Order{
		OrderID:     utils.GetUUID(),
		OrderNumber: NewOrderNumber(),
		CustomerID:  input.CustomerID,
		Name:        input.Name,
		Phone:       input.Phone,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		ShiftID:     input.ShiftID,
		Lines:       input.Lines,
		Subtotal:    subtotal,
		Tax:         subtotal * cart.TaxRate,
		Total:       cart.TotalWithTax(subtotal),
		Status:      models.OrderPending,
		CreatedAt:   now,
	}, nil
}

// Create persists a new order, always in pending status, and announces
// it to the dashboard feed.
func (Service) Create(ctx context.Context, input models.OrderInput) (models.Order, error) {
	order, err := BuildOrder(input)
	if err != nil {
		return models.Order{}, err
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("order insert: %w", err)
	}

	mq.Emit(ctx, "dashboard", "order:new", order)
	return order, nil
}
