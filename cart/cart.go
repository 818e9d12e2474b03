package cart

import (
	"encoding/json"

	"souq/models"
)

// TaxRate is the single VAT constant for the whole storefront. Every
// amount shown to the customer as "payable" must come through
// TotalWithTax; nothing else is allowed to do tax arithmetic.
const TaxRate = 0.15

// Line is one product entry in the cart. Quantity is always >= 1 while
// the line exists; a line that would reach zero is removed instead.
type Line struct {
	Product  models.ProductSnapshot `json:"product"`
	Quantity int                    `json:"quantity"`
}

// Cart maps product IDs to lines, preserving insertion order so the
// storefront renders stably across reloads.
type Cart struct {
	order []string
	lines map[string]*Line
}

func New() *Cart {
	return &Cart{
		lines: make(map[string]*Line),
	}
}

// AddItem merges quantity into an existing line or creates a new one.
// An existing line keeps its quantity sum but takes the latest snapshot
// fields (name, image, display price). Negative quantities are ignored.
func (c *Cart) AddItem(product models.ProductSnapshot, quantity int) {
	if quantity < 0 {
		return
	}
	if line, ok := c.lines[product.ProductID]; ok {
		line.Quantity += quantity
		line.Product = product
		return
	}
	if quantity == 0 {
		return
	}
	c.lines[product.ProductID] = &Line{Product: product, Quantity: quantity}
	c.order = append(c.order, product.ProductID)
}

// UpdateQuantity applies a signed delta to an existing line. Missing
// lines are a no-op; this path never creates a line. The result is
// clamped at zero, and a zero line is deleted.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	line, ok := c.lines[productID]
	if !ok {
		return
	}
	newQuantity := line.Quantity + delta
	if newQuantity <= 0 {
		c.remove(productID)
		return
	}
	line.Quantity = newQuantity
}

// RemoveItem deletes the line if present. Idempotent.
func (c *Cart) RemoveItem(productID string) {
	c.remove(productID)
}

func (c *Cart) remove(productID string) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear resets the cart to empty. Called after a confirmed order.
func (c *Cart) Clear() {
	c.order = nil
	c.lines = make(map[string]*Line)
}

// TotalItems returns the sum of all line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalUniqueItems returns the number of distinct product lines.
func (c *Cart) TotalUniqueItems() int {
	return len(c.lines)
}

// TotalPrice returns the pre-tax subtotal. Rounding and currency
// formatting are presentation concerns, not handled here.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += float64(line.Quantity) * line.Product.Price
	}
	return total
}

// TotalWithTax returns the full payable amount for the current cart.
func (c *Cart) TotalWithTax() float64 {
	return TotalWithTax(c.TotalPrice())
}

// Tax returns the tax fraction of the current subtotal.
func (c *Cart) Tax() float64 {
	return c.TotalPrice() * TaxRate
}

// TotalWithTax converts a subtotal into the payable amount.
func TotalWithTax(subtotal float64) float64 {
	return subtotal * (1 + TaxRate)
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// OrderLines snapshots the cart into immutable order lines for checkout
// submission. The cart itself is untouched.
func (c *Cart) OrderLines() []models.OrderLine {
	out := make([]models.OrderLine, 0, len(c.order))
	for _, id := range c.order {
		line := c.lines[id]
		out = append(out, models.OrderLine{
			ProductID: line.Product.ProductID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
		})
	}
	return out
}

// MarshalJSON serializes lines as an ordered array.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Lines []Line `json:"lines"`
	}{Lines: c.Lines()})
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var payload struct {
		Lines []Line `json:"lines"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	c.Clear()
	for _, line := range payload.Lines {
		c.AddItem(line.Product, line.Quantity)
	}
	return nil
}
