// Package cart implements the in-session shopping cart. A cart is owned by a
// single customer session and is never shared: no locking, no persistence.
// Quantities use decimal arithmetic so repeated half-kilo adjustments stay
// exact.
package cart

import (
	"fresh-kart/internal/model"

	"github.com/shopspring/decimal"
)

// step is the quantity granularity for weight-based products.
var step = decimal.NewFromFloat(0.5)

// Line is a single product entry in the cart. Price is the unit price
// captured when the product was first added.
type Line struct {
	ProductID   string
	Name        string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	MinQuantity decimal.Decimal
}

// Subtotal returns quantity x unit price for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.Price)
}

// Cart holds the customer's in-progress selection keyed by product ID.
// Lines keep insertion order so the submitted items match what the customer
// saw.
type Cart struct {
	lines map[string]*Line
	order []string
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{
		lines: make(map[string]*Line),
	}
}

// AddItem adds a product to the cart with the requested quantity, raised to
// the product's minimum and snapped up to the 0.5 granularity. Adding a
// product that is already in the cart is a no-op; callers adjust existing
// lines with SetQuantity.
func (c *Cart) AddItem(p model.Product, quantity decimal.Decimal) {
	if _, ok := c.lines[p.ID]; ok {
		return
	}

	if quantity.LessThan(p.MinQuantity) {
		quantity = p.MinQuantity
	}
	quantity = snapUp(quantity)

	c.lines[p.ID] = &Line{
		ProductID:   p.ID,
		Name:        p.Name,
		Quantity:    quantity,
		Price:       p.Price,
		MinQuantity: p.MinQuantity,
	}
	c.order = append(c.order, p.ID)
}

// SetQuantity changes the quantity of an existing line. The value is rounded
// to the 0.5 granularity and clamped to the product's minimum rather than
// rejected; the cart never holds an unorderable line. No-op if the product
// is not in the cart.
func (c *Cart) SetQuantity(productID string, quantity decimal.Decimal) {
	line, ok := c.lines[productID]
	if !ok {
		return
	}

	quantity = snapNearest(quantity)
	if quantity.LessThan(line.MinQuantity) {
		quantity = line.MinQuantity
	}
	line.Quantity = quantity
}

// RemoveItem deletes the line for the given product. Idempotent.
func (c *Cart) RemoveItem(productID string) {
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

// Clear empties the cart. Called after a successful order submission.
func (c *Cart) Clear() {
	c.lines = make(map[string]*Line)
	c.order = nil
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Line returns a copy of the line for the given product, if present.
func (c *Cart) Line(productID string) (Line, bool) {
	line, ok := c.lines[productID]
	if !ok {
		return Line{}, false
	}
	return *line, true
}

// Lines returns copies of all lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// TotalPrice returns the sum over all lines of quantity x unit price.
// Zero for an empty cart.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, id := range c.order {
		total = total.Add(c.lines[id].Subtotal())
	}
	return total
}

// ToOrderItems produces the line items for order submission, in insertion
// order. Empty carts produce an empty slice; order creation rejects those.
func (c *Cart) ToOrderItems() []model.OrderItemRequest {
	items := make([]model.OrderItemRequest, 0, len(c.order))
	for _, id := range c.order {
		line := c.lines[id]
		items = append(items, model.OrderItemRequest{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	return items
}

// snapUp rounds q up to the next multiple of the quantity step.
func snapUp(q decimal.Decimal) decimal.Decimal {
	return q.Div(step).Ceil().Mul(step)
}

// snapNearest rounds q to the closest multiple of the quantity step.
func snapNearest(q decimal.Decimal) decimal.Decimal {
	return q.Div(step).Round(0).Mul(step)
}
