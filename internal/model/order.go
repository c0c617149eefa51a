package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a customer order. Every field except Status and UpdatedAt
// is frozen at creation time.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	CustomerName    string          `json:"customerName" db:"customer_name"`
	WhatsappNumber  string          `json:"whatsappNumber" db:"whatsapp_number"`
	DeliveryAddress string          `json:"deliveryAddress" db:"delivery_address"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status          Status          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order. Quantity and Price are a
// snapshot taken at order time; later catalogue edits never touch them.
type OrderItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID string          `json:"productId" db:"product_id"`
	Quantity  decimal.Decimal `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

// Subtotal returns quantity x unit price for this line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.Price)
}

// OrderRequest represents the request payload for submitting an order.
// TotalAmount is the client-declared total; the server recomputes the
// authoritative value from Items and only logs a mismatch.
type OrderRequest struct {
	CustomerName    string             `json:"customerName"`
	WhatsappNumber  string             `json:"whatsappNumber"`
	DeliveryAddress string             `json:"deliveryAddress"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	Items           []OrderItemRequest `json:"items"`
}

// OrderItemRequest represents a single line item in an order request.
type OrderItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateOrderStatusRequest represents the payload for a status transition.
type UpdateOrderStatusRequest struct {
	Status Status `json:"status"`
}

// OrderResponse represents the response payload for an order. Products holds
// current catalogue rows for display only; all money comes from Items.
type OrderResponse struct {
	Order
	Items    []OrderItem `json:"items"`
	Products []Product   `json:"products,omitempty"`
}
