package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a grocery product in the catalogue. Prices and minimum
// quantities are decimals because most items are sold by fractional weight.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	MinQuantity decimal.Decimal `json:"minQuantity" db:"min_quantity"`
	Image       string          `json:"image" db:"image"`
	Category    string          `json:"category" db:"category"`
	InStock     bool            `json:"inStock" db:"in_stock"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// CreateProductRequest represents the payload for creating a product.
// Name and Price are required; the rest fall back to catalogue defaults.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	MinQuantity *decimal.Decimal `json:"minQuantity"`
	Image       string           `json:"image"`
	Category    string           `json:"category"`
	InStock     *bool            `json:"inStock"`
}

// UpdateProductRequest represents a partial product update. Nil fields keep
// their current values.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	MinQuantity *decimal.Decimal `json:"minQuantity"`
	Image       *string          `json:"image"`
	Category    *string          `json:"category"`
	InStock     *bool            `json:"inStock"`
}
