package service

import (
	"context"

	"fresh-kart/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create adds a new product to the catalogue.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// Update applies a partial update to a product.
	Update(ctx context.Context, id string, req *model.UpdateProductRequest) (*model.Product, error)

	// Delete removes a product from the catalogue.
	Delete(ctx context.Context, id string) error
}

// OrderService defines the order lifecycle operations.
type OrderService interface {
	// Create validates and persists a submitted order with status PENDING.
	Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order with its items and product display data.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// List retrieves all orders newest-first, with their items.
	List(ctx context.Context) ([]model.OrderResponse, error)

	// UpdateStatus transitions an order to the requested status if the
	// lifecycle table permits it.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (*model.OrderResponse, error)

	// Delete removes an order and its items.
	Delete(ctx context.Context, id uuid.UUID) error
}
