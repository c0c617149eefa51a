package repository

import (
	"context"
	"time"

	"fresh-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products ordered by name, with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns (nil, nil) when
	// the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// ValidateProductsExist checks if all provided product IDs exist.
	// Returns model.ErrProductNotFound if any ID is missing.
	ValidateProductsExist(ctx context.Context, ids []string) error

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces the stored row for the product. Returns false if the
	// product does not exist.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// Delete removes a product. Returns false if the product does not exist.
	Delete(ctx context.Context, id string) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. Returns
	// (nil, nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// List retrieves all orders newest-first.
	List(ctx context.Context) ([]model.Order, error)

	// GetItemsByOrderIDs retrieves the items of the given orders, grouped by
	// order ID.
	GetItemsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error)

	// UpdateStatus transitions an order from one status to another as a
	// compare-and-set: the row is updated only when its stored status still
	// equals from. Returns false when no row matched, either because the
	// order is gone or because a concurrent transition won.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.Status, updatedAt time.Time) (bool, error)

	// Delete removes an order and cascades to its items. Returns false if
	// the order does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
