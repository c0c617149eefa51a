package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"fresh-kart/internal/model"
	"fresh-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// phonePattern matches a WhatsApp contact number: 10 to 15 digits with an
// optional leading plus.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Create validates and persists a submitted order with status PENDING.
// The total is always recomputed from the line items; the client-declared
// total is never trusted for persistence.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	if err := s.productRepo.ValidateProductsExist(ctx, productIDs); err != nil {
		s.logger.Warn().
			Int("product_count", len(productIDs)).
			Err(err).
			Msg("product validation failed")
		return nil, err
	}

	total := decimal.Zero
	for _, item := range req.Items {
		total = total.Add(item.Quantity.Mul(item.Price))
	}

	if !req.TotalAmount.IsZero() && !req.TotalAmount.Equal(total) {
		s.logger.Warn().
			Str("declared_total", req.TotalAmount.String()).
			Str("computed_total", total.String()).
			Msg("client-declared total does not match computed total, persisting computed value")
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Roll back on any failure so the order and its items land together or
	// not at all.
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	order := &model.Order{
		ID:              uuid.New(),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		WhatsappNumber:  strings.TrimSpace(req.WhatsappNumber),
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		TotalAmount:     total,
		Status:          model.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderItems := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		orderItems[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to retrieve product details: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("total", total.String()).
		Int("item_count", len(orderItems)).
		Msg("order created successfully")

	return &model.OrderResponse{
		Order:    *order,
		Items:    orderItems,
		Products: products,
	}, nil
}

// GetByID retrieves an order with its items and product display data.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	// Current catalogue rows are attached for display only; the money on the
	// response always comes from the frozen items.
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to retrieve product details: %w", err)
	}

	return &model.OrderResponse{
		Order:    *order,
		Items:    items,
		Products: products,
	}, nil
}

// List retrieves all orders newest-first, with their items.
func (s *orderService) List(ctx context.Context) ([]model.OrderResponse, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orderIDs := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	itemsByOrder, err := s.orderRepo.GetItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve order items")
		return nil, fmt.Errorf("failed to retrieve order items: %w", err)
	}

	responses := make([]model.OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = model.OrderResponse{
			Order: o,
			Items: itemsByOrder[o.ID],
		}
	}

	return responses, nil
}

// UpdateStatus transitions an order to the requested status. The transition
// table is enforced, and the write is a compare-and-set against the status
// read here, so two concurrent conflicting transitions cannot both succeed.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (*model.OrderResponse, error) {
	if !status.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("Unknown order status %q", status))
	}

	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !order.Status.CanTransitionTo(status) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", order.Status.String()).
			Str("to", status.String()).
			Msg("illegal status transition rejected")
		return nil, model.NewInvalidTransitionError(order.Status, status)
	}

	now := time.Now()
	ok, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, status, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if !ok {
		// The CAS missed: either the order vanished or a concurrent
		// transition won. Re-read to tell the two apart.
		current, _, rerr := s.orderRepo.GetByID(ctx, id)
		if rerr != nil {
			return nil, fmt.Errorf("failed to update order status: %w", rerr)
		}
		if current == nil {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("expected", order.Status.String()).
			Str("actual", current.Status.String()).
			Msg("status transition lost compare-and-set")
		return nil, model.ErrStatusConflict
	}

	order.Status = status
	order.UpdatedAt = now

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", status.String()).
		Msg("order status updated")

	return &model.OrderResponse{
		Order: *order,
		Items: items,
	}, nil
}

// Delete removes an order and its items.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if !ok {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	return nil
}

// validateOrderRequest validates the order submission.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewValidationError("Order request is required")
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return model.NewValidationError("Customer name is required")
	}

	if !phonePattern.MatchString(strings.TrimSpace(req.WhatsappNumber)) {
		return model.NewValidationError("Contact number must be 10 to 15 digits with an optional leading +")
	}

	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return model.NewValidationError("Delivery address is required")
	}

	if len(req.Items) == 0 {
		return model.NewValidationError("Order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return model.NewValidationError(fmt.Sprintf("Item %d: product ID is required", i))
		}
		if !item.Quantity.IsPositive() {
			return model.NewValidationError(fmt.Sprintf("Item %d: quantity must be greater than zero", i))
		}
		if item.Price.IsNegative() {
			return model.NewValidationError(fmt.Sprintf("Item %d: price must not be negative", i))
		}
	}

	return nil
}
