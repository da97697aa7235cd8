package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/shop-api/internal/core/domain"
	"github.com/rl1809/shop-api/internal/port"
)

var (
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// OrderService coordinates order placement: it validates the requested items,
// prices them, and commits the stock decrements together with the new order
// in one transaction.
type OrderService struct {
	orders   port.OrderRepository
	products port.ProductRepository
	users    port.UserRepository
	cache    port.CacheRepository
	logger   *zap.Logger
}

func NewOrderService(
	orders port.OrderRepository,
	products port.ProductRepository,
	users port.UserRepository,
	cache port.CacheRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		cache:    cache,
		logger:   logger,
	}
}

// PlaceOrder turns the requested item list into a durable order or fails
// without any partial effect. Items are validated in the order supplied by
// the caller; the first failing item determines the reported error.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, items []domain.OrderItemRequest) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.UserNotFoundError{UserID: userID}
		}
		return nil, fmt.Errorf("fetch user %d: %w", userID, err)
	}

	// Validation and pricing pass. Reads run outside the transaction; the
	// commit pass re-checks stock at decrement time, so a concurrent order
	// between the two passes can never push stock negative.
	total := decimal.Zero
	pending := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, fmt.Errorf("fetch product %d: %w", item.ProductID, err)
		}
		if product.Stock < item.Quantity {
			return nil, &domain.InsufficientStockError{ProductName: product.Name}
		}

		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		pending = append(pending, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	// Commit pass: every stock decrement and the order insert share one
	// transaction, so a failure at any point leaves no observable state.
	tx, err := s.orders.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	for _, item := range pending {
		if err := tx.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	order := &domain.Order{
		UserID:    userID,
		Total:     total,
		Status:    domain.OrderStatusPending,
		Items:     pending,
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order tx: %w", err)
	}

	s.invalidateProducts(ctx, pending)

	placed, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("reload order %d: %w", order.ID, err)
	}
	return placed, nil
}

// invalidateProducts drops cached product rows whose stock just changed.
// Cache errors are logged and ignored: the database already committed.
func (s *OrderService) invalidateProducts(ctx context.Context, items []domain.OrderItem) {
	if s.cache == nil {
		return
	}
	for _, item := range items {
		if err := s.cache.DeleteProduct(ctx, item.ProductID); err != nil {
			s.logger.Warn("product cache invalidation failed",
				zap.Int64("product_id", item.ProductID),
				zap.Error(err))
		}
	}
}

func (s *OrderService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
