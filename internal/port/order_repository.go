package port

import (
	"context"

	"github.com/rl1809/shop-api/internal/core/domain"
)

type OrderRepository interface {
	// BeginTx opens the unit of work for an order's commit pass. The caller
	// owns the transaction: it must call Commit or Rollback on every path.
	BeginTx(ctx context.Context) (OrderTx, error)

	// GetByID returns the order with line items, their products and the
	// owning user's summary attached.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

// OrderTx is the transactional handle passed explicitly to every storage call
// of a single order placement. Nothing it does is observable until Commit.
type OrderTx interface {
	// DecrementStock reduces a product's stock by quantity as a relative
	// adjustment, never a blind overwrite. Returns *domain.ProductNotFoundError
	// if the product no longer exists and *domain.InsufficientStockError if
	// stock is too low at commit time.
	DecrementStock(ctx context.Context, productID int64, quantity int) error

	// InsertOrder writes the order row and all its line items, filling in
	// the generated IDs.
	InsertOrder(ctx context.Context, order *domain.Order) error

	Commit() error
	Rollback() error
}
