package port

import (
	"context"

	"github.com/rl1809/shop-api/internal/core/domain"
)

type ProductRepository interface {
	// Create persists a new product, links the given categories and fills in
	// the product ID.
	Create(ctx context.Context, product *domain.Product, categoryIDs []int64) error

	// GetByID returns the product with its categories attached.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	List(ctx context.Context) ([]domain.Product, error)

	// Update overwrites the mutable columns of an existing product. A nil
	// categoryIDs leaves category links untouched; a non-nil slice replaces
	// them.
	Update(ctx context.Context, product *domain.Product, categoryIDs []int64) error

	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error

	// GetByID returns the category with its products attached.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
}
