package port

import (
	"context"

	"github.com/rl1809/shop-api/internal/core/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error

	// ListByProduct returns a product's reviews with the reviewer's summary
	// attached.
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)

	Delete(ctx context.Context, id int64) error
}
