package port

import (
	"context"
	"errors"

	"github.com/rl1809/shop-api/internal/core/domain"
)

// ErrCacheMiss is returned when the requested key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository is a read-through cache for product rows. It is advisory:
// callers must tolerate any error and fall back to storage.
type CacheRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}
