package port

import (
	"context"

	"github.com/rl1809/shop-api/internal/core/domain"
)

type UserRepository interface {
	// Create persists a new user and fills in its ID.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) error

	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)

	// Update overwrites name, email and role of an existing user.
	Update(ctx context.Context, user *domain.User) error

	Delete(ctx context.Context, id int64) error
}
