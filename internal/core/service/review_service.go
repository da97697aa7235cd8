package service

import (
	"context"
	"time"

	"github.com/rl1809/shop-api/internal/core/domain"
	"github.com/rl1809/shop-api/internal/port"
)

type ReviewService struct {
	reviews port.ReviewRepository
}

func NewReviewService(reviews port.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) Create(ctx context.Context, userID, productID int64, rating int, comment string) (*domain.Review, error) {
	review := &domain.Review{
		Rating:    rating,
		Comment:   comment,
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.reviews.Delete(ctx, id)
}
