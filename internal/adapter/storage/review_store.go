package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rl1809/shop-api/internal/core/domain"
)

type ReviewStore struct {
	db *sql.DB
}

func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

func (s *ReviewStore) Create(ctx context.Context, review *domain.Review) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (rating, comment, user_id, product_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		review.Rating, review.Comment, review.UserID, review.ProductID, review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("review insert id: %w", err)
	}
	review.ID = id
	return nil
}

func (s *ReviewStore) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.rating, r.comment, r.user_id, r.product_id, r.created_at, u.id, u.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = ?
		ORDER BY r.id`, productID)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		var user domain.UserSummary
		if err := rows.Scan(&review.ID, &review.Rating, &review.Comment,
			&review.UserID, &review.ProductID, &review.CreatedAt,
			&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		review.User = &user
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
