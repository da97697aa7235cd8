package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/shop-api/internal/core/domain"
)

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	res, err := s.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, category.Name)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("category insert id: %w", err)
	}
	category.ID = id
	return nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = ?`, id).
		Scan(&category.ID, &category.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}

	products, err := s.productsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Products = products
	return &category, nil
}

func (s *CategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	for i := range categories {
		products, err := s.productsFor(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].Products = products
	}
	return categories, nil
}

func (s *CategoryStore) Update(ctx context.Context, category *domain.Category) error {
	res, err := s.db.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`,
		category.Name, category.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if rows == 0 {
		exists, err := rowExists(ctx, s.db, `SELECT 1 FROM categories WHERE id = ?`, category.ID)
		if err != nil {
			return fmt.Errorf("recheck category %d: %w", category.ID, err)
		}
		if !exists {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_categories WHERE category_id = ?`, id); err != nil {
		return fmt.Errorf("unlink products: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (s *CategoryStore) productsFor(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.created_at, p.updated_at
		FROM products p
		JOIN product_categories pc ON pc.product_id = p.id
		WHERE pc.category_id = ?
		ORDER BY p.id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query category products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description,
			&product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
