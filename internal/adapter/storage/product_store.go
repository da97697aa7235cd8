package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/shop-api/internal/core/domain"
)

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) Create(ctx context.Context, product *domain.Product, categoryIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO products (name, description, price, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		product.Name, product.Description, product.Price, product.Stock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("product insert id: %w", err)
	}
	product.ID = id

	if err := linkCategories(ctx, tx, id, categoryIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *ProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, stock, created_at, updated_at
		FROM products WHERE id = ?`, id,
	).Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Stock, &product.CreatedAt, &product.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	categories, err := s.categoriesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Categories = categories
	return &product, nil
}

func (s *ProductStore) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price, stock, created_at, updated_at
		FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
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

	for i := range products {
		categories, err := s.categoriesFor(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Categories = categories
	}
	return products, nil
}

func (s *ProductStore) Update(ctx context.Context, product *domain.Product, categoryIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, stock = ?, updated_at = ?
		WHERE id = ?`,
		product.Name, product.Description, product.Price, product.Stock,
		product.UpdatedAt, product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if rows == 0 {
		exists, err := rowExists(ctx, s.db, `SELECT 1 FROM products WHERE id = ?`, product.ID)
		if err != nil {
			return fmt.Errorf("recheck product %d: %w", product.ID, err)
		}
		if !exists {
			return domain.ErrNotFound
		}
	}

	if categoryIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = ?`, product.ID); err != nil {
			return fmt.Errorf("unlink categories: %w", err)
		}
		if err := linkCategories(ctx, tx, product.ID, categoryIDs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = ?`, id); err != nil {
		return fmt.Errorf("unlink categories: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE product_id = ?`, id); err != nil {
		return fmt.Errorf("delete product reviews: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (s *ProductStore) categoriesFor(ctx context.Context, productID int64) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name
		FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		WHERE pc.product_id = ?
		ORDER BY c.id`, productID)
	if err != nil {
		return nil, fmt.Errorf("query product categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
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
	return categories, nil
}

func linkCategories(ctx context.Context, tx *sql.Tx, productID int64, categoryIDs []int64) error {
	for _, categoryID := range categoryIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_categories (product_id, category_id)
			VALUES (?, ?)`, productID, categoryID); err != nil {
			return fmt.Errorf("link category %d: %w", categoryID, err)
		}
	}
	return nil
}
