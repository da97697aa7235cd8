package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rl1809/shop-api/internal/core/domain"
	"github.com/rl1809/shop-api/internal/port"
)

type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) BeginTx(ctx context.Context) (port.OrderTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &orderTx{tx: tx}, nil
}

type orderTx struct {
	tx *sql.Tx
}

// DecrementStock applies the decrement as a guarded relative update, so
// concurrent decrements serialize on the product row and stock can never go
// negative regardless of what the validation pass read earlier.
func (t *orderTx) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - ?, updated_at = ?
		WHERE id = ? AND stock >= ?`,
		quantity, time.Now().UTC(), productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if rows == 0 {
		var name string
		err := t.tx.QueryRowContext(ctx, `SELECT name FROM products WHERE id = ?`, productID).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.ProductNotFoundError{ProductID: productID}
		}
		if err != nil {
			return fmt.Errorf("recheck product %d: %w", productID, err)
		}
		return &domain.InsufficientStockError{ProductName: name}
	}
	return nil
}

func (t *orderTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, total, status, created_at)
		VALUES (?, ?, ?, ?)`,
		order.UserID, order.Total, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("order insert id: %w", err)
	}
	order.ID = orderID

	for i := range order.Items {
		item := &order.Items[i]
		res, err := t.tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)`,
			orderID, item.ProductID, item.Quantity, item.Price,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("order item insert id: %w", err)
		}
		item.ID = itemID
		item.OrderID = orderID
	}
	return nil
}

func (t *orderTx) Commit() error {
	return t.tx.Commit()
}

func (t *orderTx) Rollback() error {
	return t.tx.Rollback()
}

func (s *OrderStore) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	var user domain.UserSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT o.id, o.user_id, o.total, o.status, o.created_at, u.id, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = ?`, id,
	).Scan(&order.ID, &order.UserID, &order.Total, &order.Status, &order.CreatedAt,
		&user.ID, &user.Name, &user.Email)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	order.User = &user

	if err := s.attachItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) List(ctx context.Context) ([]domain.Order, error) {
	return s.list(ctx, `
		SELECT o.id, o.user_id, o.total, o.status, o.created_at, u.id, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.id`)
}

func (s *OrderStore) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.list(ctx, `
		SELECT o.id, o.user_id, o.total, o.status, o.created_at, u.id, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.user_id = ?
		ORDER BY o.id`, userID)
}

func (s *OrderStore) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		var user domain.UserSummary
		if err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.Status,
			&order.CreatedAt, &user.ID, &user.Name, &user.Email); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		order.User = &user
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range orders {
		if err := s.attachItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *OrderStore) attachItems(ctx context.Context, order *domain.Order) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       p.id, p.name, p.description, p.price, p.stock, p.created_at, p.updated_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY oi.id`, order.ID)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		var product domain.Product
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		item.Product = &product
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order items: %w", err)
	}
	order.Items = items
	return nil
}
