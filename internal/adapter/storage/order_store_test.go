package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/shop-api/internal/core/domain"
)

func seedUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	user := newTestUser(email)
	require.NoError(t, NewUserStore(db).Create(context.Background(), user))
	return user.ID
}

func seedProduct(t *testing.T, db *sql.DB, name, price string, stock int) int64 {
	t.Helper()
	product := newTestProduct(name, price, stock)
	require.NoError(t, NewProductStore(db).Create(context.Background(), product, nil))
	return product.ID
}

func productStock(t *testing.T, db *sql.DB, id int64) int {
	t.Helper()
	var stock int
	require.NoError(t, db.QueryRow(`SELECT stock FROM products WHERE id = ?`, id).Scan(&stock))
	return stock
}

func TestOrderTx_DecrementStock(t *testing.T) {
	db := openTestDB(t)
	store := NewOrderStore(db)
	ctx := context.Background()

	productID := seedProduct(t, db, "Keyboard", "250.50", 10)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DecrementStock(ctx, productID, 3))
	require.NoError(t, tx.Commit())

	assert.Equal(t, 7, productStock(t, db, productID))
}

func TestOrderTx_DecrementStock_Insufficient(t *testing.T) {
	db := openTestDB(t)
	store := NewOrderStore(db)
	ctx := context.Background()

	productID := seedProduct(t, db, "Keyboard", "250.50", 2)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	err = tx.DecrementStock(ctx, productID, 3)
	require.NoError(t, tx.Rollback())

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Keyboard", insufficient.ProductName)
	assert.Equal(t, 2, productStock(t, db, productID))
}

func TestOrderTx_DecrementStock_MissingProduct(t *testing.T) {
	store := NewOrderStore(openTestDB(t))
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	err = tx.DecrementStock(ctx, 42, 1)
	require.NoError(t, tx.Rollback())

	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(42), notFound.ProductID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderTx_RollbackRestoresStock(t *testing.T) {
	db := openTestDB(t)
	store := NewOrderStore(db)
	ctx := context.Background()

	productID := seedProduct(t, db, "Keyboard", "250.50", 10)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DecrementStock(ctx, productID, 4))
	require.NoError(t, tx.Rollback())

	assert.Equal(t, 10, productStock(t, db, productID))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count))
	assert.Zero(t, count)
}

func TestOrderTx_InsertOrderAndGet(t *testing.T) {
	db := openTestDB(t)
	store := NewOrderStore(db)
	ctx := context.Background()

	userID := seedUser(t, db, "alice@example.com")
	keyboard := seedProduct(t, db, "Keyboard", "250.50", 10)
	mouse := seedProduct(t, db, "Mouse", "49.99", 5)

	order := &domain.Order{
		UserID:    userID,
		Total:     decimal.RequireFromString("601.98"),
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
		Items: []domain.OrderItem{
			{ProductID: keyboard, Quantity: 2, Price: decimal.RequireFromString("250.50")},
			{ProductID: mouse, Quantity: 2, Price: decimal.RequireFromString("49.99")},
		},
	}

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DecrementStock(ctx, keyboard, 2))
	require.NoError(t, tx.DecrementStock(ctx, mouse, 2))
	require.NoError(t, tx.InsertOrder(ctx, order))
	require.NoError(t, tx.Commit())
	require.NotZero(t, order.ID)

	got, err := store.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, got.Status)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("601.98")), "total %s", got.Total)

	require.NotNil(t, got.User)
	assert.Equal(t, userID, got.User.ID)
	assert.Equal(t, "alice@example.com", got.User.Email)

	require.Len(t, got.Items, 2)
	first := got.Items[0]
	assert.Equal(t, keyboard, first.ProductID)
	assert.Equal(t, 2, first.Quantity)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("250.50")), "price %s", first.Price)
	require.NotNil(t, first.Product)
	assert.Equal(t, "Keyboard", first.Product.Name)
}

func TestOrderStore_GetMissing(t *testing.T) {
	store := NewOrderStore(openTestDB(t))

	_, err := store.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderStore_ListByUser(t *testing.T) {
	db := openTestDB(t)
	store := NewOrderStore(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	productID := seedProduct(t, db, "Keyboard", "250.50", 10)

	placeOrder := func(userID int64) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.DecrementStock(ctx, productID, 1))
		require.NoError(t, tx.InsertOrder(ctx, &domain.Order{
			UserID:    userID,
			Total:     decimal.RequireFromString("250.50"),
			Status:    domain.OrderStatusPending,
			CreatedAt: time.Now().UTC(),
			Items: []domain.OrderItem{
				{ProductID: productID, Quantity: 1, Price: decimal.RequireFromString("250.50")},
			},
		}))
		require.NoError(t, tx.Commit())
	}
	placeOrder(alice)
	placeOrder(alice)
	placeOrder(bob)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	orders, err := store.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, alice, order.UserID)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Keyboard", order.Items[0].Product.Name)
	}

	empty, err := store.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
