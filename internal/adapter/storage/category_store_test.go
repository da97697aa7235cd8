package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/shop-api/internal/core/domain"
)

func TestCategoryStore_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	store := NewCategoryStore(db)
	ctx := context.Background()

	category := &domain.Category{Name: "Electronics"}
	require.NoError(t, store.Create(ctx, category))
	require.NotZero(t, category.ID)

	productID := seedProduct(t, db, "Keyboard", "250.50", 10)
	_, err := db.Exec(`INSERT INTO product_categories (product_id, category_id) VALUES (?, ?)`,
		productID, category.ID)
	require.NoError(t, err)

	got, err := store.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", got.Name)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Keyboard", got.Products[0].Name)
}

func TestCategoryStore_GetMissing(t *testing.T) {
	store := NewCategoryStore(openTestDB(t))

	_, err := store.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryStore_List(t *testing.T) {
	store := NewCategoryStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Category{Name: "Electronics"}))
	require.NoError(t, store.Create(ctx, &domain.Category{Name: "Books"}))

	categories, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Electronics", categories[0].Name)
	assert.Equal(t, "Books", categories[1].Name)
}

func TestCategoryStore_Update(t *testing.T) {
	store := NewCategoryStore(openTestDB(t))
	ctx := context.Background()

	category := &domain.Category{Name: "Electronics"}
	require.NoError(t, store.Create(ctx, category))

	category.Name = "Gadgets"
	require.NoError(t, store.Update(ctx, category))

	got, err := store.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", got.Name)
}

func TestCategoryStore_UpdateMissing(t *testing.T) {
	store := NewCategoryStore(openTestDB(t))

	err := store.Update(context.Background(), &domain.Category{ID: 42, Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryStore_Delete(t *testing.T) {
	db := openTestDB(t)
	store := NewCategoryStore(db)
	ctx := context.Background()

	category := &domain.Category{Name: "Electronics"}
	require.NoError(t, store.Create(ctx, category))

	product := newTestProduct("Keyboard", "250.50", 10)
	require.NoError(t, NewProductStore(db).Create(ctx, product, []int64{category.ID}))

	require.NoError(t, store.Delete(ctx, category.ID))

	_, err := store.GetByID(ctx, category.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := NewProductStore(db).GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)

	assert.ErrorIs(t, store.Delete(ctx, category.ID), domain.ErrNotFound)
}
