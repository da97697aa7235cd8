package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/shop-api/internal/core/domain"
	"github.com/rl1809/shop-api/internal/port"
)

// ProductService is a thin pass-through over the product repository with an
// optional read cache in front of single-product lookups.
type ProductService struct {
	products port.ProductRepository
	cache    port.CacheRepository
	logger   *zap.Logger
}

func NewProductService(products port.ProductRepository, cache port.CacheRepository, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, cache: cache, logger: logger}
}

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryIDs []int64
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, product, input.CategoryIDs); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, product.ID)
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if s.cache != nil {
		product, err := s.cache.GetProduct(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, port.ErrCacheMiss) {
			s.logger.Warn("product cache read failed", zap.Int64("product_id", id), zap.Error(err))
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product); err != nil {
			s.logger.Warn("product cache write failed", zap.Int64("product_id", id), zap.Error(err))
		}
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// ProductUpdate holds the optional fields of a product update; nil means
// unchanged. A non-nil CategoryIDs replaces the category links.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	CategoryIDs []int64
}

func (s *ProductService) Update(ctx context.Context, id int64, update ProductUpdate) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product, update.CategoryIDs); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		s.logger.Warn("product cache invalidation failed", zap.Int64("product_id", id), zap.Error(err))
	}
}
