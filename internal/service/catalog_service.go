package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
)

const (
	cacheKeyCategories   = "catalog:categories"
	cacheKeyProductByID  = "catalog:product:"
	catalogCacheLifetime = 5 * time.Minute
)

// CatalogService serves products and categories with a redis read-through
// cache for the hot public reads. The cache is best-effort: redis being
// down degrades to direct repository reads.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      *redis.Client
	logger     *zap.Logger
}

// NewCatalogService builds the service; cache may be nil.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, cache *redis.Client, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, categories: categories, cache: cache, logger: logger}
}

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Products []domain.Product
	Total    int64
	Page     int
	Pages    int
}

// ListProducts returns a paged product listing.
func (s *CatalogService) ListProducts(ctx context.Context, page, limit int) (*ProductPage, error) {
	products, err := s.products.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Total: total, Page: page, Pages: pages(total, limit)}, nil
}

// ListProductsByCategory returns a paged listing scoped to one category.
func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID string, page, limit int) (*ProductPage, error) {
	products, err := s.products.ListByCategory(ctx, categoryID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.products.CountByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Total: total, Page: page, Pages: pages(total, limit)}, nil
}

// ListFeaturedProducts returns at most count featured products.
func (s *CatalogService) ListFeaturedProducts(ctx context.Context, count int) ([]domain.Product, error) {
	return s.products.ListFeatured(ctx, count)
}

// GetProduct fetches one product, serving from cache when possible.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := cacheKeyProductByID + id
	if cached, ok := s.cacheGet(ctx, key); ok {
		var product domain.Product
		if err := json.Unmarshal(cached, &product); err == nil {
			return &product, nil
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, product)
	return product, nil
}

// CountProducts returns the catalog size.
func (s *CatalogService) CountProducts(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

// CreateProduct adds a catalog entry after validating its category.
func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if _, err := s.categories.GetByID(ctx, product.CategoryID); err != nil {
		return err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	s.cacheDel(ctx, cacheKeyProductByID+product.ID)
	return nil
}

// UpdateProduct modifies a catalog entry and invalidates its cache copy.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if _, err := s.categories.GetByID(ctx, product.CategoryID); err != nil {
		return err
	}
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	s.cacheDel(ctx, cacheKeyProductByID+product.ID)
	return nil
}

// DeleteProduct removes a catalog entry and invalidates its cache copy.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.cacheDel(ctx, cacheKeyProductByID+id)
	return nil
}

// ListCategories returns all categories, cached as one unit.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := s.cacheGet(ctx, cacheKeyCategories); ok {
		var categories []domain.Category
		if err := json.Unmarshal(cached, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, cacheKeyCategories, categories)
	return categories, nil
}

// GetCategory fetches one category.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// CreateCategory adds a category.
func (s *CatalogService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := s.categories.Create(ctx, category); err != nil {
		return err
	}
	s.cacheDel(ctx, cacheKeyCategories)
	return nil
}

// UpdateCategory modifies a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if err := s.categories.Update(ctx, category); err != nil {
		return err
	}
	s.cacheDel(ctx, cacheKeyCategories)
	return nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.cacheDel(ctx, cacheKeyCategories)
	return nil
}

func (s *CatalogService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, catalogCacheLifetime).Err(); err != nil {
		s.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CatalogService) cacheDel(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.logger.Debug("cache del failed", zap.String("key", key), zap.Error(err))
	}
}

func pages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
