package service

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
)

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
	listCalls  int
}

func newFakeCategoryRepo(categories ...*domain.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[string]*domain.Category)}
	for _, c := range categories {
		clone := *c
		repo.categories[c.ID] = &clone
	}
	return repo
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *category
	return &clone, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

// The cache is optional; a nil client must mean direct repository reads.
func TestCatalogService_NilCache(t *testing.T) {
	t.Parallel()

	chair := &domain.Product{ID: "p-chair", Name: "Chair", Price: 49.5, CountInStock: 10, CategoryID: "c-furniture"}
	furniture := &domain.Category{ID: "c-furniture", Name: "Furniture"}

	svc := NewCatalogService(newFakeProductRepo(chair), newFakeCategoryRepo(furniture), nil, zap.NewNop())

	product, err := svc.GetProduct(context.Background(), "p-chair")
	require.NoError(t, err)
	assert.Equal(t, "Chair", product.Name)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Furniture", categories[0].Name)
}

func TestCatalogService_CreateProductValidatesCategory(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(newFakeProductRepo(), newFakeCategoryRepo(), nil, zap.NewNop())

	err := svc.CreateProduct(context.Background(), &domain.Product{ID: "p-1", Name: "Lamp", CategoryID: "c-missing"})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestCatalogService_ListProducts_Paging(t *testing.T) {
	t.Parallel()

	products := newFakeProductRepo(
		&domain.Product{ID: "p-1"},
		&domain.Product{ID: "p-2"},
		&domain.Product{ID: "p-3"},
	)
	svc := NewCatalogService(products, newFakeCategoryRepo(), nil, zap.NewNop())

	page, err := svc.ListProducts(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Pages)
}

func TestPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "exact multiple", total: 10, limit: 5, want: 2},
		{name: "partial last page", total: 11, limit: 5, want: 3},
		{name: "empty catalog", total: 0, limit: 5, want: 0},
		{name: "zero limit", total: 10, limit: 0, want: 0},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, pages(tc.total, tc.limit))
		})
	}
}
