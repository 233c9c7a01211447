package service

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		clone := *p
		repo.products[p.ID] = &clone
	}
	return repo
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *product
	return &clone, nil
}

func (r *fakeProductRepo) List(_ context.Context, _, _ int) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) ListByCategory(_ context.Context, _ string, _, _ int) ([]domain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListFeatured(_ context.Context, _ int) ([]domain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) CountByCategory(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	seq    int
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	order.ID = "order-" + strconv.Itoa(r.seq)
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) TotalSales(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, o := range r.orders {
		total += o.TotalPrice
	}
	return total, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event(nil), d.events...)
}

func TestOrderService_PlaceOrder(t *testing.T) {
	t.Parallel()

	chair := &domain.Product{ID: "p-chair", Name: "Chair", Price: 49.5, CountInStock: 10}
	desk := &domain.Product{ID: "p-desk", Name: "Desk", Price: 200, CountInStock: 2}

	t.Run("totals come from the catalog", func(t *testing.T) {
		t.Parallel()

		dispatcher := &recordingDispatcher{}
		svc := NewOrderService(newFakeOrderRepo(), newFakeProductRepo(chair, desk), dispatcher)

		order, err := svc.PlaceOrder(context.Background(), &domain.Order{UserID: "u-1"}, []OrderLine{
			{ProductID: "p-chair", Quantity: 2},
			{ProductID: "p-desk", Quantity: 1},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.InDelta(t, 2*49.5+200, order.TotalPrice, 1e-9)
		require.Len(t, order.Items, 2)
		assert.Equal(t, 49.5, order.Items[0].UnitPrice)
		assert.Equal(t, 200.0, order.Items[1].UnitPrice)

		published := dispatcher.published()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventOrderCreated, published[0].Type)
	})

	t.Run("empty order is rejected", func(t *testing.T) {
		t.Parallel()

		svc := NewOrderService(newFakeOrderRepo(), newFakeProductRepo(), nil)

		_, err := svc.PlaceOrder(context.Background(), &domain.Order{UserID: "u-1"}, nil)
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		t.Parallel()

		svc := NewOrderService(newFakeOrderRepo(), newFakeProductRepo(chair), nil)

		_, err := svc.PlaceOrder(context.Background(), &domain.Order{UserID: "u-1"}, []OrderLine{
			{ProductID: "p-chair", Quantity: 0},
		})
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()

		svc := NewOrderService(newFakeOrderRepo(), newFakeProductRepo(chair), nil)

		_, err := svc.PlaceOrder(context.Background(), &domain.Order{UserID: "u-1"}, []OrderLine{
			{ProductID: "p-missing", Quantity: 1},
		})
		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	})

	t.Run("insufficient stock conflicts", func(t *testing.T) {
		t.Parallel()

		orders := newFakeOrderRepo()
		svc := NewOrderService(orders, newFakeProductRepo(desk), nil)

		_, err := svc.PlaceOrder(context.Background(), &domain.Order{UserID: "u-1"}, []OrderLine{
			{ProductID: "p-desk", Quantity: 3},
		})
		assert.Equal(t, "CONFLICT", domainCode(t, err))

		count, err := orders.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("valid transition publishes a change event", func(t *testing.T) {
		t.Parallel()

		orders := newFakeOrderRepo()
		dispatcher := &recordingDispatcher{}
		svc := NewOrderService(orders, newFakeProductRepo(), dispatcher)

		seed := &domain.Order{UserID: "u-1", Status: domain.OrderStatusPending}
		require.NoError(t, orders.Create(context.Background(), seed))

		updated, err := svc.UpdateStatus(context.Background(), seed.ID, domain.OrderStatusShipped)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusShipped, updated.Status)

		published := dispatcher.published()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventOrderStatusChanged, published[0].Type)
	})

	t.Run("same status publishes nothing", func(t *testing.T) {
		t.Parallel()

		orders := newFakeOrderRepo()
		dispatcher := &recordingDispatcher{}
		svc := NewOrderService(orders, newFakeProductRepo(), dispatcher)

		seed := &domain.Order{UserID: "u-1", Status: domain.OrderStatusPending}
		require.NoError(t, orders.Create(context.Background(), seed))

		_, err := svc.UpdateStatus(context.Background(), seed.ID, domain.OrderStatusPending)
		require.NoError(t, err)
		assert.Empty(t, dispatcher.published())
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		t.Parallel()

		svc := NewOrderService(newFakeOrderRepo(), newFakeProductRepo(), nil)

		_, err := svc.UpdateStatus(context.Background(), "order-1", domain.OrderStatus("TELEPORTED"))
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	})
}

func TestOrderService_TotalSales(t *testing.T) {
	t.Parallel()

	orders := newFakeOrderRepo()
	svc := NewOrderService(orders, newFakeProductRepo(), nil)

	require.NoError(t, orders.Create(context.Background(), &domain.Order{UserID: "u-1", TotalPrice: 10}))
	require.NoError(t, orders.Create(context.Background(), &domain.Order{UserID: "u-2", TotalPrice: 32.5}))

	total, err := svc.TotalSales(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 42.5, total, 1e-9)
}
