package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// OrderService handles order placement and administration.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, products: products, dispatcher: dispatcher}
}

// OrderLine is one requested product/quantity pair.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// PlaceOrder creates an order for the user. Unit prices and the total are
// taken from the catalog server-side; client-supplied prices are ignored.
func (s *OrderService) PlaceOrder(ctx context.Context, order *domain.Order, lines []OrderLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("order must contain at least one item", nil)
	}

	order.Status = domain.OrderStatusPending
	order.Items = make([]domain.OrderItem, 0, len(lines))
	order.TotalPrice = 0

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperrors.NewValidationError("item quantity must be positive", map[string]any{"product_id": line.ProductID})
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if product.CountInStock < line.Quantity {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("insufficient stock for %s", product.Name),
				map[string]any{"product_id": product.ID, "in_stock": product.CountInStock},
			)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
		order.TotalPrice += product.Price * float64(line.Quantity)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderCreated,
			SubjectID: order.ID,
			Timestamp: time.Now(),
			Payload: events.OrderCreatedPayload{
				UserID:     order.UserID,
				ItemCount:  len(order.Items),
				TotalPrice: order.TotalPrice,
			},
		})
	}
	return order, nil
}

// GetOrder fetches one order.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrders returns every order, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// ListUserOrders returns one user's orders.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// UpdateStatus transitions the order to the given status.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, apperrors.NewValidationError("unknown order status", map[string]any{"status": status})
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := order.Status

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	if s.dispatcher != nil && oldStatus != status {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			SubjectID: order.ID,
			Timestamp: time.Now(),
			Payload:   events.OrderStatusChangedPayload{OldStatus: oldStatus, NewStatus: status},
		})
	}
	return order, nil
}

// DeleteOrder removes an order.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// CountOrders returns the total number of orders.
func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.orders.Count(ctx)
}

// TotalSales returns the sum of all order totals.
func (s *OrderService) TotalSales(ctx context.Context) (float64, error) {
	return s.orders.TotalSales(ctx)
}
