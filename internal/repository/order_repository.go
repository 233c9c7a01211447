package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-service/internal/domain"
)

// OrderRepository defines persistence access for orders and their items.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Count(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (float64, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, user_id, shipping_address1, shipping_address2, city, zip, country, phone, status, total_price, created_at`

// Create inserts the order and its items in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const orderQuery = `
        INSERT INTO orders (user_id, shipping_address1, shipping_address2, city, zip, country, phone, status, total_price)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at`

	if err := tx.QueryRow(ctx, orderQuery,
		order.UserID,
		order.ShippingAddress1,
		order.ShippingAddress2,
		order.City,
		order.Zip,
		order.Country,
		order.Phone,
		order.Status,
		order.TotalPrice,
	).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO order_items (order_id, product_id, quantity, unit_price)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRow(ctx, itemQuery,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
		).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.queryOrders(ctx, query)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, userID)
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

func (r *orderRepository) TotalSales(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_price), 0) FROM orders`).Scan(&total)
	return total, err
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, quantity, unit_price FROM order_items WHERE order_id=$1`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ShippingAddress1,
		&order.ShippingAddress2,
		&order.City,
		&order.Zip,
		&order.Country,
		&order.Phone,
		&order.Status,
		&order.TotalPrice,
		&order.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}
