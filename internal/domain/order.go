package domain

import "time"

// OrderStatus represents lifecycle states for an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single product line within an order. UnitPrice is the
// product price captured at order time; later catalog changes never alter
// an existing order's total.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice float64
}

// Order is a placed purchase with its shipping details.
type Order struct {
	ID               string
	UserID           string
	Items            []OrderItem
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Status           OrderStatus
	TotalPrice       float64
	CreatedAt        time.Time
}
