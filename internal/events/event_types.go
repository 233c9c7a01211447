package events

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventOrderCreated       EventType = "order_created"
	EventOrderStatusChanged EventType = "order_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	UserID     string  `json:"user_id"`
	ItemCount  int     `json:"item_count"`
	TotalPrice float64 `json:"total_price"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}
