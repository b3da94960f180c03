package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("unknown order status")
)

type OrderStatus int

const (
	StatusPending OrderStatus = iota
	StatusConfirmed
	StatusShipped
	StatusDelivered
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "confirmed":
		return StatusConfirmed, nil
	case "shipped":
		return StatusShipped, nil
	case "delivered":
		return StatusDelivered, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s OrderStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusShipped:
		return "shipped"
	case StatusDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// LineItem is one product/quantity pair within an order. PriceCents is the
// unit price observed when the item's stock was reserved; later catalog
// price changes never touch it.
type LineItem struct {
	ProductID  uuid.UUID
	Quantity   int
	PriceCents int64
	Status     OrderStatus
}

// Order is immutable after creation except for Status.
type Order struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	Items      []LineItem
	TotalCents int64
	Status     OrderStatus
	CreatedAt  time.Time
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	Create(order *Order) error
	Find(id uuid.UUID) (*Order, error)
	ListByAccount(accountID uuid.UUID) ([]*Order, error)
	ListAll() ([]*Order, error)
	UpdateStatus(id uuid.UUID, status OrderStatus) error
	Count() (int, error)
	TotalRevenueCents() (int64, error)
}
