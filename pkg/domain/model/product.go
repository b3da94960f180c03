package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock quantity")
)

type Product struct {
	ID            uuid.UUID
	Name          string
	Description   string
	PriceCents    int64
	StockQuantity int
	Deleted       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductUpdate carries the optional fields of a partial catalog update.
// A nil field leaves the stored value untouched.
type ProductUpdate struct {
	Name          *string
	Description   *string
	PriceCents    *int64
	StockQuantity *int
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(product *Product) error
	Update(product *Product) error
	Find(id uuid.UUID) (*Product, error)
	List(offset, limit int, includeDeleted bool) ([]*Product, error)
	Count(includeDeleted bool) (int, error)

	// DecrementStock applies stock -= quantity in a single atomic step and
	// only when the product exists, is not deleted and holds at least
	// quantity units. It never leaves stock negative.
	DecrementStock(id uuid.UUID, quantity int) error

	// IncrementStock is the compensating half of DecrementStock.
	IncrementStock(id uuid.UUID, quantity int) error
}
