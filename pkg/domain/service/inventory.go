package service

import (
	"errors"

	"github.com/google/uuid"

	"storefront/pkg/domain/model"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive number")

// Reservation is proof that a stock decrement was applied. It carries the
// unit price observed at reservation time so a later order total cannot be
// skewed by a concurrent price change, and everything Release needs to
// compensate.
type Reservation struct {
	ProductID  uuid.UUID
	Quantity   int
	PriceCents int64
}

// InventoryLedger is the stock-bearing view of the catalog. CheckAndReserve
// is the only way stock is consumed; the check and the decrement happen in
// one atomic repository step, never as a read followed by a write.
type InventoryLedger interface {
	CheckAndReserve(productID uuid.UUID, quantity int) (Reservation, error)
	Release(reservation Reservation) error
}

func NewInventoryLedger(products model.ProductRepository) InventoryLedger {
	return &inventoryLedger{products: products}
}

type inventoryLedger struct {
	products model.ProductRepository
}

func (l *inventoryLedger) CheckAndReserve(productID uuid.UUID, quantity int) (Reservation, error) {
	if quantity <= 0 {
		return Reservation{}, ErrInvalidQuantity
	}

	product, err := l.products.Find(productID)
	if err != nil {
		return Reservation{}, err
	}
	if product.Deleted {
		return Reservation{}, model.ErrProductNotFound
	}

	if err := l.products.DecrementStock(productID, quantity); err != nil {
		return Reservation{}, err
	}

	return Reservation{
		ProductID:  productID,
		Quantity:   quantity,
		PriceCents: product.PriceCents,
	}, nil
}

func (l *inventoryLedger) Release(reservation Reservation) error {
	return l.products.IncrementStock(reservation.ProductID, reservation.Quantity)
}
