package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

var ErrEmptyOrder = errors.New("cannot place an order without line items")

type ItemRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderProcessor orchestrates order placement: validate and reserve each
// line item, price the order, persist it and hand off the order-placed
// event. The order insert and the stock decrements are not wrapped in one
// store transaction; reservations are forward-only and any later failure
// compensates by releasing them, so this is best-effort eventual
// consistency rather than multi-document atomicity.
type OrderProcessor interface {
	PlaceOrder(customer *model.Account, items []ItemRequest) (*model.Order, error)
	GetOrder(caller *model.Account, orderID uuid.UUID) (*model.Order, error)
	ListOrders(accountID uuid.UUID) ([]*model.Order, error)
	ListAllOrders() ([]*model.Order, error)
}

func NewOrderProcessor(orders model.OrderRepository, ledger InventoryLedger, dispatcher domain.EventDispatcher) OrderProcessor {
	return &orderProcessor{orders: orders, ledger: ledger, dispatcher: dispatcher}
}

type orderProcessor struct {
	orders     model.OrderRepository
	ledger     InventoryLedger
	dispatcher domain.EventDispatcher
}

func (p *orderProcessor) PlaceOrder(customer *model.Account, items []ItemRequest) (*model.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var (
		reservations []Reservation
		lineItems    []model.LineItem
		totalCents   int64
	)
	for _, item := range items {
		reservation, err := p.ledger.CheckAndReserve(item.ProductID, item.Quantity)
		if err != nil {
			p.releaseAll(reservations)
			return nil, pkgerrors.Wrapf(err, "product %s", item.ProductID)
		}
		reservations = append(reservations, reservation)
		lineItems = append(lineItems, model.LineItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceCents: reservation.PriceCents,
			Status:     model.StatusPending,
		})
		totalCents += reservation.PriceCents * int64(item.Quantity)
	}

	orderID, err := p.orders.NextID()
	if err != nil {
		p.releaseAll(reservations)
		return nil, err
	}
	order := &model.Order{
		ID:         orderID,
		AccountID:  customer.ID,
		Items:      lineItems,
		TotalCents: totalCents,
		Status:     model.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	// Stock must never stay consumed without a matching persisted order.
	if err := p.orders.Create(order); err != nil {
		p.releaseAll(reservations)
		return nil, pkgerrors.Wrap(err, "persist order")
	}

	_ = p.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:       order.ID,
		AccountID:     customer.ID,
		CustomerEmail: customer.Email,
		Items:         lineItems,
		TotalCents:    totalCents,
	})

	return order, nil
}

func (p *orderProcessor) GetOrder(caller *model.Account, orderID uuid.UUID) (*model.Order, error) {
	order, err := p.orders.Find(orderID)
	if err != nil {
		return nil, err
	}
	// A foreign order looks exactly like a missing one so shoppers cannot
	// probe for order existence.
	if caller.Role == model.RoleShopper && order.AccountID != caller.ID {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (p *orderProcessor) ListOrders(accountID uuid.UUID) ([]*model.Order, error) {
	return p.orders.ListByAccount(accountID)
}

func (p *orderProcessor) ListAllOrders() ([]*model.Order, error) {
	return p.orders.ListAll()
}

// releaseAll compensates in reverse reservation order. Failures are logged
// and skipped so one broken release does not strand the rest.
func (p *orderProcessor) releaseAll(reservations []Reservation) {
	for i := len(reservations) - 1; i >= 0; i-- {
		if err := p.ledger.Release(reservations[i]); err != nil {
			log.WithError(err).WithField("product_id", reservations[i].ProductID).
				Error("failed to release reservation")
		}
	}
}
