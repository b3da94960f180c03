package service

import (
	"errors"

	"github.com/google/uuid"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

var ErrInvalidTransition = errors.New("order status transition is not allowed")

// OrderLifecycle advances an order through
// pending -> confirmed -> shipped -> delivered. Transitions are forward-only
// and may not skip states; delivered is terminal.
type OrderLifecycle interface {
	Transition(orderID uuid.UUID, next model.OrderStatus) (*model.Order, error)
}

var nextStatus = map[model.OrderStatus]model.OrderStatus{
	model.StatusPending:   model.StatusConfirmed,
	model.StatusConfirmed: model.StatusShipped,
	model.StatusShipped:   model.StatusDelivered,
}

func NewOrderLifecycle(orders model.OrderRepository, dispatcher domain.EventDispatcher) OrderLifecycle {
	return &orderLifecycle{orders: orders, dispatcher: dispatcher}
}

type orderLifecycle struct {
	orders     model.OrderRepository
	dispatcher domain.EventDispatcher
}

func (l *orderLifecycle) Transition(orderID uuid.UUID, next model.OrderStatus) (*model.Order, error) {
	order, err := l.orders.Find(orderID)
	if err != nil {
		return nil, err
	}

	allowed, ok := nextStatus[order.Status]
	if !ok || allowed != next {
		return nil, ErrInvalidTransition
	}

	if err := l.orders.UpdateStatus(orderID, next); err != nil {
		return nil, err
	}

	_ = l.dispatcher.Dispatch(model.OrderStatusChanged{
		OrderID:   orderID,
		OldStatus: order.Status,
		NewStatus: next,
	})

	order.Status = next
	return order, nil
}
