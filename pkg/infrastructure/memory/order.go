package memory

import (
	"sync"

	"github.com/google/uuid"

	"storefront/pkg/domain/model"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]model.Order
	order  []uuid.UUID
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[uuid.UUID]model.Order)}
}

func (r *OrderRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *OrderRepository) Create(order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *order
	copied.Items = append([]model.LineItem(nil), order.Items...)
	r.orders[order.ID] = copied
	r.order = append(r.order, order.ID)
	return nil
}

func (r *OrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	copied := order
	copied.Items = append([]model.LineItem(nil), order.Items...)
	return &copied, nil
}

func (r *OrderRepository) ListByAccount(accountID uuid.UUID) ([]*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]*model.Order, 0)
	for _, id := range r.order {
		if order := r.orders[id]; order.AccountID == accountID {
			copied := order
			copied.Items = append([]model.LineItem(nil), order.Items...)
			orders = append(orders, &copied)
		}
	}
	return orders, nil
}

func (r *OrderRepository) ListAll() ([]*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]*model.Order, 0, len(r.order))
	for _, id := range r.order {
		order := r.orders[id]
		copied := order
		copied.Items = append([]model.LineItem(nil), order.Items...)
		orders = append(orders, &copied)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(id uuid.UUID, status model.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return model.ErrOrderNotFound
	}
	order.Status = status
	r.orders[id] = order
	return nil
}

func (r *OrderRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders), nil
}

func (r *OrderRepository) TotalRevenueCents() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, order := range r.orders {
		total += order.TotalCents
	}
	return total, nil
}
