package tests

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
	"storefront/pkg/infrastructure/memory"
)

type capturingDispatcher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (d *capturingDispatcher) Dispatch(event domain.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *capturingDispatcher) Events() []domain.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Event(nil), d.events...)
}

func (d *capturingDispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = nil
}

// failingOrderRepository simulates a store outage on order insert.
type failingOrderRepository struct {
	model.OrderRepository
	failCreate bool
}

var errStorageUnavailable = errors.New("storage unavailable")

func (r *failingOrderRepository) Create(order *model.Order) error {
	if r.failCreate {
		return errStorageUnavailable
	}
	return r.OrderRepository.Create(order)
}

func seedProduct(t *testing.T, repo *memory.ProductRepository, priceCents int64, stock int) *model.Product {
	t.Helper()
	id, err := repo.NextID()
	require.NoError(t, err)
	now := time.Now().UTC()
	product := &model.Product{
		ID:            id,
		Name:          "test product",
		PriceCents:    priceCents,
		StockQuantity: stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repo.Create(product))
	return product
}

func shopper() *model.Account {
	return &model.Account{
		ID:    uuid.New(),
		Email: "shopper@example.com",
		Role:  model.RoleShopper,
	}
}

func operator() *model.Account {
	return &model.Account{
		ID:    uuid.New(),
		Email: "operator@example.com",
		Role:  model.RoleOperator,
	}
}
