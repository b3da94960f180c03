package tests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
	"storefront/pkg/infrastructure/memory"
)

func setupLifecycle(t *testing.T) (service.OrderLifecycle, *memory.OrderRepository, *capturingDispatcher) {
	orders := memory.NewOrderRepository()
	dispatcher := &capturingDispatcher{}
	return service.NewOrderLifecycle(orders, dispatcher), orders, dispatcher
}

func seedOrder(t *testing.T, repo *memory.OrderRepository, status model.OrderStatus) *model.Order {
	t.Helper()
	id, err := repo.NextID()
	require.NoError(t, err)
	order := &model.Order{
		ID:         id,
		AccountID:  uuid.New(),
		Items:      []model.LineItem{{ProductID: uuid.New(), Quantity: 1, PriceCents: 100, Status: model.StatusPending}},
		TotalCents: 100,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.Create(order))
	return order
}

func TestTransitionForwardSteps(t *testing.T) {
	lifecycle, orders, dispatcher := setupLifecycle(t)
	order := seedOrder(t, orders, model.StatusPending)

	steps := []model.OrderStatus{model.StatusConfirmed, model.StatusShipped, model.StatusDelivered}
	for _, next := range steps {
		dispatcher.Reset()

		updated, err := lifecycle.Transition(order.ID, next)

		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)

		stored, err := orders.Find(order.ID)
		require.NoError(t, err)
		assert.Equal(t, next, stored.Status)

		events := dispatcher.Events()
		require.Len(t, events, 1)
		changed, ok := events[0].(model.OrderStatusChanged)
		require.True(t, ok)
		assert.Equal(t, next, changed.NewStatus)
	}
}

func TestTransitionRejectsSkipsAndBackwardMoves(t *testing.T) {
	lifecycle, orders, _ := setupLifecycle(t)

	cases := []struct {
		name string
		from model.OrderStatus
		to   model.OrderStatus
	}{
		{"Skip pending to shipped", model.StatusPending, model.StatusShipped},
		{"Skip pending to delivered", model.StatusPending, model.StatusDelivered},
		{"Backward confirmed to pending", model.StatusConfirmed, model.StatusPending},
		{"Backward delivered to shipped", model.StatusDelivered, model.StatusShipped},
		{"Out of terminal state", model.StatusDelivered, model.StatusDelivered},
		{"Same state", model.StatusConfirmed, model.StatusConfirmed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := seedOrder(t, orders, tc.from)

			_, err := lifecycle.Transition(order.ID, tc.to)

			assert.ErrorIs(t, err, service.ErrInvalidTransition)
			stored, findErr := orders.Find(order.ID)
			require.NoError(t, findErr)
			assert.Equal(t, tc.from, stored.Status, "rejected transition must not write")
		})
	}
}

func TestTransitionUnknownOrder(t *testing.T) {
	lifecycle, _, _ := setupLifecycle(t)

	_, err := lifecycle.Transition(uuid.New(), model.StatusConfirmed)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "shipped", "delivered"} {
		status, err := model.ParseOrderStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := model.ParseOrderStatus("cancelled")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
	_, err = model.ParseOrderStatus("")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}
