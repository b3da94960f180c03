package tests

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
	"storefront/pkg/infrastructure/memory"
)

func setupLedger(t *testing.T) (service.InventoryLedger, *memory.ProductRepository) {
	repo := memory.NewProductRepository()
	return service.NewInventoryLedger(repo), repo
}

func TestCheckAndReserve(t *testing.T) {
	ledger, repo := setupLedger(t)
	product := seedProduct(t, repo, 1000, 5)

	t.Run("Success", func(t *testing.T) {
		reservation, err := ledger.CheckAndReserve(product.ID, 3)

		require.NoError(t, err)
		assert.Equal(t, product.ID, reservation.ProductID)
		assert.Equal(t, 3, reservation.Quantity)
		assert.Equal(t, int64(1000), reservation.PriceCents)

		stored, err := repo.Find(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.StockQuantity)
	})

	t.Run("Fail on insufficient stock", func(t *testing.T) {
		_, err := ledger.CheckAndReserve(product.ID, 3)

		assert.ErrorIs(t, err, model.ErrInsufficientStock)
		stored, err := repo.Find(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.StockQuantity, "failed reservation must not touch stock")
	})

	t.Run("Fail on unknown product", func(t *testing.T) {
		_, err := ledger.CheckAndReserve(uuid.New(), 1)
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("Fail on non-positive quantity", func(t *testing.T) {
		_, err := ledger.CheckAndReserve(product.ID, 0)
		assert.ErrorIs(t, err, service.ErrInvalidQuantity)

		_, err = ledger.CheckAndReserve(product.ID, -2)
		assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	})
}

func TestCheckAndReserveDeletedProduct(t *testing.T) {
	ledger, repo := setupLedger(t)
	product := seedProduct(t, repo, 500, 10)

	product.Deleted = true
	require.NoError(t, repo.Update(product))

	_, err := ledger.CheckAndReserve(product.ID, 1)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestRelease(t *testing.T) {
	ledger, repo := setupLedger(t)
	product := seedProduct(t, repo, 1000, 5)

	reservation, err := ledger.CheckAndReserve(product.ID, 4)
	require.NoError(t, err)

	require.NoError(t, ledger.Release(reservation))

	stored, err := repo.Find(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.StockQuantity)
}

// Concurrent reservations against one product must never hand out more
// units than the product holds.
func TestConcurrentReservationsNeverOversell(t *testing.T) {
	ledger, repo := setupLedger(t)
	const stock = 50
	product := seedProduct(t, repo, 100, stock)

	const workers = 200
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		reserved int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.CheckAndReserve(product.ID, 1); err == nil {
				mu.Lock()
				reserved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, stock, reserved)
	stored, err := repo.Find(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.StockQuantity)
	assert.GreaterOrEqual(t, stored.StockQuantity, 0, "stock must never go negative")
}
