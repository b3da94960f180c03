package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
)

func TestProductRepositoryDecrementStock(t *testing.T) {
	repo := NewProductRepository()
	product := &model.Product{ID: uuid.New(), Name: "p", PriceCents: 100, StockQuantity: 3}
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.DecrementStock(product.ID, 2))
	assert.ErrorIs(t, repo.DecrementStock(product.ID, 2), model.ErrInsufficientStock)
	assert.ErrorIs(t, repo.DecrementStock(uuid.New(), 1), model.ErrProductNotFound)

	stored, err := repo.Find(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.StockQuantity)

	t.Run("Deleted product is invisible to decrements", func(t *testing.T) {
		stored.Deleted = true
		require.NoError(t, repo.Update(stored))
		assert.ErrorIs(t, repo.DecrementStock(product.ID, 1), model.ErrProductNotFound)
	})
}

func TestProductRepositoryDecrementStockIsAtomic(t *testing.T) {
	repo := NewProductRepository()
	const stock = 100
	product := &model.Product{ID: uuid.New(), Name: "p", PriceCents: 100, StockQuantity: stock}
	require.NoError(t, repo.Create(product))

	var wg sync.WaitGroup
	for i := 0; i < 4*stock; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.DecrementStock(product.ID, 1)
		}()
	}
	wg.Wait()

	stored, err := repo.Find(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.StockQuantity)
}

func TestProductRepositoryReturnsCopies(t *testing.T) {
	repo := NewProductRepository()
	product := &model.Product{ID: uuid.New(), Name: "p", PriceCents: 100, StockQuantity: 1}
	require.NoError(t, repo.Create(product))

	found, err := repo.Find(product.ID)
	require.NoError(t, err)
	found.StockQuantity = 999

	again, err := repo.Find(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.StockQuantity, "callers must not mutate stored state")
}

func TestOrderRepository(t *testing.T) {
	repo := NewOrderRepository()
	accountID := uuid.New()
	first := &model.Order{ID: uuid.New(), AccountID: accountID, TotalCents: 100, CreatedAt: time.Now().UTC()}
	second := &model.Order{ID: uuid.New(), AccountID: uuid.New(), TotalCents: 250, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	t.Run("ListByAccount filters", func(t *testing.T) {
		orders, err := repo.ListByAccount(accountID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, first.ID, orders[0].ID)
	})

	t.Run("ListAll preserves insertion order", func(t *testing.T) {
		orders, err := repo.ListAll()
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, first.ID, orders[0].ID)
		assert.Equal(t, second.ID, orders[1].ID)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(first.ID, model.StatusConfirmed))
		stored, err := repo.Find(first.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, stored.Status)

		assert.ErrorIs(t, repo.UpdateStatus(uuid.New(), model.StatusConfirmed), model.ErrOrderNotFound)
	})

	t.Run("Aggregates", func(t *testing.T) {
		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		revenue, err := repo.TotalRevenueCents()
		require.NoError(t, err)
		assert.Equal(t, int64(350), revenue)
	})
}

func TestAccountRepositoryUniqueEmail(t *testing.T) {
	repo := NewAccountRepository()
	account := &model.Account{ID: uuid.New(), Email: "a@example.com", Role: model.RoleShopper}
	require.NoError(t, repo.Create(account))

	dup := &model.Account{ID: uuid.New(), Email: "a@example.com", Role: model.RoleShopper}
	assert.ErrorIs(t, repo.Create(dup), model.ErrEmailTaken)

	found, err := repo.FindByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)

	count, err := repo.CountByRole(model.RoleShopper)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
