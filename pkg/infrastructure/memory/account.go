// Package memory provides mutex-guarded in-memory repositories. They back
// the service when no database DSN is configured and double as the test
// substrate; they honor the same contracts as the MySQL repositories,
// including the atomic stock decrement.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"storefront/pkg/domain/model"
)

type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]model.Account
	byEmail  map[string]uuid.UUID
	order    []uuid.UUID
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[uuid.UUID]model.Account),
		byEmail:  make(map[string]uuid.UUID),
	}
}

func (r *AccountRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *AccountRepository) Create(account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[account.Email]; ok {
		return model.ErrEmailTaken
	}
	r.accounts[account.ID] = *account
	r.byEmail[account.Email] = account.ID
	r.order = append(r.order, account.ID)
	return nil
}

func (r *AccountRepository) Find(id uuid.UUID) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return &account, nil
}

func (r *AccountRepository) FindByEmail(email string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account := r.accounts[id]
	return &account, nil
}

func (r *AccountRepository) ListByRole(role model.Role) ([]*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	accounts := make([]*model.Account, 0)
	for _, id := range r.order {
		if account := r.accounts[id]; account.Role == role {
			copied := account
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (r *AccountRepository) CountByRole(role model.Role) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, account := range r.accounts {
		if account.Role == role {
			count++
		}
	}
	return count, nil
}
