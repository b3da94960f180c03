package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
)

type stubAccountRepository struct {
	accounts map[uuid.UUID]*model.Account
}

func (r *stubAccountRepository) NextID() (uuid.UUID, error)        { return uuid.New(), nil }
func (r *stubAccountRepository) Create(a *model.Account) error     { r.accounts[a.ID] = a; return nil }
func (r *stubAccountRepository) FindByEmail(string) (*model.Account, error) {
	return nil, model.ErrAccountNotFound
}
func (r *stubAccountRepository) ListByRole(model.Role) ([]*model.Account, error) { return nil, nil }
func (r *stubAccountRepository) CountByRole(model.Role) (int, error)             { return 0, nil }

func (r *stubAccountRepository) Find(id uuid.UUID) (*model.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func setupGate(t *testing.T) (AccessGate, CredentialAuthority, *stubAccountRepository) {
	repo := &stubAccountRepository{accounts: make(map[uuid.UUID]*model.Account)}
	authority := NewCredentialAuthority([]byte("signing-secret"), time.Hour)
	return NewAccessGate(authority, repo), authority, repo
}

func TestAuthenticate(t *testing.T) {
	gate, authority, repo := setupGate(t)
	account := &model.Account{ID: uuid.New(), Email: "op@example.com", Role: model.RoleOperator}
	require.NoError(t, repo.Create(account))

	t.Run("Success", func(t *testing.T) {
		token, err := authority.Issue(account.ID, account.Role)
		require.NoError(t, err)

		resolved, err := gate.Authenticate(token)
		require.NoError(t, err)
		assert.Equal(t, account.ID, resolved.ID)
		assert.Equal(t, model.RoleOperator, resolved.Role)
	})

	t.Run("Fail on invalid token", func(t *testing.T) {
		_, err := gate.Authenticate("bogus")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Fail when the subject no longer resolves", func(t *testing.T) {
		token, err := authority.Issue(uuid.New(), model.RoleShopper)
		require.NoError(t, err)

		_, err = gate.Authenticate(token)
		assert.ErrorIs(t, err, model.ErrAccountNotFound)
	})
}

func TestAuthorize(t *testing.T) {
	gate, _, _ := setupGate(t)
	op := &model.Account{ID: uuid.New(), Role: model.RoleOperator}
	buyer := &model.Account{ID: uuid.New(), Role: model.RoleShopper}

	assert.NoError(t, gate.Authorize(op, model.RoleOperator))
	assert.NoError(t, gate.Authorize(buyer, model.RoleShopper))
	assert.ErrorIs(t, gate.Authorize(op, model.RoleShopper), ErrForbidden)
	assert.ErrorIs(t, gate.Authorize(buyer, model.RoleOperator), ErrForbidden)
}
