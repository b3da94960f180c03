package auth

import (
	"errors"

	"storefront/pkg/domain/model"
)

var ErrForbidden = errors.New("caller role is not allowed to perform this operation")

// AccessGate resolves a token to an account and enforces the role a
// protected operation requires. Both steps run before any business logic
// and short-circuit it on failure.
type AccessGate interface {
	Authenticate(token string) (*model.Account, error)
	Authorize(account *model.Account, required model.Role) error
}

func NewAccessGate(authority CredentialAuthority, accounts model.AccountRepository) AccessGate {
	return &accessGate{authority: authority, accounts: accounts}
}

type accessGate struct {
	authority CredentialAuthority
	accounts  model.AccountRepository
}

func (g *accessGate) Authenticate(token string) (*model.Account, error) {
	claims, err := g.authority.Verify(token)
	if err != nil {
		return nil, err
	}

	// The subject may have been removed since the token was issued.
	account, err := g.accounts.Find(claims.AccountID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (g *accessGate) Authorize(account *model.Account, required model.Role) error {
	if account.Role != required {
		return ErrForbidden
	}
	return nil
}
