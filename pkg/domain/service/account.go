package service

import (
	"errors"
	"time"

	"storefront/pkg/auth"
	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

var (
	ErrPasswordTooShort = errors.New("password is too short")
	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password so login failures do not reveal which part was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 8

type AccountService interface {
	RegisterOperator(email, name, password string) (*model.Account, error)
	CreateShopper(email, name, phone, password string) (*model.Account, error)
	ListShoppers() ([]*model.Account, error)
	Login(email, password string) (string, error)
}

func NewAccountService(
	accounts model.AccountRepository,
	passwords model.PasswordManager,
	authority auth.CredentialAuthority,
	dispatcher domain.EventDispatcher,
) AccountService {
	return &accountService{
		accounts:   accounts,
		passwords:  passwords,
		authority:  authority,
		dispatcher: dispatcher,
	}
}

type accountService struct {
	accounts   model.AccountRepository
	passwords  model.PasswordManager
	authority  auth.CredentialAuthority
	dispatcher domain.EventDispatcher
}

func (s *accountService) RegisterOperator(email, name, password string) (*model.Account, error) {
	return s.register(email, name, "", password, model.RoleOperator)
}

func (s *accountService) CreateShopper(email, name, phone, password string) (*model.Account, error) {
	return s.register(email, name, phone, password, model.RoleShopper)
}

func (s *accountService) register(email, name, phone, password string, role model.Role) (*model.Account, error) {
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if _, err := s.accounts.FindByEmail(email); err == nil {
		return nil, model.ErrEmailTaken
	}

	hashedPassword, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}
	accountID, err := s.accounts.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &model.Account{
		ID:             accountID,
		Email:          email,
		HashedPassword: hashedPassword,
		Name:           name,
		Phone:          phone,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.accounts.Create(account); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.AccountRegistered{AccountID: accountID, Email: email, Role: role})
	return account, nil
}

func (s *accountService) ListShoppers() ([]*model.Account, error) {
	return s.accounts.ListByRole(model.RoleShopper)
}

func (s *accountService) Login(email, password string) (string, error) {
	account, err := s.accounts.FindByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	ok, err := s.passwords.Check(account.HashedPassword, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	return s.authority.Issue(account.ID, account.Role)
}
