package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email is already taken")
	ErrInvalidRole     = errors.New("unknown role")
)

type Role int

const (
	RoleOperator Role = iota
	RoleShopper
)

func ParseRole(s string) (Role, error) {
	switch s {
	case "operator":
		return RoleOperator, nil
	case "shopper":
		return RoleShopper, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleOperator:
		return "operator"
	case RoleShopper:
		return "shopper"
	default:
		return "unknown"
	}
}

type Account struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	Name           string
	Phone          string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type AccountRepository interface {
	NextID() (uuid.UUID, error)
	Create(account *Account) error
	Find(id uuid.UUID) (*Account, error)
	FindByEmail(email string) (*Account, error)
	ListByRole(role Role) ([]*Account, error)
	CountByRole(role Role) (int, error)
}

type PasswordManager interface {
	Hash(plainTextPassword string) (string, error)
	Check(hashedPassword, plainTextPassword string) (bool, error)
}
