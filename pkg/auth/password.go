package auth

import (
	"golang.org/x/crypto/bcrypt"

	"storefront/pkg/domain/model"
)

func NewPasswordManager() model.PasswordManager {
	return &bcryptPasswordManager{cost: bcrypt.DefaultCost}
}

type bcryptPasswordManager struct {
	cost int
}

func (m *bcryptPasswordManager) Hash(plainTextPassword string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), m.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (m *bcryptPasswordManager) Check(hashedPassword, plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainTextPassword))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, err
}
