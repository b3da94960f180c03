// Package auth covers credential verification and role-gated access: signed
// identity tokens, password hashing and the gate every protected request
// passes through before business logic runs.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront/pkg/domain/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims is the verified content of an identity token: who the caller is and
// which role they hold.
type Claims struct {
	AccountID uuid.UUID
	Role      model.Role
}

type CredentialAuthority interface {
	Issue(accountID uuid.UUID, role model.Role) (string, error)
	Verify(token string) (Claims, error)
}

func NewCredentialAuthority(secret []byte, ttl time.Duration) CredentialAuthority {
	return &credentialAuthority{secret: secret, ttl: ttl}
}

type credentialAuthority struct {
	secret []byte
	ttl    time.Duration
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (a *credentialAuthority) Issue(accountID uuid.UUID, role model.Role) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *credentialAuthority) Verify(token string) (Claims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{AccountID: accountID, Role: role}, nil
}
