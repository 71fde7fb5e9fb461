// Package identity abstracts the identity provider: it verifies bearer
// credentials and maps stable subject ids to account records.
package identity

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when a bearer token fails verification.
var ErrInvalidToken = errors.New("invalid bearer token")

// Identity is the verified subject of a request.
type Identity struct {
	SubjectID string
	Email     string
}

// Account is an identity-provider account record. It exists independently of
// the application's User document; signup requires one.
type Account struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// Provider is the identity-provider contract. UserByID/UserByEmail return
// (nil, nil) for a missing account.
type Provider interface {
	Verify(ctx context.Context, bearer string) (Identity, error)
	UserByID(ctx context.Context, uid string) (*Account, error)
	UserByEmail(ctx context.Context, email string) (*Account, error)
	CreateToken(ctx context.Context, uid string) (string, error)
	Register(ctx context.Context, a Account) error
	DeleteAccount(ctx context.Context, uid string) error
}
