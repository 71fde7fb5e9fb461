package testutil

import (
	"context"
	"sync"

	"github.com/mbrandeis/taskloom/internal/domain"
	"github.com/mbrandeis/taskloom/internal/identity"
)

// FakeIdentity is an in-memory identity.Provider for tests. Tokens are the
// literal string "token:<uid>".
type FakeIdentity struct {
	mu       sync.Mutex
	accounts map[string]identity.Account
}

func NewFakeIdentity() *FakeIdentity {
	return &FakeIdentity{accounts: make(map[string]identity.Account)}
}

// RegisterUser registers an account mirroring the given user fixture and
// returns its bearer token.
func (f *FakeIdentity) RegisterUser(u *domain.User) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[u.UID] = identity.Account{UID: u.UID, Email: u.Email, Name: u.Name}
	return "token:" + u.UID
}

func (f *FakeIdentity) Verify(ctx context.Context, bearer string) (identity.Identity, error) {
	const prefix = "token:"
	if len(bearer) <= len(prefix) || bearer[:len(prefix)] != prefix {
		return identity.Identity{}, identity.ErrInvalidToken
	}
	uid := bearer[len(prefix):]
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[uid]
	if !ok {
		return identity.Identity{}, identity.ErrInvalidToken
	}
	return identity.Identity{SubjectID: a.UID, Email: a.Email}, nil
}

func (f *FakeIdentity) UserByID(ctx context.Context, uid string) (*identity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[uid]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *FakeIdentity) UserByEmail(ctx context.Context, email string) (*identity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (f *FakeIdentity) CreateToken(ctx context.Context, uid string) (string, error) {
	return "token:" + uid, nil
}

func (f *FakeIdentity) Register(ctx context.Context, a identity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[a.UID] = a
	return nil
}

func (f *FakeIdentity) DeleteAccount(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, uid)
	return nil
}
