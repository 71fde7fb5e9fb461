package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/mbrandeis/taskloom/internal/store"
)

const accountsCollection = "accounts"

// Claims carried by the access tokens this provider issues and verifies.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTProvider implements Provider with HS256 tokens and an account registry
// kept in the document store.
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
	st     store.Store
	log    *slog.Logger
}

// NewJWTProvider creates a provider signing and verifying with the given secret.
func NewJWTProvider(secret string, ttl time.Duration, st store.Store, log *slog.Logger) *JWTProvider {
	if log == nil {
		log = slog.Default()
	}
	return &JWTProvider{secret: []byte(secret), ttl: ttl, st: st, log: log}
}

func (p *JWTProvider) Verify(ctx context.Context, bearer string) (Identity, error) {
	tok, err := jwt.ParseWithClaims(bearer, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{SubjectID: claims.Subject, Email: claims.Email}, nil
}

func (p *JWTProvider) CreateToken(ctx context.Context, uid string) (string, error) {
	a, err := p.UserByID(ctx, uid)
	if err != nil {
		return "", err
	}
	if a == nil {
		return "", fmt.Errorf("no account for uid %s", uid)
	}
	claims := Claims{
		Email: a.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(p.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *JWTProvider) UserByID(ctx context.Context, uid string) (*Account, error) {
	raw, err := p.st.Get(ctx, accountsCollection, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		p.log.Error("reading account", "uid", uid, "error", err)
		return nil, nil
	}
	var a Account
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decoding account %s: %w", uid, err)
	}
	a.UID = uid
	return &a, nil
}

func (p *JWTProvider) UserByEmail(ctx context.Context, email string) (*Account, error) {
	docs, err := p.st.Find(ctx, accountsCollection, store.Where("email", store.OpEqual, email))
	if err != nil {
		return nil, fmt.Errorf("querying accounts by email: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var a Account
	if err := json.Unmarshal(docs[0].Data, &a); err != nil {
		return nil, fmt.Errorf("decoding account %s: %w", docs[0].ID, err)
	}
	a.UID = docs[0].ID
	return &a, nil
}

func (p *JWTProvider) Register(ctx context.Context, a Account) error {
	if a.UID == "" {
		return fmt.Errorf("account uid is required")
	}
	raw, err := json.Marshal(&a)
	if err != nil {
		return fmt.Errorf("encoding account: %w", err)
	}
	return p.st.Set(ctx, accountsCollection, a.UID, raw)
}

func (p *JWTProvider) DeleteAccount(ctx context.Context, uid string) error {
	return p.st.Delete(ctx, accountsCollection, uid)
}
