// Package auth issues and validates session tokens and gates sign-in with
// configured allow-lists.
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
)

const (
	RoleAdmin  = "ADMIN"
	RoleLeader = "LEADER"
)

type ctxKey int

// Key is used to store/retrieve a Claims value from a context.Context.
const Key ctxKey = 1

// Claims is the per-session context: who signed in and, once the leader step
// is done, who fills the grid and for which sector and shift.
type Claims struct {
	jwt.StandardClaims
	Email      string `json:"email"`
	Role       string `json:"role"`
	LeaderID   int    `json:"leader_id,omitempty"`
	LeaderName string `json:"leader_name,omitempty"`
	Sector     string `json:"sector,omitempty"`
	Shift      string `json:"shift,omitempty"`
}

// Authorized returns true if the claims has at least one of the provided
// roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, has := range roles {
		if has == c.Role {
			return true
		}
	}
	return false
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Revoker remembers signed-out token ids until they expire.
type Revoker interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// NopRevoker is used when no revocation store is configured. Sign-out then
// only discards the token on the client.
type NopRevoker struct{}

func (NopRevoker) Revoke(context.Context, string, time.Time) error { return nil }

func (NopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type Auth struct {
	key     []byte
	ttl     time.Duration
	method  jwt.SigningMethod
	parser  *jwt.Parser
	revoker Revoker
}

func New(key string, ttl time.Duration, revoker Revoker) (*Auth, error) {
	if key == "" {
		return nil, errors.New("jwt key is required")
	}
	if revoker == nil {
		revoker = NopRevoker{}
	}

	return &Auth{
		key:     []byte(key),
		ttl:     ttl,
		method:  jwt.SigningMethodHS256,
		parser:  &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Name}},
		revoker: revoker,
	}, nil
}

// GenerateToken signs claims with a fresh id and expiry and returns the
// token together with the claims as signed.
func (a *Auth) GenerateToken(claims Claims) (string, Claims, error) {
	now := time.Now().UTC()
	claims.Id = uuid.NewString()
	claims.Subject = claims.Email
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(a.ttl).Unix()

	token := jwt.NewWithClaims(a.method, claims)
	str, err := token.SignedString(a.key)
	if err != nil {
		return "", Claims{}, errors.Wrap(err, "signing token")
	}

	return str, claims, nil
}

// ValidateToken parses tokenStr, checks its signature and expiry and that it
// was not revoked.
func (a *Auth) ValidateToken(ctx context.Context, tokenStr string) (Claims, error) {
	var claims Claims

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return a.key, nil
	}

	token, err := a.parser.ParseWithClaims(tokenStr, &claims, keyFunc)
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	revoked, err := a.revoker.IsRevoked(ctx, claims.Id)
	if err != nil {
		return Claims{}, errors.Wrap(err, "checking token revocation")
	}
	if revoked {
		return Claims{}, errors.New("token has been revoked")
	}

	return claims, nil
}

// Revoke invalidates the token identified by claims until it expires.
func (a *Auth) Revoke(ctx context.Context, claims Claims) error {
	if err := a.revoker.Revoke(ctx, claims.Id, time.Unix(claims.ExpiresAt, 0)); err != nil {
		return errors.Wrap(err, "revoking token")
	}
	return nil
}

// GetClaims returns the claims stored by the authentication middleware.
func GetClaims(ctx context.Context) (Claims, error) {
	claims, ok := ctx.Value(Key).(Claims)
	if !ok {
		return Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}
	return claims, nil
}
