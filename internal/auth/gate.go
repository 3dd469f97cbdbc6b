package auth

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/config"
)

var ErrNotAuthorized = errors.New("email not authorized")

// Gate admits the emails of an injected allow-list. Admins are a subset.
type Gate struct {
	allowed   map[string]bool
	admins    map[string]bool
	passwords map[string]string
}

func NewGate(access config.Access) *Gate {
	g := &Gate{
		allowed:   make(map[string]bool, len(access.AllowedEmails)),
		admins:    make(map[string]bool, len(access.AdminEmails)),
		passwords: make(map[string]string, len(access.Passwords)),
	}
	for _, e := range access.AllowedEmails {
		g.allowed[normalizeEmail(e)] = true
	}
	for _, e := range access.AdminEmails {
		g.admins[normalizeEmail(e)] = true
	}
	for e, hash := range access.Passwords {
		g.passwords[normalizeEmail(e)] = hash
	}
	return g
}

// SignIn checks email against the allow-list. A password is only required
// for emails that have a bcrypt hash configured.
func (g *Gate) SignIn(email, password string) (Claims, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Claims{}, web.NewRequestError(errors.New("email is required"), http.StatusBadRequest)
	}

	if !g.allowed[email] {
		return Claims{}, web.NewRequestError(ErrNotAuthorized, http.StatusUnauthorized)
	}

	if hash, ok := g.passwords[email]; ok && hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			return Claims{}, web.NewRequestError(errors.Wrap(ErrNotAuthorized, "wrong password"), http.StatusUnauthorized)
		}
	}

	role := RoleLeader
	if g.admins[email] {
		role = RoleAdmin
	}

	return Claims{Email: email, Role: role}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
