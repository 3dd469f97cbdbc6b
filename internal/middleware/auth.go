package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/auth"
)

// Authenticate validates the bearer token and, when roles are given, that the
// session holds one of them. Download links opened by a browser may pass the
// token as the "token" query parameter instead.
func Authenticate(a *auth.Auth, role ...string) web.Middleware {
	m := func(handler web.Handler) web.Handler {

		h := func(c *web.Context) error {

			// Expecting: Bearer <token>
			token := ""
			if authStr := c.Request.Header.Get("authorization"); authStr != "" {
				parts := strings.Split(authStr, " ")
				if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
					err := errors.New("expected authorization header format: Bearer <token>")
					return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
				}
				token = parts[1]
			} else {
				token = c.Query("token")
			}

			if token == "" {
				err := errors.New("missing authorization token")
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			claims, err := a.ValidateToken(c.Ctx, token)
			if err != nil {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			if ok := claims.Authorized(role...); !ok && (len(role) > 0) {
				return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden))
			}

			c.Ctx = context.WithValue(c.Ctx, auth.Key, claims)

			return handler(c)
		}

		return h
	}

	return m
}
