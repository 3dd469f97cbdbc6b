package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/auth"
)

func newApp(t *testing.T) (*web.App, *auth.Auth) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a, err := auth.New("secret", time.Hour, nil)
	require.NoError(t, err)

	app := web.NewApp(zerolog.Nop())
	app.Use(Logger(zerolog.Nop()))

	whoami := func(c *web.Context) error {
		claims, err := auth.GetClaims(c.Ctx)
		if err != nil {
			return c.RespondError(err)
		}
		return c.Respond(map[string]interface{}{"data": claims.Email, "status": true}, http.StatusOK)
	}
	app.Get("/any", whoami, Authenticate(a))
	app.Get("/admin", whoami, Authenticate(a, auth.RoleAdmin))

	return app, a
}

func do(app http.Handler, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	app, a := newApp(t)

	leader, _, err := a.GenerateToken(auth.Claims{Email: "l@x.com", Role: auth.RoleLeader})
	require.NoError(t, err)
	admin, _, err := a.GenerateToken(auth.Claims{Email: "a@x.com", Role: auth.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(app, "/any", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(app, "/any", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(app, "/any", "Bearer garbage").Code)

	w := do(app, "/any", "Bearer "+leader)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "l@x.com")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	assert.Equal(t, http.StatusForbidden, do(app, "/admin", "Bearer "+leader).Code)
	assert.Equal(t, http.StatusOK, do(app, "/admin", "Bearer "+admin).Code)

	assert.Equal(t, http.StatusOK, do(app, "/any?token="+leader, "").Code)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORS([]string{"http://localhost:3000"}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWithoutOriginsAllowsAny(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, origins := range [][]string{nil, {}, {" "}} {
		var engine *gin.Engine
		require.NotPanics(t, func() {
			engine = gin.New()
			engine.Use(CORS(origins))
		})
		engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://elsewhere.example.com")
		req.Header.Set("Access-Control-Request-Method", "GET")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), "origins %q", origins)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	}
}
