package diagnostics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/repository/sqldb/dbtest"
)

type brokenDB struct{}

func (brokenDB) Describe() map[string]string {
	return map[string]string{"driver": "sqlserver", "password": "****** (6 chars)"}
}

func (brokenDB) Ping(context.Context) error {
	return errors.New("connecting to sqlserver: login failed for user 'sa'")
}

func newApp(db Database) *web.App {
	gin.SetMode(gin.TestMode)
	uc := NewController(db)

	app := web.NewApp(zerolog.Nop())
	app.Get("/config", uc.GetConfig)
	app.Post("/ping", uc.Ping)
	return app
}

func do(app http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestPing(t *testing.T) {
	app := newApp(dbtest.New(t))

	w := do(app, http.MethodPost, "/ping")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "connection ok")
}

func TestPingFailure(t *testing.T) {
	app := newApp(brokenDB{})

	w := do(app, http.MethodPost, "/ping")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "login failed")
}

func TestGetConfig(t *testing.T) {
	app := newApp(brokenDB{})

	w := do(app, http.MethodGet, "/config")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"driver":"sqlserver"`)
	assert.NotContains(t, w.Body.String(), "secret")
}
