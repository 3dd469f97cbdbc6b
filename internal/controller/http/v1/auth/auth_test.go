package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/auth"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/middleware"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/config"
)

type leaderStub struct {
	calls []string
}

func (l *leaderStub) GetOrCreate(_ context.Context, name, sector, shift string) (entity.Leader, error) {
	l.calls = append(l.calls, name+"|"+sector+"|"+shift)
	return entity.Leader{ID: 7, Name: name, Sector: sector, Shift: shift}, nil
}

type revoked struct{ ids map[string]bool }

func (r *revoked) Revoke(_ context.Context, id string, _ time.Time) error {
	r.ids[id] = true
	return nil
}

func (r *revoked) IsRevoked(_ context.Context, id string) (bool, error) {
	return r.ids[id], nil
}

type tokenData struct {
	AccessToken string      `json:"access_token"`
	Session     auth.Claims `json:"session"`
}

type response struct {
	Status bool            `json:"status"`
	Error  string          `json:"error"`
	Raw    json.RawMessage `json:"data"`
	Data   tokenData       `json:"-"`
}

func setup(t *testing.T) (*web.App, *leaderStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.New("secret", time.Hour, &revoked{ids: map[string]bool{}})
	require.NoError(t, err)
	gate := auth.NewGate(config.Access{
		AllowedEmails: []string{"lider@empresa.com", "chefe@empresa.com"},
		AdminEmails:   []string{"chefe@empresa.com"},
	})
	leader := &leaderStub{}

	uc := NewController(gate, tokens, leader)
	app := web.NewApp(zerolog.Nop())
	app.Post("/api/v1/sign-in", uc.SignIn)
	app.Post("/api/v1/sign-out", uc.SignOut, middleware.Authenticate(tokens))
	app.Post("/api/v1/leader/sign-in", uc.LeaderSignIn, middleware.Authenticate(tokens))

	return app, leader
}

func post(t *testing.T, app http.Handler, path, token, body string) (int, response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	var res response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	if len(res.Raw) > 0 && res.Raw[0] == '{' {
		require.NoError(t, json.Unmarshal(res.Raw, &res.Data))
	}
	return w.Code, res
}

func TestSignInFlow(t *testing.T) {
	app, leader := setup(t)

	code, res := post(t, app, "/api/v1/sign-in", "", `{"email":" Lider@Empresa.com "}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, auth.RoleLeader, res.Data.Session.Role)
	token := res.Data.AccessToken

	code, res = post(t, app, "/api/v1/leader/sign-in", token, `{"name":"Maria","sector":"Recebimento","shift":"2º"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"Maria|Receiving|2°"}, leader.calls)
	assert.Equal(t, 7, res.Data.Session.LeaderID)
	assert.Equal(t, "Receiving", res.Data.Session.Sector)

	code, _ = post(t, app, "/api/v1/sign-out", token, "")
	assert.Equal(t, http.StatusUnauthorized, code, "leader sign-in replaced the first token")

	leaderToken := res.Data.AccessToken
	code, _ = post(t, app, "/api/v1/sign-out", leaderToken, "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = post(t, app, "/api/v1/sign-out", leaderToken, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSignInRejected(t *testing.T) {
	app, _ := setup(t)

	code, res := post(t, app, "/api/v1/sign-in", "", `{"email":"intruso@empresa.com"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, res.Status)
	assert.Contains(t, res.Error, "not authorized")

	code, _ = post(t, app, "/api/v1/sign-in", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLeaderSignInUnknownSector(t *testing.T) {
	app, leader := setup(t)

	_, res := post(t, app, "/api/v1/sign-in", "", `{"email":"chefe@empresa.com"}`)
	assert.Equal(t, auth.RoleAdmin, res.Data.Session.Role)

	code, _ := post(t, app, "/api/v1/leader/sign-in", res.Data.AccessToken, `{"name":"Maria","sector":"Marte"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Empty(t, leader.calls)
}

func TestSignOutRevokesToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &revoked{ids: map[string]bool{}}
	tokens, err := auth.New("secret", time.Hour, store)
	require.NoError(t, err)

	uc := NewController(auth.NewGate(config.Access{AllowedEmails: []string{"lider@empresa.com"}}), tokens, &leaderStub{})
	app := web.NewApp(zerolog.Nop())
	app.Post("/api/v1/sign-in", uc.SignIn)
	app.Post("/api/v1/sign-out", uc.SignOut, middleware.Authenticate(tokens))

	_, res := post(t, app, "/api/v1/sign-in", "", `{"email":"lider@empresa.com"}`)
	token := res.Data.AccessToken
	_, err = tokens.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	code, _ := post(t, app, "/api/v1/sign-out", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, store.ids, 1)

	_, err = tokens.ValidateToken(context.Background(), token)
	assert.Error(t, err)
}
