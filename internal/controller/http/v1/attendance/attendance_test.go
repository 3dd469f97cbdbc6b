package attendance

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
	"github.com/projetos-logistica/Cadastro-HC/internal/grid"
	"github.com/projetos-logistica/Cadastro-HC/internal/middleware"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/attendance"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/timesheet"
)

type timesheetStub struct {
	query timesheet.Query
	saved timesheet.SaveRequest
}

func (s *timesheetStub) Load(_ context.Context, q timesheet.Query) (grid.Table, error) {
	s.query = q
	return grid.Table{Columns: []string{grid.ColumnEmployee}, Rows: []grid.Row{{grid.ColumnEmployee: "Ana"}}}, nil
}

func (s *timesheetStub) Save(_ context.Context, request timesheet.SaveRequest) (attendance.SaveResult, error) {
	s.saved = request
	return attendance.SaveResult{Inserted: 2}, nil
}

func setup(t *testing.T) (*web.App, *timesheetStub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a, err := auth.New("secret", time.Hour, nil)
	require.NoError(t, err)
	token, _, err := a.GenerateToken(auth.Claims{
		Email: "l@x.com", Role: auth.RoleLeader, LeaderName: "Maria", Sector: "Receiving", Shift: "1°",
	})
	require.NoError(t, err)

	stub := &timesheetStub{}
	uc := NewController(stub, func() time.Time { return time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC) })

	app := web.NewApp(zerolog.Nop())
	app.Get("/grid", uc.GetGrid, middleware.Authenticate(a))
	app.Post("/grid", uc.SaveGrid, middleware.Authenticate(a))

	return app, stub, token
}

func call(app http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestGetGridDefaultsToSession(t *testing.T) {
	app, stub, token := setup(t)

	w := call(app, http.MethodGet, "/grid", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Receiving", stub.query.Sector)
	assert.Equal(t, "1°", stub.query.Shift)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), stub.query.Range.Start)
	assert.Contains(t, w.Body.String(), `"Ana"`)
}

func TestGetGridFilters(t *testing.T) {
	app, stub, token := setup(t)

	w := call(app, http.MethodGet, "/grid?sector=Expedi%C3%A7%C3%A3o&shift=all&date=2024-03-18", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Shipping", stub.query.Sector)
	assert.Equal(t, "", stub.query.Shift)
	assert.Equal(t, stub.query.Range.Start, stub.query.Range.End)

	w = call(app, http.MethodGet, "/grid?start=2024-03-20&end=2024-03-01", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveGrid(t *testing.T) {
	app, stub, token := setup(t)

	body := `{"sector":"Receiving","shift":"all","table":{"columns":["employee","2024-03-16"],"rows":[{"employee":"Ana","2024-03-16":"PRESENT"}]}}`
	w := call(app, http.MethodPost, "/grid", token, body)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Maria", stub.saved.LeaderName, "leader name defaults to the session")
	assert.Equal(t, "", stub.saved.Shift)
	assert.Equal(t, "PRESENT", stub.saved.Table.Rows[0]["2024-03-16"])

	var res struct {
		Data attendance.SaveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Data.Inserted)
}
