package attendance

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/auth"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/timesheet"
)

type Controller struct {
	timesheet Timesheet
	now       func() time.Time
}

func NewController(timesheet Timesheet, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{timesheet: timesheet, now: now}
}

// GetGrid returns the grid of a sector and shift for one day (date) or a
// period (start, optionally end). Sector and shift default to the ones chosen
// at leader sign-in; "all" selects every sector or shift.
func (uc Controller) GetGrid(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var q timesheet.Query
	q.Sector = selection(c.GetQueryFunc(reflect.String, "sector"), claims.Sector)
	q.Shift = selection(c.GetQueryFunc(reflect.String, "shift"), claims.Shift)
	if canonical, ok := entity.NormalizeSector(q.Sector); ok {
		q.Sector = canonical
	}

	date, _ := c.GetQueryFunc(reflect.String, "date").(*string)
	start, _ := c.GetQueryFunc(reflect.String, "start").(*string)
	end, _ := c.GetQueryFunc(reflect.String, "end").(*string)

	if err = c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	if q.Range, err = timesheet.Range(date, start, end, uc.now()); err != nil {
		return c.RespondError(err)
	}

	table, err := uc.timesheet.Load(c.Ctx, q)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"period":   q.Range,
			"sector":   q.Sector,
			"shift":    q.Shift,
			"statuses": entity.Statuses,
			"table":    table,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) SaveGrid(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var request timesheet.SaveRequest

	if err = c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	if strings.EqualFold(request.Sector, "all") {
		request.Sector = ""
	}
	if strings.EqualFold(request.Shift, "all") {
		request.Shift = ""
	}
	if canonical, ok := entity.NormalizeSector(request.Sector); ok {
		request.Sector = canonical
	}
	if request.LeaderName == "" {
		request.LeaderName = claims.LeaderName
	}

	result, err := uc.timesheet.Save(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   result,
		"status": true,
	}, http.StatusOK)
}

// selection resolves a sector or shift filter: absent falls back to the
// session value, "all" clears it.
func selection(v interface{}, fallback string) string {
	s, ok := v.(*string)
	if !ok {
		return fallback
	}
	if strings.EqualFold(*s, "all") {
		return ""
	}
	return *s
}
