package period

import (
	"net/http"
	"reflect"
	"time"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/period"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/timesheet"
)

const defaultRecent = 12

type Controller struct {
	now func() time.Time
}

func NewController(now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{now: now}
}

func (uc Controller) GetCurrent(c *web.Context) error {
	d, _ := c.GetQueryFunc(reflect.String, "date").(*string)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	p, err := timesheet.Range(nil, d, nil, uc.now())
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"period": p,
			"dates":  isoDates(p),
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	n := defaultRecent
	if v, ok := c.GetQueryFunc(reflect.Int, "n").(*int); ok {
		n = *v
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   period.Recent(n, uc.now()),
		"status": true,
	}, http.StatusOK)
}

func isoDates(p period.Period) []string {
	dates := p.Dates()
	list := make([]string, 0, len(dates))
	for _, d := range dates {
		list = append(list, period.ISO(d))
	}
	return list
}
