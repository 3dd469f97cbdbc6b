package employee

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/employee"
)

type Controller struct {
	employee Employee
}

func NewController(employee Employee) *Controller {
	return &Controller{employee}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter employee.Filter

	if sector, ok := c.GetQueryFunc(reflect.String, "sector").(*string); ok && !strings.EqualFold(*sector, "all") {
		filter.Sector = canonicalSector(*sector)
	}
	if shift, ok := c.GetQueryFunc(reflect.String, "shift").(*string); ok && !strings.EqualFold(*shift, "all") {
		filter.Shift = *shift
	}
	if activeOnly, ok := c.GetQueryFunc(reflect.Bool, "active_only").(*bool); ok {
		filter.ActiveOnly = *activeOnly
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.employee.List(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request employee.CreateRequest

	if err := c.BindFunc(&request, "Name", "Sector"); err != nil {
		return c.RespondError(err)
	}

	sector, err := requireSector(request.Sector)
	if err != nil {
		return c.RespondError(err)
	}
	request.Sector = sector

	response, err := uc.employee.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpsertShift(c *web.Context) error {
	var request employee.UpsertShiftRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	sector, err := requireSector(request.Sector)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.UpsertShift(c.Ctx, request.Name, sector, request.Shift)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateShift(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request employee.UpdateShiftRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	if err := uc.employee.UpdateShift(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateShifts(c *web.Context) error {
	var request employee.UpdateShiftsRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	changed, err := uc.employee.UpdateShifts(c.Ctx, request.Changes)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"changed": changed,
		},
		"status": true,
	}, http.StatusOK)
}

// SetActive applies deactivations before activations: an id sent in both
// lists ends up active.
func (uc Controller) SetActive(c *web.Context) error {
	var request employee.SetActiveRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	if err := uc.employee.SetActiveFlags(c.Ctx, request.Deactivate, request.Activate); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Seed(c *web.Context) error {
	var request employee.SeedRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	lists := make(map[string][]string, len(request.Lists))
	for sector, names := range request.Lists {
		canonical, err := requireSector(sector)
		if err != nil {
			return c.RespondError(err)
		}
		lists[canonical] = append(lists[canonical], names...)
	}

	added, err := uc.employee.Seed(c.Ctx, lists, request.Shift)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"added": added,
		},
		"status": true,
	}, http.StatusOK)
}

func canonicalSector(s string) string {
	if canonical, ok := entity.NormalizeSector(s); ok {
		return canonical
	}
	return strings.TrimSpace(s)
}

func requireSector(s string) (string, error) {
	canonical, ok := entity.NormalizeSector(s)
	if !ok {
		return "", web.NewRequestError(errors.Errorf("unknown sector %q", s), http.StatusBadRequest)
	}
	return canonical, nil
}
