package meta

import (
	"net/http"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/export"
)

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}

// GetOptions lists the fixed values a client offers in its selectors.
func (uc Controller) GetOptions(c *web.Context) error {
	codes := make(map[string]string, len(entity.Statuses))
	for _, s := range entity.Statuses {
		if s != "" {
			codes[s] = export.StatusCode(s)
		}
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"sectors":      entity.Sectors,
			"shifts":       entity.Shifts,
			"statuses":     entity.Statuses,
			"status_codes": codes,
		},
		"status": true,
	}, http.StatusOK)
}
