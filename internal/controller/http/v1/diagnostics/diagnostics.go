package diagnostics

import (
	"context"
	"net/http"
	"time"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
)

const pingTimeout = 5 * time.Second

type Controller struct {
	db Database
}

func NewController(db Database) *Controller {
	return &Controller{db: db}
}

func (uc Controller) GetConfig(c *web.Context) error {
	return c.Respond(map[string]interface{}{
		"data":   uc.db.Describe(),
		"status": true,
	}, http.StatusOK)
}

// Ping opens a round trip to the store. The driver message is returned to the
// admin as is so that connection problems can be diagnosed from the browser.
func (uc Controller) Ping(c *web.Context) error {
	ctx, cancel := context.WithTimeout(c.Ctx, pingTimeout)
	defer cancel()

	started := time.Now()
	if err := uc.db.Ping(ctx); err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusServiceUnavailable))
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"message":    "connection ok",
			"latency_ms": time.Since(started).Milliseconds(),
		},
		"status": true,
	}, http.StatusOK)
}
