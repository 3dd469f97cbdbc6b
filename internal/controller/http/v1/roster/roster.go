package roster

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
)

// maxUpload bounds roster uploads.
const maxUpload = 10 << 20

type Controller struct {
	importer Importer
}

func NewController(importer Importer) *Controller {
	return &Controller{importer: importer}
}

// Import takes a multipart "file" and an optional "sector" used for rows that
// name no sector themselves.
func (uc Controller) Import(c *web.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUpload)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "reading file"), http.StatusBadRequest))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "opening file"), http.StatusBadRequest))
	}
	defer file.Close()

	result, err := uc.importer.Import(c.Ctx, fileHeader.Filename, file, c.PostForm("sector"))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   result,
		"status": true,
	}, http.StatusOK)
}
