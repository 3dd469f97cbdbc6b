package roster

import (
	"context"
	"io"

	"github.com/projetos-logistica/Cadastro-HC/internal/service/roster"
)

type Importer interface {
	Import(ctx context.Context, filename string, r io.Reader, defaultSector string) (roster.Result, error)
}
