package attendance

import (
	"context"

	"github.com/projetos-logistica/Cadastro-HC/internal/grid"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/attendance"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/timesheet"
)

type Timesheet interface {
	Load(ctx context.Context, q timesheet.Query) (grid.Table, error)
	Save(ctx context.Context, request timesheet.SaveRequest) (attendance.SaveResult, error)
}
