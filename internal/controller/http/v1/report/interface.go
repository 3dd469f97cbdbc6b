package report

import (
	"context"

	"github.com/projetos-logistica/Cadastro-HC/internal/grid"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/attendance"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/timesheet"
)

type Attendance interface {
	Report(ctx context.Context, filter attendance.ReportFilter) ([]attendance.ReportRow, error)
}

type Timesheet interface {
	Load(ctx context.Context, q timesheet.Query) (grid.Table, error)
}
