package employee

import (
	"context"

	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/employee"
)

type Employee interface {
	List(ctx context.Context, filter employee.Filter) ([]entity.Employee, error)
	Create(ctx context.Context, request employee.CreateRequest) (entity.Employee, error)
	UpsertShift(ctx context.Context, name, sector, shift string) (entity.Employee, error)
	UpdateShift(ctx context.Context, request employee.UpdateShiftRequest) error
	UpdateShifts(ctx context.Context, changes []employee.ShiftChange) (int, error)
	SetActiveFlags(ctx context.Context, deactivate, activate []int) error
	Seed(ctx context.Context, lists map[string][]string, shift string) (int, error)
}
