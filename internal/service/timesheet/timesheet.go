// Package timesheet loads and saves the employee-by-day attendance grid of a
// sector and shift.
package timesheet

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/grid"
	"github.com/projetos-logistica/Cadastro-HC/internal/period"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/attendance"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/employee"
)

type EmployeeStore interface {
	List(ctx context.Context, filter employee.Filter) ([]entity.Employee, error)
}

type AttendanceStore interface {
	Load(ctx context.Context, employeeIDs []int, start, end string) (map[attendance.Key]string, error)
	Save(ctx context.Context, entries []attendance.Entry, params attendance.SaveParams) (attendance.SaveResult, error)
}

// Query selects the rows (sector, shift) and columns (days) of a grid.
// Empty Sector or Shift means all.
type Query struct {
	Sector string
	Shift  string
	Range  period.Period
}

type SaveRequest struct {
	Sector     string     `json:"sector"`
	Shift      string     `json:"shift"`
	LeaderName string     `json:"leader_name"`
	Table      grid.Table `json:"table"`
}

type Service struct {
	employees  EmployeeStore
	attendance AttendanceStore
	log        zerolog.Logger
}

func NewService(employees EmployeeStore, attendance AttendanceStore, log zerolog.Logger) *Service {
	return &Service{employees: employees, attendance: attendance, log: log}
}

// Load returns the grid of the active employees matching q, with stored
// statuses filled in.
func (s *Service) Load(ctx context.Context, q Query) (grid.Table, error) {
	list, err := s.employees.List(ctx, employee.Filter{Sector: q.Sector, Shift: q.Shift, ActiveOnly: true})
	if err != nil {
		return grid.Table{}, err
	}

	ids := make([]int, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}

	statuses, err := s.attendance.Load(ctx, ids, period.ISO(q.Range.Start), period.ISO(q.Range.End))
	if err != nil {
		return grid.Table{}, err
	}

	return grid.Build(list, q.Range.Dates(), statuses), nil
}

// Save un-pivots an edited grid and stores it. Rows are matched on employee
// name and sector; rows naming an unknown employee are skipped.
func (s *Service) Save(ctx context.Context, request SaveRequest) (attendance.SaveResult, error) {
	list, err := s.employees.List(ctx, employee.Filter{Sector: request.Sector})
	if err != nil {
		return attendance.SaveResult{}, err
	}

	cells := grid.Unpivot(request.Table)
	entries, err := grid.Resolve(cells, grid.NewIndex(list))
	if err != nil {
		return attendance.SaveResult{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	if skipped := len(cells) - len(entries); skipped > 0 {
		s.log.Debug().Int("cells", skipped).Msg("grid cells for unknown employees skipped")
	}

	result, err := s.attendance.Save(ctx, entries, attendance.SaveParams{
		Sector:     request.Sector,
		Shift:      request.Shift,
		LeaderName: request.LeaderName,
	})
	if err != nil {
		return attendance.SaveResult{}, err
	}

	s.log.Info().
		Str("sector", request.Sector).
		Str("shift", request.Shift).
		Str("leader", request.LeaderName).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("deleted", result.Deleted).
		Msg("attendance saved")

	return result, nil
}

// Range resolves the days a request asks for: a single date, an explicit
// start..end, the period enclosing start, or the period enclosing today.
func Range(date, start, end *string, today time.Time) (period.Period, error) {
	parse := func(name string, v *string) (time.Time, error) {
		d, err := period.ParseISO(*v)
		if err != nil {
			return time.Time{}, web.NewRequestError(errors.Wrapf(err, "%s: expected yyyy-mm-dd", name), http.StatusBadRequest)
		}
		return d, nil
	}

	switch {
	case date != nil:
		d, err := parse("date", date)
		if err != nil {
			return period.Period{}, err
		}
		return period.Period{Label: period.ISO(d), Start: d, End: d}, nil

	case start != nil && end != nil:
		s, err := parse("start", start)
		if err != nil {
			return period.Period{}, err
		}
		e, err := parse("end", end)
		if err != nil {
			return period.Period{}, err
		}
		if e.Before(s) {
			return period.Period{}, web.NewRequestError(errors.New("end is before start"), http.StatusBadRequest)
		}
		return period.Period{Label: period.Label(s, e), Start: s, End: e}, nil

	case start != nil:
		s, err := parse("start", start)
		if err != nil {
			return period.Period{}, err
		}
		return period.Of(s), nil

	default:
		return period.Of(today), nil
	}
}
