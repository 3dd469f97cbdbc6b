package employee

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/repository/sqldb"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db"
)

type Repository struct {
	*sqldb.Database
}

func NewRepository(database *sqldb.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) List(ctx context.Context, filter Filter) ([]entity.Employee, error) {
	list := make([]entity.Employee, 0)

	q := r.NewSelect().Model(&list)
	if filter.Sector != "" {
		q = q.Where("sector = ?", filter.Sector)
	}
	if filter.Shift != "" {
		q = q.Where("shift = ?", filter.Shift)
	}
	if filter.ActiveOnly {
		q = q.Where("active = ?", true)
	}

	if err := q.OrderExpr("name ASC, id ASC").Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting employees"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Employee, error) {
	var detail entity.Employee

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Employee{}, web.NewRequestError(db.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Employee{}, web.NewRequestError(errors.Wrap(err, "selecting employee"), http.StatusInternalServerError)
	}

	return detail, nil
}

// UpsertShift sets the shift of the employee named name in sector and
// reactivates it, inserting a new active employee when there is none.
func (r Repository) UpsertShift(ctx context.Context, name, sector, shift string) (entity.Employee, error) {
	var detail entity.Employee

	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		detail, err = upsertShift(ctx, tx, RosterRow{Name: name, Sector: sector, Shift: shift})
		return err
	})
	if err != nil {
		return entity.Employee{}, err
	}

	return detail, nil
}

// UpsertShifts applies UpsertShift to every row in one transaction and
// returns the number of rows applied.
func (r Repository) UpsertShifts(ctx context.Context, rows []RosterRow) (int, error) {
	count := 0

	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, row := range rows {
			if _, err := upsertShift(ctx, tx, row); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func upsertShift(ctx context.Context, tx bun.IDB, row RosterRow) (entity.Employee, error) {
	name := strings.TrimSpace(row.Name)
	sector := strings.TrimSpace(row.Sector)
	if name == "" || sector == "" {
		return entity.Employee{}, web.NewRequestError(errors.New("employee name and sector are required"), http.StatusBadRequest)
	}
	shift := entity.NormalizeShift(row.Shift)

	var detail entity.Employee
	err := tx.NewSelect().
		Model(&detail).
		Where("name = ?", name).
		Where("sector = ?", sector).
		OrderExpr("id ASC").
		Scan(ctx)

	switch {
	case err == nil:
		detail.Shift = shift
		detail.Active = true
		if _, err = tx.NewUpdate().
			Model(&detail).
			Column("shift", "active").
			WherePK().
			Exec(ctx); err != nil {
			return entity.Employee{}, web.NewRequestError(errors.Wrap(err, "updating employee shift"), http.StatusInternalServerError)
		}
		return detail, nil

	case errors.Is(err, sql.ErrNoRows):
		detail = entity.Employee{
			Name:      name,
			Sector:    sector,
			Shift:     shift,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		}
		if _, err = tx.NewInsert().Model(&detail).Exec(ctx); err != nil {
			return entity.Employee{}, web.NewRequestError(errors.Wrap(err, "creating employee"), http.StatusInternalServerError)
		}
		return detail, nil

	default:
		return entity.Employee{}, web.NewRequestError(errors.Wrap(err, "selecting employee"), http.StatusInternalServerError)
	}
}

// Create always inserts a new active employee.
func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.Employee, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return entity.Employee{}, web.NewRequestError(errors.New("employee name is required"), http.StatusBadRequest)
	}

	detail := entity.Employee{
		Name:      name,
		Sector:    request.Sector,
		Shift:     entity.NormalizeShift(request.Shift),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		return entity.Employee{}, web.NewRequestError(errors.Wrap(err, "creating employee"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) UpdateShift(ctx context.Context, request UpdateShiftRequest) error {
	res, err := r.NewUpdate().
		Model((*entity.Employee)(nil)).
		Set("shift = ?", entity.NormalizeShift(request.Shift)).
		Where("id = ?", request.ID).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating employee shift"), http.StatusInternalServerError)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return web.NewRequestError(db.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// UpdateShifts applies a bulk shift edit in one transaction. Only employees
// whose shift actually changes are counted.
func (r Repository) UpdateShifts(ctx context.Context, changes []ShiftChange) (int, error) {
	changed := 0

	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, change := range changes {
			shift := entity.NormalizeShift(change.Shift)

			res, err := tx.NewUpdate().
				Model((*entity.Employee)(nil)).
				Set("shift = ?", shift).
				Where("id = ?", change.ID).
				Where("shift <> ?", shift).
				Exec(ctx)
			if err != nil {
				return web.NewRequestError(errors.Wrap(err, "updating employee shift"), http.StatusInternalServerError)
			}

			n, err := res.RowsAffected()
			if err != nil {
				return web.NewRequestError(errors.Wrap(err, "counting updated employees"), http.StatusInternalServerError)
			}
			changed += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return changed, nil
}

// SetActiveFlags deactivates then activates, so an id present in both lists
// ends up active.
func (r Repository) SetActiveFlags(ctx context.Context, deactivate, activate []int) error {
	return r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if len(deactivate) > 0 {
			if _, err := tx.NewUpdate().
				Model((*entity.Employee)(nil)).
				Set("active = ?", false).
				Where("id IN (?)", bun.In(deactivate)).
				Exec(ctx); err != nil {
				return web.NewRequestError(errors.Wrap(err, "deactivating employees"), http.StatusInternalServerError)
			}
		}

		if len(activate) > 0 {
			if _, err := tx.NewUpdate().
				Model((*entity.Employee)(nil)).
				Set("active = ?", true).
				Where("id IN (?)", bun.In(activate)).
				Exec(ctx); err != nil {
				return web.NewRequestError(errors.Wrap(err, "activating employees"), http.StatusInternalServerError)
			}
		}

		return nil
	})
}

// Seed adds every (name, sector, shift) of lists that does not exist yet and
// returns how many were added. Existing employees are left untouched.
func (r Repository) Seed(ctx context.Context, lists map[string][]string, shift string) (int, error) {
	shift = entity.NormalizeShift(shift)
	added := 0

	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for sector, names := range lists {
			for _, name := range names {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}

				count, err := tx.NewSelect().
					Model((*entity.Employee)(nil)).
					Where("name = ?", name).
					Where("sector = ?", sector).
					Where("shift = ?", shift).
					Count(ctx)
				if err != nil {
					return web.NewRequestError(errors.Wrap(err, "checking employee"), http.StatusInternalServerError)
				}
				if count > 0 {
					continue
				}

				detail := entity.Employee{
					Name:      name,
					Sector:    sector,
					Shift:     shift,
					Active:    true,
					CreatedAt: time.Now().UTC(),
				}
				if _, err = tx.NewInsert().Model(&detail).Exec(ctx); err != nil {
					return web.NewRequestError(errors.Wrap(err, "seeding employee"), http.StatusInternalServerError)
				}
				added++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return added, nil
}
