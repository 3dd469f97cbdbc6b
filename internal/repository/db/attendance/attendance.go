package attendance

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
)

// NoShift is stored when neither the save nor the employee names a shift.
const NoShift = "-"

type Repository struct {
	*sqldb.Database
}

func NewRepository(database *sqldb.Database) *Repository {
	return &Repository{Database: database}
}

// Load returns the stored statuses of employeeIDs between start and end
// inclusive. Days without a row are absent from the map.
func (r Repository) Load(ctx context.Context, employeeIDs []int, start, end string) (map[Key]string, error) {
	statuses := make(map[Key]string)
	if len(employeeIDs) == 0 {
		return statuses, nil
	}

	var list []entity.Attendance
	err := r.NewSelect().
		Model(&list).
		Column("colaborador_id", "date", "status").
		Where("colaborador_id IN (?)", bun.In(employeeIDs)).
		Where("? >= ?", bun.Ident("date"), start).
		Where("? <= ?", bun.Ident("date"), end).
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	for _, a := range list {
		statuses[Key{EmployeeID: a.EmployeeID, Date: a.Date}] = a.Status
	}

	return statuses, nil
}

// Save writes a batch of cells in one transaction: an empty status deletes
// the day, anything else updates the existing row or inserts a new one.
func (r Repository) Save(ctx context.Context, entries []Entry, params SaveParams) (SaveResult, error) {
	var result SaveResult

	for _, e := range entries {
		if !entity.IsStatus(strings.TrimSpace(e.Status)) {
			return SaveResult{}, web.NewRequestError(errors.Errorf("unknown status %q", e.Status), http.StatusBadRequest)
		}
	}

	now := time.Now().UTC()

	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, e := range entries {
			status := strings.TrimSpace(e.Status)

			if status == "" {
				res, err := tx.NewDelete().
					Model((*entity.Attendance)(nil)).
					Where("colaborador_id = ?", e.EmployeeID).
					Where("? = ?", bun.Ident("date"), e.Date).
					Exec(ctx)
				if err != nil {
					return web.NewRequestError(errors.Wrap(err, "deleting attendance"), http.StatusInternalServerError)
				}
				if n, err := res.RowsAffected(); err == nil {
					result.Deleted += int(n)
				}
				continue
			}

			sector := params.Sector
			if sector == "" {
				sector = e.Sector
			}
			shift := params.Shift
			if shift == "" {
				shift = e.Shift
			}
			if shift == "" {
				shift = NoShift
			}

			var existing entity.Attendance
			err := tx.NewSelect().
				Model(&existing).
				Where("colaborador_id = ?", e.EmployeeID).
				Where("? = ?", bun.Ident("date"), e.Date).
				Scan(ctx)

			switch {
			case err == nil:
				existing.Status = status
				existing.Sector = sector
				existing.Shift = shift
				existing.LeaderName = params.LeaderName
				existing.UpdatedAt = now
				if _, err = tx.NewUpdate().
					Model(&existing).
					Column("status", "sector", "shift", "leader_name", "updated_at").
					WherePK().
					Exec(ctx); err != nil {
					return web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusInternalServerError)
				}
				result.Updated++

			case errors.Is(err, sql.ErrNoRows):
				row := entity.Attendance{
					EmployeeID: e.EmployeeID,
					Date:       e.Date,
					Status:     status,
					Sector:     sector,
					Shift:      shift,
					LeaderName: params.LeaderName,
					CreatedAt:  now,
					UpdatedAt:  now,
				}
				if _, err = tx.NewInsert().Model(&row).Exec(ctx); err != nil {
					return web.NewRequestError(errors.Wrap(err, "inserting attendance"), http.StatusInternalServerError)
				}
				result.Inserted++

			default:
				return web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
			}
		}
		return nil
	})
	if err != nil {
		return SaveResult{}, err
	}

	return result, nil
}

// Report lists stored facts with the employee name, ordered by sector,
// shift, name and date.
func (r Repository) Report(ctx context.Context, filter ReportFilter) ([]ReportRow, error) {
	list := make([]ReportRow, 0)

	q := r.NewSelect().
		TableExpr("presencas AS p").
		Join("JOIN colaboradores AS c ON c.id = p.colaborador_id").
		ColumnExpr("c.name AS colaborador").
		ColumnExpr("p.date AS date").
		ColumnExpr("p.status AS status").
		ColumnExpr("p.sector AS sector").
		ColumnExpr("p.shift AS shift").
		ColumnExpr("p.leader_name AS leader_name").
		Where("p.date >= ?", filter.Start).
		Where("p.date <= ?", filter.End)

	if filter.Sector != "" {
		q = q.Where("p.sector = ?", filter.Sector)
	}
	if filter.Shift != "" {
		q = q.Where("p.shift = ?", filter.Shift)
	}

	err := q.OrderExpr("p.sector ASC, p.shift ASC, c.name ASC, p.date ASC").Scan(ctx, &list)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance report"), http.StatusInternalServerError)
	}

	return list, nil
}
