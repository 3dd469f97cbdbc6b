package leader

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/repository/sqldb"
)

type Repository struct {
	*sqldb.Database
}

func NewRepository(database *sqldb.Database) *Repository {
	return &Repository{Database: database}
}

// GetOrCreate returns the leader registered under (name, sector, shift),
// creating it on first sign-in. Existing leaders are never modified.
func (r Repository) GetOrCreate(ctx context.Context, name, sector, shift string) (entity.Leader, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Leader{}, web.NewRequestError(errors.New("leader name is required"), http.StatusBadRequest)
	}

	var detail entity.Leader
	err := r.NewSelect().
		Model(&detail).
		Where("name = ?", name).
		Where("sector = ?", sector).
		Where("shift = ?", shift).
		OrderExpr("id ASC").
		Scan(ctx)
	if err == nil {
		return detail, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return entity.Leader{}, web.NewRequestError(errors.Wrap(err, "selecting leader"), http.StatusInternalServerError)
	}

	detail = entity.Leader{
		Name:      name,
		Sector:    sector,
		Shift:     shift,
		CreatedAt: time.Now().UTC(),
	}
	if _, err = r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		return entity.Leader{}, web.NewRequestError(errors.Wrap(err, "creating leader"), http.StatusInternalServerError)
	}

	return detail, nil
}
