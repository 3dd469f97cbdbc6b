package commands

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/repository/sqldb"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

// Scheme is one forward-only migration step. Steps are built with bun so the
// same list runs on SQL Server, PostgreSQL and SQLite.
type Scheme struct {
	Index       int
	Description string
	Up          func(ctx context.Context, db bun.IDB) error
}

// SchemaMigration records the last applied step. There is a single row, id 1.
type SchemaMigration struct {
	bun.BaseModel `bun:"table:schema_migrations"`

	ID      int     `bun:"id,pk"`
	Version int     `bun:"version,notnull"`
	Dirty   bool    `bun:"dirty,notnull"`
	Error   *string `bun:"error,type:varchar(1000)"`
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: leaders.",
		Up: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateTable().Model((*entity.Leader)(nil)).IfNotExists().Exec(ctx)
			return err
		},
	},
	{
		Index:       2,
		Description: "Create table: colaboradores.",
		Up: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateTable().Model((*entity.Employee)(nil)).IfNotExists().Exec(ctx)
			return err
		},
	},
	{
		Index:       3,
		Description: "Create table: presencas.",
		Up: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateTable().
				Model((*entity.Attendance)(nil)).
				IfNotExists().
				ForeignKey("(?) REFERENCES ? (?)", bun.Ident("colaborador_id"), bun.Ident("colaboradores"), bun.Ident("id")).
				Exec(ctx)
			return err
		},
	},
	{
		Index:       4,
		Description: "Create index: presencas(date).",
		Up: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateIndex().
				Model((*entity.Attendance)(nil)).
				Index("idx_presencas_date").
				Column("date").
				Exec(ctx)
			return err
		},
	},
	{
		Index:       5,
		Description: "Create index: colaboradores(sector, name).",
		Up: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewCreateIndex().
				Model((*entity.Employee)(nil)).
				Index("idx_colaboradores_sector_name").
				Column("sector", "name").
				Exec(ctx)
			return err
		},
	},
}

// Latest is the version a fully migrated database reports.
func Latest() int {
	return scheme[len(scheme)-1].Index
}

// MigrateUP applies every step above the recorded version. A step that failed
// on a previous run (dirty) is retried first.
func MigrateUP(ctx context.Context, db *sqldb.Database, log zerolog.Logger) error {
	state, err := loadState(ctx, db)
	if err != nil {
		return err
	}

	for _, s := range scheme {
		if s.Index < state.Version || (s.Index == state.Version && !state.Dirty) {
			continue
		}

		if err := apply(ctx, db, s); err != nil {
			msg := err.Error()
			if len(msg) > 1000 {
				msg = msg[:1000]
			}
			state.Version, state.Dirty, state.Error = s.Index, true, &msg
			if _, uerr := db.NewUpdate().Model(&state).WherePK().Exec(ctx); uerr != nil {
				return errors.Wrap(uerr, "recording migration error")
			}
			return errors.Wrapf(err, "migrate error version: %d", s.Index)
		}

		state.Version, state.Dirty, state.Error = s.Index, false, nil
		if _, err := db.NewUpdate().Model(&state).WherePK().Exec(ctx); err != nil {
			return errors.Wrap(err, "recording migration version")
		}

		log.Info().Int("version", s.Index).Str("step", s.Description).Msg("migrated")
	}

	return nil
}

func apply(ctx context.Context, db *sqldb.Database, s Scheme) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.Up(ctx, tx)
	})
}

func loadState(ctx context.Context, db *sqldb.Database) (SchemaMigration, error) {
	state := SchemaMigration{ID: 1}

	err := db.NewSelect().Model(&state).WherePK().Scan(ctx)
	switch {
	case err == nil:
		return state, nil
	case errors.Is(err, sql.ErrNoRows):
	default:
		// the bookkeeping table does not exist yet
		if _, err := db.NewCreateTable().Model((*SchemaMigration)(nil)).Exec(ctx); err != nil {
			return state, errors.Wrap(err, "creating schema_migrations")
		}
	}

	state = SchemaMigration{ID: 1}
	if _, err := db.NewInsert().Model(&state).Exec(ctx); err != nil {
		return state, errors.Wrap(err, "initialising schema_migrations")
	}

	return state, nil
}
