// Package dbtest opens a migrated in-memory SQLite database for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/projetos-logistica/Cadastro-HC/internal/commands"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/config"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/repository/sqldb"
)

// New returns a fresh database private to t. It is closed on cleanup.
func New(t *testing.T) *sqldb.Database {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", sqldb.SQLiteDSN("file:"+uuid.NewString()+"?mode=memory&cache=shared"))
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := sqldb.New(bun.NewDB(sqlDB, sqlitedialect.New()), config.DriverSQLite)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, commands.MigrateUP(context.Background(), db, zerolog.Nop()))

	return db
}
