package sqldb

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/config"
)

func TestSQLServerDSN(t *testing.T) {
	dsn := SQLServerDSN(config.DB{
		Host:                   "db.local",
		Port:                   1433,
		User:                   "app",
		Password:               "p@ss;word",
		Name:                   "DbLogistica",
		Encrypt:                true,
		TrustServerCertificate: true,
		ConnectTimeout:         5 * time.Second,
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "sqlserver", u.Scheme)
	assert.Equal(t, "db.local:1433", u.Host)

	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss;word", pw)

	q := u.Query()
	assert.Equal(t, "DbLogistica", q.Get("database"))
	assert.Equal(t, "true", q.Get("encrypt"))
	assert.Equal(t, "true", q.Get("TrustServerCertificate"))
	assert.Equal(t, "5", q.Get("connection timeout"))
}

func TestSQLServerDSNWithoutEncryption(t *testing.T) {
	u, err := url.Parse(SQLServerDSN(config.DB{Host: "h", Port: 1, Encrypt: false}))
	require.NoError(t, err)
	assert.Equal(t, "disable", u.Query().Get("encrypt"))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:presencas.db?_foreign_keys=1", SQLiteDSN("presencas.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=1", SQLiteDSN("file:x?mode=memory"))
}

func TestOpenSQLite(t *testing.T) {
	db, err := Open(config.DB{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "p.db")})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping(context.Background()))
	assert.Equal(t, config.DriverSQLite, db.Describe()["driver"])
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(config.DB{Driver: "oracle"})
	assert.Error(t, err)
}

func TestDescribeMasksPassword(t *testing.T) {
	db, err := Open(config.DB{Driver: config.DriverSQLServer, Host: "h", Port: 1433, User: "u", Password: "secret"})
	require.NoError(t, err)
	defer db.Close()

	info := db.Describe()
	assert.NotContains(t, info["password"], "secret")
	assert.Equal(t, "h", info["host"])
}
