// Package sqldb opens the bun database for the configured driver.
package sqldb

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mssqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/config"
)

// Database is the shared connection pool used by every repository.
type Database struct {
	*bun.DB
	Driver string
	cfg    config.DB
}

// Open builds the pool for cfg.Driver. It does not touch the network; call
// Ping to verify connectivity.
func Open(cfg config.DB) (*Database, error) {
	var db *bun.DB

	switch cfg.Driver {
	case config.DriverPostgres:
		connector := pgdriver.NewConnector(
			pgdriver.WithAddr(net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))),
			pgdriver.WithUser(cfg.User),
			pgdriver.WithPassword(cfg.Password),
			pgdriver.WithDatabase(cfg.Name),
			pgdriver.WithDialTimeout(cfg.ConnectTimeout),
			pgdriver.WithTLSConfig(pgTLS(cfg)),
		)
		db = bun.NewDB(sql.OpenDB(connector), pgdialect.New())

	case config.DriverSQLServer:
		sqlDB, err := sql.Open("sqlserver", SQLServerDSN(cfg))
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlserver")
		}
		db = bun.NewDB(sqlDB, mssqldialect.New())

	case config.DriverSQLite:
		sqlDB, err := sql.Open("sqlite3", SQLiteDSN(cfg.SQLitePath))
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlite")
		}
		// sqlite serialises writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
		db = bun.NewDB(sqlDB, sqlitedialect.New())

	default:
		return nil, errors.Errorf("unsupported db driver %q", cfg.Driver)
	}

	if cfg.MaxOpenConns > 0 && cfg.Driver != config.DriverSQLite {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return &Database{DB: db, Driver: cfg.Driver, cfg: cfg}, nil
}

// New wraps an already opened bun database.
func New(db *bun.DB, driver string) *Database {
	return &Database{DB: db, Driver: driver, cfg: config.DB{Driver: driver}}
}

func pgTLS(cfg config.DB) *tls.Config {
	if !cfg.Encrypt {
		return nil
	}
	return &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.TrustServerCertificate,
	}
}

// SQLServerDSN renders the go-mssqldb URL for cfg.
func SQLServerDSN(cfg config.DB) string {
	query := url.Values{}
	query.Set("database", cfg.Name)
	if cfg.Encrypt {
		query.Set("encrypt", "true")
	} else {
		query.Set("encrypt", "disable")
	}
	query.Set("TrustServerCertificate", strconv.FormatBool(cfg.TrustServerCertificate))
	query.Set("connection timeout", strconv.Itoa(int(cfg.ConnectTimeout.Seconds())))

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// SQLiteDSN enables foreign keys on path, which sqlite leaves off by default.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + "_foreign_keys=1"
}

// Ping checks that the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.PingContext(ctx); err != nil {
		return errors.Wrapf(err, "connecting to %s", d.Driver)
	}
	return nil
}

// Describe returns the connection settings with the password masked.
func (d *Database) Describe() map[string]string {
	cfg := d.cfg
	info := map[string]string{"driver": d.Driver}

	switch d.Driver {
	case config.DriverSQLite:
		info["path"] = cfg.SQLitePath
	default:
		info["host"] = cfg.Host
		info["port"] = strconv.Itoa(cfg.Port)
		info["user"] = cfg.User
		info["database"] = cfg.Name
		info["password"] = mask(cfg.Password)
		info["encrypt"] = strconv.FormatBool(cfg.Encrypt)
		info["trust_server_certificate"] = strconv.FormatBool(cfg.TrustServerCertificate)
		info["connect_timeout"] = cfg.ConnectTimeout.String()
	}

	return info
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return fmt.Sprintf("%s (%d chars)", strings.Repeat("*", 6), len(secret))
}
