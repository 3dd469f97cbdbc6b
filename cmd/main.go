package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/auth"
	"github.com/projetos-logistica/Cadastro-HC/internal/commands"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/config"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/repository/redisdb"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/repository/sqldb"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/employee"
	"github.com/projetos-logistica/Cadastro-HC/internal/router"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/roster"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(log); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		log.Error().Err(err).Msg("startup")
		os.Exit(1)
	}
}

func run(log zerolog.Logger) error {
	cfg, err := config.NewConfig(os.Args[1:])
	if err != nil {
		return err
	}

	log = newLogger(cfg.Log)
	log.Info().Str("config", cfg.String()).Msg("starting")

	db, err := sqldb.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	if err = commands.MigrateUP(ctx, db, log); err != nil {
		return err
	}

	// Commands: migrate | import <file> [sector]
	switch cfg.Args.Num(0) {
	case "migrate":
		return nil
	case "import":
		return importRoster(ctx, db, cfg.Args.Num(1), cfg.Args.Num(2), log)
	case "":
	default:
		return errors.Errorf("unknown command %q", cfg.Args.Num(0))
	}

	access, err := config.LoadAccess(cfg.Auth.AccessFile)
	if err != nil {
		return err
	}

	var revoker auth.Revoker
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		revoker = redisdb.NewRevoker(rdb)
	}

	a, err := auth.New(cfg.Auth.JWTKey, cfg.Auth.TokenTTL, revoker)
	if err != nil {
		return err
	}

	importer := roster.NewImporter(employee.NewRepository(db), log)
	if result, ok := importer.AutoImport(ctx, cfg.Import.SeedFiles); ok {
		log.Info().Int("processed", result.Processed).Msg("seed roster imported")
	}

	app := web.NewApp(log)
	r := router.NewRouter(app, db, a, auth.NewGate(access), cfg.Web, log)
	r.Init()

	srv := &http.Server{
		Addr:         ":" + cfg.Web.Port,
		Handler:      r,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server error")

	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}

	return nil
}

func importRoster(ctx context.Context, db *sqldb.Database, path, sector string, log zerolog.Logger) error {
	if path == "" {
		return errors.New("usage: import <file> [sector]")
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening roster")
	}
	defer f.Close()

	result, err := roster.NewImporter(employee.NewRepository(db), log).Import(ctx, path, f, sector)
	if err != nil {
		return err
	}

	log.Info().
		Int("processed", result.Processed).
		Strs("sheets", result.Sheets).
		Strs("skipped", result.SkippedSheets).
		Msg("roster imported")
	return nil
}

func newLogger(cfg config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.Pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}
