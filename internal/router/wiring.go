package router

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"child-care-tracker/internal/adapters/auth/jwtauth"
	"child-care-tracker/internal/adapters/auth/remote"
	"child-care-tracker/internal/adapters/cache/rediscache"
	"child-care-tracker/internal/adapters/carebackend"
	"child-care-tracker/internal/adapters/storage/sqlstore"
	"child-care-tracker/internal/config"
	"child-care-tracker/internal/platform/i18n"
	"child-care-tracker/internal/platform/logger"
)

// OptionsFromConfig abre storage, cache, backend y verifier según cfg.
// close libera lo que se abrió (DB, Redis); siempre es seguro llamarla.
func OptionsFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (Options, func(), error) {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	opts := Options{Logger: log}

	tr, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		return Options{}, closeAll, err
	}
	opts.Translator = tr

	db, dialect, err := openDB(cfg)
	if err != nil {
		return Options{}, closeAll, err
	}
	if db != nil {
		closers = append(closers, db.Close)
		if err := sqlstore.EnsureSchema(ctx, db, dialect); err != nil {
			closeAll()
			return Options{}, func() {}, err
		}
		opts.DB = db
		log.Info("storage ready", map[string]any{"dialect": string(dialect)})
	} else {
		log.Warn("no DB_DSN / SQLITE_PATH, using in-memory storage", nil)
	}

	if u := strings.TrimSpace(cfg.RedisURL); u != "" {
		cache, client, err := rediscache.Open(ctx, u, rediscache.DefaultTTL)
		if err != nil {
			closeAll()
			return Options{}, func() {}, err
		}
		closers = append(closers, client.Close)
		opts.Cache = cache
	}

	if u := strings.TrimSpace(cfg.BackendBaseURL); u != "" {
		backend, err := carebackend.New(u, cfg.BackendTimeout)
		if err != nil {
			closeAll()
			return Options{}, func() {}, err
		}
		opts.Backend = backend
	}

	switch cfg.AuthMode {
	case config.AuthModeJWT:
		v, err := jwtauth.NewVerifier(cfg.AuthJWTSecret)
		if err != nil {
			closeAll()
			return Options{}, func() {}, err
		}
		opts.AuthVerifier = v
	case config.AuthModeRemote:
		c, err := remote.NewClient(remote.Config{BaseURL: cfg.AuthRemoteURL, APIKey: cfg.AuthRemoteAPIKey})
		if err != nil {
			closeAll()
			return Options{}, func() {}, err
		}
		opts.AuthVerifier = remote.NewVerifier(c)
	default:
		log.Warn("auth in dev mode: trusting X-Debug-User-ID header", nil)
	}

	return opts, closeAll, nil
}

// DB_DSN (postgres) tiene prioridad sobre SQLITE_PATH.
func openDB(cfg *config.Config) (*sql.DB, sqlstore.Dialect, error) {
	if dsn := strings.TrimSpace(cfg.DBDSN); dsn != "" {
		db, err := sqlstore.OpenPostgres(dsn)
		if err != nil {
			return nil, "", fmt.Errorf("open postgres: %w", err)
		}
		return db, sqlstore.DialectPostgres, nil
	}
	if p := strings.TrimSpace(cfg.SQLitePath); p != "" {
		db, err := sqlstore.OpenSQLite(p)
		if err != nil {
			return nil, "", fmt.Errorf("open sqlite: %w", err)
		}
		return db, sqlstore.DialectSQLite, nil
	}
	return nil, "", nil
}
