package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/unsplash-go/internal/infra/config"
	"github.com/yanqian/unsplash-go/internal/infra/credstore"
	"github.com/yanqian/unsplash-go/pkg/unsplash"
	"github.com/yanqian/unsplash-go/pkg/unsplash/auth"
)

func provideClientConfig(cfg *config.Config) unsplash.Config {
	return unsplash.Config{
		AppID:   cfg.Unsplash.AppID,
		BaseURL: cfg.Unsplash.APIBaseURL,
		Timeout: cfg.Unsplash.Timeout,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		AppID:       cfg.Unsplash.AppID,
		Secret:      cfg.Unsplash.Secret,
		RedirectURL: cfg.Unsplash.RedirectURL,
		AuthBaseURL: cfg.Unsplash.AuthBaseURL,
		Scopes:      cfg.Unsplash.Scopes,
	}
}

// provideCredentialStore opens the configured backend. Network backends fall
// back to memory when unreachable.
func provideCredentialStore(cfg *config.Config, logger *slog.Logger) (unsplash.CredentialStore, func(), error) {
	store, cleanup, err := openBackend(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if key := cfg.Credentials.EncryptionKey; key != "" {
		sealed, err := credstore.NewSealed(store, key)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		return sealed, cleanup, nil
	}
	return store, cleanup, nil
}

func openBackend(cfg *config.Config, logger *slog.Logger) (unsplash.CredentialStore, func(), error) {
	noop := func() {}
	switch cfg.Credentials.Backend {
	case config.BackendMemory:
		return credstore.NewMemoryStore(), noop, nil
	case config.BackendValkey:
		store, cleanup := provideValkeyStore(cfg, logger)
		return store, cleanup, nil
	case config.BackendPostgres:
		store, cleanup := providePostgresStore(cfg, logger)
		return store, cleanup, nil
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		store, err := credstore.OpenSQLite(ctx, cfg.Credentials.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
}

func providePostgresStore(cfg *config.Config, logger *slog.Logger) (unsplash.CredentialStore, func()) {
	fallback := credstore.NewMemoryStore()
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Credentials.Postgres.DSN)
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory credential store", "error", err)
		return fallback, noop
	}
	if cfg.Credentials.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Credentials.Postgres.MaxConns
	}
	if cfg.Credentials.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Credentials.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory credential store", "error", err)
		return fallback, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory credential store", "error", err)
		pool.Close()
		return fallback, noop
	}
	store, err := credstore.NewPostgresStore(ctx, pool)
	if err != nil {
		logger.Error("postgres migration failed, using memory credential store", "error", err)
		pool.Close()
		return fallback, noop
	}
	logger.Info("postgres credential store enabled")
	return store, pool.Close
}

func provideValkeyStore(cfg *config.Config, logger *slog.Logger) (unsplash.CredentialStore, func()) {
	noop := func() {}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, using memory credential store", "error", err)
		return credstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, using memory credential store", "error", err)
		return credstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, using memory credential store", "error", err)
		client.Close()
		return credstore.NewMemoryStore(), noop
	}
	logger.Info("valkey credential store enabled", "addr", cfg.Credentials.Valkey.Addr)
	return credstore.NewValkeyStore(client, cfg.Credentials.Valkey.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Credentials.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Credentials.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Credentials.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

// provideAuthManager returns nil when no secret is configured; public routes
// still work without it.
func provideAuthManager(cfg auth.Config, store unsplash.CredentialStore, logger *slog.Logger) *auth.Manager {
	manager, err := auth.NewManager(cfg, store, logger)
	if err != nil {
		logger.Debug("oauth disabled", "reason", err)
		return nil
	}
	return manager
}

func provideClient(cfg unsplash.Config, manager *auth.Manager, logger *slog.Logger) (*unsplash.Client, error) {
	opts := []unsplash.Option{unsplash.WithLogger(logger)}
	if manager != nil {
		opts = append(opts, unsplash.WithTokenSource(manager.TokenSource(context.Background())))
	}
	return unsplash.NewClient(cfg, opts...)
}
