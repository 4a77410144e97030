package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mobil-koeln/gomate/internal/api"
	"github.com/mobil-koeln/gomate/internal/config"
	"github.com/mobil-koeln/gomate/internal/session"
	"github.com/mobil-koeln/gomate/internal/state"
	"github.com/mobil-koeln/gomate/internal/storage"
)

// app is everything a command needs, wired from config
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	store     storage.Store
	client    *api.Client
	container *state.Container
}

// loadConfig resolves config from .env, the TOML file, the environment and
// the global flags
func loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	if flagStore != "" {
		cfg.Store = flagStore
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// newApp wires storage, client, session manager and state container, then
// restores persisted preferences and session
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(logOut, cfg)

	store, err := storage.Open(storage.Options{
		Backend: cfg.Store,
		Dir:     cfg.DataDir,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	client, err := api.NewClient(
		api.WithBaseURL(cfg.BaseURL),
		api.WithAuthURL(cfg.AuthURL),
		api.WithTimeout(cfg.Timeout),
		api.WithArrivalDelay(cfg.ArrivalDelay),
		api.WithLogger(logger),
	)
	if err != nil {
		_ = storage.Close(store)
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	sessions := session.NewManager(client, store, session.WithLogger(logger))
	container := state.New(client, sessions, store, state.WithLogger(logger))
	container.Restore(ctx)

	logger.Debug("app ready", "store", cfg.Store, "base_url", client.BaseURL())

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		client:    client,
		container: container,
	}, nil
}

// close drains pending writes before releasing the store
func (a *app) close() {
	a.container.Close()
	if err := storage.Close(a.store); err != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
}

// withApp runs fn with a wired app and always closes it
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
