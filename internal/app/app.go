// Package app wires configuration, sources, the lookup service and the
// optional history store into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wudao-dict/internal/adapter/postgres"
	"github.com/heartmarshall/wudao-dict/internal/adapter/postgres/history"
	"github.com/heartmarshall/wudao-dict/internal/adapter/provider/localdict"
	"github.com/heartmarshall/wudao-dict/internal/adapter/provider/youdao"
	"github.com/heartmarshall/wudao-dict/internal/config"
	"github.com/heartmarshall/wudao-dict/internal/service/lookup"
)

// App holds the wired components. History and Pool are nil when the lookup
// history is disabled.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Lookup  *lookup.Service
	History *history.Repo
	Pool    *pgxpool.Pool
}

// New builds the application from cfg. The caller must Close it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	sources, err := NewSources(cfg.Source, logger)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Log: logger}
	opts := []lookup.Option{lookup.WithMaxParallel(cfg.Lookup.MaxParallel)}

	if cfg.History.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.History)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		a.Pool = pool
		a.History = history.New(pool)
		opts = append(opts, lookup.WithRecorder(a.History))
		logger.Debug("lookup history enabled")
	}

	a.Lookup = lookup.NewService(logger, sources, opts...)
	return a, nil
}

// Close releases the history pool.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

// NewSources returns the sources for the configured mode in the order they
// are asked. In auto mode the local dictionary comes first when its file
// exists, followed by the online dictionary.
func NewSources(cfg config.SourceConfig, logger *slog.Logger) ([]lookup.Source, error) {
	online := func() lookup.Source {
		return youdao.NewProviderWithURL(cfg.BaseURL, cfg.Timeout, logger)
	}

	switch cfg.Mode {
	case config.ModeOnline:
		return []lookup.Source{online()}, nil

	case config.ModeOffline:
		local, err := localdict.Open(cfg.LocalPath, logger)
		if err != nil {
			return nil, err
		}
		return []lookup.Source{local}, nil

	case config.ModeAuto:
		if cfg.LocalPath == "" {
			return []lookup.Source{online()}, nil
		}
		local, err := localdict.Open(cfg.LocalPath, logger)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("local dictionary missing, using online source only",
				slog.String("path", cfg.LocalPath))
			return []lookup.Source{online()}, nil
		}
		if err != nil {
			return nil, err
		}
		return []lookup.Source{local, online()}, nil

	default:
		return nil, fmt.Errorf("unknown source mode %q", cfg.Mode)
	}
}
