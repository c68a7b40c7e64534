package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/wudao-dict/internal/transport/middleware"
	"github.com/heartmarshall/wudao-dict/internal/transport/rest"
)

// Handler returns the HTTP lookup service with its middleware chain.
func (a *App) Handler() http.Handler {
	// A nil *pgxpool.Pool must not reach the handler as a non-nil interface.
	health := rest.NewHealthHandler(nil, BuildVersion())
	if a.Pool != nil {
		health = rest.NewHealthHandler(a.Pool, BuildVersion())
	}

	router := rest.NewRouter(rest.NewLookupHandler(a.Lookup, a.Log), health)

	return middleware.Server(a.Log, a.Config.Lookup.Timeout)(router)
}

// Serve runs the HTTP lookup service until ctx is cancelled, then shuts it
// down gracefully within the configured shutdown timeout.
func (a *App) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(a.Config.Server.Host, strconv.Itoa(a.Config.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return a.serve(ctx, ln)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	cfg := a.Config.Server
	srv := &http.Server{
		Handler:      a.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.Log.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("server started",
			slog.String("addr", ln.Addr().String()),
			slog.String("version", BuildVersion()),
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	a.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
