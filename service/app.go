package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"postfeed/app/config"
	"postfeed/app/repositories"
	"postfeed/app/routes"
	"postfeed/app/seed"
	"postfeed/app/services"
)

// shutdownTimeout bounds how long in-flight requests get after a stop signal.
const shutdownTimeout = 5 * time.Second

// App is one feed session: its repository, store and HTTP handler.
type App struct {
	Repo    repositories.PostRepository
	Store   *services.PostStore
	Handler http.Handler
}

// NewApp builds the repository named by cfg.Backend, wraps it in a store and
// seeds it as configured.
func NewApp(cfg config.Config, logger *slog.Logger) (*App, error) {
	repo, err := newRepository(cfg.Backend)
	if err != nil {
		return nil, err
	}
	store := services.NewPostStore(repo, cfg.Feed(), logger)

	if cfg.Seed {
		if _, err := seed.Demo(store); err != nil {
			repo.Close()
			return nil, err
		}
	}
	if cfg.FakePosts > 0 {
		if _, err := seed.Fake(store, cfg.FakePosts, time.Now().UnixNano()); err != nil {
			repo.Close()
			return nil, err
		}
	}

	return &App{
		Repo:    repo,
		Store:   store,
		Handler: routes.SetupRoutes(store, logger),
	}, nil
}

// Close releases the session's repository.
func (a *App) Close() error {
	return a.Repo.Close()
}

func newRepository(backend string) (repositories.PostRepository, error) {
	switch backend {
	case config.BackendMemory, "":
		return repositories.NewMemoryPostRepository(), nil
	case config.BackendBadger:
		return repositories.NewBadgerPostRepository()
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// RunAppServer serves the feed until ctx is cancelled, then shuts down
// gracefully.
func RunAppServer(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := routes.NewServer(cfg.Addr, app.Handler)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting feed service", "addr", cfg.Addr, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down feed service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
