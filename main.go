package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/icco/movies/handlers"
	"github.com/icco/movies/lib/config"
	"github.com/icco/movies/lib/db"
	"github.com/icco/movies/lib/lock"
	"github.com/icco/movies/lib/store"
	"gorm.io/gorm"
)

type App struct {
	cfg     *config.Config
	db      *gorm.DB
	store   *store.Store
	lock    *lock.FileLock
	lockKey string
	router  *chi.Mux
	logger  *slog.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	fl := lock.NewFileLock("", logger)
	key := lock.KeyFor(cfg.DBPath)
	ok, err := fl.TryLock(ctx, key, cfg.LockTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to lock database: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("database %s is in use by another process", cfg.DBPath)
	}

	gormDB, err := db.Open(cfg.DBPath, logger)
	if err != nil {
		_ = fl.Unlock(ctx, key)
		return nil, err
	}

	if err := db.RunMigrations(ctx, gormDB, logger); err != nil {
		_ = db.Close(gormDB)
		_ = fl.Unlock(ctx, key)
		return nil, err
	}

	s := store.New(gormDB)
	return &App{
		cfg:     cfg,
		db:      gormDB,
		store:   s,
		lock:    fl,
		lockKey: key,
		router:  handlers.NewRouter(s),
		logger:  logger,
	}, nil
}

// Close releases the database and the lock on its file.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(db.Close(a.db), a.lock.Unlock(ctx, a.lockKey))
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests for up to the configured shutdown timeout.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      a.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", slog.String("addr", srv.Addr), slog.String("db", a.cfg.DBPath))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	a.logger.Info("Stopped server")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to start", slog.Any("error", err))
		os.Exit(1)
	}

	serveErr := app.Serve(ctx)
	if err := app.Close(context.Background()); err != nil {
		logger.Error("Failed to close app", slog.Any("error", err))
	}
	if serveErr != nil {
		logger.Error("Server error", slog.Any("error", serveErr))
		os.Exit(1)
	}
}
