// Package server собирает хранилище, HTTP API и запускает сервер
// с корректной остановкой по сигналу.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"notive/internal/app/server/api"
	"notive/internal/app/server/config"
	"notive/internal/infrastructure/storage"
	"notive/internal/utils/logger"
)

const readHeaderTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	log     *slog.Logger
	storage *storage.Backend
	server  *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	st, err := storage.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	router, err := api.New(cfg, st, log)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("api init error: %w", err)
	}

	return &App{
		config:  cfg,
		log:     log,
		storage: st,
		server: &http.Server{
			Addr:              cfg.Server.RunAddress,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// Run блокируется до SIGINT/SIGTERM или отмены ctx, затем останавливает
// сервер и закрывает хранилище.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.log.Info("starting server",
			slog.String("address", app.config.Server.RunAddress),
			slog.String("storage", app.config.Storage.Driver),
			slog.String("auth", app.config.Auth.Mode),
		)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		app.log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()

		return app.server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if cerr := app.storage.Close(); cerr != nil {
		app.log.Error("close storage", logger.Err(cerr))
		err = errors.Join(err, cerr)
	}

	app.log.Info("server stopped")

	return err
}
