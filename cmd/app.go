package cmd

import (
	"context"
	"errors"
	"net/http"

	"propertyhub/api"
	"propertyhub/config"
	"propertyhub/infrastructure/persistence/outbox"
	"propertyhub/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// App wires the HTTP server, storage and the optional in-process outbox relay.
type App struct {
	config          *config.Config
	router          *api.Router
	server          *http.Server
	infra           *Infrastructure
	worker          *outbox.Worker
	shutdownTracing func(context.Context) error
}

// Handler exposes the HTTP handler for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled or the server fails, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.worker != nil {
		g.Go(func() error {
			logger.Info("In-process outbox relay started")
			if err := a.worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("HTTP server listening",
			zap.String("addr", a.server.Addr),
			zap.String("health", "/api/v1/health"))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(ctx), a.config.Server.ShutdownTimeout)
	defer cancelShutdown()

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", zap.Error(err))
		}
		return nil
	})

	runErr := g.Wait()
	if runErr != nil {
		logger.Error("Server stopped with error", zap.Error(runErr))
	}
	a.release(shutdownCtx)

	logger.Info("Server stopped")
	_ = logger.Sync()
	return runErr
}

func (a *App) release(ctx context.Context) {
	if a.infra != nil {
		a.infra.Close()
	}
	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(ctx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}
}
