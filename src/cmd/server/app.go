package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/remittance-wallet/src/internal/config"
	"github.com/api-sage/remittance-wallet/src/internal/logger"
	"golang.org/x/sync/errgroup"
)

type App struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewApp(cfg config.Config, handler http.Handler) *App {
	return &App{
		server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is done, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", logger.Fields{"addr": a.server.Addr})
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("http server shutting down", logger.Fields{"timeout": a.shutdownTimeout.String()})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
