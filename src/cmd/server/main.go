package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/api-sage/remittance-wallet/src/internal/config"
	"github.com/api-sage/remittance-wallet/src/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("remittance wallet: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := InitializeApp(ctx, cfg)
	if err != nil {
		logger.Error("initialize app failed", err, logger.Fields{"storageDriver": cfg.StorageDriver})
		return err
	}
	defer cleanup()

	return app.Run(ctx)
}
