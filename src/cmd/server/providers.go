package main

import (
	"context"
	"net/http"
	"os"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/controller"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/router"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/repository/implementations"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/repository/memory"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/remittance-wallet/src/internal/config"
	"github.com/api-sage/remittance-wallet/src/internal/logger"
	"github.com/api-sage/remittance-wallet/src/internal/usecase/services"
	"github.com/pkg/errors"
)

// Stores groups the repositories one storage driver provides.
type Stores struct {
	Units        repo_interfaces.UnitOfWorkFactory
	Wallets      repo_interfaces.WalletRepository
	Transactions repo_interfaces.TransactionRepository
	Contacts     repo_interfaces.ContactRepository
	Health       repo_interfaces.HealthChecker
}

func NewStores(ctx context.Context, cfg config.Config) (Stores, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage; balances are lost on restart", nil)
		store := memory.NewSeededStore()
		return Stores{
			Units:        store,
			Wallets:      store,
			Transactions: store,
			Contacts:     store,
			Health:       store,
		}, func() {}, nil
	case config.StorageDriverPostgres:
		return newPostgresStores(ctx, cfg)
	default:
		return Stores{}, nil, errors.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func newPostgresStores(ctx context.Context, cfg config.Config) (Stores, func(), error) {
	db, err := implementations.Open(ctx, cfg.DatabaseDSN, implementations.PoolOptions{
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
	})
	if err != nil {
		return Stores{}, nil, err
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("close postgres pool failed", err, nil)
		}
	}

	if cfg.MigrationsDir != "" {
		if err := implementations.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			cleanup()
			return Stores{}, nil, err
		}
		logger.Info("migrations applied", logger.Fields{"dir": cfg.MigrationsDir})
	}

	gdb, err := implementations.OpenGorm(db)
	if err != nil {
		cleanup()
		return Stores{}, nil, err
	}

	return Stores{
		Units:        implementations.NewUnitOfWorkFactory(db, cfg.LockTimeout),
		Wallets:      implementations.NewWalletRepository(),
		Transactions: implementations.NewTransactionRepository(db),
		Contacts:     implementations.NewContactRepository(gdb),
		Health:       implementations.NewPingChecker(db),
	}, cleanup, nil
}

func NewSendMoneyService(stores Stores, cfg config.Config) *services.SendMoneyService {
	return services.NewSendMoneyService(stores.Units, stores.Wallets, stores.Transactions, cfg.TransferTimeout)
}

func NewWalletQueryService(stores Stores) *services.WalletQueryService {
	return services.NewWalletQueryService(stores.Contacts)
}

func NewHandler(cfg config.Config, stores Stores, wallet *controller.WalletController) http.Handler {
	staticDir := cfg.StaticDir
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
			logger.Warn("static directory not found; frontend disabled", logger.Fields{"dir": staticDir})
			staticDir = ""
		}
	}

	return router.Handler(router.New(wallet, stores.Health, staticDir, nil), cfg.AllowedOrigins)
}
