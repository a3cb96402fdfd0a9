//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/controller"
	"github.com/api-sage/remittance-wallet/src/internal/config"
	"github.com/api-sage/remittance-wallet/src/internal/usecase/service_interfaces"
	"github.com/api-sage/remittance-wallet/src/internal/usecase/services"
	"github.com/google/wire"
)

func InitializeApp(ctx context.Context, cfg config.Config) (*App, func(), error) {
	wire.Build(
		NewStores,
		NewSendMoneyService,
		NewWalletQueryService,
		wire.Bind(new(service_interfaces.SendMoneyService), new(*services.SendMoneyService)),
		wire.Bind(new(service_interfaces.WalletQueryService), new(*services.WalletQueryService)),
		controller.NewWalletController,
		NewHandler,
		NewApp,
	)

	return &App{}, nil, nil
}
