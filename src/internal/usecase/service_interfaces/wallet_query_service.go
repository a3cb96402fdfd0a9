package service_interfaces

import (
	"context"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/models"
	"github.com/api-sage/remittance-wallet/src/internal/commons"
)

type WalletQueryService interface {
	GetContacts(ctx context.Context) (commons.Response[[]models.ContactResponse], error)
	GetBalances(ctx context.Context) (commons.Response[[]models.BalanceResponse], error)
	GetTransactionHistory(ctx context.Context) (commons.Response[[]models.TransactionDetailsResponse], error)
}
