package repo_interfaces

import (
	"context"

	"github.com/api-sage/remittance-wallet/src/internal/domain"
)

type ContactRepository interface {
	GetAllContacts(ctx context.Context) ([]domain.Contact, error)
	GetAllBalances(ctx context.Context) ([]domain.Balance, error)
	GetAllTransactionDetails(ctx context.Context) ([]domain.TransactionDetails, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}
