package repo_interfaces

import (
	"context"

	"github.com/api-sage/remittance-wallet/src/internal/domain"
)

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, record domain.TransactionRecord) error
}
