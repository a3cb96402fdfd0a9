package repo_interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// WalletRepository is the ledger store. Every call runs inside the caller's unit of work.
type WalletRepository interface {
	// LockWallets takes exclusive locks on the given wallets in ascending id order.
	LockWallets(ctx context.Context, uow UnitOfWork, contactIDs ...int64) error
	// GetBalance returns zero for a contact without a wallet.
	GetBalance(ctx context.Context, uow UnitOfWork, contactID int64) (decimal.Decimal, error)
	// SetBalance fails with domain.ErrRecordNotFound for a contact without a wallet.
	SetBalance(ctx context.Context, uow UnitOfWork, contactID int64, balance decimal.Decimal) error
}
