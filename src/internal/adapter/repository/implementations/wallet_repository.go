package implementations

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/api-sage/remittance-wallet/src/internal/logger"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type WalletRepository struct{}

func NewWalletRepository() *WalletRepository {
	return &WalletRepository{}
}

func (r *WalletRepository) LockWallets(ctx context.Context, uow repo_interfaces.UnitOfWork, contactIDs ...int64) error {
	tx, err := txOf(uow)
	if err != nil {
		return err
	}

	const query = `
SELECT contact_id
FROM wallets
WHERE contact_id = ANY($1)
ORDER BY contact_id
FOR UPDATE`

	rows, err := tx.QueryContext(ctx, query, pq.Array(contactIDs))
	if err != nil {
		logger.Error("wallet repository lock wallets failed", err, logger.Fields{
			"contactIds": contactIDs,
		})
		return storeError("lock wallets", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return storeError("lock wallets", err)
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return storeError("lock wallets", err)
	}

	logger.Debug("wallet repository locked wallets", logger.Fields{
		"contactIds": contactIDs,
		"locked":     locked,
	})
	return nil
}

func (r *WalletRepository) GetBalance(ctx context.Context, uow repo_interfaces.UnitOfWork, contactID int64) (decimal.Decimal, error) {
	tx, err := txOf(uow)
	if err != nil {
		return decimal.Zero, err
	}

	const query = `
SELECT COALESCE(balance, 0)
FROM wallets
WHERE contact_id = $1
FOR UPDATE`

	var balance decimal.Decimal
	if err := tx.QueryRowContext(ctx, query, contactID).Scan(&balance); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			logger.Debug("wallet repository no wallet, reading zero balance", logger.Fields{
				"contactId": contactID,
			})
			return decimal.Zero, nil
		}
		logger.Error("wallet repository get balance failed", err, logger.Fields{
			"contactId": contactID,
		})
		return decimal.Zero, storeError("get balance", err)
	}

	logger.Debug("wallet repository retrieved balance", logger.Fields{
		"contactId": contactID,
		"balance":   balance,
	})
	return balance, nil
}

func (r *WalletRepository) SetBalance(ctx context.Context, uow repo_interfaces.UnitOfWork, contactID int64, balance decimal.Decimal) error {
	tx, err := txOf(uow)
	if err != nil {
		return err
	}

	const query = `
UPDATE wallets
SET balance = $2,
    updated_at = NOW()
WHERE contact_id = $1`

	if _, err := execRequiredRows(ctx, tx, query, contactID, balance); err != nil {
		if stderrors.Is(err, domain.ErrRecordNotFound) {
			logger.Warn("wallet repository no wallet found", logger.Fields{
				"contactId": contactID,
			})
			return errors.Wrapf(err, "wallet for contact %d", contactID)
		}
		logger.Error("wallet repository set balance failed", err, logger.Fields{
			"contactId": contactID,
		})
		return storeError("set balance", err)
	}

	logger.Debug("wallet repository updated balance", logger.Fields{
		"contactId": contactID,
		"balance":   balance,
	})
	return nil
}

func execRequiredRows(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "execute statement")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "read rows affected")
	}
	if rows == 0 {
		return 0, domain.ErrRecordNotFound
	}
	return rows, nil
}
