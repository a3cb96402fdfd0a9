package implementations

import (
	"context"
	"database/sql"

	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/api-sage/remittance-wallet/src/internal/logger"
	"github.com/pkg/errors"
)

const createTransactionsFlag = "CreateTransactions"

// TransactionRepository appends transfer records through the sp_transactions
// stored function and maps its response code.
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) CreateTransaction(ctx context.Context, record domain.TransactionRecord) error {
	const query = `SELECT sp_transactions($1, $2, $3, $4)`

	var code int
	if err := r.db.QueryRowContext(
		ctx,
		query,
		record.SenderContactID,
		record.ReceiverContactID,
		record.Amount,
		createTransactionsFlag,
	).Scan(&code); err != nil {
		logger.Error("transaction repository create transaction failed", err, logger.Fields{
			"senderContactId":   record.SenderContactID,
			"receiverContactId": record.ReceiverContactID,
		})
		return &domain.AuditLogError{Code: domain.ResponseCodeError, Err: errors.Wrap(err, "call sp_transactions")}
	}

	responseCode := domain.ResponseCode(code)
	fields := logger.Fields{
		"responseCode":      code,
		"senderContactId":   record.SenderContactID,
		"receiverContactId": record.ReceiverContactID,
		"amount":            record.Amount,
	}

	switch responseCode {
	case domain.ResponseCodeSuccess:
		logger.Info("transaction repository sp response", fields)
	case domain.ResponseCodeError:
		logger.Warn("transaction repository sp error occurred", fields)
	case domain.ResponseCodeInvalidParameters, domain.ResponseCodeInvalidSender, domain.ResponseCodeInvalidReceiver:
		logger.Error("transaction repository sp rejected record", nil, fields)
	default:
		logger.Warn("transaction repository unknown sp response code", fields)
	}

	return responseCode.Err()
}
