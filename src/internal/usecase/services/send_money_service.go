package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/remittance-wallet/src/internal/adapter/http/models"
	"github.com/api-sage/remittance-wallet/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/remittance-wallet/src/internal/commons"
	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/api-sage/remittance-wallet/src/internal/logger"
)

const (
	MessageTransferred       = "Money transferred successfully"
	MessageValidationFailed  = "validation failed"
	MessageInsufficientFunds = "Insufficient funds"
	MessageTransferFailed    = "transfer failed"
)

const defaultTransferTimeout = 5 * time.Second

// SendMoneyService moves money between two wallets. The debit, the credit and the
// sufficiency check share one unit of work; the transaction record is appended
// afterwards and a failure there is only logged.
type SendMoneyService struct {
	units        repo_interfaces.UnitOfWorkFactory
	wallets      repo_interfaces.WalletRepository
	transactions repo_interfaces.TransactionRepository
	timeout      time.Duration
}

func NewSendMoneyService(
	units repo_interfaces.UnitOfWorkFactory,
	wallets repo_interfaces.WalletRepository,
	transactions repo_interfaces.TransactionRepository,
	timeout time.Duration,
) *SendMoneyService {
	if timeout <= 0 {
		timeout = defaultTransferTimeout
	}
	return &SendMoneyService{
		units:        units,
		wallets:      wallets,
		transactions: transactions,
		timeout:      timeout,
	}
}

func (s *SendMoneyService) SendMoney(ctx context.Context, req models.SendMoneyRequest) (commons.Response[models.SendMoneyResponse], error) {
	logger.Info("send money service request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	err := s.Transfer(ctx, req.ToDomain())
	if err == nil {
		return commons.SuccessResponse(MessageTransferred, models.SendMoneyResponse{
			FromContactID: req.FromContactID,
			ToContactID:   req.ToContactID,
			Amount:        req.Amount,
		}), nil
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return commons.ErrorResponse[models.SendMoneyResponse](MessageValidationFailed, validationErr.Problems...), err
	case errors.Is(err, domain.ErrInsufficientFunds):
		return commons.ErrorResponse[models.SendMoneyResponse](MessageInsufficientFunds, "Insufficient funds"), err
	default:
		return commons.ErrorResponse[models.SendMoneyResponse](MessageTransferFailed, "An error occurred while processing the transfer"), err
	}
}

// Transfer validates req, then debits the sender and credits the receiver
// atomically. It returns nil once the balances are committed.
func (s *SendMoneyService) Transfer(ctx context.Context, req domain.TransferRequest) error {
	if err := req.Validate(); err != nil {
		logger.Warn("send money service rejected request", logger.Fields{
			"fromContactId": req.FromContactID,
			"toContactId":   req.ToContactID,
			"amount":        req.Amount,
			"reason":        err.Error(),
		})
		return err
	}

	fields := logger.Fields{
		"fromContactId": req.FromContactID,
		"toContactId":   req.ToContactID,
		"amount":        req.Amount,
	}
	logger.Info("send money service starting transfer", fields)

	if err := s.moveFunds(ctx, req); err != nil {
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			logger.Error("send money service transfer failed", err, fields)
		}
		return err
	}

	s.appendRecord(ctx, req.Record(), fields)

	logger.Info("send money service transfer completed", fields)
	return nil
}

func (s *SendMoneyService) moveFunds(ctx context.Context, req domain.TransferRequest) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	uow, err := s.units.Begin(ctx)
	if err != nil {
		return asStoreError(ctx, "begin unit of work", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := uow.Rollback(); rbErr != nil && !errors.Is(rbErr, domain.ErrUnitOfWorkDone) {
			logger.Error("send money service rollback failed", rbErr, logger.Fields{
				"fromContactId": req.FromContactID,
				"toContactId":   req.ToContactID,
			})
		}
	}()

	if err := s.wallets.LockWallets(ctx, uow, req.FromContactID, req.ToContactID); err != nil {
		return asStoreError(ctx, "lock wallets", err)
	}

	senderBalance, err := s.wallets.GetBalance(ctx, uow, req.FromContactID)
	if err != nil {
		return asStoreError(ctx, "get sender balance", err)
	}

	if senderBalance.LessThan(req.Amount) {
		logger.Warn("send money service insufficient funds", logger.Fields{
			"fromContactId": req.FromContactID,
			"balance":       senderBalance,
			"requested":     req.Amount,
		})
		return fmt.Errorf("%w: contact %d has %s, requested %s",
			domain.ErrInsufficientFunds, req.FromContactID, senderBalance.StringFixed(2), req.Amount.StringFixed(2))
	}

	if err := s.wallets.SetBalance(ctx, uow, req.FromContactID, senderBalance.Sub(req.Amount)); err != nil {
		return asStoreError(ctx, "debit sender", err)
	}

	receiverBalance, err := s.wallets.GetBalance(ctx, uow, req.ToContactID)
	if err != nil {
		return asStoreError(ctx, "get receiver balance", err)
	}

	if err := s.wallets.SetBalance(ctx, uow, req.ToContactID, receiverBalance.Add(req.Amount)); err != nil {
		return asStoreError(ctx, "credit receiver", err)
	}

	if err := uow.Commit(); err != nil {
		return asStoreError(ctx, "commit", err)
	}
	committed = true

	return nil
}

// appendRecord runs after the balances are committed, on a context that survives
// the caller going away. Its failure leaves the ledger ahead of the history.
func (s *SendMoneyService) appendRecord(ctx context.Context, record domain.TransactionRecord, fields logger.Fields) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.transactions.CreateTransaction(ctx, record); err != nil {
		logger.Error("send money service transaction record not appended", err, fields)
	}
}

// asStoreError keeps NotFound and already classified store errors intact and
// wraps anything else as a StoreError for op.
func asStoreError(ctx context.Context, op string, err error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		return err
	}

	reason := ""
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.DeadlineExceeded) {
		reason = "timeout"
	}
	return &domain.StoreError{Op: op, Reason: reason, Err: err}
}
