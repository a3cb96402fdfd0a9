package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is the immutable fact appended after a committed transfer.
type TransactionRecord struct {
	ID                int64
	SenderContactID   int64
	ReceiverContactID int64
	Amount            decimal.Decimal
	CreatedAt         time.Time
}

type TransactionDetails struct {
	SenderName   string
	ReceiverName string
	Amount       decimal.Decimal
}

type ResponseCode int

const (
	ResponseCodeSuccess           ResponseCode = 100
	ResponseCodeError             ResponseCode = 101
	ResponseCodeInvalidParameters ResponseCode = 102
	ResponseCodeInvalidSender     ResponseCode = 103
	ResponseCodeInvalidReceiver   ResponseCode = 104
)

func (c ResponseCode) Description() string {
	switch c {
	case ResponseCodeSuccess:
		return "success"
	case ResponseCodeError:
		return "error occurred"
	case ResponseCodeInvalidParameters:
		return "invalid request parameters"
	case ResponseCodeInvalidSender:
		return "invalid sender contact id"
	case ResponseCodeInvalidReceiver:
		return "invalid destination contact id"
	default:
		return "unknown response code"
	}
}

// Err is nil only for ResponseCodeSuccess. Unknown codes count as failures.
func (c ResponseCode) Err() error {
	if c == ResponseCodeSuccess {
		return nil
	}
	return &AuditLogError{Code: c}
}
