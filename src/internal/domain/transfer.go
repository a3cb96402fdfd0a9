package domain

import "github.com/shopspring/decimal"

// Amounts are stored as NUMERIC(18,2): two decimal places, sixteen integer digits.
const AmountScale = 2

var maxAmount = decimal.New(1, 16)

type TransferRequest struct {
	FromContactID int64
	ToContactID   int64
	Amount        decimal.Decimal
}

// Validate checks the request without touching any store.
func (r TransferRequest) Validate() error {
	var problems []string

	if r.FromContactID <= 0 {
		problems = append(problems, "fromContactId must be greater than 0")
	}
	if r.ToContactID <= 0 {
		problems = append(problems, "toContactId must be greater than 0")
	}
	if r.FromContactID > 0 && r.FromContactID == r.ToContactID {
		problems = append(problems, "sender and receiver cannot be the same")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		problems = append(problems, "amount must be greater than 0")
	}
	if !r.Amount.Equal(r.Amount.Truncate(AmountScale)) {
		problems = append(problems, "amount must have at most 2 decimal places")
	}
	if r.Amount.GreaterThanOrEqual(maxAmount) {
		problems = append(problems, "amount must be less than 10000000000000000")
	}

	if len(problems) > 0 {
		return NewValidationError(problems...)
	}
	return nil
}

func (r TransferRequest) Record() TransactionRecord {
	return TransactionRecord{
		SenderContactID:   r.FromContactID,
		ReceiverContactID: r.ToContactID,
		Amount:            r.Amount,
	}
}
