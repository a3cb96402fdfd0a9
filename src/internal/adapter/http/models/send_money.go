package models

import (
	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/shopspring/decimal"
)

type SendMoneyRequest struct {
	FromContactID int64           `json:"fromContactId"`
	ToContactID   int64           `json:"toContactId"`
	Amount        decimal.Decimal `json:"amount"`
}

func (r SendMoneyRequest) ToDomain() domain.TransferRequest {
	return domain.TransferRequest{
		FromContactID: r.FromContactID,
		ToContactID:   r.ToContactID,
		Amount:        r.Amount,
	}
}

type SendMoneyResponse struct {
	FromContactID int64           `json:"fromContactId"`
	ToContactID   int64           `json:"toContactId"`
	Amount        decimal.Decimal `json:"amount"`
}
