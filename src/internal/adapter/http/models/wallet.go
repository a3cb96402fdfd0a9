package models

import (
	"github.com/api-sage/remittance-wallet/src/internal/domain"
	"github.com/shopspring/decimal"
)

type ContactResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type BalanceResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type TransactionDetailsResponse struct {
	SenderName   string          `json:"senderName"`
	ReceiverName string          `json:"receiverName"`
	Amount       decimal.Decimal `json:"amount"`
}

func ContactsFromDomain(contacts []domain.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, ContactResponse{ID: c.ID, Name: c.Name, Phone: c.Phone})
	}
	return out
}

func BalancesFromDomain(balances []domain.Balance) []BalanceResponse {
	out := make([]BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, BalanceResponse{Name: b.Name, Amount: b.Amount.Round(2)})
	}
	return out
}

func TransactionDetailsFromDomain(details []domain.TransactionDetails) []TransactionDetailsResponse {
	out := make([]TransactionDetailsResponse, 0, len(details))
	for _, d := range details {
		out = append(out, TransactionDetailsResponse{
			SenderName:   d.SenderName,
			ReceiverName: d.ReceiverName,
			Amount:       d.Amount.Round(2),
		})
	}
	return out
}
