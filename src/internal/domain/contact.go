package domain

import "github.com/shopspring/decimal"

type Contact struct {
	ID    int64
	Name  string
	Phone string
}

// Wallet holds the single balance owned by a contact.
type Wallet struct {
	ID        int64
	ContactID int64
	Balance   decimal.Decimal
}

type Balance struct {
	Name   string
	Amount decimal.Decimal
}
