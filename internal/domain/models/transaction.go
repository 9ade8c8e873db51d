package models

import "github.com/shopspring/decimal"

// Transaction is a single ledger entry. Amounts are signed: negative is an
// expense, positive is income.
type Transaction struct {
	ID         int64           `json:"id"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	TypeID     int             `json:"type_id"`
	CategoryID int             `json:"category_id"`
	UserID     string          `json:"user_id"`
	CreatedAt  string          `json:"created_at"`
}

// NewTransaction is a validated write request for a ledger entry.
type NewTransaction struct {
	Date       string
	Amount     decimal.Decimal
	TypeID     int
	CategoryID int
	UserID     string
}
