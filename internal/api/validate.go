package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Typed request schemas, validated once at the boundary. A request either
// yields a constraint-satisfying value or a list of field errors.

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type transactionRequest struct {
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	TypeID     int             `json:"typeId"`
	CategoryID int             `json:"categoryId"`
}

func (r transactionRequest) validate() []string {
	var errs []string
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		errs = append(errs, "date must be a calendar date in YYYY-MM-DD format")
	}
	if r.TypeID <= 0 {
		errs = append(errs, "typeId must be a positive integer")
	}
	if r.CategoryID < 0 {
		errs = append(errs, "categoryId must not be negative")
	}
	return errs
}
