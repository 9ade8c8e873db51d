package models

import "github.com/shopspring/decimal"

// Report rows mirror the column aliases of the SQL that produces them; the
// JSON field names are part of the API contract consumed by the dashboard.

type TimeSeriesRow struct {
	Total    decimal.Decimal `json:"total"`
	Time     string          `json:"time"`
	TypeName string          `json:"type_name"`
}

type CashflowRow struct {
	CategoryName string          `json:"category_name"`
	TypeName     string          `json:"type_name"`
	Month        string          `json:"month"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// FinancialDetailRow is shared by the financial-details and income-expenses
// reports; both return per-period sums keyed by a category label.
type FinancialDetailRow struct {
	Dates    string          `json:"dates"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type OverviewRow struct {
	ReportYear               string          `json:"report_year"`
	TotalIncomeValue         decimal.Decimal `json:"total_income_value"`
	ExpenseCategory          string          `json:"expense_category"`
	TotalExpenseValue        decimal.Decimal `json:"total_expense_value"`
	SavingsRateValue         decimal.Decimal `json:"savings_rate_value"`
	TotalYearlyExpenses      decimal.Decimal `json:"total_yearly_expenses"`
	CumulativeNetIncomeValue decimal.Decimal `json:"cumulative_net_income_value"`
}

type ExpenseRow struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
}
