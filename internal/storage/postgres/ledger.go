package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/askelund/fintrack/internal/domain/models"
	"github.com/askelund/fintrack/internal/storage"
)

// The reporting catalogue. Every scoped query filters on user_id taken from
// the authenticated context; the 2025-onward cutoff and the excluded
// type/category lists are enforced here so no consumer re-implements them.

func (s *Storage) ExpenseTypes(ctx context.Context) ([]models.ExpenseType, error) {
	const op = "storage.postgres.ExpenseTypes"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, category_id, type_name FROM expense_types ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var types []models.ExpenseType
	for rows.Next() {
		var t models.ExpenseType
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.TypeName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return types, nil
}

// CreateTransaction derives the category from the expense type and refuses a
// client-supplied category that disagrees, so the denormalized category_id
// column can never diverge from expense_types.
func (s *Storage) CreateTransaction(ctx context.Context, tx models.NewTransaction) (*models.Transaction, error) {
	const op = "storage.postgres.CreateTransaction"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var categoryID int
	err := s.db.QueryRowContext(ctx,
		"SELECT category_id FROM expense_types WHERE id = $1",
		tx.TypeID,
	).Scan(&categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrTypeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if tx.CategoryID != 0 && tx.CategoryID != categoryID {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrCategoryMismatch)
	}

	var created models.Transaction
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO transactions (date, amount, type_id, category_id, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, TO_CHAR(date, 'YYYY-MM-DD'), amount, type_id, category_id, user_id, created_at`,
		tx.Date, tx.Amount, tx.TypeID, categoryID, tx.UserID,
	).Scan(&created.ID, &created.Date, &created.Amount, &created.TypeID,
		&created.CategoryID, &created.UserID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &created, nil
}

func (s *Storage) TimeSeries(ctx context.Context, userID string) ([]models.TimeSeriesRow, error) {
	const op = "storage.postgres.TimeSeries"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT
		   SUM(t.amount) AS total,
		   TO_CHAR(t.date, 'YYYY-MM') AS time,
		   et.type_name
		 FROM transactions t
		 JOIN expense_types et ON et.id = t.type_id
		 WHERE et.type_name NOT IN ('Salary', 'Bonus', 'Rent')
		 AND TO_CHAR(t.date, 'YYYY') > '2024'
		 AND t.user_id = $1
		 GROUP BY 2, 3`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.TimeSeriesRow
	for rows.Next() {
		var r models.TimeSeriesRow
		if err := rows.Scan(&r.Total, &r.Time, &r.TypeName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// IncomeExpenses delegates to the get_income_expense aggregate, which
// returns per-month Income/Expenses/Savings rows for the user.
func (s *Storage) IncomeExpenses(ctx context.Context, userID string) ([]models.FinancialDetailRow, error) {
	const op = "storage.postgres.IncomeExpenses"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM get_income_expense($1)", userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanDetailRows(op, rows)
}

func (s *Storage) Cashflow(ctx context.Context, userID string) ([]models.CashflowRow, error) {
	const op = "storage.postgres.Cashflow"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT
		   ec.category_name,
		   et.type_name,
		   TO_CHAR(t.date, 'Month') AS month,
		   SUM(t.amount) AS total_amount
		 FROM transactions t
		 JOIN expense_types et ON et.id = t.type_id
		 JOIN expense_categories ec ON ec.id = t.category_id
		 WHERE TO_CHAR(t.date, 'YYYY') > '2024'
		 AND t.user_id = $1
		 GROUP BY 1, 2, 3
		 ORDER BY ec.category_name, month`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.CashflowRow
	for rows.Next() {
		var r models.CashflowRow
		if err := rows.Scan(&r.CategoryName, &r.TypeName, &r.Month, &r.TotalAmount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// FinancialOverview delegates to the get_financial_metrics aggregate, which
// returns yearly income, savings rate and per-category expense shares.
func (s *Storage) FinancialOverview(ctx context.Context, userID string) ([]models.OverviewRow, error) {
	const op = "storage.postgres.FinancialOverview"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM get_financial_metrics($1)", userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.OverviewRow
	for rows.Next() {
		var r models.OverviewRow
		if err := rows.Scan(&r.ReportYear, &r.TotalIncomeValue, &r.ExpenseCategory,
			&r.TotalExpenseValue, &r.SavingsRateValue, &r.TotalYearlyExpenses,
			&r.CumulativeNetIncomeValue); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func (s *Storage) FinancialDetails(ctx context.Context, userID string) ([]models.FinancialDetailRow, error) {
	const op = "storage.postgres.FinancialDetails"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT
		   TO_CHAR(t.date, 'YYYY-MM') AS dates,
		   ec.category_name AS category,
		   SUM(t.amount) AS amount
		 FROM transactions t
		 JOIN expense_categories ec ON ec.id = t.category_id
		 WHERE ec.category_name != 'Income'
		 AND TO_CHAR(t.date, 'YYYY') > '2024'
		 AND t.user_id = $1
		 GROUP BY 1, 2
		 ORDER BY SUM(t.amount) DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanDetailRows(op, rows)
}

func (s *Storage) ExpenseTable(ctx context.Context, userID string) ([]models.ExpenseRow, error) {
	const op = "storage.postgres.ExpenseTable"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT
		   TO_CHAR(t.date, 'YYYY-MM-DD') AS date,
		   t.amount,
		   et.type_name AS type,
		   ec.category_name AS category
		 FROM transactions t
		 INNER JOIN expense_categories ec ON ec.id = t.category_id
		 INNER JOIN expense_types et ON et.id = t.type_id
		 WHERE ec.category_name != 'Income'
		 AND TO_CHAR(t.date, 'YYYY') > '2024'
		 AND t.user_id = $1
		 ORDER BY TO_CHAR(t.date, 'YYYY-MM-DD') DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.ExpenseRow
	for rows.Next() {
		var r models.ExpenseRow
		if err := rows.Scan(&r.Date, &r.Amount, &r.Type, &r.Category); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

func scanDetailRows(op string, rows *sql.Rows) ([]models.FinancialDetailRow, error) {
	var result []models.FinancialDetailRow
	for rows.Next() {
		var r models.FinancialDetailRow
		if err := rows.Scan(&r.Dates, &r.Category, &r.Amount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
