package models

// ExpenseType is a reference row; each type belongs to exactly one category.
// Categories themselves only surface as joined name strings in report rows.
type ExpenseType struct {
	ID         int    `json:"id"`
	CategoryID int    `json:"category_id"`
	TypeName   string `json:"type_name"`
}
