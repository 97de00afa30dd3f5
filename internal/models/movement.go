package models

import "github.com/shopspring/decimal"

// MovementKind represents the direction of a movement
type MovementKind string

const (
	MovementKindExpense MovementKind = "expense"
	MovementKindIncome  MovementKind = "income"
)

// Valid reports whether the kind is one of the two known directions.
func (k MovementKind) Valid() bool {
	return k == MovementKindExpense || k == MovementKindIncome
}

// Movement represents a single expense or income recorded against a
// budget's category. Movements are never mutated after creation; CreatedAt
// is the movement timestamp used for history ordering.
type Movement struct {
	Base
	Category string          `gorm:"not null;index" json:"category"`
	Kind     MovementKind    `gorm:"not null" json:"kind"`
	Amount   decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Note     string          `json:"note"`
}
