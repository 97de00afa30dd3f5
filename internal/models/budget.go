package models

import "github.com/shopspring/decimal"

// Periodicity represents the renewal period of a budget
type Periodicity string

const (
	PeriodicityDaily   Periodicity = "daily"
	PeriodicityWeekly  Periodicity = "weekly"
	PeriodicityMonthly Periodicity = "monthly"
	PeriodicityYearly  Periodicity = "yearly"
)

// Budget represents an allocation for a spending category. Category holds
// the normalized name and identifies the budget within the ledger; at most
// one live budget exists per category.
type Budget struct {
	Base
	Category      string          `gorm:"not null;index" json:"category"`
	InitialAmount decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"initial_amount"`
	Periodicity   Periodicity     `gorm:"not null" json:"periodicity"`
}
