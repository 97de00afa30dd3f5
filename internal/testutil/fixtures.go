package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"monevo/internal/models"
)

// CreateTestBudget inserts a monthly budget of 100000 for the category.
func CreateTestBudget(t *testing.T, db *gorm.DB, category string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Category:      category,
		InitialAmount: decimal.NewFromInt(100000),
		Periodicity:   models.PeriodicityMonthly,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestMovement inserts a movement against the category.
func CreateTestMovement(t *testing.T, db *gorm.DB, category string, kind models.MovementKind, amount int64) *models.Movement {
	t.Helper()

	movement := &models.Movement{
		Category: category,
		Kind:     kind,
		Amount:   decimal.NewFromInt(amount),
	}
	if err := db.Create(movement).Error; err != nil {
		t.Fatalf("failed to create test movement: %v", err)
	}
	return movement
}
