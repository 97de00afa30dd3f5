// Package repository defines the persistence contract the ledger engine
// depends on, plus its GORM implementation. All category keys are the
// normalized category string, so storage and ledger agree on identity.
package repository

import (
	"errors"

	"monevo/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. The
// ledger maps it to the appropriate typed error for its callers.
var ErrNotFound = errors.New("record not found")

// Ledger is the storage boundary for budgets and movements.
type Ledger interface {
	SaveBudget(budget *models.Budget) error
	FindBudget(category string) (*models.Budget, error)
	ListBudgets() ([]models.Budget, error)
	UpdateBudget(budget *models.Budget) error
	DeleteBudget(category string) error

	SaveMovement(movement *models.Movement) error
	FindMovement(id string) (*models.Movement, error)
	// ListMovements returns movements for a category, most recent first.
	// A non-positive limit returns all of them.
	ListMovements(category string, limit int) ([]models.Movement, error)
	DeleteMovement(id string) error
	DeleteMovements(category string) error

	// Transact runs fn against a transactional view of the repository.
	// Either every write inside fn is applied, or none is.
	Transact(fn func(Ledger) error) error
}
