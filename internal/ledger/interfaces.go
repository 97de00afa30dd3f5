package ledger

import (
	"github.com/shopspring/decimal"

	"monevo/internal/models"
)

// Ledgerer defines the ledger operations the transport layer depends on.
type Ledgerer interface {
	CreateBudget(category string, initialAmount decimal.Decimal, periodicity string) (*models.Budget, error)
	UpdateBudget(category string, initialAmount *decimal.Decimal, periodicity *string) (*models.Budget, error)
	DeleteBudget(category string) error
	GetSummary(category string) (*BudgetSummary, error)
	GetAllSummaries() ([]BudgetSummary, error)
	GetHistory(category string, limit int) ([]models.Movement, error)
	RecordMovement(category string, kind models.MovementKind, amount decimal.Decimal, note string) (*models.Movement, error)
	DeleteMovement(id string) error
}

var _ Ledgerer = (*Engine)(nil)
