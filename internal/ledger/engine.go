// Package ledger implements the budget ledger: budget lifecycle,
// movement recording and derived summaries. All monetary state is
// recomputed from stored movements; nothing caches running balances.
package ledger

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	apperrors "monevo/internal/errors"
	"monevo/internal/models"
	"monevo/internal/normalize"
	"monevo/internal/repository"
)

// Engine coordinates all budget and movement operations on top of the
// repository. Writes to a category are serialized through a per-category
// lock so duplicate checks and cascades stay race-free.
type Engine struct {
	repo  repository.Ledger
	locks keyedLocks
}

// NewEngine creates a ledger engine backed by the given repository.
func NewEngine(repo repository.Ledger) *Engine {
	return &Engine{repo: repo, locks: keyedLocks{locks: make(map[string]*sync.Mutex)}}
}

// BudgetSummary is the derived view of a budget: stored envelope fields
// plus totals recomputed from its movements.
type BudgetSummary struct {
	Category      string             `json:"category"`
	InitialAmount decimal.Decimal    `json:"initial_amount"`
	Periodicity   models.Periodicity `json:"periodicity"`
	Expenses      decimal.Decimal    `json:"expenses"`
	Incomes       decimal.Decimal    `json:"incomes"`
	Balance       decimal.Decimal    `json:"balance"`
	PercentUsed   float64            `json:"percent_used"`
}

// CreateBudget registers a new budget envelope under the normalized
// category name.
func (e *Engine) CreateBudget(category string, initialAmount decimal.Decimal, periodicity string) (*models.Budget, error) {
	cat := normalize.Category(category)
	if cat == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category must contain letters or digits")
	}
	if !initialAmount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	p, err := normalize.ParsePeriodicity(periodicity)
	if err != nil {
		return nil, err
	}

	unlock := e.locks.lock(cat)
	defer unlock()

	budget := &models.Budget{Category: cat, InitialAmount: initialAmount, Periodicity: p}
	err = e.repo.Transact(func(tx repository.Ledger) error {
		if _, err := tx.FindBudget(cat); err == nil {
			return apperrors.ErrDuplicateCategory
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return tx.SaveBudget(budget)
	})
	if err != nil {
		return nil, persistence(err)
	}
	return budget, nil
}

// RecordMovement appends an expense or income to an existing budget.
// The movement is rejected, and nothing is persisted, when the category
// has no budget or the amount is not strictly positive.
func (e *Engine) RecordMovement(category string, kind models.MovementKind, amount decimal.Decimal, note string) (*models.Movement, error) {
	cat := normalize.Category(category)
	if cat == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category must contain letters or digits")
	}
	if !kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Movement kind must be expense or income")
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	unlock := e.locks.lock(cat)
	defer unlock()

	movement := &models.Movement{Category: cat, Kind: kind, Amount: amount, Note: note}
	err := e.repo.Transact(func(tx repository.Ledger) error {
		if _, err := tx.FindBudget(cat); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrUnknownCategory
			}
			return err
		}
		return tx.SaveMovement(movement)
	})
	if err != nil {
		return nil, persistence(err)
	}
	return movement, nil
}

// GetSummary recomputes the summary for one category from its stored
// movements.
func (e *Engine) GetSummary(category string) (*BudgetSummary, error) {
	cat := normalize.Category(category)
	budget, err := e.repo.FindBudget(cat)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUnknownCategory
		}
		return nil, persistence(err)
	}
	return e.summarize(budget)
}

// GetAllSummaries returns a summary for every budget, ordered by category.
func (e *Engine) GetAllSummaries() ([]BudgetSummary, error) {
	budgets, err := e.repo.ListBudgets()
	if err != nil {
		return nil, persistence(err)
	}
	summaries := make([]BudgetSummary, 0, len(budgets))
	for i := range budgets {
		s, err := e.summarize(&budgets[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *s)
	}
	return summaries, nil
}

// GetHistory returns a category's movements, most recent first. A
// non-positive limit returns the full history.
func (e *Engine) GetHistory(category string, limit int) ([]models.Movement, error) {
	cat := normalize.Category(category)
	if _, err := e.repo.FindBudget(cat); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUnknownCategory
		}
		return nil, persistence(err)
	}
	movements, err := e.repo.ListMovements(cat, limit)
	if err != nil {
		return nil, persistence(err)
	}
	return movements, nil
}

// UpdateBudget adjusts the envelope of an existing budget. Nil fields are
// left unchanged.
func (e *Engine) UpdateBudget(category string, initialAmount *decimal.Decimal, periodicity *string) (*models.Budget, error) {
	cat := normalize.Category(category)
	if initialAmount == nil && periodicity == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Nothing to update")
	}
	if initialAmount != nil && !initialAmount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	var p models.Periodicity
	if periodicity != nil {
		var err error
		if p, err = normalize.ParsePeriodicity(*periodicity); err != nil {
			return nil, err
		}
	}

	unlock := e.locks.lock(cat)
	defer unlock()

	var budget *models.Budget
	err := e.repo.Transact(func(tx repository.Ledger) error {
		var err error
		if budget, err = tx.FindBudget(cat); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrUnknownCategory
			}
			return err
		}
		if initialAmount != nil {
			budget.InitialAmount = *initialAmount
		}
		if periodicity != nil {
			budget.Periodicity = p
		}
		return tx.UpdateBudget(budget)
	})
	if err != nil {
		return nil, persistence(err)
	}
	return budget, nil
}

// DeleteBudget removes a budget and every movement recorded against it,
// atomically.
func (e *Engine) DeleteBudget(category string) error {
	cat := normalize.Category(category)

	unlock := e.locks.lock(cat)
	defer unlock()

	err := e.repo.Transact(func(tx repository.Ledger) error {
		if err := tx.DeleteMovements(cat); err != nil {
			return err
		}
		if err := tx.DeleteBudget(cat); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrUnknownCategory
			}
			return err
		}
		return nil
	})
	return persistence(err)
}

// DeleteMovement removes a single movement by id; subsequent summaries
// reflect the removal because totals are always recomputed.
func (e *Engine) DeleteMovement(id string) error {
	movement, err := e.repo.FindMovement(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrMovementNotFound
		}
		return persistence(err)
	}

	unlock := e.locks.lock(movement.Category)
	defer unlock()

	err = e.repo.Transact(func(tx repository.Ledger) error {
		if err := tx.DeleteMovement(id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrMovementNotFound
			}
			return err
		}
		return nil
	})
	return persistence(err)
}

func (e *Engine) summarize(budget *models.Budget) (*BudgetSummary, error) {
	movements, err := e.repo.ListMovements(budget.Category, 0)
	if err != nil {
		return nil, persistence(err)
	}
	expenses, incomes := decimal.Zero, decimal.Zero
	for _, m := range movements {
		switch m.Kind {
		case models.MovementKindExpense:
			expenses = expenses.Add(m.Amount)
		case models.MovementKindIncome:
			incomes = incomes.Add(m.Amount)
		}
	}
	// percent_used counts expenses against the envelope only; incomes
	// raise the balance but never lower the percentage.
	percent := 0.0
	if expenses.IsPositive() {
		percent, _ = expenses.Div(budget.InitialAmount).Mul(decimal.NewFromInt(100)).Float64()
	}
	return &BudgetSummary{
		Category:      budget.Category,
		InitialAmount: budget.InitialAmount,
		Periodicity:   budget.Periodicity,
		Expenses:      expenses,
		Incomes:       incomes,
		Balance:       budget.InitialAmount.Add(incomes).Sub(expenses),
		PercentUsed:   percent,
	}, nil
}

// persistence passes typed errors through and wraps anything else as a
// storage failure.
func persistence(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
}

// keyedLocks hands out one mutex per category key.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}
