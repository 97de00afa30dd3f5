package repository

import (
	"errors"

	"gorm.io/gorm"

	"monevo/internal/models"
)

// gormLedger implements Ledger on top of a GORM connection.
type gormLedger struct {
	db *gorm.DB
}

// NewGormLedger creates a Ledger backed by the given GORM database.
func NewGormLedger(db *gorm.DB) Ledger {
	return &gormLedger{db: db}
}

func (r *gormLedger) SaveBudget(budget *models.Budget) error {
	return r.db.Create(budget).Error
}

func (r *gormLedger) FindBudget(category string) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("category = ?", category).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &budget, nil
}

func (r *gormLedger) ListBudgets() ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.Order("category ASC").Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *gormLedger) UpdateBudget(budget *models.Budget) error {
	return r.db.Save(budget).Error
}

func (r *gormLedger) DeleteBudget(category string) error {
	result := r.db.Where("category = ?", category).Delete(&models.Budget{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormLedger) SaveMovement(movement *models.Movement) error {
	return r.db.Create(movement).Error
}

func (r *gormLedger) FindMovement(id string) (*models.Movement, error) {
	var movement models.Movement
	if err := r.db.Where("id = ?", id).First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

func (r *gormLedger) ListMovements(category string, limit int) ([]models.Movement, error) {
	q := r.db.Where("category = ?", category).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var movements []models.Movement
	if err := q.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *gormLedger) DeleteMovement(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Movement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormLedger) DeleteMovements(category string) error {
	return r.db.Where("category = ?", category).Delete(&models.Movement{}).Error
}

func (r *gormLedger) Transact(fn func(Ledger) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormLedger{db: tx})
	})
}
