package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "monevo/internal/errors"
	"monevo/internal/ledger"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	ledger ledger.Ledgerer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(ledger ledger.Ledgerer) *BudgetHandler {
	return &BudgetHandler{ledger: ledger}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Category      string          `json:"category" binding:"required,min=1,max=100"`
	InitialAmount decimal.Decimal `json:"initial_amount" binding:"required"`
	Periodicity   string          `json:"periodicity" binding:"required,periodicity"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	InitialAmount *decimal.Decimal `json:"initial_amount"`
	Periodicity   *string          `json:"periodicity" binding:"omitempty,periodicity"`
}

// CreateBudget handles the creation of a new budget.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.ledger.CreateBudget(req.Category, req.InitialAmount, req.Periodicity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing a summary for every budget.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	summaries, err := h.ledger.GetAllSummaries()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}

// GetBudget handles retrieving the summary for a single category.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	summary, err := h.ledger.GetSummary(c.Param("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// UpdateBudget handles updating a budget's envelope.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.ledger.UpdateBudget(c.Param("category"), req.InitialAmount, req.Periodicity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget and all its movements.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.ledger.DeleteBudget(c.Param("category")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetBudgetHistory handles listing a category's movements, most recent first.
func (h *BudgetHandler) GetBudgetHistory(c *gin.Context) {
	limit, err := parseLimitQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	movements, err := h.ledger.GetHistory(c.Param("category"), limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements})
}
