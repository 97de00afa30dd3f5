package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "monevo/internal/errors"
	"monevo/internal/ledger"
	"monevo/internal/models"
	"monevo/internal/uuid"
)

// MovementHandler handles movement-related requests.
type MovementHandler struct {
	ledger ledger.Ledgerer
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(ledger ledger.Ledgerer) *MovementHandler {
	return &MovementHandler{ledger: ledger}
}

// CreateMovementRequest represents the request payload for recording a movement.
type CreateMovementRequest struct {
	Category string          `json:"category" binding:"required,min=1,max=100"`
	Kind     string          `json:"kind" binding:"required,movement_kind"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Note     string          `json:"note" binding:"max=500"`
}

// CreateMovement handles recording an expense or income.
func (h *MovementHandler) CreateMovement(c *gin.Context) {
	var req CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	movement, err := h.ledger.RecordMovement(req.Category, models.MovementKind(req.Kind), req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"movement": movement})
}

// DeleteMovement handles removing a single movement by ID.
func (h *MovementHandler) DeleteMovement(c *gin.Context) {
	id := c.Param("id")
	if !uuid.IsValid(id) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid movement id"))
		return
	}

	if err := h.ledger.DeleteMovement(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Movement deleted successfully"})
}
