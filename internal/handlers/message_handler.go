package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "monevo/internal/errors"
	"monevo/internal/ledger"
	"monevo/internal/models"
	"monevo/internal/parser"
)

// messageHistoryLimit caps how many movements a conversational history
// query returns. The REST endpoint takes an explicit limit instead.
const messageHistoryLimit = 10

// helpExamples is returned whenever a message cannot be interpreted.
var helpExamples = []string{
	"Gasté 3000 de moto por gasolina",
	"Añadí 5000 a inversión por salario",
	"Ver presupuesto moto",
	"/resumen",
	"/historial moto",
}

// MessageHandler turns free-text messages into ledger operations.
type MessageHandler struct {
	parser *parser.Parser
	ledger ledger.Ledgerer
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(p *parser.Parser, ledger ledger.Ledgerer) *MessageHandler {
	return &MessageHandler{parser: p, ledger: ledger}
}

// MessageRequest represents a free-text message to interpret.
type MessageRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

// HandleMessage parses the message and dispatches the resulting intent.
// Unrecognized messages are not errors: they return usage examples.
func (h *MessageHandler) HandleMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	intent := h.parser.Parse(req.Text)
	switch intent.Kind {
	case parser.IntentRecordExpense:
		h.record(c, intent, models.MovementKindExpense)
	case parser.IntentRecordIncome:
		h.record(c, intent, models.MovementKindIncome)
	case parser.IntentQuerySummary:
		h.summary(c, intent)
	case parser.IntentQueryHistory:
		h.history(c, intent)
	default:
		c.JSON(http.StatusOK, gin.H{
			"intent":   intent,
			"message":  "No pude interpretar el mensaje. Prueba con:",
			"examples": helpExamples,
		})
	}
}

// record persists the movement and returns it together with the updated
// summary, so a conversational client can confirm the new balance.
func (h *MessageHandler) record(c *gin.Context, intent parser.ParsedIntent, kind models.MovementKind) {
	movement, err := h.ledger.RecordMovement(intent.Category, kind, intent.Amount, intent.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.ledger.GetSummary(intent.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"intent":   intent,
		"movement": movement,
		"summary":  summary,
	})
}

func (h *MessageHandler) summary(c *gin.Context, intent parser.ParsedIntent) {
	if intent.Category == "" {
		summaries, err := h.ledger.GetAllSummaries()
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"intent": intent, "summaries": summaries})
		return
	}

	summary, err := h.ledger.GetSummary(intent.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intent": intent, "summary": summary})
}

func (h *MessageHandler) history(c *gin.Context, intent parser.ParsedIntent) {
	movements, err := h.ledger.GetHistory(intent.Category, messageHistoryLimit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intent": intent, "movements": movements})
}
