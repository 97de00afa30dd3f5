package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"monevo/internal/config"
	"monevo/internal/database"
	"monevo/internal/handlers"
	"monevo/internal/ledger"
	"monevo/internal/logger"
	"monevo/internal/middleware"
	"monevo/internal/parser"
	"monevo/internal/repository"
	"monevo/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize the ledger engine and the message parser
	repo := repository.NewGormLedger(dbManager.DB())
	engine := ledger.NewEngine(repo)
	messageParser := parser.New()

	// Initialize handlers
	budgetHandler := handlers.NewBudgetHandler(engine)
	movementHandler := handlers.NewMovementHandler(engine)
	messageHandler := handlers.NewMessageHandler(messageParser, engine)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Free-text message entry point
	v1.POST("/messages", messageHandler.HandleMessage)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:category", budgetHandler.GetBudget)
	budgets.PUT("/:category", budgetHandler.UpdateBudget)
	budgets.DELETE("/:category", budgetHandler.DeleteBudget)
	budgets.GET("/:category/movements", budgetHandler.GetBudgetHistory)

	// Movement routes
	movements := v1.Group("/movements")
	movements.POST("", movementHandler.CreateMovement)
	movements.DELETE("/:id", movementHandler.DeleteMovement)

	log.Infof("Starting Monevo server on port %s", cfg.Port)
	return router.Run(":" + cfg.Port)
}
