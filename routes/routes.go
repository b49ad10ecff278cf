package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/spendwise-hq/spendwise-api/handlers"
	"github.com/spendwise-hq/spendwise-api/services"
)

// SetupBudgetRoutes wires the budget CRUD, analysis and alert routes.
func SetupBudgetRoutes(rg *gin.RouterGroup, db *sql.DB, stream *handlers.AlertStreamHandler) {
	budgetService := services.NewBudgetService(db)
	ledgerService := services.NewLedgerService(db)
	analysisService := services.NewAnalysisService(budgetService, ledgerService)

	h := handlers.NewBudgetHandler(budgetService, analysisService, stream)

	// Static paths before the :id param so gin does not shadow them.
	rg.GET("/budgets/analysis", h.GetAnalysis)
	rg.GET("/budgets/alerts", h.GetAlerts)

	rg.GET("/budgets", h.GetBudgets)
	rg.POST("/budgets", h.CreateBudget)
	rg.GET("/budgets/:id", h.GetBudget)
	rg.PUT("/budgets/:id", h.UpdateBudget)
	rg.DELETE("/budgets/:id", h.DeleteBudget)

	rg.GET("/ws/alerts", stream.HandleWS)
}
