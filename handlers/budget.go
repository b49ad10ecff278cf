package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendwise-hq/spendwise-api/middleware"
	"github.com/spendwise-hq/spendwise-api/models"
)

// BudgetStore is the persistence surface the handler needs.
type BudgetStore interface {
	Create(ctx context.Context, userID string, req models.CreateBudgetRequest) (*models.Budget, error)
	GetUserBudgets(ctx context.Context, userID string) ([]models.Budget, error)
	GetByID(ctx context.Context, id, userID string) (*models.Budget, error)
	Update(ctx context.Context, id, userID string, req models.UpdateBudgetRequest) (*models.Budget, error)
	Delete(ctx context.Context, id, userID string) error
}

// AnalysisProvider derives performance and alerts from current ledger state.
type AnalysisProvider interface {
	GetBudgetAnalysis(ctx context.Context, userID string) (*models.BudgetAnalysis, error)
	GenerateAlerts(ctx context.Context, userID string) ([]models.BudgetAlert, error)
}

type BudgetHandler struct {
	budgets  BudgetStore
	analysis AnalysisProvider
	stream   *AlertStreamHandler
}

func NewBudgetHandler(budgets BudgetStore, analysis AnalysisProvider, stream *AlertStreamHandler) *BudgetHandler {
	return &BudgetHandler{budgets: budgets, analysis: analysis, stream: stream}
}

// CreateBudget creates a new budget for the authenticated user.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.budgets.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notifyChanged(userID)
	c.JSON(http.StatusCreated, budget)
}

// GetBudgets returns all budgets owned by the user, newest first.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budgets, err := h.budgets.GetUserBudgets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// GetBudget returns a single budget by id.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)
	budget, err := h.budgets.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// UpdateBudget applies a partial update to a budget owned by the user.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.budgets.Update(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notifyChanged(userID)
	c.JSON(http.StatusOK, budget)
}

// DeleteBudget removes a budget. The delete is idempotent: an id that does
// not match anything still answers 200.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.budgets.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	h.notifyChanged(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetAnalysis returns the portfolio summary across the user's budgets.
func (h *BudgetHandler) GetAnalysis(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	analysis, err := h.analysis.GetBudgetAnalysis(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// GetAlerts returns alerts for every active budget at or past its threshold.
func (h *BudgetHandler) GetAlerts(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	alerts, err := h.analysis.GenerateAlerts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *BudgetHandler) notifyChanged(userID string) {
	if h.stream != nil {
		h.stream.NotifyBudgetsChanged(userID)
	}
}

// respondError maps the error taxonomy onto HTTP status codes. A not-found
// answer is identical whether the budget never existed or belongs to
// someone else.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		return
	}

	var nferr *models.NotFoundError
	if errors.As(err, &nferr) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}

	var deperr *models.DependencyError
	if errors.As(err, &deperr) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		return
	}

	var domerr *models.DomainError
	if errors.As(err, &domerr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Inconsistent budget data"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
