package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendwise-hq/spendwise-api/models"
)

const dateLayout = "2006-01-02"

type BudgetService struct {
	db *sql.DB
}

func NewBudgetService(db *sql.DB) *BudgetService {
	return &BudgetService{db: db}
}

// Create validates and persists a new budget for the given user.
func (s *BudgetService) Create(ctx context.Context, userID string, req models.CreateBudgetRequest) (*models.Budget, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, &models.ValidationError{Field: "startDate", Message: "must be a YYYY-MM-DD date"}
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, &models.ValidationError{Field: "endDate", Message: "must be a YYYY-MM-DD date"}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	budget := &models.Budget{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           req.Name,
		Amount:         req.Amount,
		Category:       normalizeCategory(req.Category),
		Period:         req.Period,
		StartDate:      start,
		EndDate:        end,
		AlertThreshold: req.AlertThreshold,
		IsActive:       isActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if verr := validateBudget(budget); verr != nil {
		return nil, verr
	}

	query := `
		INSERT INTO budgets (id, user_id, name, amount, category, period, start_date, end_date, alert_threshold, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.db.ExecContext(ctx, query,
		budget.ID, budget.UserID, budget.Name, budget.Amount, budget.Category,
		budget.Period, budget.StartDate, budget.EndDate, budget.AlertThreshold,
		budget.IsActive, budget.CreatedAt, budget.UpdatedAt,
	)
	if err != nil {
		return nil, &models.DependencyError{Op: "budgets.Create", Err: err}
	}

	return budget, nil
}

// GetUserBudgets returns all budgets owned by the user, newest first.
func (s *BudgetService) GetUserBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, name, amount, category, period, start_date, end_date, alert_threshold, is_active, created_at, updated_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, &models.DependencyError{Op: "budgets.GetUserBudgets", Err: err}
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var budget models.Budget
		if err := scanBudget(rows.Scan, &budget); err != nil {
			return nil, &models.DependencyError{Op: "budgets.GetUserBudgets", Err: err}
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DependencyError{Op: "budgets.GetUserBudgets", Err: err}
	}

	return budgets, nil
}

// GetByID returns a single budget scoped to its owner.
func (s *BudgetService) GetByID(ctx context.Context, id, userID string) (*models.Budget, error) {
	query := `
		SELECT id, user_id, name, amount, category, period, start_date, end_date, alert_threshold, is_active, created_at, updated_at
		FROM budgets
		WHERE id = $1 AND user_id = $2
	`

	var budget models.Budget
	err := scanBudget(s.db.QueryRowContext(ctx, query, id, userID).Scan, &budget)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "budget", ID: id}
	}
	if err != nil {
		return nil, &models.DependencyError{Op: "budgets.GetByID", Err: err}
	}

	return &budget, nil
}

// Update applies the supplied fields to a budget owned by the user. The
// resulting record is re-validated so a partial update cannot break an
// invariant.
func (s *BudgetService) Update(ctx context.Context, id, userID string, req models.UpdateBudgetRequest) (*models.Budget, error) {
	budget, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(budget, req); err != nil {
		return nil, err
	}
	budget.UpdatedAt = time.Now()

	if verr := validateBudget(budget); verr != nil {
		return nil, verr
	}

	query := `
		UPDATE budgets
		SET name = $1, amount = $2, category = $3, period = $4, start_date = $5,
		    end_date = $6, alert_threshold = $7, is_active = $8, updated_at = $9
		WHERE id = $10 AND user_id = $11
	`
	_, err = s.db.ExecContext(ctx, query,
		budget.Name, budget.Amount, budget.Category, budget.Period,
		budget.StartDate, budget.EndDate, budget.AlertThreshold,
		budget.IsActive, budget.UpdatedAt, id, userID,
	)
	if err != nil {
		return nil, &models.DependencyError{Op: "budgets.Update", Err: err}
	}

	return budget, nil
}

// Delete removes a budget scoped to its owner. Deleting an id that does not
// exist (or is not yours) is a silent no-op.
func (s *BudgetService) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`
	if _, err := s.db.ExecContext(ctx, query, id, userID); err != nil {
		return &models.DependencyError{Op: "budgets.Delete", Err: err}
	}
	return nil
}

func scanBudget(scan func(dest ...interface{}) error, b *models.Budget) error {
	return scan(
		&b.ID, &b.UserID, &b.Name, &b.Amount, &b.Category, &b.Period,
		&b.StartDate, &b.EndDate, &b.AlertThreshold, &b.IsActive,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

// normalizeCategory maps an empty category string to nil so that "all
// categories" is always represented the same way.
func normalizeCategory(category *string) *string {
	if category == nil || *category == "" {
		return nil
	}
	return category
}

func applyUpdate(b *models.Budget, req models.UpdateBudgetRequest) error {
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Amount != nil {
		b.Amount = *req.Amount
	}
	if req.Category != nil {
		b.Category = normalizeCategory(req.Category)
	}
	if req.Period != nil {
		b.Period = *req.Period
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return &models.ValidationError{Field: "startDate", Message: "must be a YYYY-MM-DD date"}
		}
		b.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return &models.ValidationError{Field: "endDate", Message: "must be a YYYY-MM-DD date"}
		}
		b.EndDate = end
	}
	if req.AlertThreshold != nil {
		b.AlertThreshold = *req.AlertThreshold
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	return nil
}

func validateBudget(b *models.Budget) error {
	if b.Name == "" {
		return &models.ValidationError{Field: "name", Message: "is required"}
	}
	if !b.Amount.GreaterThan(decimal.Zero) {
		return &models.ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	if b.AlertThreshold < 1 || b.AlertThreshold > 100 {
		return &models.ValidationError{Field: "alertThreshold", Message: "must be between 1 and 100"}
	}
	if b.StartDate.After(b.EndDate) {
		return &models.ValidationError{Field: "endDate", Message: "must not be before startDate"}
	}
	switch b.Period {
	case models.PeriodWeekly, models.PeriodMonthly, models.PeriodYearly:
	default:
		return &models.ValidationError{Field: "period", Message: "must be weekly, monthly or yearly"}
	}
	return nil
}
