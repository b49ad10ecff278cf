package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spendwise-hq/spendwise-api/models"
)

// dangerCutoff is the fixed escalation point for alert severity. It is
// deliberately independent of the per-budget alert threshold: a budget
// configured with a 50% threshold still escalates to "danger" as it
// approaches full consumption instead of staying at "warning" until 99%.
var (
	dangerCutoff = decimal.NewFromInt(90)
	oneHundred   = decimal.NewFromInt(100)
)

// BudgetSource is the slice of the budget store the analysis engine needs.
type BudgetSource interface {
	GetUserBudgets(ctx context.Context, userID string) ([]models.Budget, error)
}

// AnalysisService derives budget performance, alerts and portfolio totals
// from current store and ledger state. It holds no state of its own and
// never caches: every call re-reads, so results are always fresh relative
// to the ledger.
type AnalysisService struct {
	budgets BudgetSource
	ledger  LedgerAccessor
}

func NewAnalysisService(budgets BudgetSource, ledger LedgerAccessor) *AnalysisService {
	return &AnalysisService{budgets: budgets, ledger: ledger}
}

// CalculateSpent returns the total expense amount attributable to the
// budget: the user's expenses within the budget's inclusive date range,
// narrowed to its category when one is set.
func (s *AnalysisService) CalculateSpent(ctx context.Context, userID string, budget models.Budget) (decimal.Decimal, error) {
	return s.ledger.SumExpenses(ctx, userID, budget.Category, budget.StartDate, budget.EndDate)
}

// Evaluate combines a budget and its aggregated spend into a performance
// record. Remaining may go negative and is preserved as such.
func Evaluate(budget models.Budget, spent decimal.Decimal) (models.BudgetPerformance, error) {
	if !budget.Amount.GreaterThan(decimal.Zero) {
		return models.BudgetPerformance{}, &models.DomainError{
			Message: fmt.Sprintf("budget %s has non-positive amount %s", budget.ID, budget.Amount),
		}
	}

	spent = spent.Round(2)
	percentage := spent.Div(budget.Amount).Mul(oneHundred).Round(2)

	status := models.StatusUnder
	threshold := decimal.NewFromInt(int64(budget.AlertThreshold))
	switch {
	case percentage.GreaterThanOrEqual(oneHundred):
		status = models.StatusOver
	case percentage.GreaterThanOrEqual(threshold):
		status = models.StatusWarning
	}

	return models.BudgetPerformance{
		BudgetID:       budget.ID,
		Name:           budget.Name,
		BudgetAmount:   budget.Amount,
		Spent:          spent,
		Remaining:      budget.Amount.Sub(spent),
		PercentageUsed: percentage,
		Status:         status,
	}, nil
}

// GetBudgetAnalysis produces the portfolio summary across all of the user's
// active budgets. Inactive budgets count toward totalBudgets only.
func (s *AnalysisService) GetBudgetAnalysis(ctx context.Context, userID string) (*models.BudgetAnalysis, error) {
	budgets, err := s.budgets.GetUserBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	analysis := &models.BudgetAnalysis{
		TotalBudgets:      len(budgets),
		TotalBudgetAmount: decimal.Zero,
		TotalSpent:        decimal.Zero,
		BudgetPerformance: []models.BudgetPerformance{},
	}

	for _, budget := range budgets {
		if !budget.IsActive {
			continue
		}
		analysis.ActiveBudgets++

		spent, err := s.CalculateSpent(ctx, userID, budget)
		if err != nil {
			return nil, err
		}

		perf, err := Evaluate(budget, spent)
		if err != nil {
			return nil, err
		}

		analysis.BudgetPerformance = append(analysis.BudgetPerformance, perf)
		analysis.TotalBudgetAmount = analysis.TotalBudgetAmount.Add(budget.Amount)
		analysis.TotalSpent = analysis.TotalSpent.Add(perf.Spent)
		if perf.Status == models.StatusOver {
			analysis.OverBudgetCount++
		}
	}

	// Negative savings means net overspend across the portfolio; it is not
	// clamped to zero.
	analysis.Savings = analysis.TotalBudgetAmount.Sub(analysis.TotalSpent)

	return analysis, nil
}

// GenerateAlerts scans the user's active budgets and returns an alert for
// each one whose utilization has reached its alert threshold. A ledger
// failure propagates as a DependencyError rather than an empty list, since
// the two are not distinguishable to a caller.
func (s *AnalysisService) GenerateAlerts(ctx context.Context, userID string) ([]models.BudgetAlert, error) {
	budgets, err := s.budgets.GetUserBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	alerts := []models.BudgetAlert{}
	for _, budget := range budgets {
		if !budget.IsActive {
			continue
		}

		spent, err := s.CalculateSpent(ctx, userID, budget)
		if err != nil {
			return nil, err
		}

		perf, err := Evaluate(budget, spent)
		if err != nil {
			return nil, err
		}

		threshold := decimal.NewFromInt(int64(budget.AlertThreshold))
		if perf.PercentageUsed.LessThan(threshold) {
			continue
		}

		alerts = append(alerts, buildAlert(budget, perf))
	}

	return alerts, nil
}

func buildAlert(budget models.Budget, perf models.BudgetPerformance) models.BudgetAlert {
	alert := models.BudgetAlert{
		BudgetID:       budget.ID,
		BudgetName:     budget.Name,
		CurrentSpent:   perf.Spent,
		BudgetAmount:   budget.Amount,
		PercentageUsed: perf.PercentageUsed,
	}

	switch {
	case perf.PercentageUsed.GreaterThanOrEqual(oneHundred):
		overage := perf.Spent.Sub(budget.Amount)
		alert.AlertLevel = models.AlertExceeded
		alert.Message = fmt.Sprintf("You have exceeded your '%s' budget by $%s", budget.Name, overage.StringFixed(2))
	case perf.PercentageUsed.GreaterThanOrEqual(dangerCutoff):
		alert.AlertLevel = models.AlertDanger
		alert.Message = fmt.Sprintf("You're very close to your '%s' budget limit: %s%% used", budget.Name, perf.PercentageUsed.String())
	default:
		alert.AlertLevel = models.AlertWarning
		alert.Message = fmt.Sprintf("%s%% of your '%s' budget used", perf.PercentageUsed.String(), budget.Name)
	}

	return alert
}
