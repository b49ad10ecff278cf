package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is an informational grouping of a budget's date range.
// The explicit start/end dates are authoritative; the period does not
// constrain them.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// BudgetStatus classifies a budget against its own alert threshold.
type BudgetStatus string

const (
	StatusUnder   BudgetStatus = "under"
	StatusWarning BudgetStatus = "warning"
	StatusOver    BudgetStatus = "over"
)

// AlertLevel is the severity of a generated alert. Unlike BudgetStatus it
// escalates against fixed 90%/100% cutoffs, independent of the user-chosen
// threshold.
type AlertLevel string

const (
	AlertWarning  AlertLevel = "warning"
	AlertDanger   AlertLevel = "danger"
	AlertExceeded AlertLevel = "exceeded"
)

// Budget is a user-defined spending limit over a category (nil means all
// categories) and an inclusive date range.
type Budget struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Category       *string         `json:"category"`
	Period         BudgetPeriod    `json:"period"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	AlertThreshold int             `json:"alertThreshold"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// BudgetPerformance is the evaluation of one budget against recorded
// expenses. It is recomputed on every request and never persisted.
type BudgetPerformance struct {
	BudgetID       string          `json:"budgetId"`
	Name           string          `json:"name"`
	BudgetAmount   decimal.Decimal `json:"budgetAmount"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
	Status         BudgetStatus    `json:"status"`
}

// BudgetAlert is a notification-worthy condition for one budget.
type BudgetAlert struct {
	BudgetID       string          `json:"budgetId"`
	BudgetName     string          `json:"budgetName"`
	CurrentSpent   decimal.Decimal `json:"currentSpent"`
	BudgetAmount   decimal.Decimal `json:"budgetAmount"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
	AlertLevel     AlertLevel      `json:"alertLevel"`
	Message        string          `json:"message"`
}

// BudgetAnalysis is the portfolio summary across all of a user's budgets.
type BudgetAnalysis struct {
	TotalBudgets      int                 `json:"totalBudgets"`
	ActiveBudgets     int                 `json:"activeBudgets"`
	TotalBudgetAmount decimal.Decimal     `json:"totalBudgetAmount"`
	TotalSpent        decimal.Decimal     `json:"totalSpent"`
	OverBudgetCount   int                 `json:"overBudgetCount"`
	Savings           decimal.Decimal     `json:"savings"`
	BudgetPerformance []BudgetPerformance `json:"budgetPerformance"`
}

type CreateBudgetRequest struct {
	Name           string          `json:"name" binding:"required"`
	Amount         decimal.Decimal `json:"amount"`
	Category       *string         `json:"category"`
	Period         BudgetPeriod    `json:"period" binding:"required,oneof=weekly monthly yearly"`
	StartDate      string          `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate        string          `json:"endDate" binding:"required,datetime=2006-01-02"`
	AlertThreshold int             `json:"alertThreshold" binding:"required,min=1,max=100"`
	IsActive       *bool           `json:"isActive"`
}

// UpdateBudgetRequest carries a partial update: only non-nil fields are
// applied. Supplying an empty category clears the filter back to
// "all categories".
type UpdateBudgetRequest struct {
	Name           *string          `json:"name"`
	Amount         *decimal.Decimal `json:"amount"`
	Category       *string          `json:"category"`
	Period         *BudgetPeriod    `json:"period" binding:"omitempty,oneof=weekly monthly yearly"`
	StartDate      *string          `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate        *string          `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	AlertThreshold *int             `json:"alertThreshold"`
	IsActive       *bool            `json:"isActive"`
}
