package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise-hq/spendwise-api/models"
)

func validTestBudget() *models.Budget {
	return &models.Budget{
		ID:             "b1",
		UserID:         "user-1",
		Name:           "Groceries",
		Amount:         decimal.NewFromInt(500),
		Period:         models.PeriodMonthly,
		StartDate:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		AlertThreshold: 80,
		IsActive:       true,
	}
}

func TestValidateBudget(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(b *models.Budget)
		wantField string
	}{
		{"valid budget", func(b *models.Budget) {}, ""},
		{"missing name", func(b *models.Budget) { b.Name = "" }, "name"},
		{"zero amount", func(b *models.Budget) { b.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(b *models.Budget) { b.Amount = decimal.NewFromInt(-10) }, "amount"},
		{"threshold too low", func(b *models.Budget) { b.AlertThreshold = 0 }, "alertThreshold"},
		{"threshold too high", func(b *models.Budget) { b.AlertThreshold = 101 }, "alertThreshold"},
		{"threshold at lower bound", func(b *models.Budget) { b.AlertThreshold = 1 }, ""},
		{"threshold at upper bound", func(b *models.Budget) { b.AlertThreshold = 100 }, ""},
		{"inverted date range", func(b *models.Budget) {
			b.StartDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		}, "endDate"},
		{"single-day range", func(b *models.Budget) { b.EndDate = b.StartDate }, ""},
		{"unknown period", func(b *models.Budget) { b.Period = "quarterly" }, "period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := validTestBudget()
			tt.mutate(budget)

			err := validateBudget(budget)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("validateBudget returned unexpected error: %v", err)
				}
				return
			}

			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("validateBudget = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestApplyUpdate(t *testing.T) {
	t.Run("applies only supplied fields", func(t *testing.T) {
		budget := validTestBudget()
		newAmount := decimal.NewFromInt(750)
		inactive := false

		err := applyUpdate(budget, models.UpdateBudgetRequest{
			Amount:   &newAmount,
			IsActive: &inactive,
		})
		if err != nil {
			t.Fatalf("applyUpdate returned error: %v", err)
		}

		if !budget.Amount.Equal(newAmount) {
			t.Errorf("amount = %s, want 750", budget.Amount)
		}
		if budget.IsActive {
			t.Error("isActive should have been set to false")
		}
		if budget.Name != "Groceries" || budget.AlertThreshold != 80 {
			t.Error("unsupplied fields must remain untouched")
		}
	})

	t.Run("parses date fields", func(t *testing.T) {
		budget := validTestBudget()
		start := "2026-09-01"
		end := "2026-09-30"

		err := applyUpdate(budget, models.UpdateBudgetRequest{StartDate: &start, EndDate: &end})
		if err != nil {
			t.Fatalf("applyUpdate returned error: %v", err)
		}

		if budget.StartDate.Format(dateLayout) != start || budget.EndDate.Format(dateLayout) != end {
			t.Errorf("dates = (%s, %s), want (%s, %s)", budget.StartDate, budget.EndDate, start, end)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		budget := validTestBudget()
		bad := "01/09/2026"

		err := applyUpdate(budget, models.UpdateBudgetRequest{StartDate: &bad})

		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("applyUpdate = %v, want ValidationError", err)
		}
	})

	t.Run("empty category clears the filter", func(t *testing.T) {
		budget := validTestBudget()
		groceries := "groceries"
		budget.Category = &groceries
		empty := ""

		if err := applyUpdate(budget, models.UpdateBudgetRequest{Category: &empty}); err != nil {
			t.Fatalf("applyUpdate returned error: %v", err)
		}

		if budget.Category != nil {
			t.Errorf("category = %v, want nil (all categories)", *budget.Category)
		}
	})
}

func TestNormalizeCategory(t *testing.T) {
	if got := normalizeCategory(nil); got != nil {
		t.Errorf("normalizeCategory(nil) = %v, want nil", *got)
	}

	empty := ""
	if got := normalizeCategory(&empty); got != nil {
		t.Errorf(`normalizeCategory("") = %v, want nil`, *got)
	}

	dining := "dining"
	got := normalizeCategory(&dining)
	if got == nil || *got != "dining" {
		t.Errorf("normalizeCategory(dining) = %v, want dining", got)
	}
}
