package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise-hq/spendwise-api/models"
)

// LedgerAccessor provides aggregate sums over recorded expenses. The ledger
// itself is owned by the expense-recording service; this API is read-only
// with respect to it.
type LedgerAccessor interface {
	// SumExpenses returns the total expense amount for a user within the
	// inclusive [start, end] date range. A nil category matches any
	// category. The sum is zero, never an error, when no rows match.
	SumExpenses(ctx context.Context, userID string, category *string, start, end time.Time) (decimal.Decimal, error)
}

type LedgerService struct {
	db *sql.DB
}

func NewLedgerService(db *sql.DB) *LedgerService {
	return &LedgerService{db: db}
}

func (s *LedgerService) SumExpenses(ctx context.Context, userID string, category *string, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND expense_date BETWEEN $2 AND $3
	`
	args := []interface{}{userID, start, end}

	if category != nil {
		query += ` AND category = $4`
		args = append(args, *category)
	}

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, &models.DependencyError{Op: "ledger.SumExpenses", Err: err}
	}

	return total, nil
}
