package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

// Queries serves the dashboard's aggregation endpoints. Each call fetches
// the owner's full transaction set and recomputes the answer from scratch.
//
// An empty owner ID yields an empty or zero-valued result with a nil error
// rather than an authentication failure. Mutations elsewhere reject
// unauthenticated callers; queries degrade silently so an unauthenticated
// dashboard renders empty charts instead of an error page. See DESIGN.md
// for why the asymmetry is kept.
type Queries struct {
	store  service.Storage
	logger *slog.Logger
	now    func() time.Time
}

// NewQueries creates the aggregation query service.
func NewQueries(store service.Storage) *Queries {
	return &Queries{
		store:  store,
		logger: slog.Default().With("component", "analytics"),
		now:    time.Now,
	}
}

// WithClock overrides the reference clock used to anchor trend windows.
func (q *Queries) WithClock(now func() time.Time) *Queries {
	q.now = now
	return q
}

func (q *Queries) fetch(ctx context.Context, ownerID string) ([]model.Transaction, error) {
	transactions, err := q.store.GetTransactions(ctx, ownerID, service.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	q.logger.Debug("Fetched transactions for aggregation", "owner", ownerID, "count", len(transactions))
	return transactions, nil
}

// SpendingByCategory returns per-category debit totals, largest first.
func (q *Queries) SpendingByCategory(ctx context.Context, ownerID string) ([]CategorySpend, error) {
	if ownerID == "" {
		return []CategorySpend{}, nil
	}
	transactions, err := q.fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return SpendingByCategory(transactions), nil
}

// IncomeVsSpending returns the owner's inflow and outflow totals.
func (q *Queries) IncomeVsSpending(ctx context.Context, ownerID string) (Totals, error) {
	if ownerID == "" {
		return Totals{}, nil
	}
	transactions, err := q.fetch(ctx, ownerID)
	if err != nil {
		return Totals{}, err
	}
	return IncomeVsSpending(transactions), nil
}

// Balance returns the owner's running balance across every record.
func (q *Queries) Balance(ctx context.Context, ownerID string) (float64, error) {
	if ownerID == "" {
		return 0, nil
	}
	transactions, err := q.fetch(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return Balance(transactions), nil
}

// DailyTrend returns a gap-free daily spending series for the window of
// `days` days ending today.
func (q *Queries) DailyTrend(ctx context.Context, ownerID string, days int) ([]TrendPoint, error) {
	if ownerID == "" {
		return []TrendPoint{}, nil
	}
	transactions, err := q.fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return DailyTrend(transactions, days, q.now()), nil
}

// WeeklyTrend returns a gap-free ISO-week spending series.
func (q *Queries) WeeklyTrend(ctx context.Context, ownerID string, weeks int) ([]TrendPoint, error) {
	if ownerID == "" {
		return []TrendPoint{}, nil
	}
	transactions, err := q.fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return WeeklyTrend(transactions, weeks, q.now()), nil
}

// MonthlyTrend returns a gap-free monthly spending series.
func (q *Queries) MonthlyTrend(ctx context.Context, ownerID string, months int) ([]TrendPoint, error) {
	if ownerID == "" {
		return []TrendPoint{}, nil
	}
	transactions, err := q.fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return MonthlyTrend(transactions, months, q.now()), nil
}

// TopMerchants returns the owner's largest merchants by total debit amount.
func (q *Queries) TopMerchants(ctx context.Context, ownerID string, limit int) ([]MerchantSpend, error) {
	if ownerID == "" {
		return []MerchantSpend{}, nil
	}
	transactions, err := q.fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return TopMerchants(transactions, limit), nil
}

// RecurringExpenses returns merchants the owner pays repeatedly.
func (q *Queries) RecurringExpenses(ctx context.Context, ownerID string) ([]RecurringExpense, error) {
	if ownerID == "" {
		return []RecurringExpense{}, nil
	}
	transactions, err := q.fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return RecurringExpenses(transactions), nil
}

// CategoryTrends returns per-category monthly series with growth rates.
func (q *Queries) CategoryTrends(ctx context.Context, ownerID string, months int) ([]CategoryTrend, error) {
	if ownerID == "" {
		return []CategoryTrend{}, nil
	}
	transactions, err := q.fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return CategoryTrends(transactions, months, q.now()), nil
}

// SpendingForecast projects the trailing three-month average forward.
func (q *Queries) SpendingForecast(ctx context.Context, ownerID string, months int) (Forecast, error) {
	if ownerID == "" {
		return Forecast{}, nil
	}
	transactions, err := q.fetch(ctx, ownerID)
	if err != nil {
		return Forecast{}, err
	}
	return SpendingForecast(transactions, months, q.now()), nil
}
