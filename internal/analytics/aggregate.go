// Package analytics computes derived views over a user's transaction set.
// Every operation is a single pass over an in-memory slice, re-run from
// scratch on each call; nothing here persists or caches intermediate state.
package analytics

import (
	"math"
	"sort"

	"github.com/cashly/cashly/internal/model"
)

// Default window sizes for the aggregation queries.
const (
	DefaultTrendDays           = 30
	DefaultTrendWeeks          = 12
	DefaultTrendMonths         = 12
	DefaultCategoryTrendMonths = 6
	DefaultForecastMonths      = 6
	DefaultMerchantLimit       = 10
)

// CategorySpend is the total spent in one category.
type CategorySpend struct {
	Category string
	Amount   float64
}

// Totals is the income-versus-spending summary. Both fields are positive;
// spending is accumulated as absolute value.
type Totals struct {
	TotalIncome   float64
	TotalSpending float64
}

// NetFlow returns income minus spending; negative means overspending.
func (t Totals) NetFlow() float64 {
	return t.TotalIncome - t.TotalSpending
}

// Balance returns the running balance: the signed sum of every amount.
func Balance(transactions []model.Transaction) float64 {
	var balance float64
	for _, txn := range transactions {
		balance += txn.Amount
	}
	return balance
}

// MerchantSpend is the spending summary for one merchant.
type MerchantSpend struct {
	Merchant    string
	TotalAmount float64
	Count       int
}

// SpendingByCategory filters to debits, groups by category, and sums the
// absolute amounts per group, sorted descending by total. Categories with
// equal totals keep first-seen order from the input slice.
func SpendingByCategory(transactions []model.Transaction) []CategorySpend {
	totals := make(map[string]float64)
	var order []string

	for _, txn := range transactions {
		if !txn.IsDebit() {
			continue
		}
		if _, seen := totals[txn.Category]; !seen {
			order = append(order, txn.Category)
		}
		totals[txn.Category] += math.Abs(txn.Amount)
	}

	result := make([]CategorySpend, 0, len(order))
	for _, category := range order {
		result = append(result, CategorySpend{Category: category, Amount: totals[category]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})
	return result
}

// IncomeVsSpending accumulates positive amounts into income and the absolute
// value of negative amounts into spending in a single pass.
func IncomeVsSpending(transactions []model.Transaction) Totals {
	var totals Totals
	for _, txn := range transactions {
		if txn.Amount > 0 {
			totals.TotalIncome += txn.Amount
		} else {
			totals.TotalSpending += math.Abs(txn.Amount)
		}
	}
	return totals
}

// TopMerchants groups debits by merchant (falling back to the description
// when no merchant label was recorded), accumulates total and count, sorts
// descending by total, and truncates to limit. A limit <= 0 uses
// DefaultMerchantLimit.
func TopMerchants(transactions []model.Transaction, limit int) []MerchantSpend {
	if limit <= 0 {
		limit = DefaultMerchantLimit
	}

	totals := make(map[string]*MerchantSpend)
	var order []string

	for _, txn := range transactions {
		if !txn.IsDebit() {
			continue
		}
		label := txn.MerchantLabel()
		entry, seen := totals[label]
		if !seen {
			entry = &MerchantSpend{Merchant: label}
			totals[label] = entry
			order = append(order, label)
		}
		entry.TotalAmount += math.Abs(txn.Amount)
		entry.Count++
	}

	result := make([]MerchantSpend, 0, len(order))
	for _, label := range order {
		result = append(result, *totals[label])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalAmount > result[j].TotalAmount
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
