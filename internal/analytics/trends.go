package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/cashly/cashly/internal/model"
)

// TrendPoint is one bucket of a spending time series. Period is a day
// (YYYY-MM-DD), the Monday of an ISO week (YYYY-MM-DD), or a month
// (YYYY-MM), depending on which trend produced it.
type TrendPoint struct {
	Period string
	Amount float64
}

// CategoryTrend is a per-category monthly series with its growth rate over
// the window, in percent.
type CategoryTrend struct {
	Category   string
	Series     []TrendPoint
	GrowthRate float64
}

// DailyTrend buckets debits by calendar day over the window of `days` days
// ending at ref. Every day in the window appears in the output; days with no
// spending carry a zero amount so charts have no gaps.
func DailyTrend(transactions []model.Transaction, days int, ref time.Time) []TrendPoint {
	if days <= 0 {
		days = DefaultTrendDays
	}

	byDay := bucketDebits(transactions, func(d time.Time) string {
		return d.Format(model.DateLayout)
	})

	end := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	series := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := end.AddDate(0, 0, -i).Format(model.DateLayout)
		series = append(series, TrendPoint{Period: key, Amount: byDay[key]})
	}
	return series
}

// WeeklyTrend buckets debits by ISO week (starting Monday) over the window
// of `weeks` weeks ending at the week containing ref. Periods are labeled
// with the Monday of each week, and weeks with no spending are zero-filled.
func WeeklyTrend(transactions []model.Transaction, weeks int, ref time.Time) []TrendPoint {
	if weeks <= 0 {
		weeks = DefaultTrendWeeks
	}

	byWeek := bucketDebits(transactions, func(d time.Time) string {
		return weekStart(d).Format(model.DateLayout)
	})

	end := weekStart(time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC))
	series := make([]TrendPoint, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		key := end.AddDate(0, 0, -7*i).Format(model.DateLayout)
		series = append(series, TrendPoint{Period: key, Amount: byWeek[key]})
	}
	return series
}

// MonthlyTrend buckets debits by calendar month (YYYY-MM) over the window of
// `months` months ending at the month containing ref, zero-filling months
// with no spending.
func MonthlyTrend(transactions []model.Transaction, months int, ref time.Time) []TrendPoint {
	if months <= 0 {
		months = DefaultTrendMonths
	}

	byMonth := bucketDebits(transactions, func(d time.Time) string {
		return d.Format("2006-01")
	})

	end := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	series := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		key := end.AddDate(0, -i, 0).Format("2006-01")
		series = append(series, TrendPoint{Period: key, Amount: byMonth[key]})
	}
	return series
}

// CategoryTrends builds an N-month series per category and computes each
// category's growth rate as (last-first)/first*100. A category with zero
// spending in the first month reports exactly 0% growth, never infinity;
// this degenerate-denominator policy is deliberate.
func CategoryTrends(transactions []model.Transaction, months int, ref time.Time) []CategoryTrend {
	if months <= 0 {
		months = DefaultCategoryTrendMonths
	}

	byCategory := make(map[string][]model.Transaction)
	var order []string
	for _, txn := range transactions {
		if !txn.IsDebit() {
			continue
		}
		if _, seen := byCategory[txn.Category]; !seen {
			order = append(order, txn.Category)
		}
		byCategory[txn.Category] = append(byCategory[txn.Category], txn)
	}

	trends := make([]CategoryTrend, 0, len(order))
	for _, category := range order {
		series := MonthlyTrend(byCategory[category], months, ref)

		var growth float64
		first := series[0].Amount
		last := series[len(series)-1].Amount
		if first > 0 {
			growth = (last - first) / first * 100
		}

		trends = append(trends, CategoryTrend{
			Category:   category,
			Series:     series,
			GrowthRate: growth,
		})
	}
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].GrowthRate > trends[j].GrowthRate
	})
	return trends
}

// bucketDebits sums the absolute amounts of debit transactions into buckets
// keyed by the given period function. Transactions with unparseable dates
// are skipped.
func bucketDebits(transactions []model.Transaction, period func(time.Time) string) map[string]float64 {
	buckets := make(map[string]float64)
	for _, txn := range transactions {
		if !txn.IsDebit() {
			continue
		}
		day, err := time.Parse(model.DateLayout, txn.Date)
		if err != nil {
			continue
		}
		buckets[period(day)] += math.Abs(txn.Amount)
	}
	return buckets
}

// weekStart returns the Monday of the ISO week containing t.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
