package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashly/cashly/internal/model"
)

var ref = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestDailyTrend_WindowIsAlwaysFull(t *testing.T) {
	series := DailyTrend(nil, 30, ref)

	require.Len(t, series, 30)
	for _, point := range series {
		assert.Zero(t, point.Amount)
	}
	assert.Equal(t, "2024-02-15", series[0].Period)
	assert.Equal(t, "2024-03-15", series[29].Period)
}

func TestDailyTrend_BucketsAndZeroFills(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-03-14", 25, "Food", "Chipotle"),
		debit("2024-03-14", 15, "Food", "Chipotle"),
		debit("2024-03-10", 60, "Shopping", "Amazon"),
		credit("2024-03-14", 500, "Income"),
		debit("2023-12-01", 99, "Food", "Chipotle"), // outside window
	}

	series := DailyTrend(transactions, 7, ref)

	require.Len(t, series, 7)
	byPeriod := make(map[string]float64)
	for _, point := range series {
		byPeriod[point.Period] = point.Amount
	}
	assert.InDelta(t, 40, byPeriod["2024-03-14"], 0.001)
	assert.InDelta(t, 60, byPeriod["2024-03-10"], 0.001)
	assert.Zero(t, byPeriod["2024-03-12"])
	assert.NotContains(t, byPeriod, "2023-12-01")
}

func TestDailyTrend_WindowBounds(t *testing.T) {
	series := DailyTrend(nil, 7, ref)
	require.Len(t, series, 7)
	assert.Equal(t, "2024-03-09", series[0].Period)
	assert.Equal(t, "2024-03-15", series[6].Period)
}

func TestWeeklyTrend_WindowIsAlwaysFull(t *testing.T) {
	series := WeeklyTrend(nil, 12, ref)

	require.Len(t, series, 12)
	for _, point := range series {
		assert.Zero(t, point.Amount)
	}
	// 2024-03-15 is a Friday; its ISO week starts Monday 2024-03-11.
	assert.Equal(t, "2024-03-11", series[11].Period)
	assert.Equal(t, "2023-12-25", series[0].Period)
}

func TestWeeklyTrend_BucketsByISOWeek(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-03-11", 10, "Food", "Chipotle"), // Monday
		debit("2024-03-15", 20, "Food", "Chipotle"), // Friday, same week
		debit("2024-03-10", 40, "Food", "Chipotle"), // Sunday, previous week
	}

	series := WeeklyTrend(transactions, 2, ref)

	require.Len(t, series, 2)
	assert.Equal(t, "2024-03-04", series[0].Period)
	assert.InDelta(t, 40, series[0].Amount, 0.001)
	assert.Equal(t, "2024-03-11", series[1].Period)
	assert.InDelta(t, 30, series[1].Amount, 0.001)
}

func TestMonthlyTrend_WindowIsAlwaysFull(t *testing.T) {
	series := MonthlyTrend(nil, 12, ref)

	require.Len(t, series, 12)
	assert.Equal(t, "2023-04", series[0].Period)
	assert.Equal(t, "2024-03", series[11].Period)
}

func TestMonthlyTrend_ZeroFillsGaps(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-01-10", 100, "Food", "Chipotle"),
		debit("2024-03-10", 300, "Food", "Chipotle"),
	}

	series := MonthlyTrend(transactions, 3, ref)

	require.Len(t, series, 3)
	assert.Equal(t, TrendPoint{Period: "2024-01", Amount: 100}, series[0])
	assert.Equal(t, TrendPoint{Period: "2024-02", Amount: 0}, series[1])
	assert.Equal(t, TrendPoint{Period: "2024-03", Amount: 300}, series[2])
}

func TestCategoryTrends_GrowthRate(t *testing.T) {
	transactions := []model.Transaction{
		debit("2023-10-05", 100, "Food", "Chipotle"),
		debit("2024-03-05", 150, "Food", "Chipotle"),
	}

	trends := CategoryTrends(transactions, 6, ref)

	require.Len(t, trends, 1)
	assert.Equal(t, "Food", trends[0].Category)
	require.Len(t, trends[0].Series, 6)
	assert.InDelta(t, 50, trends[0].GrowthRate, 0.001)
}

func TestCategoryTrends_ZeroFirstMonthIsZeroGrowth(t *testing.T) {
	// No spending in the first month of the window but plenty later must
	// report 0% growth, not +Inf.
	transactions := []model.Transaction{
		debit("2024-03-05", 500, "Shopping", "Amazon"),
	}

	trends := CategoryTrends(transactions, 6, ref)

	require.Len(t, trends, 1)
	assert.Zero(t, trends[0].GrowthRate)
}

func TestCategoryTrends_SortsByGrowth(t *testing.T) {
	transactions := []model.Transaction{
		debit("2023-10-05", 100, "Food", "Chipotle"),
		debit("2024-03-05", 300, "Food", "Chipotle"), // +200%
		debit("2023-10-05", 100, "Transportation", "Uber"),
		debit("2024-03-05", 110, "Transportation", "Uber"), // +10%
	}

	trends := CategoryTrends(transactions, 6, ref)

	require.Len(t, trends, 2)
	assert.Equal(t, "Food", trends[0].Category)
	assert.Equal(t, "Transportation", trends[1].Category)
}
