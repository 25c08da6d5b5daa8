package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashly/cashly/internal/model"
)

func TestSpendingForecast_FlatProjection(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-01-10", 300, "Food", "Chipotle"),
		debit("2024-02-10", 600, "Food", "Chipotle"),
		debit("2024-03-10", 300, "Food", "Chipotle"),
	}

	forecast := SpendingForecast(transactions, 6, ref)

	assert.InDelta(t, 400, forecast.MonthlyAverage, 0.001)
	require.Len(t, forecast.Projection, 6)
	assert.Equal(t, "2024-04", forecast.Projection[0].Period)
	assert.Equal(t, "2024-09", forecast.Projection[5].Period)
	for _, point := range forecast.Projection {
		assert.InDelta(t, 400, point.Amount, 0.001)
	}
}

func TestSpendingForecast_UsesOnlyTrailingThreeMonths(t *testing.T) {
	// A huge spend four months back must not move the average.
	transactions := []model.Transaction{
		debit("2023-11-10", 9000, "Shopping", "Amazon"),
		debit("2024-01-10", 300, "Food", "Chipotle"),
		debit("2024-02-10", 300, "Food", "Chipotle"),
		debit("2024-03-10", 300, "Food", "Chipotle"),
	}

	forecast := SpendingForecast(transactions, 3, ref)

	assert.InDelta(t, 300, forecast.MonthlyAverage, 0.001)
}

func TestSpendingForecast_Insights(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-03-10", 300, "Food", "Chipotle"),
		debit("2024-03-11", 100, "Coffee Shops", "Starbucks"),
	}

	forecast := SpendingForecast(transactions, 6, ref)

	require.Len(t, forecast.Insights, 2)
	assert.Equal(t, "Yearly projection", forecast.Insights[0].Title)
	assert.Contains(t, forecast.Insights[0].Message, "$1600.00")
	assert.Equal(t, "Top category", forecast.Insights[1].Title)
	assert.Contains(t, forecast.Insights[1].Message, "Food")
	assert.Contains(t, forecast.Insights[1].Message, "75.0%")
}

func TestSpendingForecast_EmptySet(t *testing.T) {
	forecast := SpendingForecast(nil, 6, ref)

	require.Len(t, forecast.Projection, 6)
	for _, point := range forecast.Projection {
		assert.Zero(t, point.Amount)
	}
	assert.Empty(t, forecast.Insights)
}
