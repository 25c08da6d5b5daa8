package analytics

import (
	"fmt"
	"time"

	"github.com/cashly/cashly/internal/model"
)

// trailingMonths is how far back the forecast looks when averaging spend.
const trailingMonths = 3

// ForecastInsight is a short narrative generated alongside a forecast.
type ForecastInsight struct {
	Title   string
	Message string
}

// Forecast projects spending forward by repeating the trailing average.
// There is deliberately no trend or seasonality model.
type Forecast struct {
	Projection     []TrendPoint
	Insights       []ForecastInsight
	MonthlyAverage float64
}

// SpendingForecast averages monthly spend over the trailing three months and
// projects that flat average forward `months` months. It generates at most
// two narrative insights: a yearly projection and the top spending category
// with its share.
func SpendingForecast(transactions []model.Transaction, months int, ref time.Time) Forecast {
	if months <= 0 {
		months = DefaultForecastMonths
	}

	trailing := MonthlyTrend(transactions, trailingMonths, ref)
	var sum float64
	for _, point := range trailing {
		sum += point.Amount
	}
	average := sum / trailingMonths

	anchor := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	projection := make([]TrendPoint, 0, months)
	for i := 1; i <= months; i++ {
		projection = append(projection, TrendPoint{
			Period: anchor.AddDate(0, i, 0).Format("2006-01"),
			Amount: average,
		})
	}

	forecast := Forecast{
		Projection:     projection,
		MonthlyAverage: average,
	}

	if average > 0 {
		forecast.Insights = append(forecast.Insights, ForecastInsight{
			Title:   "Yearly projection",
			Message: fmt.Sprintf("At your current pace you'll spend $%.2f over the next 12 months.", average*12),
		})
	}

	byCategory := SpendingByCategory(transactions)
	if len(byCategory) > 0 {
		totals := IncomeVsSpending(transactions)
		top := byCategory[0]
		share := 0.0
		if totals.TotalSpending > 0 {
			share = top.Amount / totals.TotalSpending * 100
		}
		forecast.Insights = append(forecast.Insights, ForecastInsight{
			Title:   "Top category",
			Message: fmt.Sprintf("%s is your biggest expense at $%.2f (%.1f%% of spending).", top.Category, top.Amount, share),
		})
	}

	return forecast
}
