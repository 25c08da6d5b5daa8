// Package insight turns pre-computed spending aggregates into the dashboard's
// narrative text. Everything here is template interpolation over numbers that
// were already calculated; there is no model and no external call, and the
// same bundle always produces the same report.
package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/cashly/cashly/internal/analytics"
	"github.com/cashly/cashly/internal/model"
)

const (
	// maxCategoryInsights caps the per-category commentary.
	maxCategoryInsights = 3

	// highShareThreshold is the share of total spending, in percent, above
	// which a single category gets called out as excessive.
	highShareThreshold = 30.0

	// reviewChangeThreshold is the month-over-month spending increase, in
	// percent, above which the prediction tells the user to investigate.
	reviewChangeThreshold = 10.0

	// strongSavingsRate is the savings rate, in percent, that earns the
	// enthusiastic reinforcement line.
	strongSavingsRate = 20.0

	// monthsNever stands in for "effectively never" when a goal has no
	// monthly contribution to project from.
	monthsNever = 999
)

// Bundle is everything the engine reads: the aggregation layer's outputs plus
// the caller's active goals.
type Bundle struct {
	Totals       analytics.Totals
	Categories   []analytics.CategorySpend
	TopMerchants []analytics.MerchantSpend
	MonthlyTrend []analytics.TrendPoint
	Goals        []model.FinancialGoal
}

// Highlights are the three fixed headline slots at the top of the report.
type Highlights struct {
	BiggestExpense        string
	OverspendingAlert     string
	PositiveReinforcement string
}

// CategoryInsight comments on one spending category.
type CategoryInsight struct {
	Category   string
	Insight    string
	Suggestion string
}

// Prediction is a forward-looking statement with a suggested follow-up.
type Prediction struct {
	Type       string
	Message    string
	Actionable string
}

// Recommendation follows the roast / recommendation / impact formula.
type Recommendation struct {
	Roast          string
	Recommendation string
	Impact         string
}

// Report is the full narrative bundle rendered by the dashboard.
type Report struct {
	Highlights       Highlights
	CategoryInsights []CategoryInsight
	Predictions      []Prediction
	FunFacts         []string
	Recommendations  []Recommendation
}

// Generate renders the report for one aggregate bundle.
func Generate(bundle Bundle) Report {
	return Report{
		Highlights:       highlights(bundle),
		CategoryInsights: categoryInsights(bundle),
		Predictions:      predictions(bundle),
		FunFacts:         funFacts(bundle),
		Recommendations:  recommendations(bundle),
	}
}

func savingsRate(totals analytics.Totals) float64 {
	if totals.TotalIncome <= 0 {
		return 0
	}
	return (totals.TotalIncome - totals.TotalSpending) / totals.TotalIncome * 100
}

func highlights(bundle Bundle) Highlights {
	h := Highlights{
		BiggestExpense: "No major expenses detected yet!",
	}
	if len(bundle.Categories) > 0 {
		top := bundle.Categories[0]
		h.BiggestExpense = fmt.Sprintf("You spent %s on %s this month... that's a lot of %s!",
			money(top.Amount), top.Category, strings.ToLower(top.Category))
	}

	rate := savingsRate(bundle.Totals)
	if bundle.Totals.NetFlow() < 0 {
		h.OverspendingAlert = fmt.Sprintf("You're spending %s more than you earn this month - time to check those habits!",
			money(-bundle.Totals.NetFlow()))
	} else {
		h.OverspendingAlert = fmt.Sprintf("You're saving %.1f%% of your income - every bit counts!", rate)
	}

	switch {
	case rate > strongSavingsRate:
		h.PositiveReinforcement = fmt.Sprintf("Amazing! You're saving %.1f%% of your income - that's financial discipline!", rate)
	case rate > 0:
		h.PositiveReinforcement = fmt.Sprintf("Keep it up - your %.1f%% savings rate is building real momentum!", rate)
	default:
		h.PositiveReinforcement = "Time to start building those savings habits!"
	}
	return h
}

func categoryInsights(bundle Bundle) []CategoryInsight {
	limit := len(bundle.Categories)
	if limit > maxCategoryInsights {
		limit = maxCategoryInsights
	}
	insights := make([]CategoryInsight, 0, limit)
	for _, category := range bundle.Categories[:limit] {
		share := 0.0
		if bundle.Totals.TotalSpending > 0 {
			share = category.Amount / bundle.Totals.TotalSpending * 100
		}
		verdict := "not too bad."
		if share > highShareThreshold {
			verdict = "that's quite a lot!"
		}
		suggestion, ok := categorySuggestions[category.Category]
		if !ok {
			suggestion = defaultSuggestion
		}
		insights = append(insights, CategoryInsight{
			Category:   category.Category,
			Insight:    fmt.Sprintf("%s is %.1f%% of your spending - %s", category.Category, share, verdict),
			Suggestion: suggestion,
		})
	}
	return insights
}

func predictions(bundle Bundle) []Prediction {
	var predictions []Prediction

	if len(bundle.Goals) > 0 {
		goal := bundle.Goals[0]
		months := monthsNever
		actionable := "Consider setting up automatic monthly contributions."
		if goal.MonthlyContribution > 0 {
			months = int(math.Ceil(goal.Remaining() / goal.MonthlyContribution))
			actionable = "Keep up the consistent contributions!"
		}
		predictions = append(predictions, Prediction{
			Type:       "goal_timeline",
			Message:    fmt.Sprintf("At your current rate, you'll reach your %s goal in %d months.", goal.Title, months),
			Actionable: actionable,
		})
	}

	// Month-over-month delta needs a nonzero previous month to divide by;
	// a zero-spend month simply produces no trend prediction.
	if n := len(bundle.MonthlyTrend); n >= 2 && bundle.MonthlyTrend[n-2].Amount > 0 {
		recent := bundle.MonthlyTrend[n-1].Amount
		previous := bundle.MonthlyTrend[n-2].Amount
		change := (recent - previous) / previous * 100
		direction := "decreased"
		if change > 0 {
			direction = "increased"
		}
		actionable := "Great job controlling your spending!"
		if change > reviewChangeThreshold {
			actionable = "Time to review what caused the increase!"
		}
		predictions = append(predictions, Prediction{
			Type:       "spending_trend",
			Message:    fmt.Sprintf("Your spending %s by %.1f%% this month.", direction, math.Abs(change)),
			Actionable: actionable,
		})
	}

	return predictions
}

func funFacts(bundle Bundle) []string {
	var facts []string

	if len(bundle.TopMerchants) > 0 {
		top := bundle.TopMerchants[0]
		if top.Merchant != "" && top.Count > 0 {
			perVisit := top.TotalAmount / float64(top.Count)
			facts = append(facts, fmt.Sprintf("You've visited %s %d times - that's %s per visit!",
				top.Merchant, top.Count, money(perVisit)))
		}
	}

	if bundle.Totals.TotalSpending > 0 {
		daily := bundle.Totals.TotalSpending / 30
		facts = append(facts, fmt.Sprintf("You spend an average of %s per day - that's like buying %d coffees daily!",
			money(daily), int(math.Round(daily/5))))
	}

	if yearly := bundle.Totals.NetFlow() * 12; yearly > 0 {
		facts = append(facts, fmt.Sprintf("At this rate, you'll save %s this year - that's a nice vacation fund!",
			money(yearly)))
	}

	return facts
}

func recommendations(bundle Bundle) []Recommendation {
	var recs []Recommendation

	if len(bundle.Categories) > 0 && bundle.Totals.TotalSpending > 0 {
		top := bundle.Categories[0]
		if top.Amount/bundle.Totals.TotalSpending*100 > highShareThreshold {
			recs = append(recs, recommendationForCategory(top.Category, top.Amount))
		}
	}

	if bundle.Totals.NetFlow() < 0 {
		recs = append(recs, overspendingRecommendation)
	}

	if len(bundle.Goals) > 0 {
		goal := bundle.Goals[0]
		contribution := goal.MonthlyContribution
		if contribution <= 0 {
			contribution = 100
		}
		recs = append(recs, Recommendation{
			Roast:          "Your goals are collecting dust like your gym membership.",
			Recommendation: "Set up automatic weekly transfers to your goal accounts.",
			Impact:         fmt.Sprintf("Reach your goals %d months faster.", int(math.Round(goal.TargetAmount/contribution))),
		})
	}

	return append(recs, genericTips...)
}

func recommendationForCategory(category string, amount float64) Recommendation {
	lower := strings.ToLower(category)
	for _, rec := range categoryRecommendations {
		if strings.Contains(lower, rec.key) || strings.Contains(rec.key, lower) {
			return Recommendation{
				Roast:          fmt.Sprintf(rec.roast, money(amount)),
				Recommendation: rec.action,
				Impact:         fmt.Sprintf(rec.impactVerb, money(math.Round(amount*rec.savingRate))),
			}
		}
	}
	return defaultCategoryRecommendation(category, amount)
}

// money formats a dollar amount with a thousands separator, e.g. $1,234.56.
func money(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(formatted, '.')
	integer, fraction := formatted[:dot], formatted[dot:]
	for i := len(integer) - 3; i > 0; i -= 3 {
		integer = integer[:i] + "," + integer[i:]
	}
	return "$" + integer + fraction
}
