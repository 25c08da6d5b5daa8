package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashly/cashly/internal/analytics"
	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

type fakeStore struct {
	service.Storage
	transactions []model.Transaction
	goals        []model.FinancialGoal
	insights     []model.Insight
}

func (f *fakeStore) GetTransactions(_ context.Context, _ string, _ service.TransactionFilter) ([]model.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeStore) GetActiveGoals(_ context.Context, _ string) ([]model.FinancialGoal, error) {
	return f.goals, nil
}

func (f *fakeStore) CreateInsight(_ context.Context, insight *model.Insight) error {
	f.insights = append(f.insights, *insight)
	return nil
}

func (f *fakeStore) GetInsightByID(_ context.Context, id string) (*model.Insight, error) {
	for i := range f.insights {
		if f.insights[i].ID == id {
			copied := f.insights[i]
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) MarkInsightRead(_ context.Context, id string) error {
	for i := range f.insights {
		if f.insights[i].ID == id {
			f.insights[i].IsRead = true
			return nil
		}
	}
	return common.ErrNotFound
}

func TestReporter_RejectsUnauthenticatedCaller(t *testing.T) {
	store := &fakeStore{}
	reporter := NewReporter(analytics.NewQueries(store), store)

	_, err := reporter.GenerateForOwner(context.Background(), "")

	assert.ErrorIs(t, err, common.ErrAuthRequired)
}

func TestReporter_GeneratesFromStoredData(t *testing.T) {
	store := &fakeStore{
		transactions: []model.Transaction{
			{Date: "2024-03-01", Category: "Food and Drink", Merchant: "Chipotle", Amount: -120, Type: model.TypeDebit},
			{Date: "2024-03-05", Category: "Income", Amount: 1000, Type: model.TypeCredit},
		},
		goals: []model.FinancialGoal{{
			Title:               "Laptop",
			TargetAmount:        1200,
			CurrentAmount:       200,
			MonthlyContribution: 100,
			IsActive:            true,
		}},
	}
	reporter := NewReporter(analytics.NewQueries(store), store)

	report, err := reporter.GenerateForOwner(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t,
		"You spent $120.00 on Food and Drink this month... that's a lot of food and drink!",
		report.Highlights.BiggestExpense)
	require.NotEmpty(t, report.Predictions)
	assert.Equal(t, "At your current rate, you'll reach your Laptop goal in 10 months.", report.Predictions[0].Message)
}

func TestCreateInsight(t *testing.T) {
	store := &fakeStore{}
	reporter := NewReporter(analytics.NewQueries(store), store)
	ctx := context.Background()

	insight, err := reporter.CreateInsight(ctx, "user-1", CreateInsightInput{
		Type:     model.InsightSpendingPattern,
		Title:    "Top category",
		Content:  "Food and Drink was your biggest expense.",
		Severity: model.SeverityInfo,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, insight.ID)
	assert.Equal(t, "user-1", insight.OwnerID)
	assert.False(t, insight.IsRead, "insights start unread")

	_, err = reporter.CreateInsight(ctx, "", CreateInsightInput{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, common.ErrAuthRequired)

	_, err = reporter.CreateInsight(ctx, "user-1", CreateInsightInput{Content: "no title"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestMarkRead_EnforcesOwnership(t *testing.T) {
	store := &fakeStore{}
	reporter := NewReporter(analytics.NewQueries(store), store)
	ctx := context.Background()

	insight, err := reporter.CreateInsight(ctx, "user-1", CreateInsightInput{
		Type:     model.InsightHumorousRoast,
		Title:    "Coffee check",
		Content:  "That's a lot of lattes.",
		Severity: model.SeverityWarning,
	})
	require.NoError(t, err)

	err = reporter.MarkRead(ctx, "user-2", insight.ID)
	assert.ErrorIs(t, err, common.ErrNotFound, "someone else's insight reads as missing")

	require.NoError(t, reporter.MarkRead(ctx, "user-1", insight.ID))
	assert.True(t, store.insights[0].IsRead)
}

func TestInsights_EmptyOwnerDegradesSilently(t *testing.T) {
	store := &fakeStore{}
	reporter := NewReporter(analytics.NewQueries(store), store)

	insights, err := reporter.Insights(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, insights)

	unread, err := reporter.UnreadInsights(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, unread)
}
