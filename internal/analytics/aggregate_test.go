package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashly/cashly/internal/model"
)

func debit(date string, amount float64, category, merchant string) model.Transaction {
	return model.Transaction{
		Date:        date,
		Description: merchant,
		Merchant:    merchant,
		Category:    category,
		Amount:      -amount,
		Type:        model.TypeDebit,
	}
}

func credit(date string, amount float64, category string) model.Transaction {
	return model.Transaction{
		Date:     date,
		Category: category,
		Amount:   amount,
		Type:     model.TypeCredit,
	}
}

func TestSpendingByCategory(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-03-01", 50, "Food", "Chipotle"),
		debit("2024-03-05", 150, "Food", "Whole Foods"),
		credit("2024-03-10", 100, "Income"),
	}

	result := SpendingByCategory(transactions)

	require.Len(t, result, 1)
	assert.Equal(t, "Food", result[0].Category)
	assert.InDelta(t, 200, result[0].Amount, 0.001)
}

func TestSpendingByCategory_SortsDescending(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-03-01", 10, "Coffee Shops", "Starbucks"),
		debit("2024-03-02", 300, "Shopping", "Amazon"),
		debit("2024-03-03", 80, "Transportation", "Uber"),
	}

	result := SpendingByCategory(transactions)

	require.Len(t, result, 3)
	assert.Equal(t, "Shopping", result[0].Category)
	assert.Equal(t, "Transportation", result[1].Category)
	assert.Equal(t, "Coffee Shops", result[2].Category)
}

func TestSpendingByCategory_TiesKeepInsertionOrder(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-03-01", 75, "Food", "Chipotle"),
		debit("2024-03-02", 75, "Entertainment", "Netflix"),
	}

	result := SpendingByCategory(transactions)

	require.Len(t, result, 2)
	assert.Equal(t, "Food", result[0].Category)
	assert.Equal(t, "Entertainment", result[1].Category)
}

func TestSpendingByCategory_Empty(t *testing.T) {
	assert.Empty(t, SpendingByCategory(nil))
}

func TestIncomeVsSpending(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-03-01", 50, "Food", "Chipotle"),
		debit("2024-03-05", 150, "Food", "Whole Foods"),
		credit("2024-03-10", 100, "Income"),
	}

	totals := IncomeVsSpending(transactions)

	assert.InDelta(t, 100, totals.TotalIncome, 0.001)
	assert.InDelta(t, 200, totals.TotalSpending, 0.001)
	assert.InDelta(t, -100, totals.NetFlow(), 0.001)
}

// Category totals must always reconcile with the income-vs-spending summary.
func TestCategoryTotalsMatchSpendingTotal(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-01-15", 42.50, "Food", "Chipotle"),
		debit("2024-01-20", 17.25, "Coffee Shops", "Starbucks"),
		debit("2024-02-01", 130, "Shopping", "Amazon"),
		debit("2024-02-14", 60, "Entertainment", "AMC"),
		credit("2024-02-15", 1200, "Income"),
		debit("2024-02-28", 9.99, "Entertainment", "Netflix"),
	}

	var byCategory float64
	for _, entry := range SpendingByCategory(transactions) {
		byCategory += entry.Amount
	}

	totals := IncomeVsSpending(transactions)
	assert.InDelta(t, totals.TotalSpending, byCategory, 0.001)
}

func TestTopMerchants(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-03-01", 20, "Food", "Chipotle"),
		debit("2024-03-02", 30, "Food", "Chipotle"),
		debit("2024-03-03", 5, "Coffee Shops", "Starbucks"),
		credit("2024-03-04", 500, "Income"),
	}

	result := TopMerchants(transactions, 10)

	require.Len(t, result, 2)
	assert.Equal(t, "Chipotle", result[0].Merchant)
	assert.InDelta(t, 50, result[0].TotalAmount, 0.001)
	assert.Equal(t, 2, result[0].Count)
	assert.Equal(t, "Starbucks", result[1].Merchant)
}

func TestTopMerchants_FallsBackToDescription(t *testing.T) {
	transactions := []model.Transaction{
		{Date: "2024-03-01", Description: "CARD PURCHASE 1234", Amount: -25, Type: model.TypeDebit},
		{Date: "2024-03-02", Description: "CARD PURCHASE 1234", Amount: -25, Type: model.TypeDebit},
	}

	result := TopMerchants(transactions, 10)

	require.Len(t, result, 1)
	assert.Equal(t, "CARD PURCHASE 1234", result[0].Merchant)
	assert.Equal(t, 2, result[0].Count)
}

func TestTopMerchants_TruncatesToLimit(t *testing.T) {
	transactions := []model.Transaction{
		debit("2024-03-01", 10, "Food", "A"),
		debit("2024-03-01", 20, "Food", "B"),
		debit("2024-03-01", 30, "Food", "C"),
		debit("2024-03-01", 40, "Food", "D"),
	}

	result := TopMerchants(transactions, 2)

	require.Len(t, result, 2)
	assert.Equal(t, "D", result[0].Merchant)
	assert.Equal(t, "C", result[1].Merchant)
}

func TestBalance(t *testing.T) {
	transactions := []model.Transaction{
		credit("2024-03-01", 1000, "Income"),
		debit("2024-03-05", 150, "Food", "Whole Foods"),
		debit("2024-03-10", 50, "Food", "Chipotle"),
	}

	assert.InDelta(t, 800, Balance(transactions), 0.001)
	assert.InDelta(t, 0, Balance(nil), 0.001)
}
