package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
)

func testInvestment(id, ownerID, symbol string) *model.Investment {
	return &model.Investment{
		ID:          id,
		OwnerID:     ownerID,
		Symbol:      symbol,
		Shares:      10,
		AverageCost: 150,
	}
}

func TestSaveAndGetInvestment(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveInvestment(ctx, testInvestment("inv-1", "user-1", "AAPL")))

	inv, err := store.GetInvestmentBySymbol(ctx, "user-1", "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", inv.ID)
	assert.InDelta(t, 10, inv.Shares, 0.001)
	assert.True(t, inv.LastUpdated.IsZero(), "no refresh has happened yet")
}

func TestSaveInvestment_UpsertsByID(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	inv := testInvestment("inv-1", "user-1", "AAPL")
	require.NoError(t, store.SaveInvestment(ctx, inv))

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	inv.AddShares(10, 250)
	inv.Revalue(200, 2.5, 1.25, now)
	require.NoError(t, store.SaveInvestment(ctx, inv))

	reloaded, err := store.GetInvestmentBySymbol(ctx, "user-1", "AAPL")
	require.NoError(t, err)
	assert.InDelta(t, 20, reloaded.Shares, 0.001)
	assert.InDelta(t, 200, reloaded.AverageCost, 0.001)
	assert.InDelta(t, 4000, reloaded.TotalValue, 0.001)
	assert.True(t, reloaded.LastUpdated.Equal(now))

	investments, err := store.GetInvestments(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, investments, 1, "upsert must not create a second row")
}

func TestGetInvestments_SortedBySymbol(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveInvestment(ctx, testInvestment("inv-1", "user-1", "MSFT")))
	require.NoError(t, store.SaveInvestment(ctx, testInvestment("inv-2", "user-1", "AAPL")))
	require.NoError(t, store.SaveInvestment(ctx, testInvestment("inv-3", "user-2", "GOOG")))

	investments, err := store.GetInvestments(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, investments, 2)
	assert.Equal(t, "AAPL", investments[0].Symbol)
	assert.Equal(t, "MSFT", investments[1].Symbol)
}

func TestGetInvestmentBySymbol_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetInvestmentBySymbol(context.Background(), "user-1", "TSLA")

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteInvestment_Storage(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveInvestment(ctx, testInvestment("inv-1", "user-1", "AAPL")))
	require.NoError(t, store.DeleteInvestment(ctx, "inv-1"))

	assert.ErrorIs(t, store.DeleteInvestment(ctx, "inv-1"), common.ErrNotFound)
}

func TestReplaceStockPrices(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	stale := []model.StockPrice{
		{Symbol: "AAPL", Date: "2024-02-01", Close: 180},
	}
	require.NoError(t, store.ReplaceStockPrices(ctx, "AAPL", stale))

	fresh := []model.StockPrice{
		{Symbol: "AAPL", Date: "2024-03-01", Open: 170, High: 175, Low: 169, Close: 174, Volume: 1000},
		{Symbol: "AAPL", Date: "2024-03-04", Open: 174, High: 178, Low: 173, Close: 177, Volume: 1200},
		{Symbol: "AAPL", Date: "2024-03-05", Open: 177, High: 180, Low: 176, Close: 179, Volume: 900},
	}
	require.NoError(t, store.ReplaceStockPrices(ctx, "AAPL", fresh))

	prices, err := store.GetStockPrices(ctx, "AAPL", "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	require.Len(t, prices, 3, "replace wipes the old history")
	assert.Equal(t, "2024-03-01", prices[0].Date, "oldest first")
	assert.InDelta(t, 179, prices[2].Close, 0.001)
	assert.Equal(t, int64(1200), prices[1].Volume)
}

func TestGetStockPrices_RangeBounds(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	history := []model.StockPrice{
		{Symbol: "AAPL", Date: "2024-03-01", Close: 174},
		{Symbol: "AAPL", Date: "2024-03-04", Close: 177},
		{Symbol: "AAPL", Date: "2024-03-05", Close: 179},
	}
	require.NoError(t, store.ReplaceStockPrices(ctx, "AAPL", history))

	prices, err := store.GetStockPrices(ctx, "AAPL", "2024-03-04", "2024-03-04")
	require.NoError(t, err)
	require.Len(t, prices, 1, "range bounds are inclusive")
	assert.Equal(t, "2024-03-04", prices[0].Date)
}
