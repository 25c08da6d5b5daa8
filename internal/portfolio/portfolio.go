// Package portfolio manages stock holdings and their price data. Derived
// position fields are stored, not computed on read, so every mutation that
// could invalidate them goes through model.Investment.Revalue.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

// DefaultHistoryDays is the price-history window when none is requested.
const DefaultHistoryDays = 30

// Summary aggregates an owner's holdings.
type Summary struct {
	Investments          []model.Investment // largest position first
	TotalValue           float64
	TotalGainLoss        float64
	TotalGainLossPercent float64
	DayChange            float64
	InvestmentCount      int
}

// Portfolio is the investment service.
type Portfolio struct {
	store  service.Storage
	quotes service.QuoteProvider
	logger *slog.Logger
	now    func() time.Time
}

// NewPortfolio creates the investment service.
func NewPortfolio(store service.Storage, quotes service.QuoteProvider) *Portfolio {
	return &Portfolio{
		store:  store,
		quotes: quotes,
		logger: slog.Default().With("component", "portfolio"),
		now:    time.Now,
	}
}

// WithClock overrides the timestamp source for revaluations.
func (p *Portfolio) WithClock(now func() time.Time) *Portfolio {
	p.now = now
	return p
}

// Investments returns the owner's holdings.
func (p *Portfolio) Investments(ctx context.Context, ownerID string) ([]model.Investment, error) {
	if ownerID == "" {
		return []model.Investment{}, nil
	}
	return p.store.GetInvestments(ctx, ownerID)
}

// PortfolioSummary aggregates the owner's holdings into portfolio totals.
// The percent figure is gain over cost basis, where cost basis is current
// value minus gain.
func (p *Portfolio) PortfolioSummary(ctx context.Context, ownerID string) (Summary, error) {
	if ownerID == "" {
		return Summary{}, nil
	}
	investments, err := p.store.GetInvestments(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{InvestmentCount: len(investments)}
	for _, inv := range investments {
		summary.TotalValue += inv.TotalValue
		summary.TotalGainLoss += inv.TotalGainLoss
		summary.DayChange += inv.DayChange * inv.Shares
	}
	if costBasis := summary.TotalValue - summary.TotalGainLoss; summary.TotalValue > 0 && costBasis != 0 {
		summary.TotalGainLossPercent = summary.TotalGainLoss / costBasis * 100
	}

	sort.SliceStable(investments, func(i, j int) bool {
		return investments[i].TotalValue > investments[j].TotalValue
	})
	summary.Investments = investments
	return summary, nil
}

// AddInvestment records a purchase. Buying a symbol already held folds the
// new shares into the position at a weighted average cost and revalues it at
// the last known price; a new symbol starts at price zero until the next
// refresh.
func (p *Portfolio) AddInvestment(ctx context.Context, ownerID, symbol string, shares, cost float64) (*model.Investment, error) {
	if ownerID == "" {
		return nil, common.ErrAuthRequired
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", common.ErrValidation)
	}
	if shares <= 0 {
		return nil, fmt.Errorf("%w: shares must be positive", common.ErrValidation)
	}
	if cost < 0 {
		return nil, fmt.Errorf("%w: cost cannot be negative", common.ErrValidation)
	}

	existing, err := p.store.GetInvestmentBySymbol(ctx, ownerID, symbol)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("looking up %s: %w", symbol, err)
	}

	if existing != nil {
		existing.AddShares(shares, cost)
		existing.Revalue(existing.CurrentPrice, existing.DayChange, existing.DayChangePercent, p.now())
		if err := p.store.SaveInvestment(ctx, existing); err != nil {
			return nil, fmt.Errorf("saving %s: %w", symbol, err)
		}
		p.logger.Info("Added shares to position",
			"symbol", symbol, "shares", shares, "total_shares", existing.Shares)
		return existing, nil
	}

	investment := &model.Investment{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Symbol:      symbol,
		Shares:      shares,
		AverageCost: cost,
	}
	if err := p.store.SaveInvestment(ctx, investment); err != nil {
		return nil, fmt.Errorf("saving %s: %w", symbol, err)
	}
	p.logger.Info("Opened position", "symbol", symbol, "shares", shares)
	return investment, nil
}

// RefreshPrices pulls a current quote for each holding and revalues it.
// A failed quote skips that symbol; the refresh carries on and reports how
// many positions were updated.
func (p *Portfolio) RefreshPrices(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, common.ErrAuthRequired
	}
	investments, err := p.store.GetInvestments(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range investments {
		inv := &investments[i]
		quote, err := p.quotes.CurrentQuote(ctx, inv.Symbol)
		if err != nil {
			p.logger.Warn("Skipping price refresh", "symbol", inv.Symbol, "error", err)
			continue
		}
		inv.Revalue(quote.Price, quote.DayChange, quote.DayChangePercent, p.now())
		if err := p.store.SaveInvestment(ctx, inv); err != nil {
			return updated, fmt.Errorf("saving %s: %w", inv.Symbol, err)
		}
		updated++
	}

	p.logger.Info("Refreshed prices", "owner", ownerID, "updated", updated, "holdings", len(investments))
	return updated, nil
}

// RefreshHistory replaces the stored daily price history for one symbol.
// Price history is keyed by symbol alone; it is shared market data, not
// owner-scoped.
func (p *Portfolio) RefreshHistory(ctx context.Context, symbol string, days int) (int, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, fmt.Errorf("%w: symbol is required", common.ErrValidation)
	}
	if days <= 0 {
		days = DefaultHistoryDays
	}

	prices, err := p.quotes.DailyHistory(ctx, symbol, days)
	if err != nil {
		return 0, fmt.Errorf("fetching history for %s: %w", symbol, err)
	}
	if err := p.store.ReplaceStockPrices(ctx, symbol, prices); err != nil {
		return 0, fmt.Errorf("storing history for %s: %w", symbol, err)
	}
	return len(prices), nil
}

// PriceHistory returns stored daily prices for the trailing window.
func (p *Portfolio) PriceHistory(ctx context.Context, symbol string, days int) ([]model.StockPrice, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if days <= 0 {
		days = DefaultHistoryDays
	}
	end := p.now()
	start := end.AddDate(0, 0, -days)
	return p.store.GetStockPrices(ctx, symbol,
		start.Format(model.DateLayout), end.Format(model.DateLayout))
}

// DeleteInvestment removes an owned holding.
func (p *Portfolio) DeleteInvestment(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return common.ErrAuthRequired
	}
	investments, err := p.store.GetInvestments(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, inv := range investments {
		if inv.ID == id {
			return p.store.DeleteInvestment(ctx, id)
		}
	}
	return common.ErrNotFound
}
