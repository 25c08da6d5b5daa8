package model

import "time"

// Investment is a single stock holding. The Total* fields are derived from
// shares and price but stored rather than computed on read; they go stale
// until Revalue is called after a price refresh.
type Investment struct {
	LastUpdated          time.Time
	ID                   string
	OwnerID              string
	Symbol               string // always uppercased
	Shares               float64
	AverageCost          float64
	CurrentPrice         float64
	DayChange            float64
	DayChangePercent     float64
	TotalValue           float64
	TotalGainLoss        float64
	TotalGainLossPercent float64
}

// Revalue recomputes every derived field from shares, average cost, and the
// given quote. It is the single place derived investment state is written,
// so callers cannot update one field and leave the others stale.
func (i *Investment) Revalue(price, dayChange, dayChangePercent float64, at time.Time) {
	i.CurrentPrice = price
	i.DayChange = dayChange
	i.DayChangePercent = dayChangePercent
	i.TotalValue = i.Shares * price
	i.TotalGainLoss = (price - i.AverageCost) * i.Shares
	if i.AverageCost > 0 {
		i.TotalGainLossPercent = (price - i.AverageCost) / i.AverageCost * 100
	} else {
		i.TotalGainLossPercent = 0
	}
	i.LastUpdated = at
}

// AddShares folds an additional purchase into the position using a weighted
// average cost basis. Derived fields are not touched; call Revalue after.
func (i *Investment) AddShares(shares, cost float64) {
	totalShares := i.Shares + shares
	if totalShares <= 0 {
		return
	}
	totalCost := i.Shares*i.AverageCost + shares*cost
	i.Shares = totalShares
	i.AverageCost = totalCost / totalShares
}

// StockPrice is one day of price history for a symbol.
type StockPrice struct {
	Symbol string
	Date   string // calendar day, YYYY-MM-DD
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}
