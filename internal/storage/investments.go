package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
)

const investmentColumns = `
	id, owner_id, symbol, shares, average_cost, current_price,
	day_change, day_change_percent, total_value, total_gain_loss,
	total_gain_loss_percent, last_updated
`

// GetInvestments retrieves all of an owner's holdings.
func (s *SQLiteStorage) GetInvestments(ctx context.Context, ownerID string) ([]model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+investmentColumns+`
		FROM investments
		WHERE owner_id = ?
		ORDER BY symbol ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var investments []model.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, *inv)
	}
	return investments, rows.Err()
}

// GetInvestmentBySymbol retrieves one holding by owner and symbol.
func (s *SQLiteStorage) GetInvestmentBySymbol(ctx context.Context, ownerID, symbol string) (*model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}
	if err := validateString(symbol, "symbol"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+investmentColumns+`
		FROM investments
		WHERE owner_id = ? AND symbol = ?
	`, ownerID, symbol)

	inv, err := scanInvestment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	return inv, nil
}

// SaveInvestment inserts or fully rewrites a holding.
func (s *SQLiteStorage) SaveInvestment(ctx context.Context, investment *model.Investment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateInvestment(investment); err != nil {
		return err
	}

	var lastUpdated any
	if !investment.LastUpdated.IsZero() {
		lastUpdated = investment.LastUpdated
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO investments (`+investmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			shares = excluded.shares,
			average_cost = excluded.average_cost,
			current_price = excluded.current_price,
			day_change = excluded.day_change,
			day_change_percent = excluded.day_change_percent,
			total_value = excluded.total_value,
			total_gain_loss = excluded.total_gain_loss,
			total_gain_loss_percent = excluded.total_gain_loss_percent,
			last_updated = excluded.last_updated
	`,
		investment.ID,
		investment.OwnerID,
		investment.Symbol,
		investment.Shares,
		investment.AverageCost,
		investment.CurrentPrice,
		investment.DayChange,
		investment.DayChangePercent,
		investment.TotalValue,
		investment.TotalGainLoss,
		investment.TotalGainLossPercent,
		lastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to save investment: %w", err)
	}
	return nil
}

// DeleteInvestment removes a holding.
func (s *SQLiteStorage) DeleteInvestment(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM investments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ReplaceStockPrices swaps out the entire stored price history for a symbol.
func (s *SQLiteStorage) ReplaceStockPrices(ctx context.Context, symbol string, prices []model.StockPrice) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(symbol, "symbol"); err != nil {
		return err
	}

	return s.execTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stock_prices WHERE symbol = ?`, symbol); err != nil {
			return fmt.Errorf("failed to clear stock prices: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO stock_prices (symbol, date, open, high, low, close, volume)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, price := range prices {
			_, err := stmt.ExecContext(ctx,
				symbol, price.Date, price.Open, price.High, price.Low, price.Close, price.Volume)
			if err != nil {
				return fmt.Errorf("failed to insert price for %s: %w", price.Date, err)
			}
		}
		return nil
	})
}

// GetStockPrices retrieves stored daily prices for a symbol within a date
// range, oldest first.
func (s *SQLiteStorage) GetStockPrices(ctx context.Context, symbol, startDate, endDate string) ([]model.StockPrice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(symbol, "symbol"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, date, open, high, low, close, volume
		FROM stock_prices
		WHERE symbol = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`, symbol, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock prices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var prices []model.StockPrice
	for rows.Next() {
		var price model.StockPrice
		err := rows.Scan(&price.Symbol, &price.Date, &price.Open, &price.High,
			&price.Low, &price.Close, &price.Volume)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock price: %w", err)
		}
		prices = append(prices, price)
	}
	return prices, rows.Err()
}

func scanInvestment(scan func(...any) error) (*model.Investment, error) {
	var inv model.Investment
	var lastUpdated sql.NullTime

	err := scan(
		&inv.ID,
		&inv.OwnerID,
		&inv.Symbol,
		&inv.Shares,
		&inv.AverageCost,
		&inv.CurrentPrice,
		&inv.DayChange,
		&inv.DayChangePercent,
		&inv.TotalValue,
		&inv.TotalGainLoss,
		&inv.TotalGainLossPercent,
		&lastUpdated,
	)
	if err != nil {
		return nil, err
	}
	if lastUpdated.Valid {
		inv.LastUpdated = lastUpdated.Time
	}
	return &inv, nil
}
