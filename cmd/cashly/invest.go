package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashly/cashly/internal/cli"
	"github.com/cashly/cashly/internal/config"
	"github.com/cashly/cashly/internal/portfolio"
	"github.com/cashly/cashly/internal/service"
	"github.com/cashly/cashly/internal/stocks"
)

func investCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invest",
		Short: "Track your stock holdings",
	}

	cmd.AddCommand(investAddCmd())
	cmd.AddCommand(investListCmd())
	cmd.AddCommand(investSummaryCmd())
	cmd.AddCommand(investRefreshCmd())
	cmd.AddCommand(investHistoryCmd())
	cmd.AddCommand(investDeleteCmd())

	return cmd
}

// initPortfolio wires the portfolio service. Commands that only read stored
// holdings pass quotes=false and work without an API key.
func initPortfolio(ctx context.Context, quotes bool) (service.Storage, *portfolio.Portfolio, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	var provider service.QuoteProvider
	if quotes {
		key, err := config.AlphaVantageKey()
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		provider, err = stocks.NewClient(key)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
	}

	return store, portfolio.NewPortfolio(store, provider), nil
}

func investAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <symbol>",
		Short: "Record a stock purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			shares, _ := cmd.Flags().GetFloat64("shares")
			cost, _ := cmd.Flags().GetFloat64("cost")

			store, p, err := initPortfolio(ctx, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			investment, err := p.AddInvestment(ctx, currentUser(), args[0], shares, cost)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Holding %.2f shares of %s at %s average cost",
				cli.StockIcon, investment.Shares, investment.Symbol, cli.Money(investment.AverageCost))))
			return nil
		},
	}

	cmd.Flags().Float64("shares", 0, "number of shares bought")
	cmd.Flags().Float64("cost", 0, "price paid per share")
	_ = cmd.MarkFlagRequired("shares")
	_ = cmd.MarkFlagRequired("cost")

	return cmd
}

func investListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your holdings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, p, err := initPortfolio(ctx, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			investments, err := p.Investments(ctx, currentUser())
			if err != nil {
				return err
			}

			if len(investments) == 0 {
				fmt.Println(cli.FormatInfo("No holdings yet"))
				return nil
			}

			table := cli.NewTable("Symbol", "Shares", "Avg Cost", "Price", "Value", "Gain/Loss", "ID")
			for _, inv := range investments {
				table.AddRow(
					inv.Symbol,
					fmt.Sprintf("%.2f", inv.Shares),
					cli.Money(inv.AverageCost),
					cli.Money(inv.CurrentPrice),
					cli.Money(inv.TotalValue),
					cli.FormatAmount(cli.Money(inv.TotalGainLoss), inv.TotalGainLoss),
					inv.ID,
				)
			}
			fmt.Print(table.Render())
			return nil
		},
	}
}

func investSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Portfolio totals, largest positions first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, p, err := initPortfolio(ctx, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := p.PortfolioSummary(ctx, currentUser())
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Portfolio: %s across %d holdings",
				cli.Money(summary.TotalValue), summary.InvestmentCount)))
			fmt.Printf("  Gain/loss: %s (%.2f%%)\n",
				cli.FormatAmount(cli.Money(summary.TotalGainLoss), summary.TotalGainLoss),
				summary.TotalGainLossPercent)
			fmt.Printf("  Day change: %s\n",
				cli.FormatAmount(cli.Money(summary.DayChange), summary.DayChange))

			for _, inv := range summary.Investments {
				fmt.Printf("  %s %-6s %s\n", cli.StockIcon, inv.Symbol, cli.Money(inv.TotalValue))
			}
			return nil
		},
	}
}

func investRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Pull current quotes and revalue every holding",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, p, err := initPortfolio(ctx, true)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			updated, err := p.RefreshPrices(ctx, currentUser())
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Refreshed %d holdings", updated)))

			history, _ := cmd.Flags().GetBool("history")
			if !history {
				return nil
			}
			investments, err := p.Investments(ctx, currentUser())
			if err != nil {
				return err
			}
			for _, inv := range investments {
				stored, err := p.RefreshHistory(ctx, inv.Symbol, portfolio.DefaultHistoryDays)
				if err != nil {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("History for %s: %v", inv.Symbol, err)))
					continue
				}
				fmt.Println(cli.FormatInfo(fmt.Sprintf("Stored %d days of %s history", stored, inv.Symbol)))
			}
			return nil
		},
	}

	cmd.Flags().Bool("history", false, "also refresh daily price history per symbol")
	return cmd
}

func investHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <symbol>",
		Short: "Show stored daily prices for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			days, _ := cmd.Flags().GetInt("days")

			store, p, err := initPortfolio(ctx, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			prices, err := p.PriceHistory(ctx, args[0], days)
			if err != nil {
				return err
			}

			if len(prices) == 0 {
				fmt.Println(cli.FormatInfo("No stored history; run 'cashly invest refresh --history'"))
				return nil
			}

			table := cli.NewTable("Date", "Open", "High", "Low", "Close", "Volume")
			for _, price := range prices {
				table.AddRow(
					price.Date,
					cli.Money(price.Open),
					cli.Money(price.High),
					cli.Money(price.Low),
					cli.Money(price.Close),
					fmt.Sprintf("%d", price.Volume),
				)
			}
			fmt.Print(table.Render())
			return nil
		},
	}

	cmd.Flags().Int("days", portfolio.DefaultHistoryDays, "trailing window in days")
	return cmd
}

func investDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <investment-id>",
		Short: "Remove a holding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, p, err := initPortfolio(ctx, false)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := p.DeleteInvestment(ctx, currentUser(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Holding removed"))
			return nil
		},
	}
}
