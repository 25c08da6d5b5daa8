package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashly/cashly/internal/analytics"
	"github.com/cashly/cashly/internal/cli"
)

func trendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Spending trends over time",
	}

	cmd.AddCommand(trendSeriesCmd("daily", "Daily spending for the last N days", "days", analytics.DefaultTrendDays))
	cmd.AddCommand(trendSeriesCmd("weekly", "Weekly spending for the last N weeks", "weeks", analytics.DefaultTrendWeeks))
	cmd.AddCommand(trendSeriesCmd("monthly", "Monthly spending for the last N months", "months", analytics.DefaultTrendMonths))
	cmd.AddCommand(trendsCategoryCmd())
	cmd.AddCommand(trendsRecurringCmd())
	cmd.AddCommand(trendsForecastCmd())

	return cmd
}

func trendSeriesCmd(period, short, unit string, defaultWindow int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   period,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			window, _ := cmd.Flags().GetInt(unit)
			queries := analytics.NewQueries(store)

			var points []analytics.TrendPoint
			switch period {
			case "daily":
				points, err = queries.DailyTrend(ctx, currentUser(), window)
			case "weekly":
				points, err = queries.WeeklyTrend(ctx, currentUser(), window)
			case "monthly":
				points, err = queries.MonthlyTrend(ctx, currentUser(), window)
			}
			if err != nil {
				return err
			}

			table := cli.NewTable("Period", "Spent")
			for _, point := range points {
				table.AddRow(point.Period, cli.Money(point.Amount))
			}
			fmt.Print(table.Render())
			return nil
		},
	}

	cmd.Flags().Int(unit, defaultWindow, "window size in "+unit)
	return cmd
}

func trendsCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Per-category monthly spending with growth rates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			months, _ := cmd.Flags().GetInt("months")
			trends, err := analytics.NewQueries(store).CategoryTrends(ctx, currentUser(), months)
			if err != nil {
				return err
			}

			for _, trend := range trends {
				fmt.Println(cli.FormatTitle(fmt.Sprintf("%s (%.1f%% growth)", trend.Category, trend.GrowthRate)))
				table := cli.NewTable("Month", "Spent")
				for _, point := range trend.Series {
					table.AddRow(point.Period, cli.Money(point.Amount))
				}
				fmt.Print(table.Render())
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().Int("months", analytics.DefaultCategoryTrendMonths, "window size in months")
	return cmd
}

func trendsRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recurring",
		Short: "Merchants you pay over and over",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			recurring, err := analytics.NewQueries(store).RecurringExpenses(ctx, currentUser())
			if err != nil {
				return err
			}

			if len(recurring) == 0 {
				fmt.Println(cli.FormatInfo("No recurring expenses detected"))
				return nil
			}

			table := cli.NewTable("Merchant", "Times", "Total", "Average", "Subscription?")
			for _, expense := range recurring {
				subscription := ""
				if expense.IsSubscription {
					subscription = cli.SuccessIcon
				}
				table.AddRow(
					expense.Merchant,
					fmt.Sprintf("%d", expense.Count),
					cli.Money(expense.TotalAmount),
					cli.Money(expense.AverageAmount),
					subscription,
				)
			}
			fmt.Print(table.Render())
			return nil
		},
	}
}

func trendsForecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project spending forward from your trailing 3-month average",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			months, _ := cmd.Flags().GetInt("months")
			forecast, err := analytics.NewQueries(store).SpendingForecast(ctx, currentUser(), months)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Projected at %s/month", cli.Money(forecast.MonthlyAverage))))
			table := cli.NewTable("Month", "Projected")
			for _, point := range forecast.Projection {
				table.AddRow(point.Period, cli.Money(point.Amount))
			}
			fmt.Print(table.Render())

			for _, insight := range forecast.Insights {
				fmt.Println(cli.FormatInfo(insight.Title + ": " + insight.Message))
			}
			return nil
		},
	}

	cmd.Flags().Int("months", analytics.DefaultForecastMonths, "months to project")
	return cmd
}
