package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashly/cashly/internal/analytics"
	"github.com/cashly/cashly/internal/cli"
)

func analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Aggregated views over your transactions",
	}

	cmd.AddCommand(analyticsCategoriesCmd())
	cmd.AddCommand(analyticsCashflowCmd())
	cmd.AddCommand(analyticsMerchantsCmd())

	return cmd
}

func analyticsCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Spending by category, largest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			categories, err := analytics.NewQueries(store).SpendingByCategory(ctx, currentUser())
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				fmt.Println(cli.FormatInfo("No spending recorded"))
				return nil
			}

			table := cli.NewTable("Category", "Spent")
			for _, category := range categories {
				table.AddRow(category.Category, cli.Money(category.Amount))
			}
			fmt.Print(table.Render())
			return nil
		},
	}
}

func analyticsCashflowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cashflow",
		Short: "Income vs spending totals and running balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			queries := analytics.NewQueries(store)
			totals, err := queries.IncomeVsSpending(ctx, currentUser())
			if err != nil {
				return err
			}
			balance, err := queries.Balance(ctx, currentUser())
			if err != nil {
				return err
			}

			table := cli.NewTable("", "Amount")
			table.AddRow("Income", cli.Money(totals.TotalIncome))
			table.AddRow("Spending", cli.Money(totals.TotalSpending))
			table.AddRow("Net flow", cli.FormatAmount(cli.Money(totals.NetFlow()), totals.NetFlow()))
			table.AddRow("Balance", cli.FormatAmount(cli.Money(balance), balance))
			fmt.Print(table.Render())
			return nil
		},
	}
}

func analyticsMerchantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "Your biggest merchants by total spend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			limit, _ := cmd.Flags().GetInt("limit")
			merchants, err := analytics.NewQueries(store).TopMerchants(ctx, currentUser(), limit)
			if err != nil {
				return err
			}

			if len(merchants) == 0 {
				fmt.Println(cli.FormatInfo("No spending recorded"))
				return nil
			}

			table := cli.NewTable("Merchant", "Visits", "Total")
			for _, merchant := range merchants {
				table.AddRow(
					merchant.Merchant,
					fmt.Sprintf("%d", merchant.Count),
					cli.Money(merchant.TotalAmount),
				)
			}
			fmt.Print(table.Render())
			return nil
		},
	}

	cmd.Flags().Int("limit", analytics.DefaultMerchantLimit, "maximum merchants to show")
	return cmd
}
