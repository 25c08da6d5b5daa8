package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashly/cashly/internal/analytics"
	"github.com/cashly/cashly/internal/cli"
	"github.com/cashly/cashly/internal/insight"
	"github.com/cashly/cashly/internal/model"
)

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Narrative commentary on your spending",
	}

	cmd.AddCommand(insightsGenerateCmd())
	cmd.AddCommand(insightsListCmd())
	cmd.AddCommand(insightsReadCmd())

	return cmd
}

func insightsGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Build a fresh report from your current data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			reporter := insight.NewReporter(analytics.NewQueries(store), store)
			report, err := reporter.GenerateForOwner(ctx, currentUser())
			if err != nil {
				return err
			}

			printReport(report)
			return nil
		},
	}
}

func printReport(report insight.Report) {
	fmt.Println(cli.FormatTitle("Highlights"))
	fmt.Println("  " + report.Highlights.BiggestExpense)
	if report.Highlights.OverspendingAlert != "" {
		fmt.Println("  " + cli.FormatWarning(report.Highlights.OverspendingAlert))
	}
	fmt.Println("  " + report.Highlights.PositiveReinforcement)

	if len(report.CategoryInsights) > 0 {
		fmt.Println()
		fmt.Println(cli.FormatTitle("Categories"))
		for _, ci := range report.CategoryInsights {
			fmt.Printf("  %s: %s\n", ci.Category, ci.Insight)
			fmt.Println("    " + cli.FormatInfo(ci.Suggestion))
		}
	}

	if len(report.Predictions) > 0 {
		fmt.Println()
		fmt.Println(cli.FormatTitle("Predictions"))
		for _, prediction := range report.Predictions {
			fmt.Println("  " + prediction.Message)
			if prediction.Actionable != "" {
				fmt.Println("    " + cli.FormatInfo(prediction.Actionable))
			}
		}
	}

	if len(report.FunFacts) > 0 {
		fmt.Println()
		fmt.Println(cli.FormatTitle("Fun facts"))
		for _, fact := range report.FunFacts {
			fmt.Println("  " + fact)
		}
	}

	if len(report.Recommendations) > 0 {
		fmt.Println()
		fmt.Println(cli.FormatTitle("Recommendations"))
		for _, rec := range report.Recommendations {
			fmt.Println("  " + rec.Roast)
			fmt.Println("    " + rec.Recommendation)
			fmt.Println("    " + cli.FormatInfo(rec.Impact))
		}
	}
}

func insightsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved insights, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			limit, _ := cmd.Flags().GetInt("limit")
			unreadOnly, _ := cmd.Flags().GetBool("unread")

			reporter := insight.NewReporter(analytics.NewQueries(store), store)
			insights, err := listInsights(ctx, reporter, unreadOnly, limit)
			if err != nil {
				return err
			}

			if len(insights) == 0 {
				fmt.Println(cli.FormatInfo("No insights saved"))
				return nil
			}

			table := cli.NewTable("Severity", "Title", "Read?", "ID")
			for _, record := range insights {
				read := ""
				if record.IsRead {
					read = cli.SuccessIcon
				}
				table.AddRow(string(record.Severity), record.Title, read, record.ID)
			}
			fmt.Print(table.Render())
			return nil
		},
	}

	cmd.Flags().Int("limit", insight.DefaultInsightLimit, "maximum insights to show")
	cmd.Flags().Bool("unread", false, "show only unread insights")
	return cmd
}

func listInsights(ctx context.Context, reporter *insight.Reporter, unreadOnly bool, limit int) ([]model.Insight, error) {
	if unreadOnly {
		return reporter.UnreadInsights(ctx, currentUser())
	}
	return reporter.Insights(ctx, currentUser(), limit)
}

func insightsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <insight-id>",
		Short: "Mark an insight as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			reporter := insight.NewReporter(analytics.NewQueries(store), store)
			if err := reporter.MarkRead(ctx, currentUser(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Insight marked as read"))
			return nil
		},
	}
}
