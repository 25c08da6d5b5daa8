package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cashly/cashly/internal/cli"
	"github.com/cashly/cashly/internal/ledger"
	"github.com/cashly/cashly/internal/service"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
	}

	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txDeleteCmd())
	cmd.AddCommand(txClearCmd())

	return cmd
}

func txAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a manual transaction",
		Long: `Record a transaction by hand. Spending is negative, income is
positive: 'cashly tx add --amount -12.50' records a $12.50 purchase.`,
		RunE: runTxAdd,
	}

	cmd.Flags().String("date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().String("description", "", "what the money was for")
	cmd.Flags().String("merchant", "", "merchant name (optional)")
	cmd.Flags().String("category", "Other", "spending category")
	cmd.Flags().Float64("amount", 0, "amount (negative = spending)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runTxAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	date, _ := cmd.Flags().GetString("date")
	description, _ := cmd.Flags().GetString("description")
	merchant, _ := cmd.Flags().GetString("merchant")
	category, _ := cmd.Flags().GetString("category")
	amount, _ := cmd.Flags().GetFloat64("amount")

	register := ledger.NewRegister(store)
	txn, err := register.AddTransaction(ctx, currentUser(), ledger.AddTransactionInput{
		Date:        date,
		Description: description,
		Merchant:    merchant,
		Category:    category,
		Amount:      amount,
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s at %s on %s",
		cli.Money(txn.Amount), txn.MerchantLabel(), txn.Date)))
	return nil
}

func txListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE:  runTxList,
	}

	cmd.Flags().String("category", "", "filter by category")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().Bool("debits-only", false, "show only spending")
	cmd.Flags().Int("limit", 50, "maximum rows")

	return cmd
}

func runTxList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	category, _ := cmd.Flags().GetString("category")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	debitsOnly, _ := cmd.Flags().GetBool("debits-only")
	limit, _ := cmd.Flags().GetInt("limit")

	register := ledger.NewRegister(store)
	transactions, err := register.Transactions(ctx, currentUser(), service.TransactionFilter{
		Category:   category,
		StartDate:  start,
		EndDate:    end,
		DebitsOnly: debitsOnly,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		fmt.Println(cli.FormatInfo("No transactions found"))
		return nil
	}

	table := cli.NewTable("Date", "Merchant", "Category", "Amount", "ID")
	for _, txn := range transactions {
		table.AddRow(
			txn.Date,
			txn.MerchantLabel(),
			txn.Category,
			cli.FormatAmount(cli.Money(txn.Amount), txn.Amount),
			txn.ID,
		)
	}
	fmt.Print(table.Render())
	return nil
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			register := ledger.NewRegister(store)
			if err := register.DeleteTransaction(ctx, currentUser(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transaction deleted"))
			return nil
		},
	}
}

func txClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete ALL of your transactions",
		RunE:  runTxClear,
	}

	cmd.Flags().Bool("yes", false, "skip the confirmation check")

	return cmd
}

func runTxClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		return fmt.Errorf("this deletes every transaction; re-run with --yes to confirm")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	register := ledger.NewRegister(store)
	deleted, err := register.ClearAll(ctx, currentUser())
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d transactions", deleted)))
	return nil
}
