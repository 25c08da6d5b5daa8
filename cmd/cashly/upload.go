package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cashly/cashly/internal/cli"
	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/config"
	"github.com/cashly/cashly/internal/docproc"
	"github.com/cashly/cashly/internal/ledger"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

func uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Extract transactions from PDF bank statements",
	}

	cmd.AddCommand(uploadStatementCmd())
	cmd.AddCommand(uploadListCmd())

	return cmd
}

func uploadStatementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statement <file.pdf>",
		Short: "Upload one statement and import what it contains",
		Args:  cobra.ExactArgs(1),
		RunE:  runUploadStatement,
	}
}

func runUploadStatement(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if currentUser() == "" {
		return common.ErrAuthRequired
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading statement: %w", err)
	}
	fileName := filepath.Base(args[0])

	serviceURL, err := config.ExtractionServiceURL()
	if err != nil {
		return err
	}
	processor, err := docproc.NewClient(serviceURL)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	statement := &model.BankStatement{
		ID:         uuid.New().String(),
		OwnerID:    currentUser(),
		FileName:   fileName,
		Status:     model.StatementPending,
		UploadedAt: time.Now(),
	}
	if err := store.CreateStatement(ctx, statement); err != nil {
		return err
	}

	if err := store.UpdateStatementStatus(ctx, statement.ID, model.StatementProcessing, 0, "", ""); err != nil {
		return err
	}

	result, err := processor.Process(ctx, fileName, data)
	if err != nil {
		// Record the failure so it shows in the statement list, then
		// surface the extraction error itself.
		_ = store.UpdateStatementStatus(ctx, statement.ID, model.StatementFailed, 0, "", "")
		return err
	}

	for i := range result.Transactions {
		result.Transactions[i].StatementID = statement.ID
	}

	inserted, err := ledger.NewRegister(store).Save(ctx, currentUser(), result.Transactions)
	if err != nil {
		_ = store.UpdateStatementStatus(ctx, statement.ID, model.StatementFailed, 0, "", "")
		return err
	}

	rangeStart, rangeEnd := dateRange(result.Transactions)
	if err := store.UpdateStatementStatus(ctx, statement.ID, model.StatementCompleted, inserted, rangeStart, rangeEnd); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Imported %d transactions from %s (%s to %s)",
		cli.BankIcon, inserted, fileName, rangeStart, rangeEnd)))
	return nil
}

// dateRange returns the earliest and latest transaction dates. Dates are
// YYYY-MM-DD strings, so lexical order is chronological order.
func dateRange(transactions []model.Transaction) (string, string) {
	if len(transactions) == 0 {
		return "", ""
	}
	start, end := transactions[0].Date, transactions[0].Date
	for _, txn := range transactions[1:] {
		if txn.Date < start {
			start = txn.Date
		}
		if txn.Date > end {
			end = txn.Date
		}
	}
	return start, end
}

func uploadListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded statements, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			statements, err := listStatements(ctx, store)
			if err != nil {
				return err
			}

			if len(statements) == 0 {
				fmt.Println(cli.FormatInfo("No statements uploaded"))
				return nil
			}

			table := cli.NewTable("File", "Status", "Transactions", "Range", "Uploaded")
			for _, stmt := range statements {
				dates := ""
				if stmt.DateRangeStart != "" {
					dates = stmt.DateRangeStart + " to " + stmt.DateRangeEnd
				}
				table.AddRow(
					stmt.FileName,
					string(stmt.Status),
					fmt.Sprintf("%d", stmt.TotalTransactions),
					dates,
					stmt.UploadedAt.Format(model.DateLayout),
				)
			}
			fmt.Print(table.Render())
			return nil
		},
	}
}

func listStatements(ctx context.Context, store service.Storage) ([]model.BankStatement, error) {
	if currentUser() == "" {
		return []model.BankStatement{}, nil
	}
	return store.GetStatements(ctx, currentUser())
}
