package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cashly/cashly/internal/cli"
	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/ledger"
	"github.com/cashly/cashly/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.ofx>",
		Short: "Import transactions from an OFX/QFX download",
		Long: `Import transactions from an OFX or QFX file downloaded from your
bank. Both bank and credit card statements are supported; transactions
already imported (matched by the bank's own transaction ID) are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if currentUser() == "" {
		return common.ErrAuthRequired
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening OFX file: %w", err)
	}
	defer func() { _ = file.Close() }()

	transactions, err := ofx.NewParser().ParseFile(ctx, file)
	if err != nil {
		return fmt.Errorf("parsing OFX file: %w", err)
	}
	if len(transactions) == 0 {
		fmt.Println(cli.FormatInfo("No transactions found in file"))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	inserted, err := ledger.NewRegister(store).Save(ctx, currentUser(), transactions)
	if err != nil {
		return err
	}

	skipped := len(transactions) - inserted
	message := fmt.Sprintf("Imported %d transactions", inserted)
	if skipped > 0 {
		message += fmt.Sprintf(" (%d already present)", skipped)
	}
	fmt.Println(cli.FormatSuccess(message))
	return nil
}
