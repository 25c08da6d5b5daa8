package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cashly/cashly/internal/cli"
	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/config"
	"github.com/cashly/cashly/internal/ledger"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/plaid"
)

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Connect bank accounts through Plaid",
	}

	cmd.AddCommand(linkTokenCmd())
	cmd.AddCommand(linkExchangeCmd())
	cmd.AddCommand(linkListCmd())
	cmd.AddCommand(linkSyncCmd())
	cmd.AddCommand(linkRemoveCmd())

	return cmd
}

func initPlaid() (*plaid.Client, error) {
	cfg, err := config.LoadPlaidConfig()
	if err != nil {
		return nil, err
	}
	return plaid.NewClient(cfg)
}

func linkTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Create a link token to start connecting an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if currentUser() == "" {
				return common.ErrAuthRequired
			}

			client, err := initPlaid()
			if err != nil {
				return err
			}

			token, err := client.CreateLinkToken(ctx, currentUser())
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatInfo("Open the Plaid Link flow with this token:"))
			fmt.Println(token)
			return nil
		},
	}
}

func linkExchangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exchange <public-token>",
		Short: "Exchange a public token and store the bank connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if currentUser() == "" {
				return common.ErrAuthRequired
			}

			client, err := initPlaid()
			if err != nil {
				return err
			}

			accessToken, itemID, err := client.ExchangePublicToken(ctx, args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			institution, _ := cmd.Flags().GetString("institution")
			item := &model.PlaidItem{
				ID:            uuid.New().String(),
				OwnerID:       currentUser(),
				ItemID:        itemID,
				AccessToken:   accessToken,
				InstitutionID: institution,
				CreatedAt:     time.Now(),
			}
			if err := store.SavePlaidItem(ctx, item); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Bank connected (item %s)", cli.BankIcon, itemID)))
			return nil
		},
	}

	cmd.Flags().String("institution", "", "institution ID for display")
	return cmd
}

func linkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connected bank accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			items, err := store.GetPlaidItems(ctx, currentUser())
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println(cli.FormatInfo("No banks connected"))
				return nil
			}

			table := cli.NewTable("Item", "Institution", "Connected")
			for _, item := range items {
				table.AddRow(item.ItemID, item.InstitutionID, item.CreatedAt.Format(model.DateLayout))
			}
			fmt.Print(table.Render())
			return nil
		},
	}
}

func linkSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull transactions from every connected bank",
		RunE:  runLinkSync,
	}

	cmd.Flags().Int("days", 30, "how far back to fetch")
	return cmd
}

func runLinkSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if currentUser() == "" {
		return common.ErrAuthRequired
	}

	client, err := initPlaid()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	items, err := store.GetPlaidItems(ctx, currentUser())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println(cli.FormatInfo("No banks connected; run 'cashly link token' first"))
		return nil
	}

	days, _ := cmd.Flags().GetInt("days")
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	register := ledger.NewRegister(store)
	bar := cli.NewProgressBar(len(items), "Syncing banks", os.Stderr)

	total := 0
	for _, item := range items {
		inserted, err := syncItem(ctx, client, register, item, start, end)
		if err != nil {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("Sync failed for item %s: %v", item.ItemID, err)))
			_ = bar.Add(1)
			continue
		}
		total += inserted
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Println()

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions from %d banks", total, len(items))))
	return nil
}

func syncItem(ctx context.Context, client *plaid.Client, register *ledger.Register, item model.PlaidItem, start, end time.Time) (int, error) {
	transactions, err := client.FetchTransactions(ctx, item.AccessToken, start, end)
	if err != nil {
		return 0, err
	}
	return register.Save(ctx, item.OwnerID, transactions)
}

func linkRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Disconnect a bank and drop its credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if currentUser() == "" {
				return common.ErrAuthRequired
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			item, err := store.GetPlaidItemByItemID(ctx, args[0])
			if err != nil {
				return err
			}
			if item.OwnerID != currentUser() {
				return common.ErrNotFound
			}

			client, err := initPlaid()
			if err != nil {
				return err
			}
			if err := client.RemoveItem(ctx, item.AccessToken); err != nil {
				return err
			}
			if err := store.DeletePlaidItem(ctx, item.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Bank disconnected"))
			return nil
		},
	}
}
