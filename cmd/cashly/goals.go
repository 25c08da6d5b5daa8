package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cashly/cashly/internal/cli"
	"github.com/cashly/cashly/internal/ledger"
	"github.com/cashly/cashly/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Savings goals and milestones",
	}

	cmd.AddCommand(goalsCreateCmd())
	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsMilestoneCmd())
	cmd.AddCommand(goalsDeleteCmd())

	return cmd
}

func goalsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a savings goal",
		Long: `Create a savings goal. Milestones are given as comma-separated
amount:description pairs, e.g. --milestones "500:First $500,1000:Halfway".`,
		RunE: runGoalsCreate,
	}

	cmd.Flags().String("title", "", "goal title")
	cmd.Flags().String("type", string(model.GoalGeneral), "goal type (emergency, laptop, travel, ...)")
	cmd.Flags().String("horizon", string(model.ShortTerm), "time horizon (short_term, medium_term, long_term)")
	cmd.Flags().String("priority", string(model.PriorityFun), "priority (urgent, fun, dream)")
	cmd.Flags().String("target-date", "", "target date (YYYY-MM-DD)")
	cmd.Flags().Float64("target", 0, "target amount")
	cmd.Flags().Float64("current", 0, "starting amount already saved")
	cmd.Flags().Float64("monthly", 0, "planned monthly contribution")
	cmd.Flags().String("milestones", "", "comma-separated amount:description pairs")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func runGoalsCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	title, _ := cmd.Flags().GetString("title")
	goalType, _ := cmd.Flags().GetString("type")
	horizon, _ := cmd.Flags().GetString("horizon")
	priority, _ := cmd.Flags().GetString("priority")
	targetDate, _ := cmd.Flags().GetString("target-date")
	target, _ := cmd.Flags().GetFloat64("target")
	current, _ := cmd.Flags().GetFloat64("current")
	monthly, _ := cmd.Flags().GetFloat64("monthly")
	milestonesSpec, _ := cmd.Flags().GetString("milestones")

	milestones, err := parseMilestones(milestonesSpec)
	if err != nil {
		return err
	}

	goal, err := ledger.NewLedger(store).CreateGoal(ctx, currentUser(), ledger.CreateGoalInput{
		Title:               title,
		GoalType:            model.GoalType(goalType),
		TimeHorizon:         model.TimeHorizon(horizon),
		Priority:            model.Priority(priority),
		TargetDate:          targetDate,
		Milestones:          milestones,
		TargetAmount:        target,
		CurrentAmount:       current,
		MonthlyContribution: monthly,
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Created goal %q (%s target)",
		cli.GoalIcon, goal.Title, cli.Money(goal.TargetAmount))))
	return nil
}

// parseMilestones parses "amount:description,amount:description" into
// milestone records, all starting unachieved.
func parseMilestones(spec string) ([]model.Milestone, error) {
	if spec == "" {
		return nil, nil
	}
	var milestones []model.Milestone
	for _, part := range strings.Split(spec, ",") {
		amountStr, description, found := strings.Cut(strings.TrimSpace(part), ":")
		if !found || description == "" {
			return nil, fmt.Errorf("invalid milestone %q: want amount:description", part)
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, model.Milestone{
			Description: description,
			Amount:      amount,
		})
	}
	return milestones, nil
}

func goalsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your goals with progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			activeOnly, _ := cmd.Flags().GetBool("active")

			goalLedger := ledger.NewLedger(store)
			var goals []model.FinancialGoal
			if activeOnly {
				goals, err = goalLedger.ActiveGoals(ctx, currentUser())
			} else {
				goals, err = goalLedger.Goals(ctx, currentUser())
			}
			if err != nil {
				return err
			}

			if len(goals) == 0 {
				fmt.Println(cli.FormatInfo("No goals yet"))
				return nil
			}

			table := cli.NewTable("Goal", "Saved", "Target", "Remaining", "Done?", "ID")
			for _, goal := range goals {
				done := ""
				if goal.Completed() {
					done = cli.SuccessIcon
				}
				table.AddRow(
					goal.Title,
					cli.Money(goal.CurrentAmount),
					cli.Money(goal.TargetAmount),
					cli.Money(goal.Remaining()),
					done,
					goal.ID,
				)
			}
			fmt.Print(table.Render())
			return nil
		},
	}

	cmd.Flags().Bool("active", false, "show only active goals")
	return cmd
}

func goalsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <goal-id> <amount>",
		Short: "Add money toward a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			goal, err := ledger.NewLedger(store).AddAmount(ctx, currentUser(), args[0], amount)
			if err != nil {
				return err
			}

			message := fmt.Sprintf("Saved %s toward %q (%s of %s)",
				cli.Money(amount), goal.Title,
				cli.Money(goal.CurrentAmount), cli.Money(goal.TargetAmount))
			if goal.Completed() {
				message += " — goal complete!"
			}
			fmt.Println(cli.FormatSuccess(message))
			return nil
		},
	}
}

func goalsMilestoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "milestone <goal-id> <index>",
		Short: "Mark a milestone as achieved",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var index int
			if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil {
				return fmt.Errorf("invalid milestone index %q", args[1])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			goal, err := ledger.NewLedger(store).AchieveMilestone(ctx, currentUser(), args[0], index)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Milestone %q achieved on %q",
				goal.Milestones[index].Description, goal.Title)))
			return nil
		},
	}
}

func goalsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := ledger.NewLedger(store).DeleteGoal(ctx, currentUser(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Goal deleted"))
			return nil
		},
	}
}
