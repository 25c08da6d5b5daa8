// Package ledger manages financial goals: savings targets with a manually
// maintained running total and an ordered list of milestones. Goals have no
// linkage to transactions; the running total moves only through explicit
// add-amount calls.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

// Ledger is the goal service. Queries degrade to empty results for an
// unauthenticated caller; mutations reject with ErrAuthRequired.
type Ledger struct {
	store  service.Storage
	logger *slog.Logger
	now    func() time.Time
}

// NewLedger creates a goal ledger backed by the given store.
func NewLedger(store service.Storage) *Ledger {
	return &Ledger{
		store:  store,
		logger: slog.Default().With("component", "ledger"),
		now:    time.Now,
	}
}

// WithClock overrides the timestamp source for milestone achievements.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// CreateGoalInput carries the caller-supplied fields for a new goal.
type CreateGoalInput struct {
	Title               string
	GoalType            model.GoalType
	TimeHorizon         model.TimeHorizon
	Priority            model.Priority
	TargetDate          string
	Milestones          []model.Milestone
	TargetAmount        float64
	CurrentAmount       float64
	MonthlyContribution float64
}

// CreateGoal validates and stores a new active goal for the owner.
func (l *Ledger) CreateGoal(ctx context.Context, ownerID string, input CreateGoalInput) (*model.FinancialGoal, error) {
	if ownerID == "" {
		return nil, common.ErrAuthRequired
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if !model.ValidGoalType(input.GoalType) {
		return nil, fmt.Errorf("%w: unknown goal type %q", common.ErrValidation, input.GoalType)
	}
	if input.TargetAmount <= 0 {
		return nil, fmt.Errorf("%w: target amount must be positive", common.ErrValidation)
	}
	if input.CurrentAmount < 0 {
		return nil, fmt.Errorf("%w: current amount cannot be negative", common.ErrValidation)
	}
	if input.TargetDate != "" {
		if _, err := time.Parse(model.DateLayout, input.TargetDate); err != nil {
			return nil, fmt.Errorf("%w: target date must be YYYY-MM-DD", common.ErrValidation)
		}
	}
	for i, milestone := range input.Milestones {
		if milestone.Amount < 0 {
			return nil, fmt.Errorf("%w: milestone %d has a negative amount", common.ErrValidation, i)
		}
	}

	goal := &model.FinancialGoal{
		ID:                  uuid.New().String(),
		OwnerID:             ownerID,
		Title:               input.Title,
		GoalType:            input.GoalType,
		TimeHorizon:         input.TimeHorizon,
		Priority:            input.Priority,
		TargetDate:          input.TargetDate,
		Milestones:          input.Milestones,
		TargetAmount:        input.TargetAmount,
		CurrentAmount:       input.CurrentAmount,
		MonthlyContribution: input.MonthlyContribution,
		IsActive:            true,
	}
	if err := l.store.CreateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}

	l.logger.Info("Created goal", "goal", goal.ID, "owner", ownerID, "type", goal.GoalType)
	return goal, nil
}

// Goals returns all of the owner's goals, or nothing for an empty owner.
func (l *Ledger) Goals(ctx context.Context, ownerID string) ([]model.FinancialGoal, error) {
	if ownerID == "" {
		return []model.FinancialGoal{}, nil
	}
	return l.store.GetGoals(ctx, ownerID)
}

// ActiveGoals returns the owner's goals that are still active.
func (l *Ledger) ActiveGoals(ctx context.Context, ownerID string) ([]model.FinancialGoal, error) {
	if ownerID == "" {
		return []model.FinancialGoal{}, nil
	}
	return l.store.GetActiveGoals(ctx, ownerID)
}

// GoalUpdate carries optional field updates; nil fields are left unchanged.
type GoalUpdate struct {
	Title               *string
	TargetDate          *string
	TargetAmount        *float64
	MonthlyContribution *float64
	IsActive            *bool
}

// UpdateGoal applies a partial update to an owned goal.
func (l *Ledger) UpdateGoal(ctx context.Context, ownerID, goalID string, update GoalUpdate) (*model.FinancialGoal, error) {
	goal, err := l.ownedGoal(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if *update.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", common.ErrValidation)
		}
		goal.Title = *update.Title
	}
	if update.TargetDate != nil {
		goal.TargetDate = *update.TargetDate
	}
	if update.TargetAmount != nil {
		if *update.TargetAmount <= 0 {
			return nil, fmt.Errorf("%w: target amount must be positive", common.ErrValidation)
		}
		goal.TargetAmount = *update.TargetAmount
	}
	if update.MonthlyContribution != nil {
		goal.MonthlyContribution = *update.MonthlyContribution
	}
	if update.IsActive != nil {
		goal.IsActive = *update.IsActive
	}

	if err := l.store.UpdateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("updating goal: %w", err)
	}
	return goal, nil
}

// AddAmount increments the goal's running total by a positive delta. The
// total is never clamped; exceeding the target is how a goal reads as
// completed. The read-modify-write is deliberately unguarded against
// concurrent additions.
func (l *Ledger) AddAmount(ctx context.Context, ownerID, goalID string, amount float64) (*model.FinancialGoal, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}
	goal, err := l.ownedGoal(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount += amount
	if err := l.store.UpdateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("updating goal: %w", err)
	}

	l.logger.Info("Added to goal",
		"goal", goal.ID,
		"amount", amount,
		"current", goal.CurrentAmount,
		"completed", goal.Completed())
	return goal, nil
}

// AchieveMilestone marks the milestone at the given index as achieved. The
// running total must already cover the milestone's amount; the check happens
// here, not in storage. Re-achieving an already achieved milestone just
// refreshes its timestamp.
func (l *Ledger) AchieveMilestone(ctx context.Context, ownerID, goalID string, index int) (*model.FinancialGoal, error) {
	goal, err := l.ownedGoal(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(goal.Milestones) {
		return nil, fmt.Errorf("%w: milestone index %d out of range", common.ErrValidation, index)
	}
	milestone := &goal.Milestones[index]
	if goal.CurrentAmount < milestone.Amount {
		return nil, fmt.Errorf("%w: current amount %.2f has not reached milestone amount %.2f",
			common.ErrValidation, goal.CurrentAmount, milestone.Amount)
	}

	achievedAt := l.now()
	milestone.Achieved = true
	milestone.AchievedAt = &achievedAt

	if err := l.store.UpdateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("updating goal: %w", err)
	}

	l.logger.Info("Achieved milestone", "goal", goal.ID, "milestone", index)
	return goal, nil
}

// DeleteGoal removes an owned goal.
func (l *Ledger) DeleteGoal(ctx context.Context, ownerID, goalID string) error {
	goal, err := l.ownedGoal(ctx, ownerID, goalID)
	if err != nil {
		return err
	}
	if err := l.store.DeleteGoal(ctx, goal.ID); err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	l.logger.Info("Deleted goal", "goal", goal.ID, "owner", ownerID)
	return nil
}

// ownedGoal loads a goal and verifies the caller owns it. A goal owned by
// someone else reads as not found.
func (l *Ledger) ownedGoal(ctx context.Context, ownerID, goalID string) (*model.FinancialGoal, error) {
	if ownerID == "" {
		return nil, common.ErrAuthRequired
	}
	if goalID == "" {
		return nil, fmt.Errorf("%w: goal ID is required", common.ErrValidation)
	}
	goal, err := l.store.GetGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	return goal, nil
}
