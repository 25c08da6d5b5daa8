package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
)

// CreateGoal inserts a new financial goal. Milestones are stored as a JSON
// column; they are only ever read and written as part of the whole goal.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.FinancialGoal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	milestones, err := marshalMilestones(goal.Milestones)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO financial_goals (
			id, owner_id, title, goal_type, time_horizon, priority,
			target_date, milestones, target_amount, current_amount,
			monthly_contribution, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		goal.ID,
		goal.OwnerID,
		goal.Title,
		string(goal.GoalType),
		string(goal.TimeHorizon),
		string(goal.Priority),
		goal.TargetDate,
		milestones,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.MonthlyContribution,
		goal.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// GetGoals retrieves all of an owner's goals, newest first.
func (s *SQLiteStorage) GetGoals(ctx context.Context, ownerID string) ([]model.FinancialGoal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}
	return s.queryGoals(ctx, `
		SELECT id, owner_id, title, goal_type, time_horizon, priority,
		       target_date, milestones, target_amount, current_amount,
		       monthly_contribution, is_active
		FROM financial_goals
		WHERE owner_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, ownerID)
}

// GetActiveGoals retrieves the owner's goals that are still active.
func (s *SQLiteStorage) GetActiveGoals(ctx context.Context, ownerID string) ([]model.FinancialGoal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}
	return s.queryGoals(ctx, `
		SELECT id, owner_id, title, goal_type, time_horizon, priority,
		       target_date, milestones, target_amount, current_amount,
		       monthly_contribution, is_active
		FROM financial_goals
		WHERE owner_id = ? AND is_active = 1
		ORDER BY created_at DESC, rowid DESC
	`, ownerID)
}

// GetGoalByID retrieves a single goal.
func (s *SQLiteStorage) GetGoalByID(ctx context.Context, id string) (*model.FinancialGoal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, goal_type, time_horizon, priority,
		       target_date, milestones, target_amount, current_amount,
		       monthly_contribution, is_active
		FROM financial_goals
		WHERE id = ?
	`, id)

	goal, err := scanGoal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// UpdateGoal rewrites every mutable field of an existing goal.
func (s *SQLiteStorage) UpdateGoal(ctx context.Context, goal *model.FinancialGoal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	milestones, err := marshalMilestones(goal.Milestones)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE financial_goals
		SET title = ?, goal_type = ?, time_horizon = ?, priority = ?,
		    target_date = ?, milestones = ?, target_amount = ?,
		    current_amount = ?, monthly_contribution = ?, is_active = ?
		WHERE id = ?
	`,
		goal.Title,
		string(goal.GoalType),
		string(goal.TimeHorizon),
		string(goal.Priority),
		goal.TargetDate,
		milestones,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.MonthlyContribution,
		goal.IsActive,
		goal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteGoal removes a goal.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM financial_goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) queryGoals(ctx context.Context, query string, args ...any) ([]model.FinancialGoal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.FinancialGoal
	for rows.Next() {
		goal, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

func scanGoal(scan func(...any) error) (*model.FinancialGoal, error) {
	var goal model.FinancialGoal
	var goalType, horizon, priority string
	var milestones sql.NullString

	err := scan(
		&goal.ID,
		&goal.OwnerID,
		&goal.Title,
		&goalType,
		&horizon,
		&priority,
		&goal.TargetDate,
		&milestones,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.MonthlyContribution,
		&goal.IsActive,
	)
	if err != nil {
		return nil, err
	}

	goal.GoalType = model.GoalType(goalType)
	goal.TimeHorizon = model.TimeHorizon(horizon)
	goal.Priority = model.Priority(priority)

	if milestones.Valid && milestones.String != "" {
		if err := json.Unmarshal([]byte(milestones.String), &goal.Milestones); err != nil {
			return nil, fmt.Errorf("failed to parse milestones: %w", err)
		}
	}
	return &goal, nil
}

func marshalMilestones(milestones []model.Milestone) (string, error) {
	if len(milestones) == 0 {
		return "", nil
	}
	data, err := json.Marshal(milestones)
	if err != nil {
		return "", fmt.Errorf("failed to marshal milestones: %w", err)
	}
	return string(data), nil
}
