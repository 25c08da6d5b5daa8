package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
)

func testGoal(id, ownerID string) *model.FinancialGoal {
	return &model.FinancialGoal{
		ID:          id,
		OwnerID:     ownerID,
		Title:       "Emergency Fund",
		GoalType:    model.GoalEmergency,
		TimeHorizon: model.ShortTerm,
		Priority:    model.PriorityUrgent,
		TargetDate:  "2025-06-01",
		Milestones: []model.Milestone{
			{Amount: 100, Description: "First $100"},
			{Amount: 250, Description: "Halfway there"},
		},
		TargetAmount:        500,
		MonthlyContribution: 100,
		IsActive:            true,
	}
}

func TestCreateAndGetGoal(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateGoal(ctx, testGoal("goal-1", "user-1")))

	goal, err := store.GetGoalByID(ctx, "goal-1")
	require.NoError(t, err)
	assert.Equal(t, "Emergency Fund", goal.Title)
	assert.Equal(t, model.GoalEmergency, goal.GoalType)
	assert.Equal(t, model.PriorityUrgent, goal.Priority)
	require.Len(t, goal.Milestones, 2, "milestones survive the JSON round trip")
	assert.Equal(t, "Halfway there", goal.Milestones[1].Description)
	assert.False(t, goal.Milestones[0].Achieved)
}

func TestGetActiveGoals(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	active := testGoal("goal-1", "user-1")
	inactive := testGoal("goal-2", "user-1")
	inactive.IsActive = false
	other := testGoal("goal-3", "user-2")

	require.NoError(t, store.CreateGoal(ctx, active))
	require.NoError(t, store.CreateGoal(ctx, inactive))
	require.NoError(t, store.CreateGoal(ctx, other))

	goals, err := store.GetActiveGoals(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "goal-1", goals[0].ID)

	all, err := store.GetGoals(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateGoal_PersistsMilestoneState(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateGoal(ctx, testGoal("goal-1", "user-1")))

	goal, err := store.GetGoalByID(ctx, "goal-1")
	require.NoError(t, err)

	goal.CurrentAmount = 150
	goal.Milestones[0].Achieved = true
	require.NoError(t, store.UpdateGoal(ctx, goal))

	reloaded, err := store.GetGoalByID(ctx, "goal-1")
	require.NoError(t, err)
	assert.InDelta(t, 150, reloaded.CurrentAmount, 0.001)
	assert.True(t, reloaded.Milestones[0].Achieved)
	assert.False(t, reloaded.Milestones[1].Achieved)
}

func TestUpdateGoal_NotFound(t *testing.T) {
	store := newTestStorage(t)

	err := store.UpdateGoal(context.Background(), testGoal("missing", "user-1"))

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteGoal_Storage(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateGoal(ctx, testGoal("goal-1", "user-1")))
	require.NoError(t, store.DeleteGoal(ctx, "goal-1"))

	_, err := store.GetGoalByID(ctx, "goal-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
