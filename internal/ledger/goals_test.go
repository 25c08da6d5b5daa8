package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

type fakeStore struct {
	service.Storage
	goals map[string]*model.FinancialGoal
}

func newFakeStore() *fakeStore {
	return &fakeStore{goals: make(map[string]*model.FinancialGoal)}
}

func (f *fakeStore) CreateGoal(_ context.Context, goal *model.FinancialGoal) error {
	copied := *goal
	f.goals[goal.ID] = &copied
	return nil
}

func (f *fakeStore) GetGoalByID(_ context.Context, id string) (*model.FinancialGoal, error) {
	goal, ok := f.goals[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *goal
	return &copied, nil
}

func (f *fakeStore) UpdateGoal(_ context.Context, goal *model.FinancialGoal) error {
	if _, ok := f.goals[goal.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *goal
	f.goals[goal.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteGoal(_ context.Context, id string) error {
	delete(f.goals, id)
	return nil
}

func (f *fakeStore) GetGoals(_ context.Context, ownerID string) ([]model.FinancialGoal, error) {
	var goals []model.FinancialGoal
	for _, goal := range f.goals {
		if goal.OwnerID == ownerID {
			goals = append(goals, *goal)
		}
	}
	return goals, nil
}

func seedGoal(t *testing.T, ledger *Ledger, input CreateGoalInput) *model.FinancialGoal {
	t.Helper()
	goal, err := ledger.CreateGoal(context.Background(), "user-1", input)
	require.NoError(t, err)
	return goal
}

func savingsInput() CreateGoalInput {
	return CreateGoalInput{
		Title:               "Emergency Fund",
		GoalType:            model.GoalEmergency,
		TimeHorizon:         model.ShortTerm,
		Priority:            model.PriorityUrgent,
		TargetAmount:        500,
		MonthlyContribution: 100,
	}
}

func TestCreateGoal(t *testing.T) {
	ledger := NewLedger(newFakeStore())

	goal := seedGoal(t, ledger, savingsInput())

	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, "user-1", goal.OwnerID)
	assert.True(t, goal.IsActive)
	assert.Zero(t, goal.CurrentAmount)
	assert.False(t, goal.Completed())
}

func TestCreateGoal_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateGoalInput)
	}{
		{"missing title", func(in *CreateGoalInput) { in.Title = "" }},
		{"unknown goal type", func(in *CreateGoalInput) { in.GoalType = "yacht" }},
		{"zero target", func(in *CreateGoalInput) { in.TargetAmount = 0 }},
		{"negative current amount", func(in *CreateGoalInput) { in.CurrentAmount = -1 }},
		{"malformed target date", func(in *CreateGoalInput) { in.TargetDate = "next year" }},
		{"negative milestone", func(in *CreateGoalInput) {
			in.Milestones = []model.Milestone{{Amount: -5, Description: "oops"}}
		}},
	}

	ledger := NewLedger(newFakeStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := savingsInput()
			tt.mutate(&input)
			_, err := ledger.CreateGoal(context.Background(), "user-1", input)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestCreateGoal_RequiresAuth(t *testing.T) {
	ledger := NewLedger(newFakeStore())

	_, err := ledger.CreateGoal(context.Background(), "", savingsInput())

	assert.ErrorIs(t, err, common.ErrAuthRequired)
}

func TestAddAmount_CompletionIsDerived(t *testing.T) {
	ledger := NewLedger(newFakeStore())
	goal := seedGoal(t, ledger, savingsInput())
	ctx := context.Background()

	updated, err := ledger.AddAmount(ctx, "user-1", goal.ID, 250)
	require.NoError(t, err)
	assert.InDelta(t, 250, updated.CurrentAmount, 0.001)
	assert.False(t, updated.Completed())

	updated, err = ledger.AddAmount(ctx, "user-1", goal.ID, 250)
	require.NoError(t, err)
	assert.InDelta(t, 500, updated.CurrentAmount, 0.001)
	assert.True(t, updated.Completed())
}

func TestAddAmount_NoUpperClamp(t *testing.T) {
	ledger := NewLedger(newFakeStore())
	goal := seedGoal(t, ledger, savingsInput())

	updated, err := ledger.AddAmount(context.Background(), "user-1", goal.ID, 10000)

	require.NoError(t, err)
	assert.InDelta(t, 10000, updated.CurrentAmount, 0.001)
	assert.True(t, updated.Completed())
}

func TestAddAmount_RejectsNonPositiveDelta(t *testing.T) {
	ledger := NewLedger(newFakeStore())
	goal := seedGoal(t, ledger, savingsInput())

	_, err := ledger.AddAmount(context.Background(), "user-1", goal.ID, 0)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = ledger.AddAmount(context.Background(), "user-1", goal.ID, -50)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAddAmount_OtherOwnersGoalReadsAsNotFound(t *testing.T) {
	ledger := NewLedger(newFakeStore())
	goal := seedGoal(t, ledger, savingsInput())

	_, err := ledger.AddAmount(context.Background(), "user-2", goal.ID, 50)

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func milestoneInput() CreateGoalInput {
	input := savingsInput()
	input.Milestones = []model.Milestone{
		{Amount: 100, Description: "First $100"},
		{Amount: 250, Description: "Halfway there"},
	}
	return input
}

func TestAchieveMilestone(t *testing.T) {
	ledger := NewLedger(newFakeStore())
	goal := seedGoal(t, ledger, milestoneInput())
	ctx := context.Background()

	_, err := ledger.AddAmount(ctx, "user-1", goal.ID, 120)
	require.NoError(t, err)

	updated, err := ledger.AchieveMilestone(ctx, "user-1", goal.ID, 0)
	require.NoError(t, err)
	assert.True(t, updated.Milestones[0].Achieved)
	require.NotNil(t, updated.Milestones[0].AchievedAt)
	assert.False(t, updated.Milestones[1].Achieved)
}

func TestAchieveMilestone_OutOfRangeIndex(t *testing.T) {
	ledger := NewLedger(newFakeStore())
	goal := seedGoal(t, ledger, milestoneInput())

	_, err := ledger.AchieveMilestone(context.Background(), "user-1", goal.ID, 2)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = ledger.AchieveMilestone(context.Background(), "user-1", goal.ID, -1)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAchieveMilestone_RequiresAmountReached(t *testing.T) {
	ledger := NewLedger(newFakeStore())
	goal := seedGoal(t, ledger, milestoneInput())

	_, err := ledger.AchieveMilestone(context.Background(), "user-1", goal.ID, 0)

	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAchieveMilestone_ReachievingRefreshesTimestamp(t *testing.T) {
	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)
	current := first

	ledger := NewLedger(newFakeStore()).WithClock(func() time.Time { return current })
	goal := seedGoal(t, ledger, milestoneInput())
	ctx := context.Background()

	_, err := ledger.AddAmount(ctx, "user-1", goal.ID, 300)
	require.NoError(t, err)

	updated, err := ledger.AchieveMilestone(ctx, "user-1", goal.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, first, *updated.Milestones[0].AchievedAt)

	current = second
	updated, err = ledger.AchieveMilestone(ctx, "user-1", goal.ID, 0)
	require.NoError(t, err)
	assert.True(t, updated.Milestones[0].Achieved)
	assert.Equal(t, second, *updated.Milestones[0].AchievedAt)
}

func TestUpdateGoal_PartialUpdate(t *testing.T) {
	ledger := NewLedger(newFakeStore())
	goal := seedGoal(t, ledger, savingsInput())

	newTarget := 800.0
	inactive := false
	updated, err := ledger.UpdateGoal(context.Background(), "user-1", goal.ID, GoalUpdate{
		TargetAmount: &newTarget,
		IsActive:     &inactive,
	})

	require.NoError(t, err)
	assert.InDelta(t, 800, updated.TargetAmount, 0.001)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Emergency Fund", updated.Title, "unset fields stay put")
}

func TestQueries_EmptyOwnerYieldsEmpty(t *testing.T) {
	ledger := NewLedger(newFakeStore())

	goals, err := ledger.Goals(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestDeleteGoal(t *testing.T) {
	store := newFakeStore()
	ledger := NewLedger(store)
	goal := seedGoal(t, ledger, savingsInput())

	require.NoError(t, ledger.DeleteGoal(context.Background(), "user-1", goal.ID))

	_, err := store.GetGoalByID(context.Background(), goal.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
