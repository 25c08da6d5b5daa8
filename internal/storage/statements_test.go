package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
)

func testStatement(id, ownerID string, uploadedAt time.Time) *model.BankStatement {
	return &model.BankStatement{
		ID:         id,
		OwnerID:    ownerID,
		FileName:   "march-statement.pdf",
		Status:     model.StatementPending,
		UploadedAt: uploadedAt,
	}
}

func TestCreateAndGetStatements(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	older := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateStatement(ctx, testStatement("stmt-1", "user-1", older)))
	require.NoError(t, store.CreateStatement(ctx, testStatement("stmt-2", "user-1", newer)))
	require.NoError(t, store.CreateStatement(ctx, testStatement("stmt-3", "user-2", newer)))

	statements, err := store.GetStatements(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, statements, 2)
	assert.Equal(t, "stmt-2", statements[0].ID, "newest upload first")
	assert.Equal(t, model.StatementPending, statements[0].Status)
}

func TestUpdateStatementStatus(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	uploaded := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateStatement(ctx, testStatement("stmt-1", "user-1", uploaded)))

	err := store.UpdateStatementStatus(ctx, "stmt-1", model.StatementCompleted, 42, "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	statements, err := store.GetStatements(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, model.StatementCompleted, statements[0].Status)
	assert.Equal(t, 42, statements[0].TotalTransactions)
	assert.Equal(t, "2024-03-01", statements[0].DateRangeStart)
	assert.Equal(t, "2024-03-31", statements[0].DateRangeEnd)
}

func TestUpdateStatementStatus_NotFound(t *testing.T) {
	store := newTestStorage(t)

	err := store.UpdateStatementStatus(context.Background(), "missing", model.StatementFailed, 0, "", "")

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func testPlaidItem(id, ownerID, itemID string) *model.PlaidItem {
	return &model.PlaidItem{
		ID:            id,
		OwnerID:       ownerID,
		ItemID:        itemID,
		AccessToken:   "access-token-" + itemID,
		InstitutionID: "ins_1",
		CreatedAt:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestSavePlaidItem_UpsertsByItemID(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SavePlaidItem(ctx, testPlaidItem("item-1", "user-1", "plaid-item-abc")))

	// A re-link for the same item rotates the access token in place.
	relinked := testPlaidItem("item-2", "user-1", "plaid-item-abc")
	relinked.AccessToken = "access-token-rotated"
	require.NoError(t, store.SavePlaidItem(ctx, relinked))

	items, err := store.GetPlaidItems(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "access-token-rotated", items[0].AccessToken)

	item, err := store.GetPlaidItemByItemID(ctx, "plaid-item-abc")
	require.NoError(t, err)
	assert.Equal(t, "access-token-rotated", item.AccessToken)
}

func TestGetPlaidItemByItemID_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetPlaidItemByItemID(context.Background(), "missing")

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeletePlaidItem(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SavePlaidItem(ctx, testPlaidItem("item-1", "user-1", "plaid-item-abc")))
	require.NoError(t, store.DeletePlaidItem(ctx, "item-1"))

	assert.ErrorIs(t, store.DeletePlaidItem(ctx, "item-1"), common.ErrNotFound)
}
