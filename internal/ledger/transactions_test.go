package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

type fakeTxnStore struct {
	service.Storage
	transactions map[string]model.Transaction
}

func newFakeTxnStore() *fakeTxnStore {
	return &fakeTxnStore{transactions: make(map[string]model.Transaction)}
}

func (f *fakeTxnStore) SaveTransactions(_ context.Context, transactions []model.Transaction) (int, error) {
	for _, txn := range transactions {
		f.transactions[txn.ID] = txn
	}
	return len(transactions), nil
}

func (f *fakeTxnStore) GetTransactions(_ context.Context, ownerID string, _ service.TransactionFilter) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, txn := range f.transactions {
		if txn.OwnerID == ownerID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeTxnStore) GetTransactionByID(_ context.Context, id string) (*model.Transaction, error) {
	txn, ok := f.transactions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &txn, nil
}

func (f *fakeTxnStore) DeleteTransaction(_ context.Context, id string) error {
	delete(f.transactions, id)
	return nil
}

func (f *fakeTxnStore) ClearTransactions(_ context.Context, ownerID string) (int, error) {
	deleted := 0
	for id, txn := range f.transactions {
		if txn.OwnerID == ownerID {
			delete(f.transactions, id)
			deleted++
		}
	}
	return deleted, nil
}

func entryInput() AddTransactionInput {
	return AddTransactionInput{
		Date:        "2024-03-05",
		Description: "Lunch at Chipotle",
		Merchant:    "Chipotle",
		Category:    "Food and Drink",
		Amount:      -12.50,
	}
}

func TestAddTransaction(t *testing.T) {
	register := NewRegister(newFakeTxnStore())

	txn, err := register.AddTransaction(context.Background(), "user-1", entryInput())
	require.NoError(t, err)

	assert.NotEmpty(t, txn.ID)
	assert.Equal(t, "user-1", txn.OwnerID)
	assert.Equal(t, model.TypeDebit, txn.Type)
	assert.Empty(t, txn.SourceTxnID, "manual entries have no source ID")
}

func TestAddTransaction_Validation(t *testing.T) {
	register := NewRegister(newFakeTxnStore())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*AddTransactionInput)
	}{
		{"empty description", func(in *AddTransactionInput) { in.Description = "" }},
		{"empty category", func(in *AddTransactionInput) { in.Category = "" }},
		{"zero amount", func(in *AddTransactionInput) { in.Amount = 0 }},
		{"malformed date", func(in *AddTransactionInput) { in.Date = "03/05/2024" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := entryInput()
			tt.mutate(&input)
			_, err := register.AddTransaction(ctx, "user-1", input)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestAddTransaction_RequiresOwner(t *testing.T) {
	register := NewRegister(newFakeTxnStore())

	_, err := register.AddTransaction(context.Background(), "", entryInput())

	assert.ErrorIs(t, err, common.ErrAuthRequired)
}

func TestSave_StampsOwner(t *testing.T) {
	store := newFakeTxnStore()
	register := NewRegister(store)

	batch := []model.Transaction{
		{ID: "txn-1", Date: "2024-03-01", Description: "A", Category: "Other", Amount: -5, Type: model.TypeDebit},
		{ID: "txn-2", Date: "2024-03-02", Description: "B", Category: "Other", Amount: -7, Type: model.TypeDebit},
	}

	inserted, err := register.Save(context.Background(), "user-1", batch)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	saved, err := register.Transactions(context.Background(), "user-1", service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	for _, txn := range saved {
		assert.Equal(t, "user-1", txn.OwnerID)
	}
}

func TestTransactions_EmptyOwnerDegradesSilently(t *testing.T) {
	register := NewRegister(newFakeTxnStore())

	transactions, err := register.Transactions(context.Background(), "", service.TransactionFilter{})

	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestDeleteTransaction_EnforcesOwnership(t *testing.T) {
	store := newFakeTxnStore()
	register := NewRegister(store)
	ctx := context.Background()

	txn, err := register.AddTransaction(ctx, "user-1", entryInput())
	require.NoError(t, err)

	err = register.DeleteTransaction(ctx, "user-2", txn.ID)
	assert.ErrorIs(t, err, common.ErrNotFound, "someone else's record reads as missing")

	require.NoError(t, register.DeleteTransaction(ctx, "user-1", txn.ID))
}

func TestClearAll(t *testing.T) {
	store := newFakeTxnStore()
	register := NewRegister(store)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := register.AddTransaction(ctx, "user-1", entryInput())
		require.NoError(t, err)
	}
	_, err := register.AddTransaction(ctx, "user-2", entryInput())
	require.NoError(t, err)

	deleted, err := register.ClearAll(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, deleted)

	_, err = register.ClearAll(ctx, "")
	assert.ErrorIs(t, err, common.ErrAuthRequired)
}
