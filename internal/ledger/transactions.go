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

// Register handles transaction entry and removal. Records are immutable
// after insert; the only mutations are individual delete and clear-all.
type Register struct {
	store  service.Storage
	logger *slog.Logger
}

// NewRegister creates a transaction register backed by the given store.
func NewRegister(store service.Storage) *Register {
	return &Register{
		store:  store,
		logger: slog.Default().With("component", "register"),
	}
}

// AddTransactionInput carries the caller-supplied fields for a manual entry.
type AddTransactionInput struct {
	Date        string
	Description string
	Merchant    string
	Category    string
	Amount      float64
}

// AddTransaction validates and stores a manual entry. Manual entries carry
// no source ID, so they are never deduplicated against each other.
func (r *Register) AddTransaction(ctx context.Context, ownerID string, input AddTransactionInput) (*model.Transaction, error) {
	if ownerID == "" {
		return nil, common.ErrAuthRequired
	}
	if input.Description == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrValidation)
	}
	if input.Category == "" {
		return nil, fmt.Errorf("%w: category is required", common.ErrValidation)
	}
	if input.Amount == 0 {
		return nil, fmt.Errorf("%w: amount cannot be zero", common.ErrValidation)
	}
	if _, err := time.Parse(model.DateLayout, input.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation)
	}

	txn := model.Transaction{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Date:        input.Date,
		Description: input.Description,
		Merchant:    input.Merchant,
		Category:    input.Category,
		Type:        model.TypeForAmount(input.Amount),
		Amount:      input.Amount,
	}
	if _, err := r.store.SaveTransactions(ctx, []model.Transaction{txn}); err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}

	r.logger.Info("Added transaction",
		"transaction", txn.ID,
		"owner", ownerID,
		"amount", txn.Amount)
	return &txn, nil
}

// Save stamps a batch of ingested records with the owner and stores them,
// returning how many were actually inserted after deduplication.
func (r *Register) Save(ctx context.Context, ownerID string, transactions []model.Transaction) (int, error) {
	if ownerID == "" {
		return 0, common.ErrAuthRequired
	}
	for i := range transactions {
		transactions[i].OwnerID = ownerID
	}

	inserted, err := r.store.SaveTransactions(ctx, transactions)
	if err != nil {
		return 0, fmt.Errorf("saving transactions: %w", err)
	}

	r.logger.Info("Saved transactions",
		"owner", ownerID,
		"fetched", len(transactions),
		"inserted", inserted)
	return inserted, nil
}

// Transactions lists the owner's records, newest first, or nothing for an
// empty owner.
func (r *Register) Transactions(ctx context.Context, ownerID string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if ownerID == "" {
		return []model.Transaction{}, nil
	}
	return r.store.GetTransactions(ctx, ownerID, filter)
}

// DeleteTransaction removes one owned record.
func (r *Register) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return common.ErrAuthRequired
	}
	if id == "" {
		return fmt.Errorf("%w: transaction ID is required", common.ErrValidation)
	}
	txn, err := r.store.GetTransactionByID(ctx, id)
	if err != nil {
		return err
	}
	if txn.OwnerID != ownerID {
		return common.ErrNotFound
	}
	return r.store.DeleteTransaction(ctx, id)
}

// ClearAll deletes every one of the owner's records, best-effort, and
// returns how many were deleted.
func (r *Register) ClearAll(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, common.ErrAuthRequired
	}
	deleted, err := r.store.ClearTransactions(ctx, ownerID)
	if err != nil {
		return deleted, fmt.Errorf("clearing transactions: %w", err)
	}

	r.logger.Info("Cleared transactions", "owner", ownerID, "deleted", deleted)
	return deleted, nil
}
