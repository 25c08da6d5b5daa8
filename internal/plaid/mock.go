package plaid

import (
	"context"
	"time"

	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

// MockSource is a configurable test double for the TransactionSource
// interface.
type MockSource struct {
	CreateLinkTokenFn     func(ctx context.Context, userID string) (string, error)
	ExchangePublicTokenFn func(ctx context.Context, publicToken string) (string, string, error)
	FetchTransactionsFn   func(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]model.Transaction, error)
	RemoveItemFn          func(ctx context.Context, accessToken string) error

	Transactions []model.Transaction
}

// CreateLinkToken delegates to CreateLinkTokenFn or returns a fixed token.
func (m *MockSource) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	if m.CreateLinkTokenFn != nil {
		return m.CreateLinkTokenFn(ctx, userID)
	}
	return "link-sandbox-token", nil
}

// ExchangePublicToken delegates to ExchangePublicTokenFn or returns fixed
// credentials.
func (m *MockSource) ExchangePublicToken(ctx context.Context, publicToken string) (string, string, error) {
	if m.ExchangePublicTokenFn != nil {
		return m.ExchangePublicTokenFn(ctx, publicToken)
	}
	return "access-sandbox-token", "item-sandbox", nil
}

// FetchTransactions delegates to FetchTransactionsFn or returns the canned
// Transactions slice.
func (m *MockSource) FetchTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]model.Transaction, error) {
	if m.FetchTransactionsFn != nil {
		return m.FetchTransactionsFn(ctx, accessToken, startDate, endDate)
	}
	return m.Transactions, nil
}

// RemoveItem delegates to RemoveItemFn or succeeds.
func (m *MockSource) RemoveItem(ctx context.Context, accessToken string) error {
	if m.RemoveItemFn != nil {
		return m.RemoveItemFn(ctx, accessToken)
	}
	return nil
}

// Ensure MockSource implements TransactionSource.
var _ service.TransactionSource = (*MockSource)(nil)
