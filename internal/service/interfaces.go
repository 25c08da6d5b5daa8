// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/cashly/cashly/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// Dates are calendar-day strings compared lexicographically.
type TransactionFilter struct {
	Category   string
	StartDate  string
	EndDate    string
	Limit      int
	DebitsOnly bool
}

// Storage defines the contract for the record store. Every owner-scoped
// query is a full scan of the owner's records; aggregation happens in
// application code, never in storage.
type Storage interface {
	// Transaction operations.
	// SaveTransactions skips records whose SourceTxnID already exists and
	// returns the number actually inserted.
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error)
	GetTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	// ClearTransactions deletes the owner's transactions one record at a
	// time, best-effort, and returns the number successfully deleted.
	ClearTransactions(ctx context.Context, ownerID string) (int, error)

	// Goal operations.
	CreateGoal(ctx context.Context, goal *model.FinancialGoal) error
	GetGoals(ctx context.Context, ownerID string) ([]model.FinancialGoal, error)
	GetActiveGoals(ctx context.Context, ownerID string) ([]model.FinancialGoal, error)
	GetGoalByID(ctx context.Context, id string) (*model.FinancialGoal, error)
	UpdateGoal(ctx context.Context, goal *model.FinancialGoal) error
	DeleteGoal(ctx context.Context, id string) error

	// Investment operations.
	GetInvestments(ctx context.Context, ownerID string) ([]model.Investment, error)
	GetInvestmentBySymbol(ctx context.Context, ownerID, symbol string) (*model.Investment, error)
	SaveInvestment(ctx context.Context, investment *model.Investment) error
	DeleteInvestment(ctx context.Context, id string) error
	ReplaceStockPrices(ctx context.Context, symbol string, prices []model.StockPrice) error
	GetStockPrices(ctx context.Context, symbol, startDate, endDate string) ([]model.StockPrice, error)

	// Insight operations.
	CreateInsight(ctx context.Context, insight *model.Insight) error
	GetInsights(ctx context.Context, ownerID string, limit int) ([]model.Insight, error)
	GetUnreadInsights(ctx context.Context, ownerID string) ([]model.Insight, error)
	GetInsightByID(ctx context.Context, id string) (*model.Insight, error)
	MarkInsightRead(ctx context.Context, id string) error

	// Bank statement operations.
	CreateStatement(ctx context.Context, statement *model.BankStatement) error
	GetStatements(ctx context.Context, ownerID string) ([]model.BankStatement, error)
	UpdateStatementStatus(ctx context.Context, id string, status model.StatementStatus, totalTransactions int, rangeStart, rangeEnd string) error

	// Plaid item operations.
	SavePlaidItem(ctx context.Context, item *model.PlaidItem) error
	GetPlaidItems(ctx context.Context, ownerID string) ([]model.PlaidItem, error)
	GetPlaidItemByItemID(ctx context.Context, itemID string) (*model.PlaidItem, error)
	DeletePlaidItem(ctx context.Context, id string) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// TransactionSource is a vendor aggregation API that can link accounts and
// fetch transactions for a stored access credential.
type TransactionSource interface {
	CreateLinkToken(ctx context.Context, userID string) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (accessToken, itemID string, err error)
	FetchTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]model.Transaction, error)
	RemoveItem(ctx context.Context, accessToken string) error
}

// ExtractionSummary aggregates what a document processor pulled out of one
// statement file.
type ExtractionSummary struct {
	TotalTransactions int     `json:"totalTransactions"`
	UniqueMerchants   int     `json:"uniqueMerchants"`
	Categories        int     `json:"categories"`
	TotalIncome       float64 `json:"totalIncome"`
	TotalExpenses     float64 `json:"totalExpenses"`
	NetFlow           float64 `json:"netFlow"`
}

// ExtractionResult is the document processor's response for one file.
type ExtractionResult struct {
	Transactions []model.Transaction `json:"transactions"`
	Summary      ExtractionSummary   `json:"summary"`
	Success      bool                `json:"success"`
}

// DocumentProcessor extracts transactions from an uploaded statement file.
type DocumentProcessor interface {
	Process(ctx context.Context, fileName string, data []byte) (*ExtractionResult, error)
}

// Quote is a current price snapshot for one symbol.
type Quote struct {
	Symbol           string
	Price            float64
	DayChange        float64
	DayChangePercent float64
}

// QuoteProvider fetches stock market data from an external API.
type QuoteProvider interface {
	CurrentQuote(ctx context.Context, symbol string) (*Quote, error)
	DailyHistory(ctx context.Context, symbol string, days int) ([]model.StockPrice, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
