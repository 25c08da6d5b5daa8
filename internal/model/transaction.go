// Package model defines the core domain types shared across the application.
package model

// DateLayout is the calendar-day format used for all transaction dates.
// Dates are stored as strings in this layout so that lexicographic order
// matches chronological order.
const DateLayout = "2006-01-02"

// TransactionType distinguishes inflows from outflows. It is redundant with
// the sign of Amount but stored alongside it for display purposes.
type TransactionType string

// Transaction type values.
const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// Transaction represents a single financial transaction from any source.
type Transaction struct {
	ID          string
	OwnerID     string
	Date        string // calendar day, YYYY-MM-DD
	Description string
	Merchant    string // optional display label; falls back to Description
	Category    string
	Type        TransactionType
	StatementID string  // set when created via document upload
	SourceTxnID string  // set when created via vendor ingestion, used for deduplication
	Amount      float64 // positive = credit (inflow), negative = debit (outflow)
}

// MerchantLabel returns the merchant display label, falling back to the raw
// description when no merchant was recorded.
func (t *Transaction) MerchantLabel() string {
	if t.Merchant != "" {
		return t.Merchant
	}
	return t.Description
}

// IsDebit reports whether the transaction is an outflow.
func (t *Transaction) IsDebit() bool {
	return t.Amount < 0
}

// TypeForAmount derives the transaction type from the sign of an amount.
func TypeForAmount(amount float64) TransactionType {
	if amount < 0 {
		return TypeDebit
	}
	return TypeCredit
}
