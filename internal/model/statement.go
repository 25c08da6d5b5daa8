package model

import "time"

// StatementStatus tracks a bank statement through the extraction pipeline.
type StatementStatus string

// Statement status values.
const (
	StatementPending    StatementStatus = "pending"
	StatementProcessing StatementStatus = "processing"
	StatementCompleted  StatementStatus = "completed"
	StatementFailed     StatementStatus = "failed"
)

// BankStatement records one uploaded statement file and the outcome of
// extracting transactions from it.
type BankStatement struct {
	UploadedAt        time.Time
	ID                string
	OwnerID           string
	FileName          string
	Status            StatementStatus
	DateRangeStart    string // calendar day, empty until extraction completes
	DateRangeEnd      string
	TotalTransactions int
}

// PlaidItem is a stored bank connection: the access credential obtained from
// a public-token exchange plus the vendor's item identifier.
type PlaidItem struct {
	CreatedAt     time.Time
	ID            string
	OwnerID       string
	ItemID        string
	AccessToken   string
	InstitutionID string
}
