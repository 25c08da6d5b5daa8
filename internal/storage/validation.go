// Package storage provides the data persistence layer for cashly.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cashly/cashly/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidGoal        = errors.New("invalid goal")
	ErrInvalidInvestment  = errors.New("invalid investment")
	ErrInvalidInsight     = errors.New("invalid insight")
	ErrInvalidStatement   = errors.New("invalid statement")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.OwnerID == "" {
		return fmt.Errorf("%w: missing owner ID", ErrInvalidTransaction)
	}
	if txn.Description == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidTransaction)
	}
	if _, err := time.Parse(model.DateLayout, txn.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidTransaction, txn.Date)
	}
	return nil
}

// validateGoal validates a financial goal.
func validateGoal(goal *model.FinancialGoal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if goal.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidGoal)
	}
	if goal.OwnerID == "" {
		return fmt.Errorf("%w: missing owner ID", ErrInvalidGoal)
	}
	if goal.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidGoal)
	}
	return nil
}

// validateInvestment validates an investment.
func validateInvestment(investment *model.Investment) error {
	if investment == nil {
		return fmt.Errorf("%w: investment", ErrNilParameter)
	}
	if investment.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidInvestment)
	}
	if investment.OwnerID == "" {
		return fmt.Errorf("%w: missing owner ID", ErrInvalidInvestment)
	}
	if investment.Symbol == "" {
		return fmt.Errorf("%w: missing symbol", ErrInvalidInvestment)
	}
	return nil
}

// validateInsight validates a persisted insight.
func validateInsight(insight *model.Insight) error {
	if insight == nil {
		return fmt.Errorf("%w: insight", ErrNilParameter)
	}
	if insight.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidInsight)
	}
	if insight.OwnerID == "" {
		return fmt.Errorf("%w: missing owner ID", ErrInvalidInsight)
	}
	if insight.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidInsight)
	}
	return nil
}

// validateStatement validates a bank statement record.
func validateStatement(statement *model.BankStatement) error {
	if statement == nil {
		return fmt.Errorf("%w: statement", ErrNilParameter)
	}
	if statement.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidStatement)
	}
	if statement.OwnerID == "" {
		return fmt.Errorf("%w: missing owner ID", ErrInvalidStatement)
	}
	if statement.FileName == "" {
		return fmt.Errorf("%w: missing file name", ErrInvalidStatement)
	}
	return nil
}
