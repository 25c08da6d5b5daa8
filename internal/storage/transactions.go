package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

// SaveTransactions inserts transactions, skipping any whose SourceTxnID is
// already present. Source IDs are vendor-global, so the check is not scoped
// to the owner. Deduplication is an explicit existence check rather than a
// unique constraint, because manually entered records have no source ID at
// all. Returns the number actually inserted.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	inserted := 0
	err := s.execTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO transactions (
				id, owner_id, date, description, merchant, category,
				transaction_type, statement_id, source_txn_id, amount
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, txn := range transactions {
			if txn.SourceTxnID != "" {
				var exists bool
				err := tx.QueryRowContext(ctx, `
					SELECT EXISTS(
						SELECT 1 FROM transactions WHERE source_txn_id = ?
					)
				`, txn.SourceTxnID).Scan(&exists)
				if err != nil {
					return fmt.Errorf("failed to check for duplicate: %w", err)
				}
				if exists {
					slog.Debug("Skipping duplicate transaction", "source_txn_id", txn.SourceTxnID)
					continue
				}
			}

			_, err = stmt.ExecContext(ctx,
				txn.ID,
				txn.OwnerID,
				txn.Date,
				txn.Description,
				txn.Merchant,
				txn.Category,
				string(txn.Type),
				txn.StatementID,
				txn.SourceTxnID,
				txn.Amount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetTransactions retrieves an owner's transactions, newest first, with
// optional filtering. Date bounds compare the stored YYYY-MM-DD strings
// lexicographically.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, ownerID string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	var query strings.Builder
	query.WriteString(`
		SELECT id, owner_id, date, description, merchant, category,
		       transaction_type, statement_id, source_txn_id, amount
		FROM transactions
		WHERE owner_id = ?
	`)
	args := []any{ownerID}

	if filter.Category != "" {
		query.WriteString(" AND category = ?")
		args = append(args, filter.Category)
	}
	if filter.StartDate != "" {
		query.WriteString(" AND date >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		query.WriteString(" AND date <= ?")
		args = append(args, filter.EndDate)
	}
	if filter.DebitsOnly {
		query.WriteString(" AND transaction_type = ?")
		args = append(args, string(model.TypeDebit))
	}
	query.WriteString(" ORDER BY date DESC, rowid DESC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// GetTransactionByID retrieves a single transaction by ID.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var txn model.Transaction
	var txType string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, date, description, merchant, category,
		       transaction_type, statement_id, source_txn_id, amount
		FROM transactions
		WHERE id = ?
	`, id).Scan(
		&txn.ID,
		&txn.OwnerID,
		&txn.Date,
		&txn.Description,
		&txn.Merchant,
		&txn.Category,
		&txType,
		&txn.StatementID,
		&txn.SourceTxnID,
		&txn.Amount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	txn.Type = model.TransactionType(txType)
	return &txn, nil
}

// DeleteTransaction removes a single transaction.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ClearTransactions deletes all of an owner's transactions one record at a
// time, best-effort. A failed delete is logged and skipped; the count of
// successful deletes is returned either way.
func (s *SQLiteStorage) ClearTransactions(ctx context.Context, ownerID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return 0, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM transactions WHERE owner_id = ?`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("failed to scan transaction ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, fmt.Errorf("failed to read transaction IDs: %w", err)
	}
	_ = rows.Close()

	deleted := 0
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
			slog.Warn("Failed to delete transaction during clear", "id", id, "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var txType string
		err := rows.Scan(
			&txn.ID,
			&txn.OwnerID,
			&txn.Date,
			&txn.Description,
			&txn.Merchant,
			&txn.Category,
			&txType,
			&txn.StatementID,
			&txn.SourceTxnID,
			&txn.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Type = model.TransactionType(txType)
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}
