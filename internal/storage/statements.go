package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
)

// CreateStatement records an uploaded statement file, usually in the
// pending state.
func (s *SQLiteStorage) CreateStatement(ctx context.Context, statement *model.BankStatement) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateStatement(statement); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bank_statements (
			id, owner_id, file_name, status, total_transactions,
			range_start, range_end, uploaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		statement.ID,
		statement.OwnerID,
		statement.FileName,
		string(statement.Status),
		statement.TotalTransactions,
		statement.DateRangeStart,
		statement.DateRangeEnd,
		statement.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert statement: %w", err)
	}
	return nil
}

// GetStatements retrieves an owner's uploaded statements, newest first.
func (s *SQLiteStorage) GetStatements(ctx context.Context, ownerID string) ([]model.BankStatement, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, file_name, status, total_transactions,
		       range_start, range_end, uploaded_at
		FROM bank_statements
		WHERE owner_id = ?
		ORDER BY uploaded_at DESC, rowid DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var statements []model.BankStatement
	for rows.Next() {
		var statement model.BankStatement
		var status string
		err := rows.Scan(
			&statement.ID,
			&statement.OwnerID,
			&statement.FileName,
			&status,
			&statement.TotalTransactions,
			&statement.DateRangeStart,
			&statement.DateRangeEnd,
			&statement.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		statement.Status = model.StatementStatus(status)
		statements = append(statements, statement)
	}
	return statements, rows.Err()
}

// UpdateStatementStatus advances a statement through the extraction pipeline
// and records what the extraction found.
func (s *SQLiteStorage) UpdateStatementStatus(ctx context.Context, id string, status model.StatementStatus, totalTransactions int, rangeStart, rangeEnd string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE bank_statements
		SET status = ?, total_transactions = ?, range_start = ?, range_end = ?
		WHERE id = ?
	`, string(status), totalTransactions, rangeStart, rangeEnd, id)
	if err != nil {
		return fmt.Errorf("failed to update statement: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// SavePlaidItem stores a bank connection credential.
func (s *SQLiteStorage) SavePlaidItem(ctx context.Context, item *model.PlaidItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: item", ErrNilParameter)
	}
	if err := validateString(item.ID, "item.ID"); err != nil {
		return err
	}
	if err := validateString(item.OwnerID, "item.OwnerID"); err != nil {
		return err
	}
	if err := validateString(item.AccessToken, "item.AccessToken"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plaid_items (id, owner_id, item_id, access_token, institution_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			access_token = excluded.access_token,
			institution_id = excluded.institution_id
	`, item.ID, item.OwnerID, item.ItemID, item.AccessToken, item.InstitutionID, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save plaid item: %w", err)
	}
	return nil
}

// GetPlaidItems retrieves all of an owner's bank connections.
func (s *SQLiteStorage) GetPlaidItems(ctx context.Context, ownerID string) ([]model.PlaidItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, item_id, access_token, institution_id, created_at
		FROM plaid_items
		WHERE owner_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plaid items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.PlaidItem
	for rows.Next() {
		var item model.PlaidItem
		err := rows.Scan(&item.ID, &item.OwnerID, &item.ItemID,
			&item.AccessToken, &item.InstitutionID, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plaid item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetPlaidItemByItemID retrieves a connection by the vendor's item ID.
func (s *SQLiteStorage) GetPlaidItemByItemID(ctx context.Context, itemID string) (*model.PlaidItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return nil, err
	}

	var item model.PlaidItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, item_id, access_token, institution_id, created_at
		FROM plaid_items
		WHERE item_id = ?
	`, itemID).Scan(&item.ID, &item.OwnerID, &item.ItemID,
		&item.AccessToken, &item.InstitutionID, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plaid item: %w", err)
	}
	return &item, nil
}

// DeletePlaidItem removes a bank connection.
func (s *SQLiteStorage) DeletePlaidItem(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM plaid_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plaid item: %w", err)
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
