package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 4

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: transactions and financial goals",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					owner_id TEXT NOT NULL,
					date TEXT NOT NULL,
					description TEXT NOT NULL,
					merchant TEXT,
					category TEXT NOT NULL,
					transaction_type TEXT NOT NULL,
					statement_id TEXT,
					source_txn_id TEXT,
					amount REAL NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_owner ON transactions(owner_id)`,
				`CREATE INDEX idx_transactions_owner_date ON transactions(owner_id, date)`,
				`CREATE INDEX idx_transactions_owner_category ON transactions(owner_id, category)`,
				// Deliberately not UNIQUE: deduplication is an existence
				// check at save time, and manual entries have no source ID.
				`CREATE INDEX idx_transactions_source ON transactions(source_txn_id)`,

				`CREATE TABLE IF NOT EXISTS financial_goals (
					id TEXT PRIMARY KEY,
					owner_id TEXT NOT NULL,
					title TEXT NOT NULL,
					goal_type TEXT NOT NULL,
					time_horizon TEXT,
					priority TEXT,
					target_date TEXT,
					milestones TEXT,
					target_amount REAL NOT NULL,
					current_amount REAL NOT NULL DEFAULT 0,
					monthly_contribution REAL NOT NULL DEFAULT 0,
					is_active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_goals_owner ON financial_goals(owner_id)`,
				`CREATE INDEX idx_goals_owner_active ON financial_goals(owner_id, is_active)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add investments and stock price history",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS investments (
					id TEXT PRIMARY KEY,
					owner_id TEXT NOT NULL,
					symbol TEXT NOT NULL,
					shares REAL NOT NULL,
					average_cost REAL NOT NULL,
					current_price REAL NOT NULL DEFAULT 0,
					day_change REAL NOT NULL DEFAULT 0,
					day_change_percent REAL NOT NULL DEFAULT 0,
					total_value REAL NOT NULL DEFAULT 0,
					total_gain_loss REAL NOT NULL DEFAULT 0,
					total_gain_loss_percent REAL NOT NULL DEFAULT 0,
					last_updated DATETIME
				)`,
				`CREATE UNIQUE INDEX idx_investments_owner_symbol ON investments(owner_id, symbol)`,

				`CREATE TABLE IF NOT EXISTS stock_prices (
					symbol TEXT NOT NULL,
					date TEXT NOT NULL,
					open REAL NOT NULL,
					high REAL NOT NULL,
					low REAL NOT NULL,
					close REAL NOT NULL,
					volume INTEGER NOT NULL DEFAULT 0,
					PRIMARY KEY (symbol, date)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add persisted insights",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS insights (
					id TEXT PRIMARY KEY,
					owner_id TEXT NOT NULL,
					insight_type TEXT NOT NULL,
					title TEXT NOT NULL,
					content TEXT NOT NULL,
					severity TEXT NOT NULL,
					related_category TEXT,
					is_read INTEGER NOT NULL DEFAULT 0,
					actionable INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_insights_owner ON insights(owner_id)`,
				`CREATE INDEX idx_insights_owner_read ON insights(owner_id, is_read)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     4,
		Description: "Add bank statements and plaid items",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS bank_statements (
					id TEXT PRIMARY KEY,
					owner_id TEXT NOT NULL,
					file_name TEXT NOT NULL,
					status TEXT NOT NULL,
					total_transactions INTEGER NOT NULL DEFAULT 0,
					range_start TEXT,
					range_end TEXT,
					uploaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_statements_owner ON bank_statements(owner_id)`,

				`CREATE TABLE IF NOT EXISTS plaid_items (
					id TEXT PRIMARY KEY,
					owner_id TEXT NOT NULL,
					item_id TEXT UNIQUE NOT NULL,
					access_token TEXT NOT NULL,
					institution_id TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_plaid_items_owner ON plaid_items(owner_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// SchemaVersion reports the database's current schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies all pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
