package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
)

// CreateInsight persists a generated insight. Records are write-once; only
// the read flag changes afterwards.
func (s *SQLiteStorage) CreateInsight(ctx context.Context, insight *model.Insight) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateInsight(insight); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO insights (
			id, owner_id, insight_type, title, content, severity,
			related_category, is_read, actionable
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		insight.ID,
		insight.OwnerID,
		string(insight.Type),
		insight.Title,
		insight.Content,
		string(insight.Severity),
		insight.RelatedCategory,
		insight.IsRead,
		insight.Actionable,
	)
	if err != nil {
		return fmt.Errorf("failed to insert insight: %w", err)
	}
	return nil
}

// GetInsights retrieves an owner's insights, newest first.
func (s *SQLiteStorage) GetInsights(ctx context.Context, ownerID string, limit int) ([]model.Insight, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	var query strings.Builder
	query.WriteString(`
		SELECT id, owner_id, insight_type, title, content, severity,
		       related_category, is_read, actionable
		FROM insights
		WHERE owner_id = ?
		ORDER BY created_at DESC, rowid DESC
	`)
	args := []any{ownerID}
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	return s.queryInsights(ctx, query.String(), args...)
}

// GetUnreadInsights retrieves the owner's unread insights, newest first.
func (s *SQLiteStorage) GetUnreadInsights(ctx context.Context, ownerID string) ([]model.Insight, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	return s.queryInsights(ctx, `
		SELECT id, owner_id, insight_type, title, content, severity,
		       related_category, is_read, actionable
		FROM insights
		WHERE owner_id = ? AND is_read = 0
		ORDER BY created_at DESC, rowid DESC
	`, ownerID)
}

// GetInsightByID retrieves a single insight.
func (s *SQLiteStorage) GetInsightByID(ctx context.Context, id string) (*model.Insight, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, insight_type, title, content, severity,
		       related_category, is_read, actionable
		FROM insights
		WHERE id = ?
	`, id)

	insight, err := scanInsight(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insight: %w", err)
	}
	return insight, nil
}

// MarkInsightRead flips an insight's read flag.
func (s *SQLiteStorage) MarkInsightRead(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE insights SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark insight read: %w", err)
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

func (s *SQLiteStorage) queryInsights(ctx context.Context, query string, args ...any) ([]model.Insight, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query insights: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var insights []model.Insight
	for rows.Next() {
		insight, err := scanInsight(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insight: %w", err)
		}
		insights = append(insights, *insight)
	}
	return insights, rows.Err()
}

func scanInsight(scan func(...any) error) (*model.Insight, error) {
	var insight model.Insight
	var insightType, severity string

	err := scan(
		&insight.ID,
		&insight.OwnerID,
		&insightType,
		&insight.Title,
		&insight.Content,
		&severity,
		&insight.RelatedCategory,
		&insight.IsRead,
		&insight.Actionable,
	)
	if err != nil {
		return nil, err
	}
	insight.Type = model.InsightType(insightType)
	insight.Severity = model.InsightSeverity(severity)
	return &insight, nil
}
