package insight

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cashly/cashly/internal/analytics"
	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/model"
	"github.com/cashly/cashly/internal/service"
)

// Reporter assembles the aggregate bundle for an owner and renders it.
// Unlike the aggregation queries it serves an action, so an unauthenticated
// caller is rejected rather than handed an empty report.
type Reporter struct {
	queries *analytics.Queries
	store   service.Storage
	logger  *slog.Logger
}

// NewReporter creates an insight reporter on top of the aggregation queries.
func NewReporter(queries *analytics.Queries, store service.Storage) *Reporter {
	return &Reporter{
		queries: queries,
		store:   store,
		logger:  slog.Default().With("component", "insight"),
	}
}

// GenerateForOwner gathers the owner's aggregates and goals and renders the
// narrative report.
func (r *Reporter) GenerateForOwner(ctx context.Context, ownerID string) (Report, error) {
	if ownerID == "" {
		return Report{}, common.ErrAuthRequired
	}

	totals, err := r.queries.IncomeVsSpending(ctx, ownerID)
	if err != nil {
		return Report{}, fmt.Errorf("loading totals: %w", err)
	}
	categories, err := r.queries.SpendingByCategory(ctx, ownerID)
	if err != nil {
		return Report{}, fmt.Errorf("loading category breakdown: %w", err)
	}
	merchants, err := r.queries.TopMerchants(ctx, ownerID, 5)
	if err != nil {
		return Report{}, fmt.Errorf("loading top merchants: %w", err)
	}
	trend, err := r.queries.MonthlyTrend(ctx, ownerID, 6)
	if err != nil {
		return Report{}, fmt.Errorf("loading monthly trend: %w", err)
	}
	goals, err := r.store.GetActiveGoals(ctx, ownerID)
	if err != nil {
		return Report{}, fmt.Errorf("loading active goals: %w", err)
	}

	r.logger.Debug("Generating insight report",
		"owner", ownerID,
		"categories", len(categories),
		"goals", len(goals))

	return Generate(Bundle{
		Totals:       totals,
		Categories:   categories,
		TopMerchants: merchants,
		MonthlyTrend: trend,
		Goals:        goals,
	}), nil
}

// DefaultInsightLimit caps an insight listing when the caller does not ask
// for a specific count.
const DefaultInsightLimit = 20

// CreateInsightInput carries the caller-supplied fields for a persisted
// insight.
type CreateInsightInput struct {
	Type            model.InsightType
	Title           string
	Content         string
	Severity        model.InsightSeverity
	RelatedCategory string
	Actionable      bool
}

// CreateInsight persists a dashboard insight for the owner. Records start
// unread.
func (r *Reporter) CreateInsight(ctx context.Context, ownerID string, input CreateInsightInput) (*model.Insight, error) {
	if ownerID == "" {
		return nil, common.ErrAuthRequired
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if input.Content == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrValidation)
	}

	insight := &model.Insight{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		Type:            input.Type,
		Title:           input.Title,
		Content:         input.Content,
		Severity:        input.Severity,
		RelatedCategory: input.RelatedCategory,
		Actionable:      input.Actionable,
	}
	if err := r.store.CreateInsight(ctx, insight); err != nil {
		return nil, fmt.Errorf("creating insight: %w", err)
	}

	r.logger.Info("Created insight", "insight", insight.ID, "owner", ownerID, "type", insight.Type)
	return insight, nil
}

// Insights lists the owner's persisted insights, newest first. A limit <= 0
// uses DefaultInsightLimit. An empty owner yields nothing.
func (r *Reporter) Insights(ctx context.Context, ownerID string, limit int) ([]model.Insight, error) {
	if ownerID == "" {
		return []model.Insight{}, nil
	}
	if limit <= 0 {
		limit = DefaultInsightLimit
	}
	return r.store.GetInsights(ctx, ownerID, limit)
}

// UnreadInsights lists the owner's unread insights.
func (r *Reporter) UnreadInsights(ctx context.Context, ownerID string) ([]model.Insight, error) {
	if ownerID == "" {
		return []model.Insight{}, nil
	}
	return r.store.GetUnreadInsights(ctx, ownerID)
}

// MarkRead flips an owned insight's read flag. Someone else's insight reads
// as not found.
func (r *Reporter) MarkRead(ctx context.Context, ownerID, insightID string) error {
	if ownerID == "" {
		return common.ErrAuthRequired
	}
	if insightID == "" {
		return fmt.Errorf("%w: insight ID is required", common.ErrValidation)
	}
	insight, err := r.store.GetInsightByID(ctx, insightID)
	if err != nil {
		return err
	}
	if insight.OwnerID != ownerID {
		return common.ErrNotFound
	}
	return r.store.MarkInsightRead(ctx, insightID)
}
