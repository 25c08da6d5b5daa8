package model

// InsightType categorizes a persisted insight record.
type InsightType string

// Insight type values.
const (
	InsightSpendingPattern      InsightType = "spending_pattern"
	InsightBudgetRecommendation InsightType = "budget_recommendation"
	InsightInvestmentAdvice     InsightType = "investment_advice"
	InsightHumorousRoast        InsightType = "humorous_roast"
	InsightGoalProgress         InsightType = "goal_progress"
)

// InsightSeverity ranks how urgently an insight should be surfaced.
type InsightSeverity string

// Insight severity values.
const (
	SeverityInfo     InsightSeverity = "info"
	SeverityWarning  InsightSeverity = "warning"
	SeverityCritical InsightSeverity = "critical"
	SeverityPositive InsightSeverity = "positive"
)

// Insight is a persisted narrative record shown on the dashboard. It is
// write-once; the only mutation after creation is flipping IsRead.
type Insight struct {
	ID              string
	OwnerID         string
	Type            InsightType
	Title           string
	Content         string
	Severity        InsightSeverity
	RelatedCategory string
	IsRead          bool
	Actionable      bool
}
