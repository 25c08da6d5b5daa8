package model

import "time"

// GoalType is the fixed set of goal categories offered to users.
type GoalType string

// Goal type values.
const (
	GoalEmergency     GoalType = "emergency"
	GoalDiscretionary GoalType = "discretionary"
	GoalInvestment    GoalType = "investment"
	GoalLaptop        GoalType = "laptop"
	GoalBike          GoalType = "bike"
	GoalTravel        GoalType = "travel"
	GoalHouse         GoalType = "house"
	GoalCar           GoalType = "car"
	GoalEducation     GoalType = "education"
	GoalRetirement    GoalType = "retirement"
	GoalGeneral       GoalType = "general"
)

// ValidGoalType reports whether t is one of the fixed goal categories.
func ValidGoalType(t GoalType) bool {
	switch t {
	case GoalEmergency, GoalDiscretionary, GoalInvestment, GoalLaptop,
		GoalBike, GoalTravel, GoalHouse, GoalCar, GoalEducation,
		GoalRetirement, GoalGeneral:
		return true
	}
	return false
}

// TimeHorizon classifies how far out a goal's target date is.
type TimeHorizon string

// Time horizon values.
const (
	ShortTerm  TimeHorizon = "short_term"
	MediumTerm TimeHorizon = "medium_term"
	LongTerm   TimeHorizon = "long_term"
)

// Priority classifies how a user feels about a goal.
type Priority string

// Priority values.
const (
	PriorityUrgent Priority = "urgent"
	PriorityFun    Priority = "fun"
	PriorityDream  Priority = "dream"
)

// Milestone is a sub-target within a financial goal, independently markable
// as achieved once the goal's current amount reaches its threshold.
type Milestone struct {
	AchievedAt  *time.Time `json:"achievedAt,omitempty"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Achieved    bool       `json:"achieved"`
}

// FinancialGoal is a savings target with a manually maintained running total.
// CurrentAmount is adjusted only by explicit add-amount operations; it is
// never derived from transactions.
type FinancialGoal struct {
	ID                  string
	OwnerID             string
	Title               string
	GoalType            GoalType
	TimeHorizon         TimeHorizon
	Priority            Priority
	TargetDate          string // calendar day, YYYY-MM-DD
	Milestones          []Milestone
	TargetAmount        float64
	CurrentAmount       float64
	MonthlyContribution float64
	IsActive            bool
}

// Completed reports whether the goal has reached its target. Completion is a
// read-time comparison, not stored state; CurrentAmount may exceed
// TargetAmount.
func (g *FinancialGoal) Completed() bool {
	return g.CurrentAmount >= g.TargetAmount
}

// Remaining returns the amount still needed to reach the target, never
// negative.
func (g *FinancialGoal) Remaining() float64 {
	if r := g.TargetAmount - g.CurrentAmount; r > 0 {
		return r
	}
	return 0
}
