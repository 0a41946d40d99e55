package domain

import "time"

// DefaultSuccessRate is the confidence assigned to a rule nobody has rated yet.
const DefaultSuccessRate = 0.5

// RuleFeedback tracks how often a recommendation rule has worked out.
type RuleFeedback struct {
	RuleKey     string
	SuccessRate float64
	UpdatedAt   time.Time
}

// NewRuleFeedback returns the initial feedback row for a rule key.
func NewRuleFeedback(ruleKey string) RuleFeedback {
	return RuleFeedback{RuleKey: ruleKey, SuccessRate: DefaultSuccessRate}
}
