package domain

import (
	"fmt"
	"time"
)

// Decision records an action taken (or proposed) in response to a recommendation.
type Decision struct {
	ID                string
	RuleKey           string
	DecisionType      string
	Rationale         string
	ExpectedImpact    map[string]any
	Status            DecisionStatus
	Owner             string
	RelatedProjectIDs []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FeedbackKey is the rule key outcome feedback is credited to. Decisions
// recorded without a rule fall back to their decision type.
func (d *Decision) FeedbackKey() string {
	return CoalesceStr(d.RuleKey, d.DecisionType)
}

// Execute moves a proposed decision to executed.
func (d *Decision) Execute(now time.Time) error {
	if d.Status != DecisionProposed {
		return fmt.Errorf("decision %s is %s, only proposed decisions can be executed", d.ID, d.Status)
	}
	d.Status = DecisionExecuted
	d.UpdatedAt = now
	return nil
}

// Outcome captures measured KPIs before and after a decision was executed.
type Outcome struct {
	ID         string
	DecisionID string
	MeasuredAt time.Time
	KPIBefore  map[string]float64
	KPIAfter   map[string]float64
	Notes      string
}
