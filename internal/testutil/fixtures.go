package testutil

import (
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/google/uuid"
)

// ReferenceAsOf is the evaluation date the reference project fixtures are
// tuned for: 91 days into a 365 day baseline.
var ReferenceAsOf = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Client options
type ClientOption func(*domain.Client)

func WithPriority(p int) ClientOption {
	return func(c *domain.Client) {
		c.StrategicPriority = p
	}
}

func WithSatisfaction(s float64) ClientOption {
	return func(c *domain.Client) {
		c.SatisfactionScore = s
	}
}

func WithPipeline(v float64) ClientOption {
	return func(c *domain.Client) {
		c.PipelineValue = v
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	ts := now()
	c := &domain.Client{
		ID:                uuid.New().String(),
		Name:              name,
		SatisfactionScore: 4,
		PipelineValue:     100000,
		StrategicPriority: 5,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project options
type ProjectOption func(*domain.Project)

// WithClient attaches c and sets ClientID.
func WithClient(c *domain.Client) ProjectOption {
	return func(p *domain.Project) {
		p.Client = c
		p.ClientID = c.ID
	}
}

func WithProgress(pct, actualSpend float64) ProjectOption {
	return func(p *domain.Project) {
		p.PercentComplete = pct
		p.ActualSpend = actualSpend
	}
}

func WithBudget(baseline, forecast float64) ProjectOption {
	return func(p *domain.Project) {
		p.BaselineBudget = baseline
		p.CurrentForecast = forecast
	}
}

func WithSchedule(baselineDays, forecastDays int) ProjectOption {
	return func(p *domain.Project) {
		p.BaselineScheduleDays = baselineDays
		p.ForecastScheduleDays = forecastDays
	}
}

func WithDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithSafetyIncidents(n int) ProjectOption {
	return func(p *domain.Project) {
		p.SafetyIncidents = n
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

// NewTestProject returns the reference project: 40% complete on a 1000
// budget, 400 spent, 1100 forecast, 365/380 schedule days over 2024.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	ts := now()
	p := &domain.Project{
		ID:                   uuid.New().String(),
		Name:                 name,
		Region:               "NA",
		Sector:               "Office",
		StartDate:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:              time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		BaselineBudget:       1000,
		CurrentForecast:      1100,
		ActualSpend:          400,
		BaselineScheduleDays: 365,
		ForecastScheduleDays: 380,
		PercentComplete:      0.4,
		Status:               domain.ProjectActive,
		CreatedAt:            ts,
		UpdatedAt:            ts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Risk options
type RiskOption func(*domain.Risk)

func WithCategory(c string) RiskOption {
	return func(r *domain.Risk) {
		r.Category = c
	}
}

func WithImpact(cost, days float64) RiskOption {
	return func(r *domain.Risk) {
		r.ImpactCost = cost
		r.ImpactDays = days
	}
}

func NewTestRisk(projectID string, probability float64, opts ...RiskOption) *domain.Risk {
	r := &domain.Risk{
		ID:               uuid.New().String(),
		ProjectID:        projectID,
		Category:         domain.RiskCategorySchedule,
		Probability:      probability,
		ImpactCost:       10000,
		ImpactDays:       5,
		MitigationStatus: domain.MitigationOpen,
		CreatedAt:        now(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestTemplate(name string) *domain.ProcessTemplate {
	return &domain.ProcessTemplate{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     name + " checklist",
		Checklist:       []string{"Daily schedule variance review", "Critical path analysis"},
		AdoptionRatePct: 0.45,
		CreatedAt:       now(),
	}
}

// NewTestResource returns a bench entry in region with the given utilization.
func NewTestResource(name, region string, utilization float64) *domain.Resource {
	ts := now()
	return &domain.Resource{
		ID:             uuid.New().String(),
		Name:           name,
		Role:           "project controls",
		Region:         region,
		SkillTags:      []string{"scheduling"},
		UtilizationPct: utilization,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
}

func NewTestGap(category, question string) *domain.Gap {
	ts := now()
	return &domain.Gap{
		ID:          uuid.New().String(),
		Category:    category,
		Question:    question,
		Attachments: map[string]string{},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// Decision options
type DecisionOption func(*domain.Decision)

func WithDecisionStatus(s domain.DecisionStatus) DecisionOption {
	return func(d *domain.Decision) {
		d.Status = s
	}
}

func WithRelatedProjects(ids ...string) DecisionOption {
	return func(d *domain.Decision) {
		d.RelatedProjectIDs = ids
	}
}

func NewTestDecision(ruleKey, decisionType string, opts ...DecisionOption) *domain.Decision {
	ts := now()
	d := &domain.Decision{
		ID:             uuid.New().String(),
		RuleKey:        ruleKey,
		DecisionType:   decisionType,
		Rationale:      "test rationale",
		ExpectedImpact: map[string]any{"target_cpi": 0.95},
		Status:         domain.DecisionProposed,
		Owner:          "pm@example.com",
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
