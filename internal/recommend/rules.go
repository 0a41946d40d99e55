package recommend

import (
	"fmt"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/alexanderramin/pdsops/internal/domain"
)

// Rule keys. Feedback rows are stored under these.
const (
	RuleScheduleSlipPriority        = "schedule_slip_priority"
	RuleCostOverrun                 = "cost_overrun"
	RuleStandardizeScheduleControls = "standardize_schedule_controls"
	RuleStaffTrainingGap            = "staff_training_gap"
)

// Decision types emitted by the default rules.
const (
	DecisionEscalate           = "escalate"
	DecisionRiskMitigation     = "risk_mitigation"
	DecisionStandardizeProcess = "standardize_process"
	DecisionStaffingTraining   = "staffing_training"
)

// Thresholds used by the default rules.
const (
	SPIThreshold           = 0.9
	CPIThreshold           = 0.9
	EscalationPriority     = 4
	RecurringRiskThreshold = 3
	TemplateAdoptionTarget = 0.75
	TargetCPI              = 0.95
	ScheduleRecoveryDays   = 10
)

type Scope int

const (
	// ScopeProject rules are evaluated once per project.
	ScopeProject Scope = iota
	// ScopePortfolio rules are evaluated once per snapshot.
	ScopePortfolio
)

func (s Scope) String() string {
	if s == ScopePortfolio {
		return "portfolio"
	}
	return "project"
}

// Snapshot is the portfolio state a rule set runs against.
type Snapshot struct {
	Projects  []*domain.Project
	Risks     []domain.Risk
	Templates []domain.ProcessTemplate
	KPIs      map[string]analytics.KPIResult
}

// Subject is what a rule inspects. Project is nil for portfolio rules.
type Subject struct {
	Snapshot *Snapshot
	Project  *domain.Project
	KPI      analytics.KPIResult
}

// Proposal is the rule-specific part of a recommendation.
type Proposal struct {
	AffectedProjectIDs []string
	ExpectedImpact     map[string]any
	Explanation        string
}

// Rule describes one recommendation: when it fires and what it proposes.
type Rule struct {
	Key          string
	DecisionType string
	Scope        Scope
	Match        func(Subject) bool
	Build        func(Subject) Proposal
}

// DefaultRules returns the built-in rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Key:          RuleScheduleSlipPriority,
			DecisionType: DecisionEscalate,
			Scope:        ScopeProject,
			Match:        matchScheduleSlip,
			Build:        buildScheduleSlip,
		},
		{
			Key:          RuleCostOverrun,
			DecisionType: DecisionRiskMitigation,
			Scope:        ScopeProject,
			Match:        matchCostOverrun,
			Build:        buildCostOverrun,
		},
		{
			Key:          RuleStandardizeScheduleControls,
			DecisionType: DecisionStandardizeProcess,
			Scope:        ScopePortfolio,
			Match:        matchRecurringScheduleRisk,
			Build:        buildStandardize,
		},
		{
			Key:          RuleStaffTrainingGap,
			DecisionType: DecisionStaffingTraining,
			Scope:        ScopePortfolio,
			Match:        matchRecurringScopeRisk,
			Build:        buildTraining,
		},
	}
}

func matchScheduleSlip(s Subject) bool {
	return s.KPI.SPI < SPIThreshold && domain.TraitsOf(s.Project.Client).StrategicPriority >= EscalationPriority
}

func buildScheduleSlip(s Subject) Proposal {
	return Proposal{
		AffectedProjectIDs: []string{s.Project.ID},
		ExpectedImpact: map[string]any{
			"schedule_recovery_days": ScheduleRecoveryDays,
			"resource_shift":         "increase",
		},
		Explanation: fmt.Sprintf(
			"SPI %.2f below 0.90 with client priority %d; recommend escalation and resource reallocation.",
			s.KPI.SPI, domain.TraitsOf(s.Project.Client).StrategicPriority,
		),
	}
}

func matchCostOverrun(s Subject) bool {
	return s.KPI.CPI < CPIThreshold
}

func buildCostOverrun(s Subject) Proposal {
	return Proposal{
		AffectedProjectIDs: []string{s.Project.ID},
		ExpectedImpact: map[string]any{
			"cost_control": true,
			"target_cpi":   TargetCPI,
		},
		Explanation: fmt.Sprintf(
			"CPI %.2f below 0.90; recommend cost controls and risk mitigation actions.", s.KPI.CPI,
		),
	}
}

func matchRecurringScheduleRisk(s Subject) bool {
	return countCategory(s.Snapshot.Risks, domain.RiskCategorySchedule) >= RecurringRiskThreshold &&
		len(s.Snapshot.Templates) > 0
}

func buildStandardize(s Subject) Proposal {
	tpl := s.Snapshot.Templates[0]
	return Proposal{
		AffectedProjectIDs: projectIDs(s.Snapshot.Projects),
		ExpectedImpact: map[string]any{
			"template_id":     tpl.ID,
			"adoption_target": TemplateAdoptionTarget,
		},
		Explanation: fmt.Sprintf(
			"Schedule risks recurring across portfolio; recommend standardizing process using template '%s'.", tpl.Name,
		),
	}
}

func matchRecurringScopeRisk(s Subject) bool {
	return countCategory(s.Snapshot.Risks, domain.RiskCategoryScope) >= RecurringRiskThreshold
}

func buildTraining(s Subject) Proposal {
	return Proposal{
		AffectedProjectIDs: projectIDs(s.Snapshot.Projects),
		ExpectedImpact: map[string]any{
			"training_focus":    "scope control",
			"target_completion": "Q4",
		},
		Explanation: "Repeated scope-related risks suggest a skill gap; recommend training program.",
	}
}

func countCategory(risks []domain.Risk, category string) int {
	n := 0
	for _, r := range risks {
		if r.Category == category {
			n++
		}
	}
	return n
}

func projectIDs(projects []*domain.Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}
