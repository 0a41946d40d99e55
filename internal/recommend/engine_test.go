package recommend

import (
	"testing"
	"time"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

func newProject(id string, priority int, pct, actual float64) *domain.Project {
	return &domain.Project{
		ID:                   id,
		Name:                 "Project " + id,
		Client:               &domain.Client{ID: "c-" + id, StrategicPriority: priority, SatisfactionScore: 4},
		StartDate:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:              time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		BaselineBudget:       1000,
		CurrentForecast:      1100,
		ActualSpend:          actual,
		BaselineScheduleDays: 365,
		ForecastScheduleDays: 380,
		PercentComplete:      pct,
	}
}

func risks(category string, n int) []domain.Risk {
	out := make([]domain.Risk, n)
	for i := range out {
		out[i] = domain.Risk{ProjectID: "p-1", Category: category, Probability: 0.3}
	}
	return out
}

func ruleKeys(recs []Recommendation) []string {
	keys := make([]string, len(recs))
	for i, r := range recs {
		keys[i] = r.RuleKey
	}
	return keys
}

func TestGenerateRecommendations_HealthyPortfolioIsQuiet(t *testing.T) {
	recs := GenerateRecommendations([]*domain.Project{newProject("p-1", 5, 0.4, 400)}, nil, nil, nil, &asOf)
	assert.Empty(t, recs)
}

func TestGenerateRecommendations_SlippingPriorityProject(t *testing.T) {
	// EV 200, AC 400 => CPI 0.5; PV ~249 => SPI ~0.80
	p := newProject("p-1", 5, 0.2, 400)

	recs := GenerateRecommendations([]*domain.Project{p}, nil, nil, nil, &asOf)
	require.Len(t, recs, 2)

	escalate := recs[0]
	assert.Equal(t, RuleScheduleSlipPriority, escalate.RuleKey)
	assert.Equal(t, DecisionEscalate, escalate.DecisionType)
	assert.Equal(t, []string{"p-1"}, escalate.AffectedProjectIDs)
	assert.Equal(t, ScheduleRecoveryDays, escalate.ExpectedImpact["schedule_recovery_days"])
	assert.Equal(t, "increase", escalate.ExpectedImpact["resource_shift"])
	assert.Contains(t, escalate.Explanation, "SPI 0.80 below 0.90 with client priority 5")
	assert.Equal(t, 0.5, escalate.Confidence)

	overrun := recs[1]
	assert.Equal(t, RuleCostOverrun, overrun.RuleKey)
	assert.Equal(t, DecisionRiskMitigation, overrun.DecisionType)
	assert.Equal(t, TargetCPI, overrun.ExpectedImpact["target_cpi"])
	assert.Equal(t, true, overrun.ExpectedImpact["cost_control"])
	assert.Contains(t, overrun.Explanation, "CPI 0.50 below 0.90")
}

func TestGenerateRecommendations_LowPriorityDoesNotEscalate(t *testing.T) {
	p := newProject("p-1", 3, 0.2, 400)

	recs := GenerateRecommendations([]*domain.Project{p}, nil, nil, nil, &asOf)
	assert.Equal(t, []string{RuleCostOverrun}, ruleKeys(recs))
}

func TestGenerateRecommendations_NoClientMeansPriorityOne(t *testing.T) {
	p := newProject("p-1", 5, 0.2, 200)
	p.Client = nil

	recs := GenerateRecommendations([]*domain.Project{p}, nil, nil, nil, &asOf)
	assert.Empty(t, recs)
}

func TestEngine_SPIJustBelowThresholdOnly(t *testing.T) {
	p := newProject("p-1", 5, 0.4, 400)
	engine := NewEngine()

	recs := engine.Evaluate(Snapshot{
		Projects: []*domain.Project{p},
		KPIs:     map[string]analytics.KPIResult{"p-1": {ProjectID: "p-1", SPI: 0.95, CPI: 1}},
	}, nil)
	assert.Empty(t, recs, "SPI 0.95 with priority 5 must not escalate")

	recs = engine.Evaluate(Snapshot{
		Projects: []*domain.Project{p},
		KPIs:     map[string]analytics.KPIResult{"p-1": {ProjectID: "p-1", SPI: 0.89, CPI: 1}},
	}, nil)
	assert.Equal(t, []string{RuleScheduleSlipPriority}, ruleKeys(recs))
}

func TestEngine_OrdersPerProjectThenPortfolio(t *testing.T) {
	a := newProject("p-a", 5, 0.2, 400)
	b := newProject("p-b", 5, 0.2, 400)
	templates := []domain.ProcessTemplate{
		{ID: "t-1", Name: "Schedule Recovery Playbook"},
		{ID: "t-2", Name: "Other"},
	}
	all := append(risks(domain.RiskCategorySchedule, 3), risks(domain.RiskCategoryScope, 3)...)

	recs := GenerateRecommendations([]*domain.Project{a, b}, all, templates, nil, &asOf)
	require.Equal(t, []string{
		RuleScheduleSlipPriority, RuleCostOverrun,
		RuleScheduleSlipPriority, RuleCostOverrun,
		RuleStandardizeScheduleControls, RuleStaffTrainingGap,
	}, ruleKeys(recs))

	assert.Equal(t, []string{"p-a"}, recs[0].AffectedProjectIDs)
	assert.Equal(t, []string{"p-b"}, recs[2].AffectedProjectIDs)

	standardize := recs[4]
	assert.Equal(t, DecisionStandardizeProcess, standardize.DecisionType)
	assert.Equal(t, "t-1", standardize.ExpectedImpact["template_id"])
	assert.Equal(t, TemplateAdoptionTarget, standardize.ExpectedImpact["adoption_target"])
	assert.Contains(t, standardize.Explanation, "'Schedule Recovery Playbook'")
	assert.Equal(t, []string{"p-a", "p-b"}, standardize.AffectedProjectIDs)

	training := recs[5]
	assert.Equal(t, DecisionStaffingTraining, training.DecisionType)
	assert.Equal(t, "scope control", training.ExpectedImpact["training_focus"])
	assert.Equal(t, "Q4", training.ExpectedImpact["target_completion"])
}

func TestEngine_ScheduleRulesNeedTemplateAndThreshold(t *testing.T) {
	p := newProject("p-1", 1, 0.4, 400)
	templates := []domain.ProcessTemplate{{ID: "t-1", Name: "Playbook"}}

	recs := GenerateRecommendations([]*domain.Project{p}, risks(domain.RiskCategorySchedule, 3), nil, nil, &asOf)
	assert.Empty(t, recs, "no template, no standardization")

	recs = GenerateRecommendations([]*domain.Project{p}, risks(domain.RiskCategorySchedule, 2), templates, nil, &asOf)
	assert.Empty(t, recs)

	recs = GenerateRecommendations([]*domain.Project{p}, risks(domain.RiskCategoryScope, 2), templates, nil, &asOf)
	assert.Empty(t, recs)
}

func TestEngine_ConfidenceFromFeedback(t *testing.T) {
	p := newProject("p-1", 5, 0.2, 400)
	table := NewFeedbackTable(domain.RuleFeedback{RuleKey: RuleCostOverrun, SuccessRate: 0.8})

	recs := GenerateRecommendations([]*domain.Project{p}, nil, nil, table, &asOf)
	require.Len(t, recs, 2)
	assert.Equal(t, 0.5, recs[0].Confidence)
	assert.Equal(t, 0.8, recs[1].Confidence)
}

func TestEngine_CustomRules(t *testing.T) {
	always := Rule{
		Key:          "always",
		DecisionType: "note",
		Scope:        ScopePortfolio,
		Match:        func(Subject) bool { return true },
		Build: func(s Subject) Proposal {
			return Proposal{Explanation: "portfolio has projects"}
		},
	}
	engine := NewEngine(always)
	require.Len(t, engine.Rules(), 1)

	recs := engine.Evaluate(Snapshot{}, nil)
	require.Len(t, recs, 1)
	assert.Equal(t, "note", recs[0].DecisionType)
}

func TestDefaultRules_Order(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 4)
	assert.Equal(t, RuleScheduleSlipPriority, rules[0].Key)
	assert.Equal(t, ScopeProject, rules[1].Scope)
	assert.Equal(t, ScopePortfolio, rules[2].Scope)
	assert.Equal(t, "portfolio", rules[3].Scope.String())
}
