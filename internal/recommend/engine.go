package recommend

import (
	"time"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/alexanderramin/pdsops/internal/domain"
)

// Recommendation is a proposed action with the confidence its rule has earned.
type Recommendation struct {
	RuleKey            string         `json:"rule_key"`
	DecisionType       string         `json:"decision_type"`
	AffectedProjectIDs []string       `json:"affected_project_ids"`
	ExpectedImpact     map[string]any `json:"expected_impact"`
	Explanation        string         `json:"explanation"`
	Confidence         float64        `json:"confidence"`
}

// ConfidenceLookup resolves the current confidence for a rule key.
type ConfidenceLookup interface {
	Confidence(ruleKey string) float64
}

// Engine evaluates an ordered rule set against a portfolio snapshot.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine over rules, or over DefaultRules when none are given.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Evaluate runs project-scoped rules for each project in turn, in rule order,
// followed by portfolio-scoped rules. Output order follows evaluation order.
// A nil feedback lookup gives every rule the default confidence.
func (e *Engine) Evaluate(snapshot Snapshot, feedback ConfidenceLookup) []Recommendation {
	var recs []Recommendation

	for _, p := range snapshot.Projects {
		kpi, ok := snapshot.KPIs[p.ID]
		if !ok {
			kpi = analytics.CalculateKPI(p, nil)
		}
		subject := Subject{Snapshot: &snapshot, Project: p, KPI: kpi}
		for _, rule := range e.rules {
			if rule.Scope != ScopeProject || !rule.Match(subject) {
				continue
			}
			recs = append(recs, newRecommendation(rule, rule.Build(subject), feedback))
		}
	}

	subject := Subject{Snapshot: &snapshot}
	for _, rule := range e.rules {
		if rule.Scope != ScopePortfolio || !rule.Match(subject) {
			continue
		}
		recs = append(recs, newRecommendation(rule, rule.Build(subject), feedback))
	}

	return recs
}

func newRecommendation(rule Rule, proposal Proposal, feedback ConfidenceLookup) Recommendation {
	confidence := domain.DefaultSuccessRate
	if feedback != nil {
		confidence = feedback.Confidence(rule.Key)
	}
	return Recommendation{
		RuleKey:            rule.Key,
		DecisionType:       rule.DecisionType,
		AffectedProjectIDs: proposal.AffectedProjectIDs,
		ExpectedImpact:     proposal.ExpectedImpact,
		Explanation:        proposal.Explanation,
		Confidence:         confidence,
	}
}

// GenerateRecommendations evaluates the default rules with KPIs computed as of asOf.
func GenerateRecommendations(
	projects []*domain.Project,
	risks []domain.Risk,
	templates []domain.ProcessTemplate,
	feedback ConfidenceLookup,
	asOf *time.Time,
) []Recommendation {
	kpis := make(map[string]analytics.KPIResult, len(projects))
	for _, p := range projects {
		kpis[p.ID] = analytics.CalculateKPI(p, asOf)
	}
	return NewEngine().Evaluate(Snapshot{
		Projects:  projects,
		Risks:     risks,
		Templates: templates,
		KPIs:      kpis,
	}, feedback)
}
