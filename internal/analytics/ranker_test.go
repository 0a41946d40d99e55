package analytics

import (
	"testing"

	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioRanking_ReferenceScore(t *testing.T) {
	asOf := date(2024, 4, 1)
	p := referenceProject()

	ranked := PortfolioRanking([]*domain.Project{p}, nil, &asOf)
	require.Len(t, ranked, 1)

	kpi := CalculateKPI(p, &asOf)
	// |CV|*0.2 + |SV|*0.15 + 0 + 5*10 + (5-4)*5 + 100000*0.0001 + 0
	want := 0 + kpi.SV*0.15 + 0 + 50 + 5 + 10 + 0
	assert.InDelta(t, want, ranked[0].AttentionScore, 1e-9)
	assert.Equal(t, "p-1", ranked[0].ProjectID)
	assert.Equal(t, "Harbor Bridge", ranked[0].ProjectName)
	assert.InDelta(t, kpi.SV, ranked[0].SV, 1e-12)
	assert.Equal(t, 0.0, ranked[0].RiskExposure)
}

func TestPortfolioRanking_Empty(t *testing.T) {
	assert.Empty(t, PortfolioRanking(nil, nil, nil))
}

func TestPortfolioRanking_OrdersByScoreAndKeepsTies(t *testing.T) {
	asOf := date(2024, 4, 1)
	a := referenceProject()
	a.ID, a.Name = "p-a", "Alpha"
	b := referenceProject()
	b.ID, b.Name = "p-b", "Bravo"
	c := referenceProject()
	c.ID, c.Name = "p-c", "Charlie"
	c.SafetyIncidents = 2

	ranked := PortfolioRanking([]*domain.Project{a, b, c}, nil, &asOf)
	require.Len(t, ranked, 3)
	assert.Equal(t, "p-c", ranked[0].ProjectID)
	assert.Equal(t, "p-a", ranked[1].ProjectID)
	assert.Equal(t, "p-b", ranked[2].ProjectID)
	assert.InDelta(t, ranked[1].AttentionScore+30, ranked[0].AttentionScore, 1e-9)
}

func TestPortfolioRanking_IgnoresRisksForUnknownProjects(t *testing.T) {
	asOf := date(2024, 4, 1)
	p := referenceProject()

	without := PortfolioRanking([]*domain.Project{p}, nil, &asOf)
	with := PortfolioRanking([]*domain.Project{p}, []domain.Risk{
		{ProjectID: "p-other", Probability: 0.9, ImpactCost: 1e6, ImpactDays: 100},
	}, &asOf)

	assert.Equal(t, without[0].AttentionScore, with[0].AttentionScore)
}

func TestPortfolioRanking_ExposureRaisesScore(t *testing.T) {
	asOf := date(2024, 4, 1)
	p := referenceProject()

	base := PortfolioRanking([]*domain.Project{p}, nil, &asOf)[0]
	risky := PortfolioRanking([]*domain.Project{p}, []domain.Risk{
		{ProjectID: "p-1", Probability: 0.5, ImpactCost: 10000, ImpactDays: 5},
	}, &asOf)[0]

	assert.InDelta(t, 7500.0, risky.RiskExposure, 1e-9)
	assert.InDelta(t, base.AttentionScore+750, risky.AttentionScore, 1e-9)
}

func TestPortfolioRanking_MissingClientUsesDefaults(t *testing.T) {
	asOf := date(2024, 4, 1)
	p := referenceProject()
	p.Client = nil
	p.ClientID = ""

	ranked := PortfolioRanking([]*domain.Project{p}, nil, &asOf)
	kpi := CalculateKPI(p, &asOf)
	// priority 1, satisfaction 0, pipeline 0
	want := kpi.SV*0.15 + 10 + 25
	assert.InDelta(t, want, ranked[0].AttentionScore, 1e-9)
}

func TestScoreAttention_SatisfactionAboveCeilingAddsNothing(t *testing.T) {
	res := ScoreAttention(AttentionInput{
		ProjectID: "p-1",
		Client:    domain.ClientTraits{SatisfactionScore: 7},
		Weights:   DefaultAttentionWeights(),
	})
	assert.Equal(t, 0.0, res.AttentionScore)
	assert.Empty(t, res.Factors)
}

func TestScoreAttention_ReportsNonZeroFactorsInOrder(t *testing.T) {
	res := ScoreAttention(AttentionInput{
		ProjectID:       "p-1",
		KPI:             KPIResult{CV: -100},
		Client:          domain.ClientTraits{StrategicPriority: 2, SatisfactionScore: 5},
		SafetyIncidents: 1,
		Weights:         DefaultAttentionWeights(),
	})

	require.Len(t, res.Factors, 3)
	assert.Equal(t, FactorCostVariance, res.Factors[0].Code)
	assert.InDelta(t, 20.0, res.Factors[0].Contribution, 1e-9)
	assert.Equal(t, FactorStrategicPriority, res.Factors[1].Code)
	assert.Equal(t, FactorSafety, res.Factors[2].Code)
	assert.InDelta(t, 55.0, res.AttentionScore, 1e-9)
}
