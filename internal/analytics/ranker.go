package analytics

import (
	"math"
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
)

// AttentionWeights are the fixed coefficients of the attention heuristic.
type AttentionWeights struct {
	CostVariance        float64
	ScheduleVariance    float64
	Exposure            float64
	StrategicPriority   float64
	SatisfactionGap     float64
	SatisfactionCeiling float64
	Pipeline            float64
	SafetyIncident      float64
}

// DefaultAttentionWeights returns the published attention coefficients.
func DefaultAttentionWeights() AttentionWeights {
	return AttentionWeights{
		CostVariance:        0.2,
		ScheduleVariance:    0.15,
		Exposure:            0.1,
		StrategicPriority:   10,
		SatisfactionGap:     5,
		SatisfactionCeiling: 5,
		Pipeline:            0.0001,
		SafetyIncident:      15,
	}
}

// AttentionFactorCode names one term of the attention score.
type AttentionFactorCode string

const (
	FactorCostVariance      AttentionFactorCode = "COST_VARIANCE"
	FactorScheduleVariance  AttentionFactorCode = "SCHEDULE_VARIANCE"
	FactorRiskExposure      AttentionFactorCode = "RISK_EXPOSURE"
	FactorStrategicPriority AttentionFactorCode = "STRATEGIC_PRIORITY"
	FactorSatisfactionGap   AttentionFactorCode = "SATISFACTION_GAP"
	FactorPipeline          AttentionFactorCode = "PIPELINE"
	FactorSafety            AttentionFactorCode = "SAFETY_INCIDENTS"
)

// AttentionFactor is one term's contribution to a project's attention score.
type AttentionFactor struct {
	Code         AttentionFactorCode `json:"code"`
	Contribution float64             `json:"contribution"`
}

// AttentionInput is everything ScoreAttention needs about one project.
type AttentionInput struct {
	ProjectID       string
	ProjectName     string
	KPI             KPIResult
	Exposure        float64
	Client          domain.ClientTraits
	SafetyIncidents int
	Weights         AttentionWeights
}

// RankedProject is one row of the attention ranking.
type RankedProject struct {
	ProjectID      string            `json:"project_id"`
	ProjectName    string            `json:"project_name"`
	AttentionScore float64           `json:"attention_score"`
	CV             float64           `json:"cv"`
	SV             float64           `json:"sv"`
	RiskExposure   float64           `json:"risk_exposure"`
	Factors        []AttentionFactor `json:"factors,omitempty"`
}

// ScoreAttention evaluates the attention heuristic for one project. Terms are
// summed in a fixed order so scores are reproducible bit for bit.
func ScoreAttention(input AttentionInput) RankedProject {
	result := RankedProject{
		ProjectID:    input.ProjectID,
		ProjectName:  input.ProjectName,
		CV:           input.KPI.CV,
		SV:           input.KPI.SV,
		RiskExposure: input.Exposure,
	}

	var score float64
	factors := []func(AttentionInput) AttentionFactor{
		scoreCostVariance,
		scoreScheduleVariance,
		scoreRiskExposure,
		scoreStrategicPriority,
		scoreSatisfactionGap,
		scorePipeline,
		scoreSafety,
	}
	for _, f := range factors {
		factor := f(input)
		score += factor.Contribution
		if factor.Contribution != 0 {
			result.Factors = append(result.Factors, factor)
		}
	}

	result.AttentionScore = score
	return result
}

func scoreCostVariance(input AttentionInput) AttentionFactor {
	return AttentionFactor{
		Code:         FactorCostVariance,
		Contribution: math.Abs(input.KPI.CV) * input.Weights.CostVariance,
	}
}

func scoreScheduleVariance(input AttentionInput) AttentionFactor {
	return AttentionFactor{
		Code:         FactorScheduleVariance,
		Contribution: math.Abs(input.KPI.SV) * input.Weights.ScheduleVariance,
	}
}

func scoreRiskExposure(input AttentionInput) AttentionFactor {
	return AttentionFactor{
		Code:         FactorRiskExposure,
		Contribution: input.Exposure * input.Weights.Exposure,
	}
}

func scoreStrategicPriority(input AttentionInput) AttentionFactor {
	return AttentionFactor{
		Code:         FactorStrategicPriority,
		Contribution: float64(input.Client.StrategicPriority) * input.Weights.StrategicPriority,
	}
}

// Satisfaction below the ceiling adds attention; above it contributes nothing.
func scoreSatisfactionGap(input AttentionInput) AttentionFactor {
	gap := math.Max(0, input.Weights.SatisfactionCeiling-input.Client.SatisfactionScore)
	return AttentionFactor{
		Code:         FactorSatisfactionGap,
		Contribution: gap * input.Weights.SatisfactionGap,
	}
}

func scorePipeline(input AttentionInput) AttentionFactor {
	return AttentionFactor{
		Code:         FactorPipeline,
		Contribution: input.Client.PipelineValue * input.Weights.Pipeline,
	}
}

func scoreSafety(input AttentionInput) AttentionFactor {
	return AttentionFactor{
		Code:         FactorSafety,
		Contribution: float64(input.SafetyIncidents) * input.Weights.SafetyIncident,
	}
}

// PortfolioRanking scores every project and returns them most-urgent first.
// Risks whose project is not in projects are ignored.
func PortfolioRanking(projects []*domain.Project, risks []domain.Risk, asOf *time.Time) []RankedProject {
	exposure := ExposureByProject(risks)
	weights := DefaultAttentionWeights()

	ranked := make([]RankedProject, 0, len(projects))
	for _, p := range projects {
		ranked = append(ranked, ScoreAttention(AttentionInput{
			ProjectID:       p.ID,
			ProjectName:     p.Name,
			KPI:             CalculateKPI(p, asOf),
			Exposure:        exposure[p.ID],
			Client:          domain.TraitsOf(p.Client),
			SafetyIncidents: p.SafetyIncidents,
			Weights:         weights,
		}))
	}

	SortByAttention(ranked)
	return ranked
}
