package analytics

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
)

// DefaultIterations is the trial count used by DefaultScenarioParams.
const DefaultIterations = 1000

// DefaultMaxIterations caps a run whose caller sets no limit of its own.
// Each trial keeps two float64s, so the cap bounds memory per project.
const DefaultMaxIterations = 1_000_000

// MinStaffingCapacity floors the staffing divisor so schedule impact stays bounded.
const MinStaffingCapacity = 0.1

// ScenarioParams tunes a Monte Carlo run.
type ScenarioParams struct {
	Iterations int
	// MaxIterations caps Iterations; zero means DefaultMaxIterations.
	MaxIterations int
	// InflationFactor multiplies each realized risk's cost impact.
	InflationFactor float64
	// StaffingCapacityFactor divides each realized risk's schedule impact.
	StaffingCapacityFactor float64
	// RiskMitigationEffectiveness multiplies every risk probability.
	RiskMitigationEffectiveness float64
	// Seed makes the draw sequence reproducible when set.
	Seed *int64
}

// DefaultScenarioParams returns a neutral scenario: no inflation, full
// staffing and unmitigated risks.
func DefaultScenarioParams() ScenarioParams {
	return ScenarioParams{
		Iterations:                  DefaultIterations,
		MaxIterations:               DefaultMaxIterations,
		InflationFactor:             1.0,
		StaffingCapacityFactor:      1.0,
		RiskMitigationEffectiveness: 1.0,
	}
}

// Validate rejects parameters the simulator cannot run with.
func (p ScenarioParams) Validate() error {
	if p.Iterations <= 0 {
		return &InputError{Field: "iterations", Message: "must be > 0"}
	}
	if limit := p.iterationLimit(); p.Iterations > limit {
		return &InputError{Field: "iterations", Message: fmt.Sprintf("must be <= %d", limit)}
	}
	if math.IsNaN(p.InflationFactor) || math.IsNaN(p.StaffingCapacityFactor) || math.IsNaN(p.RiskMitigationEffectiveness) {
		return &InputError{Field: "scenario factors", Message: "must be numbers"}
	}
	return nil
}

func (p ScenarioParams) iterationLimit() int {
	if p.MaxIterations > 0 {
		return p.MaxIterations
	}
	return DefaultMaxIterations
}

// ScenarioResult reports the simulated cost and schedule percentiles.
type ScenarioResult struct {
	ProjectID  string  `json:"project_id"`
	P50Cost    float64 `json:"p50_cost"`
	P80Cost    float64 `json:"p80_cost"`
	P50Days    float64 `json:"p50_days"`
	P80Days    float64 `json:"p80_days"`
	Iterations int     `json:"iterations"`
}

// Simulator runs Monte Carlo trials against an injected random source. A
// Simulator is not safe for concurrent use; give each goroutine its own.
type Simulator struct {
	rng *rand.Rand
}

func NewSimulator(src rand.Source) *Simulator {
	return &Simulator{rng: rand.New(src)}
}

// sourceFor returns a seeded source when params carry a seed and a
// time-seeded one otherwise.
func sourceFor(params ScenarioParams) rand.Source {
	if params.Seed != nil {
		return rand.NewSource(*params.Seed)
	}
	return rand.NewSource(time.Now().UnixNano())
}

// MonteCarlo simulates p's forecast cost and schedule under its risks.
func MonteCarlo(p *domain.Project, risks []domain.Risk, params ScenarioParams) (ScenarioResult, error) {
	return NewSimulator(sourceFor(params)).Run(p, risks, params)
}

// Run performs params.Iterations trials. Each trial starts from the current
// forecast and draws exactly one uniform value per risk, in register order;
// a risk is realized when the draw is at or below its effective probability.
func (s *Simulator) Run(p *domain.Project, risks []domain.Risk, params ScenarioParams) (ScenarioResult, error) {
	if err := params.Validate(); err != nil {
		return ScenarioResult{}, err
	}

	n := params.Iterations
	staffing := math.Max(params.StaffingCapacityFactor, MinStaffingCapacity)
	probs := make([]float64, len(risks))
	for i, r := range risks {
		probs[i] = clamp(r.Probability*params.RiskMitigationEffectiveness, 0, 1)
	}

	costs := make([]float64, n)
	days := make([]float64, n)
	for i := 0; i < n; i++ {
		cost := p.CurrentForecast
		d := float64(p.ForecastScheduleDays)
		for j, r := range risks {
			draw := s.rng.Float64()
			if probs[j] > 0 && draw <= probs[j] {
				cost += r.ImpactCost * params.InflationFactor
				d += r.ImpactDays / staffing
			}
		}
		costs[i] = cost
		days[i] = d
	}

	sort.Float64s(costs)
	sort.Float64s(days)
	p50, p80 := percentileIndex(0.5, n), percentileIndex(0.8, n)

	return ScenarioResult{
		ProjectID:  p.ID,
		P50Cost:    costs[p50],
		P80Cost:    costs[p80],
		P50Days:    days[p50],
		P80Days:    days[p80],
		Iterations: n,
	}, nil
}

// percentileIndex returns max(floor(p*n)-1, 0). This under-reads the
// percentile for small n; kept for compatibility with published figures.
func percentileIndex(p float64, n int) int {
	return max(int(p*float64(n))-1, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
