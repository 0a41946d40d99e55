package app

import (
	"time"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/alexanderramin/pdsops/internal/recommend"
)

// AnalyticsRequest scopes a portfolio analysis. An empty ProjectIDs means
// the whole portfolio; a nil AsOf means today (UTC).
type AnalyticsRequest struct {
	AsOf       *time.Time
	ProjectIDs []string
}

type ProjectKPI struct {
	ProjectName string
	analytics.KPIResult
}

type KPIResponse struct {
	AsOf   time.Time
	KPIs   []ProjectKPI
	Totals analytics.Totals
}

type RankingResponse struct {
	AsOf   time.Time
	Ranked []analytics.RankedProject
}

// ScenarioRequest runs Monte Carlo for one project, or for every project
// when ProjectID is empty.
type ScenarioRequest struct {
	ProjectID string
	Params    analytics.ScenarioParams
}

type ScenarioResponse struct {
	Params       analytics.ScenarioParams
	Results      []analytics.ScenarioResult
	ProjectNames map[string]string
}

type RecommendationResponse struct {
	AsOf            time.Time
	Recommendations []recommend.Recommendation
}

// BriefMetrics are the headline counts of an executive brief.
type BriefMetrics struct {
	TotalProjects int `json:"total_projects"`
	HighRisk      int `json:"high_risk"`
}

type BriefResponse struct {
	GeneratedAt     time.Time
	Summary         string
	Markdown        string
	Metrics         BriefMetrics
	Recommendations []recommend.Recommendation
}
