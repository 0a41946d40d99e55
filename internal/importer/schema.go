package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PortfolioSchema is the top-level structure of a portfolio import file.
// IDs are optional; rows without one get a generated ID, and only rows with
// an ID can be referenced by other rows.
type PortfolioSchema struct {
	Clients   []ClientImport   `json:"clients,omitempty"`
	Projects  []ProjectImport  `json:"projects"`
	Risks     []RiskImport     `json:"risks,omitempty"`
	Resources []ResourceImport `json:"resources,omitempty"`
}

type ClientImport struct {
	ID                string  `json:"id,omitempty"`
	Name              string  `json:"name"`
	SatisfactionScore float64 `json:"satisfaction_score"`
	PipelineValue     float64 `json:"pipeline_value"`
	StrategicPriority int     `json:"strategic_priority"`
}

type ProjectImport struct {
	ID                   string  `json:"id,omitempty"`
	ClientID             string  `json:"client_id,omitempty"`
	Name                 string  `json:"name"`
	Region               string  `json:"region"`
	Sector               string  `json:"sector"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	BaselineBudget       float64 `json:"baseline_budget"`
	CurrentForecast      float64 `json:"current_forecast"`
	ActualSpend          float64 `json:"actual_spend"`
	BaselineScheduleDays int     `json:"baseline_schedule_days"`
	ForecastScheduleDays int     `json:"forecast_schedule_days"`
	PercentComplete      float64 `json:"percent_complete"`
	SafetyIncidents      int     `json:"safety_incidents"`
	Status               string  `json:"status,omitempty"`
}

type RiskImport struct {
	ID               string  `json:"id,omitempty"`
	ProjectID        string  `json:"project_id"`
	Category         string  `json:"category"`
	Probability      float64 `json:"probability"`
	ImpactCost       float64 `json:"impact_cost"`
	ImpactDays       float64 `json:"impact_days"`
	MitigationStatus string  `json:"mitigation_status,omitempty"`
}

// ResourceImport is one bench member. SkillTags is comma separated.
type ResourceImport struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Region         string  `json:"region"`
	SkillTags      string  `json:"skill_tags,omitempty"`
	UtilizationPct float64 `json:"utilization_pct"`
}

// LoadPortfolio reads an import file, choosing the reader by extension:
// .json, .csv (projects only) or .xlsx (sheets clients, projects, risks, resources).
func LoadPortfolio(path string) (*PortfolioSchema, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParsePortfolioJSON(data)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseProjectsCSV(f)
	case ".xlsx":
		return LoadPortfolioXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported import format %q (expected .json, .csv or .xlsx)", filepath.Ext(path))
	}
}

// ParsePortfolioJSON accepts either a PortfolioSchema object or a bare
// array of projects.
func ParsePortfolioJSON(data []byte) (*PortfolioSchema, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var projects []ProjectImport
		if err := json.Unmarshal(trimmed, &projects); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		return &PortfolioSchema{Projects: projects}, nil
	}
	var schema PortfolioSchema
	if err := json.Unmarshal(trimmed, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
