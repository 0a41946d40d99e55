package app

// ResourceRequest carries the editable fields of a bench entry. On update,
// zero values keep the stored field except UtilizationPct, which is applied
// when SetUtilization is true.
type ResourceRequest struct {
	Name           string
	Role           string
	Region         string
	SkillTags      []string
	UtilizationPct float64
	SetUtilization bool
}

// StaffingResult is the scenario staffing factor derived from the bench.
type StaffingResult struct {
	Region             string
	Resources          int
	AverageUtilization float64
	Factor             float64
}

type GapRequest struct {
	Category    string
	Question    string
	Answer      string
	Confidence  float64
	Attachments map[string]string
}

// RiskRequest adds one risk to a stored project.
type RiskRequest struct {
	ProjectID        string
	Category         string
	Probability      float64
	ImpactCost       float64
	ImpactDays       float64
	MitigationStatus string
}
