package analytics

import "github.com/alexanderramin/pdsops/internal/domain"

// CostPerScheduleDay converts schedule impact into currency so cost and
// schedule risk can be summed.
const CostPerScheduleDay = 1000.0

// RiskExposure is the probability-weighted monetized impact of one risk.
func RiskExposure(r domain.Risk) float64 {
	return r.Probability * (r.ImpactCost + r.ImpactDays*CostPerScheduleDay)
}

// Exposure sums RiskExposure over a project's risk register.
func Exposure(risks []domain.Risk) float64 {
	var total float64
	for _, r := range risks {
		total += RiskExposure(r)
	}
	return total
}

// ExposureByProject groups exposure by project ID in a single pass.
func ExposureByProject(risks []domain.Risk) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range risks {
		out[r.ProjectID] += RiskExposure(r)
	}
	return out
}

// RisksByProject groups risks by project ID, keeping register order.
func RisksByProject(risks []domain.Risk) map[string][]domain.Risk {
	out := make(map[string][]domain.Risk)
	for _, r := range risks {
		out[r.ProjectID] = append(out[r.ProjectID], r)
	}
	return out
}
