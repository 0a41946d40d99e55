package analytics

import "math"

const (
	// TargetUtilization is the bench utilization at which staffing runs at plan.
	TargetUtilization = 0.8
	// MaxStaffingCapacity caps the credit an idle bench can give a scenario.
	MaxStaffingCapacity = 2.0
)

// StaffingCapacity turns bench utilizations (fractions) into a scenario
// staffing factor: TargetUtilization over the mean, clamped to
// [MinStaffingCapacity, MaxStaffingCapacity]. Zero entries count as
// unreported and are skipped; with nothing reported the factor is 1.
func StaffingCapacity(utilizations []float64) float64 {
	var sum float64
	var n int
	for _, u := range utilizations {
		if u > 0 && !math.IsInf(u, 0) {
			sum += u
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return clamp(TargetUtilization/(sum/float64(n)), MinStaffingCapacity, MaxStaffingCapacity)
}
