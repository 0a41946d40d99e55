package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Resource is one person on the delivery bench.
type Resource struct {
	ID        string
	Name      string
	Role      string
	Region    string
	SkillTags []string
	// UtilizationPct is booked time as a fraction (0.85) or a percentage (85).
	UtilizationPct float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizedUtilization returns utilization as a fraction. Values above 1
// are read as percentages.
func (r *Resource) NormalizedUtilization() float64 {
	if r.UtilizationPct > 1 {
		return r.UtilizationPct / 100
	}
	return r.UtilizationPct
}

// Validate checks the fields every bench entry needs.
func (r *Resource) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(r.Role) == "" {
		errs = append(errs, errors.New("role is required"))
	}
	if strings.TrimSpace(r.Region) == "" {
		errs = append(errs, errors.New("region is required"))
	}
	if !(r.UtilizationPct >= 0 && r.UtilizationPct <= 100) {
		errs = append(errs, fmt.Errorf("utilization %v out of range [0, 100]", r.UtilizationPct))
	}
	return errors.Join(errs...)
}

// ParseSkillTags splits a comma-separated tag list, dropping blanks and
// duplicates and lowercasing each tag.
func ParseSkillTags(raw ...string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, part := range raw {
		for _, tag := range strings.Split(part, ",") {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
