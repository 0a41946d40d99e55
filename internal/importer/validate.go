package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
)

const dateLayout = "2006-01-02"

var validMitigationStatuses = map[string]bool{"open": true, "in_progress": true, "closed": true}

// KnownIDs lists rows already stored that an import may reference.
type KnownIDs struct {
	Clients  map[string]bool
	Projects map[string]bool
}

// ValidatePortfolio checks an import before conversion and returns every
// problem found. A project's client_id must name a client in the file or
// in known; a risk's project_id must name a project in the file or in
// known. known may be nil.
func ValidatePortfolio(schema *PortfolioSchema, known *KnownIDs) []error {
	var errs []error
	if known == nil {
		known = &KnownIDs{}
	}

	clientIDs := make(map[string]bool, len(schema.Clients)+len(known.Clients))
	for id := range known.Clients {
		clientIDs[id] = true
	}
	for i, c := range schema.Clients {
		errs = append(errs, validateClient(i, &c)...)
		if c.ID != "" {
			if clientIDs[c.ID] && !known.Clients[c.ID] {
				errs = append(errs, fmt.Errorf("clients[%d]: duplicate id %q", i, c.ID))
			}
			clientIDs[c.ID] = true
		}
	}

	projectIDs := make(map[string]bool, len(schema.Projects)+len(known.Projects))
	for id := range known.Projects {
		projectIDs[id] = true
	}
	for i, p := range schema.Projects {
		errs = append(errs, validateProject(i, &p, clientIDs)...)
		if p.ID != "" {
			if projectIDs[p.ID] && !known.Projects[p.ID] {
				errs = append(errs, fmt.Errorf("projects[%d]: duplicate id %q", i, p.ID))
			}
			projectIDs[p.ID] = true
		}
	}

	for i, r := range schema.Risks {
		errs = append(errs, validateRisk(i, &r, projectIDs)...)
	}

	for i, r := range schema.Resources {
		errs = append(errs, validateResource(i, &r)...)
	}

	return errs
}

func validateClient(i int, c *ClientImport) []error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, fmt.Errorf("clients[%d].name is required", i))
	}
	if c.StrategicPriority < 0 {
		errs = append(errs, fmt.Errorf("clients[%d].strategic_priority must not be negative", i))
	}
	return errs
}

func validateProject(i int, p *ProjectImport, clientIDs map[string]bool) []error {
	var errs []error
	field := func(name string) string { return fmt.Sprintf("projects[%d].%s", i, name) }

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("%s is required", field("name")))
	}
	if p.ClientID != "" && !clientIDs[p.ClientID] {
		errs = append(errs, fmt.Errorf("%s: unknown client %q", field("client_id"), p.ClientID))
	}

	start, startErr := time.Parse(dateLayout, p.StartDate)
	if startErr != nil {
		errs = append(errs, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field("start_date"), p.StartDate))
	}
	end, endErr := time.Parse(dateLayout, p.EndDate)
	if endErr != nil {
		errs = append(errs, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field("end_date"), p.EndDate))
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, fmt.Errorf("%s %q must not be before start_date %q", field("end_date"), p.EndDate, p.StartDate))
	}

	if p.PercentComplete < 0 || p.PercentComplete > 100 {
		errs = append(errs, fmt.Errorf("%s: %.2f out of range", field("percent_complete"), p.PercentComplete))
	}
	if p.BaselineScheduleDays < 0 || p.ForecastScheduleDays < 0 {
		errs = append(errs, fmt.Errorf("%s: schedule days must not be negative", field("schedule")))
	}
	if p.SafetyIncidents < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", field("safety_incidents")))
	}
	if p.Status != "" && !domain.ValidProjectStatuses[p.Status] {
		errs = append(errs, fmt.Errorf("%s: invalid value %q", field("status"), p.Status))
	}
	return errs
}

func validateRisk(i int, r *RiskImport, projectIDs map[string]bool) []error {
	var errs []error
	if !projectIDs[r.ProjectID] {
		errs = append(errs, fmt.Errorf("risks[%d].project_id: unknown project %q", i, r.ProjectID))
	}
	if strings.TrimSpace(r.Category) == "" {
		errs = append(errs, fmt.Errorf("risks[%d].category is required", i))
	}
	if !(r.Probability >= 0 && r.Probability <= 1) {
		errs = append(errs, fmt.Errorf("risks[%d].probability: %.2f out of range [0, 1]", i, r.Probability))
	}
	if r.MitigationStatus != "" && !validMitigationStatuses[r.MitigationStatus] {
		errs = append(errs, fmt.Errorf("risks[%d].mitigation_status: invalid value %q", i, r.MitigationStatus))
	}
	return errs
}

func validateResource(i int, r *ResourceImport) []error {
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"name", r.Name}, {"role", r.Role}, {"region", r.Region},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("resources[%d].%s is required", i, f.name))
		}
	}
	if !(r.UtilizationPct >= 0 && r.UtilizationPct <= 100) {
		errs = append(errs, fmt.Errorf("resources[%d].utilization_pct: %.2f out of range [0, 100]", i, r.UtilizationPct))
	}
	return errs
}
