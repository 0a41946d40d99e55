package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/google/uuid"
)

// Portfolio is a converted import ready for persistence, in insert order.
type Portfolio struct {
	Clients   []*domain.Client
	Projects  []*domain.Project
	Risks     []*domain.Risk
	Resources []*domain.Resource
}

// Convert transforms a validated PortfolioSchema into domain objects.
// Call ValidatePortfolio first; Convert assumes the schema is valid.
func Convert(schema *PortfolioSchema) (*Portfolio, error) {
	now := time.Now().UTC()
	out := &Portfolio{
		Clients:   make([]*domain.Client, 0, len(schema.Clients)),
		Projects:  make([]*domain.Project, 0, len(schema.Projects)),
		Risks:     make([]*domain.Risk, 0, len(schema.Risks)),
		Resources: make([]*domain.Resource, 0, len(schema.Resources)),
	}

	for _, c := range schema.Clients {
		out.Clients = append(out.Clients, &domain.Client{
			ID:                idOrNew(c.ID),
			Name:              strings.TrimSpace(c.Name),
			SatisfactionScore: c.SatisfactionScore,
			PipelineValue:     c.PipelineValue,
			StrategicPriority: c.StrategicPriority,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	for i, p := range schema.Projects {
		start, err := time.Parse(dateLayout, p.StartDate)
		if err != nil {
			return nil, fmt.Errorf("projects[%d]: parsing start_date: %w", i, err)
		}
		end, err := time.Parse(dateLayout, p.EndDate)
		if err != nil {
			return nil, fmt.Errorf("projects[%d]: parsing end_date: %w", i, err)
		}
		status := domain.ProjectActive
		if p.Status != "" {
			status = domain.ProjectStatus(p.Status)
		}
		out.Projects = append(out.Projects, &domain.Project{
			ID:                   idOrNew(p.ID),
			ClientID:             p.ClientID,
			Name:                 strings.TrimSpace(p.Name),
			Region:               p.Region,
			Sector:               p.Sector,
			StartDate:            start,
			EndDate:              end,
			BaselineBudget:       p.BaselineBudget,
			CurrentForecast:      p.CurrentForecast,
			ActualSpend:          p.ActualSpend,
			BaselineScheduleDays: p.BaselineScheduleDays,
			ForecastScheduleDays: p.ForecastScheduleDays,
			PercentComplete:      p.PercentComplete,
			SafetyIncidents:      p.SafetyIncidents,
			Status:               status,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}

	for _, r := range schema.Risks {
		mitigation := domain.MitigationOpen
		if r.MitigationStatus != "" {
			mitigation = domain.MitigationStatus(r.MitigationStatus)
		}
		out.Risks = append(out.Risks, &domain.Risk{
			ID:               idOrNew(r.ID),
			ProjectID:        r.ProjectID,
			Category:         strings.ToLower(strings.TrimSpace(r.Category)),
			Probability:      r.Probability,
			ImpactCost:       r.ImpactCost,
			ImpactDays:       r.ImpactDays,
			MitigationStatus: mitigation,
			CreatedAt:        now,
		})
	}

	for _, r := range schema.Resources {
		out.Resources = append(out.Resources, &domain.Resource{
			ID:             idOrNew(r.ID),
			Name:           strings.TrimSpace(r.Name),
			Role:           strings.TrimSpace(r.Role),
			Region:         strings.TrimSpace(r.Region),
			SkillTags:      domain.ParseSkillTags(r.SkillTags),
			UtilizationPct: r.UtilizationPct,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	return out, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
