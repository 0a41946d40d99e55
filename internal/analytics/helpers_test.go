package analytics

import (
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// referenceProject mirrors the canonical fixture used throughout the
// engine's tests: 40% complete on a 1000 budget with 400 spent.
func referenceProject() *domain.Project {
	return &domain.Project{
		ID:       "p-1",
		ClientID: "c-1",
		Client: &domain.Client{
			ID:                "c-1",
			Name:              "Test Client",
			StrategicPriority: 5,
			SatisfactionScore: 4.0,
			PipelineValue:     100000,
		},
		Name:                 "Harbor Bridge",
		Region:               "NA",
		Sector:               "Office",
		StartDate:            date(2024, 1, 1),
		EndDate:              date(2024, 12, 31),
		BaselineBudget:       1000,
		CurrentForecast:      1100,
		ActualSpend:          400,
		BaselineScheduleDays: 365,
		ForecastScheduleDays: 380,
		PercentComplete:      0.4,
		Status:               domain.ProjectActive,
	}
}
