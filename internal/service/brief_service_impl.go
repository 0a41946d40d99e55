package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/db"
	"github.com/alexanderramin/pdsops/internal/recommend"
)

type briefService struct {
	loader   snapshotLoader
	observer UseCaseObserver
}

func NewBriefService(uow db.UnitOfWork, observers ...UseCaseObserver) BriefService {
	return &briefService{
		loader:   snapshotLoader{uow: uow},
		observer: useCaseObserverOrNoop(observers),
	}
}

// Brief summarizes the portfolio and its current recommendations. Counts
// and recommendations come from the same snapshot.
func (s *briefService) Brief(ctx context.Context, req app.AnalyticsRequest) (resp *app.BriefResponse, err error) {
	fields := map[string]any{"project_filter": len(req.ProjectIDs)}
	defer observe(ctx, s.observer, "brief", time.Now(), fields, &err)

	snap, err := s.loader.load(ctx, req.ProjectIDs)
	if err != nil {
		return nil, err
	}
	asOf := resolveAsOf(req.AsOf)
	recs := recommend.GenerateRecommendations(snap.Projects, snap.Risks, snap.Templates, snap.Feedback, &asOf)

	metrics := app.BriefMetrics{TotalProjects: len(snap.Projects)}
	for _, r := range snap.Risks {
		if r.IsHighRisk() {
			metrics.HighRisk++
		}
	}
	fields["total_projects"] = metrics.TotalProjects
	fields["high_risk"] = metrics.HighRisk

	summary := fmt.Sprintf("Portfolio tracking %d projects with %d high-risk items.", metrics.TotalProjects, metrics.HighRisk)
	return &app.BriefResponse{
		GeneratedAt:     asOf,
		Summary:         summary,
		Markdown:        briefMarkdown(summary, recs),
		Metrics:         metrics,
		Recommendations: recs,
	}, nil
}

func briefMarkdown(summary string, recs []recommend.Recommendation) string {
	bullets := make([]string, 0, len(recs))
	for _, rec := range recs {
		bullets = append(bullets, fmt.Sprintf("- %s: %s", rec.DecisionType, rec.Explanation))
	}
	return "# Executive Brief\n\n" + summary + "\n\n## Recommendations\n" + strings.Join(bullets, "\n")
}
