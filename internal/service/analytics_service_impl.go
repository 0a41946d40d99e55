package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/db"
	"github.com/alexanderramin/pdsops/internal/recommend"
)

type analyticsService struct {
	loader   snapshotLoader
	observer UseCaseObserver
}

func NewAnalyticsService(uow db.UnitOfWork, observers ...UseCaseObserver) AnalyticsService {
	return &analyticsService{
		loader:   snapshotLoader{uow: uow},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *analyticsService) KPIs(ctx context.Context, req app.AnalyticsRequest) (resp *app.KPIResponse, err error) {
	fields := map[string]any{"project_filter": len(req.ProjectIDs)}
	defer observe(ctx, s.observer, "kpis", time.Now(), fields, &err)

	snap, err := s.loader.load(ctx, req.ProjectIDs)
	if err != nil {
		return nil, err
	}
	asOf := resolveAsOf(req.AsOf)

	results := make([]analytics.KPIResult, 0, len(snap.Projects))
	rows := make([]app.ProjectKPI, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		kpi := analytics.CalculateKPI(p, &asOf)
		results = append(results, kpi)
		rows = append(rows, app.ProjectKPI{ProjectName: p.Name, KPIResult: kpi})
	}
	fields["project_count"] = len(rows)

	return &app.KPIResponse{
		AsOf:   asOf,
		KPIs:   rows,
		Totals: analytics.PortfolioTotals(results),
	}, nil
}

func (s *analyticsService) Ranking(ctx context.Context, req app.AnalyticsRequest) (resp *app.RankingResponse, err error) {
	fields := map[string]any{"project_filter": len(req.ProjectIDs)}
	defer observe(ctx, s.observer, "ranking", time.Now(), fields, &err)

	snap, err := s.loader.load(ctx, req.ProjectIDs)
	if err != nil {
		return nil, err
	}
	asOf := resolveAsOf(req.AsOf)
	ranked := analytics.PortfolioRanking(snap.Projects, snap.Risks, &asOf)
	fields["project_count"] = len(ranked)

	return &app.RankingResponse{AsOf: asOf, Ranked: ranked}, nil
}

func (s *analyticsService) Scenario(ctx context.Context, req app.ScenarioRequest) (resp *app.ScenarioResponse, err error) {
	fields := map[string]any{
		"project_id": req.ProjectID,
		"iterations": req.Params.Iterations,
		"seeded":     req.Params.Seed != nil,
	}
	defer observe(ctx, s.observer, "scenario", time.Now(), fields, &err)

	if err = req.Params.Validate(); err != nil {
		return nil, classify(err)
	}

	var ids []string
	if req.ProjectID != "" {
		ids = []string{req.ProjectID}
	}
	snap, err := s.loader.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	results, err := analytics.PortfolioScenario(ctx, snap.Projects, snap.Risks, req.Params)
	if err != nil {
		return nil, fmt.Errorf("running scenario: %w", classify(err))
	}
	fields["project_count"] = len(results)

	return &app.ScenarioResponse{
		Params:       req.Params,
		Results:      results,
		ProjectNames: snap.projectNames(),
	}, nil
}

func (s *analyticsService) Recommendations(ctx context.Context, req app.AnalyticsRequest) (resp *app.RecommendationResponse, err error) {
	fields := map[string]any{"project_filter": len(req.ProjectIDs)}
	defer observe(ctx, s.observer, "recommendations", time.Now(), fields, &err)

	snap, err := s.loader.load(ctx, req.ProjectIDs)
	if err != nil {
		return nil, err
	}
	asOf := resolveAsOf(req.AsOf)
	recs := recommend.GenerateRecommendations(snap.Projects, snap.Risks, snap.Templates, snap.Feedback, &asOf)
	fields["recommendation_count"] = len(recs)

	return &app.RecommendationResponse{AsOf: asOf, Recommendations: recs}, nil
}
