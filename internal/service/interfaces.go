package service

import (
	"context"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/importer"
)

type AnalyticsService interface {
	app.KPIUseCase
	app.RankingUseCase
	app.ScenarioUseCase
	app.RecommendUseCase
}

type BriefService interface {
	app.BriefUseCase
}

type FeedbackService interface {
	app.FeedbackUseCase
}

type DecisionService interface {
	app.DecisionUseCase
}

type ImportService interface {
	app.ImportUseCase
	ImportSchema(ctx context.Context, schema *importer.PortfolioSchema) (*app.ImportResult, error)
}

type TemplateService interface {
	app.TemplateUseCase
}

type ProjectService interface {
	app.ProjectQueryUseCase
}

type ResourceService interface {
	app.ResourceUseCase
}

type GapService interface {
	app.GapUseCase
}

type RiskService interface {
	app.RiskUseCase
}
