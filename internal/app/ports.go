package app

import (
	"context"

	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/recommend"
)

type KPIUseCase interface {
	KPIs(ctx context.Context, req AnalyticsRequest) (*KPIResponse, error)
}

type RankingUseCase interface {
	Ranking(ctx context.Context, req AnalyticsRequest) (*RankingResponse, error)
}

type ScenarioUseCase interface {
	Scenario(ctx context.Context, req ScenarioRequest) (*ScenarioResponse, error)
}

type RecommendUseCase interface {
	Recommendations(ctx context.Context, req AnalyticsRequest) (*RecommendationResponse, error)
}

type BriefUseCase interface {
	Brief(ctx context.Context, req AnalyticsRequest) (*BriefResponse, error)
}

type FeedbackUseCase interface {
	RecordFeedback(ctx context.Context, req FeedbackRequest) (*domain.RuleFeedback, error)
	ListFeedback(ctx context.Context) ([]domain.RuleFeedback, error)
}

type DecisionUseCase interface {
	Propose(ctx context.Context, rec recommend.Recommendation, owner, rationale string) (*domain.Decision, error)
	Accept(ctx context.Context, req AcceptRequest) (*domain.Decision, error)
	List(ctx context.Context, status *domain.DecisionStatus) ([]*domain.Decision, error)
	Execute(ctx context.Context, id string) (*domain.Decision, error)
	RecordOutcome(ctx context.Context, req OutcomeRequest) (*domain.Outcome, error)
	RecordDecisionFeedback(ctx context.Context, decisionID string, wasSuccessful bool) (*domain.RuleFeedback, error)
}

type ImportUseCase interface {
	ImportPortfolio(ctx context.Context, path string) (*ImportResult, error)
}

type TemplateUseCase interface {
	SeedTemplates(ctx context.Context, path string) (*SeedResult, error)
	ListTemplates(ctx context.Context) ([]domain.ProcessTemplate, error)
}

type ProjectQueryUseCase interface {
	ListProjects(ctx context.Context) ([]*domain.Project, error)
}

type ResourceUseCase interface {
	AddResource(ctx context.Context, req ResourceRequest) (*domain.Resource, error)
	ListResources(ctx context.Context, region string) ([]*domain.Resource, error)
	UpdateResource(ctx context.Context, id string, req ResourceRequest) (*domain.Resource, error)
	RemoveResource(ctx context.Context, id string) error
	StaffingCapacity(ctx context.Context, region string) (*StaffingResult, error)
}

type GapUseCase interface {
	RecordGap(ctx context.Context, req GapRequest) (*domain.Gap, error)
	ListGaps(ctx context.Context, openOnly bool) ([]*domain.Gap, error)
	AnswerGap(ctx context.Context, id, answer string, confidence float64) (*domain.Gap, error)
	RemoveGap(ctx context.Context, id string) error
}

type RiskUseCase interface {
	AddRisk(ctx context.Context, req RiskRequest) (*domain.Risk, error)
	ListRisks(ctx context.Context, projectID string) ([]domain.Risk, error)
	RemoveRisk(ctx context.Context, id string) error
}
