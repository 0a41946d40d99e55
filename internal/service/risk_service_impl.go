package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/importer"
	"github.com/alexanderramin/pdsops/internal/repository"
)

type riskService struct {
	risks    repository.RiskRepo
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewRiskService(risks repository.RiskRepo, projects repository.ProjectRepo, observers ...UseCaseObserver) RiskService {
	return &riskService{
		risks:    risks,
		projects: projects,
		observer: useCaseObserverOrNoop(observers),
	}
}

// AddRisk attaches a risk to a stored project. The row goes through the
// same validation and normalization as an imported risk.
func (s *riskService) AddRisk(ctx context.Context, req app.RiskRequest) (risk *domain.Risk, err error) {
	defer observe(ctx, s.observer, "add-risk", time.Now(), map[string]any{"project_id": req.ProjectID}, &err)

	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, classify(err)
	}

	schema := &importer.PortfolioSchema{Risks: []importer.RiskImport{{
		ProjectID:        req.ProjectID,
		Category:         req.Category,
		Probability:      req.Probability,
		ImpactCost:       req.ImpactCost,
		ImpactDays:       req.ImpactDays,
		MitigationStatus: req.MitigationStatus,
	}}}
	known := &importer.KnownIDs{Projects: map[string]bool{req.ProjectID: true}}
	if errs := importer.ValidatePortfolio(schema, known); len(errs) > 0 {
		return nil, invalidInput(errors.Join(errs...))
	}
	converted, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting risk: %w", err)
	}

	risk = converted.Risks[0]
	if err := s.risks.Create(ctx, risk); err != nil {
		return nil, fmt.Errorf("creating risk: %w", err)
	}
	return risk, nil
}

// ListRisks returns the risks of one project, or all risks when projectID
// is empty.
func (s *riskService) ListRisks(ctx context.Context, projectID string) ([]domain.Risk, error) {
	if projectID == "" {
		risks, err := s.risks.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing risks: %w", err)
		}
		return risks, nil
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, classify(err)
	}
	risks, err := s.risks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing risks: %w", err)
	}
	return risks, nil
}

func (s *riskService) RemoveRisk(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "remove-risk", time.Now(), map[string]any{"risk_id": id}, &err)
	return classify(s.risks.Delete(ctx, id))
}
