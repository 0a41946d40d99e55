package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/db"
	"github.com/alexanderramin/pdsops/internal/importer"
	"github.com/alexanderramin/pdsops/internal/repository"
)

type importService struct {
	clients  repository.ClientRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(
	clients repository.ClientRepo,
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		clients:  clients,
		projects: projects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportPortfolio(ctx context.Context, path string) (*app.ImportResult, error) {
	schema, err := importer.LoadPortfolio(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	result, err := s.ImportSchema(ctx, schema)
	if err != nil {
		return nil, err
	}
	result.Source = path
	return result, nil
}

// ImportSchema validates the whole schema, then inserts clients, projects,
// risks and resources in one transaction. Nothing is written if any row fails.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.PortfolioSchema) (result *app.ImportResult, err error) {
	fields := map[string]any{
		"clients":   len(schema.Clients),
		"projects":  len(schema.Projects),
		"risks":     len(schema.Risks),
		"resources": len(schema.Resources),
	}
	defer observe(ctx, s.observer, "import-portfolio", time.Now(), fields, &err)

	known, err := s.knownIDs(ctx)
	if err != nil {
		return nil, err
	}

	if errs := importer.ValidatePortfolio(schema, known); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	portfolio, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLiteClientRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txRisks := repository.NewSQLiteRiskRepo(tx)
		txResources := repository.NewSQLiteResourceRepo(tx)

		for _, c := range portfolio.Clients {
			if err := txClients.Create(ctx, c); err != nil {
				return fmt.Errorf("creating client %q: %w", c.Name, err)
			}
		}
		for _, p := range portfolio.Projects {
			if err := txProjects.Create(ctx, p); err != nil {
				return fmt.Errorf("creating project %q: %w", p.Name, err)
			}
		}
		for _, r := range portfolio.Risks {
			if err := txRisks.Create(ctx, r); err != nil {
				return fmt.Errorf("creating risk for project %s: %w", r.ProjectID, err)
			}
		}
		for _, r := range portfolio.Resources {
			if err := txResources.Create(ctx, r); err != nil {
				return fmt.Errorf("creating resource %q: %w", r.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &app.ImportResult{
		ClientCount:   len(portfolio.Clients),
		ProjectCount:  len(portfolio.Projects),
		RiskCount:     len(portfolio.Risks),
		ResourceCount: len(portfolio.Resources),
	}, nil
}

func (s *importService) knownIDs(ctx context.Context) (*importer.KnownIDs, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading clients: %w", err)
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	known := &importer.KnownIDs{
		Clients:  make(map[string]bool, len(clients)),
		Projects: make(map[string]bool, len(projects)),
	}
	for _, c := range clients {
		known.Clients[c.ID] = true
	}
	for _, p := range projects {
		known.Projects[p.ID] = true
	}
	return known, nil
}

// formatValidationErrors folds every validation problem into one
// INVALID_INPUT error so the user can fix the file in one pass.
func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return &app.AnalyticsError{Code: app.ErrCodeInvalidInput, Message: msg}
}
