package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/db"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/importer"
	"github.com/alexanderramin/pdsops/internal/repository"
	"github.com/google/uuid"
)

type templateService struct {
	templates repository.TemplateRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewTemplateService(
	templates repository.TemplateRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		templates: templates,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// SeedTemplates inserts the templates in the YAML file at path, or the
// built-in playbook when path is empty. Templates whose name already exists
// are skipped, so seeding twice is harmless.
func (s *templateService) SeedTemplates(ctx context.Context, path string) (result *app.SeedResult, err error) {
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "seed-templates", time.Now(), fields, &err)

	seeds := importer.DefaultTemplateSeeds()
	if path != "" {
		seeds, err = importer.LoadTemplateSeeds(path)
		if err != nil {
			return nil, fmt.Errorf("loading template seeds: %w", err)
		}
	}

	result = &app.SeedResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTemplates := repository.NewSQLiteTemplateRepo(tx)
		for _, seed := range seeds {
			_, err := txTemplates.GetByName(ctx, seed.Name)
			if err == nil {
				result.Skipped++
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("looking up template %q: %w", seed.Name, err)
			}
			t := &domain.ProcessTemplate{
				ID:              uuid.New().String(),
				Name:            seed.Name,
				Description:     seed.Description,
				Checklist:       seed.Checklist,
				AdoptionRatePct: seed.AdoptionRatePct,
				CreatedAt:       time.Now().UTC(),
			}
			if err := txTemplates.Create(ctx, t); err != nil {
				return fmt.Errorf("creating template %q: %w", seed.Name, err)
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = result.Created
	fields["skipped"] = result.Skipped
	return result, nil
}

func (s *templateService) ListTemplates(ctx context.Context) ([]domain.ProcessTemplate, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return templates, nil
}
