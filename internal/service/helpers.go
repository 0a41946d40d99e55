package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/db"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/recommend"
	"github.com/alexanderramin/pdsops/internal/repository"
)

// portfolioSnapshot is everything one analysis request reads, loaded once
// so every figure in a response is computed from the same data.
type portfolioSnapshot struct {
	Projects  []*domain.Project
	Risks     []domain.Risk
	Templates []domain.ProcessTemplate
	Feedback  *recommend.FeedbackTable
}

func (s *portfolioSnapshot) projectNames() map[string]string {
	names := make(map[string]string, len(s.Projects))
	for _, p := range s.Projects {
		names[p.ID] = p.Name
	}
	return names
}

func (s *portfolioSnapshot) kpis(asOf time.Time) map[string]analytics.KPIResult {
	out := make(map[string]analytics.KPIResult, len(s.Projects))
	for _, p := range s.Projects {
		out[p.ID] = analytics.CalculateKPI(p, &asOf)
	}
	return out
}

// snapshotLoader reads a portfolio snapshot inside one transaction.
type snapshotLoader struct {
	uow db.UnitOfWork
}

// load reads the portfolio, narrowed to projectIDs when any are given.
// Unknown IDs are NOT_FOUND; a project with impossible dates or progress
// is INVALID_INPUT.
func (l snapshotLoader) load(ctx context.Context, projectIDs []string) (*portfolioSnapshot, error) {
	var snap *portfolioSnapshot
	err := l.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		snap, err = readSnapshot(ctx, tx, projectIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func readSnapshot(ctx context.Context, tx db.DBTX, projectIDs []string) (*portfolioSnapshot, error) {
	projects, err := repository.NewSQLiteProjectRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	projects, err = selectProjects(projects, projectIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if err := analytics.ValidateProject(p); err != nil {
			return nil, classify(err)
		}
	}

	risks, err := repository.NewSQLiteRiskRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading risks: %w", err)
	}
	if len(projectIDs) > 0 {
		risks = risksFor(projects, risks)
	}

	templates, err := repository.NewSQLiteTemplateRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	rows, err := repository.NewSQLiteRuleFeedbackRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rule feedback: %w", err)
	}

	return &portfolioSnapshot{
		Projects:  projects,
		Risks:     risks,
		Templates: templates,
		Feedback:  recommend.NewFeedbackTable(rows...),
	}, nil
}

func selectProjects(all []*domain.Project, ids []string) ([]*domain.Project, error) {
	if len(ids) == 0 {
		return all, nil
	}
	byID := make(map[string]*domain.Project, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}
	out := make([]*domain.Project, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		p, ok := byID[id]
		if !ok {
			return nil, &app.AnalyticsError{
				Code:    app.ErrCodeNotFound,
				Message: fmt.Sprintf("project %s not found", id),
				Err:     repository.ErrNotFound,
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func risksFor(projects []*domain.Project, risks []domain.Risk) []domain.Risk {
	keep := make(map[string]bool, len(projects))
	for _, p := range projects {
		keep[p.ID] = true
	}
	out := make([]domain.Risk, 0, len(risks))
	for _, r := range risks {
		if keep[r.ProjectID] {
			out = append(out, r)
		}
	}
	return out
}

// resolveAsOf returns the evaluation date, defaulting to today in UTC.
func resolveAsOf(asOf *time.Time) time.Time {
	if asOf != nil {
		return *asOf
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// classify maps engine and storage errors onto typed AnalyticsErrors.
// Errors it does not recognise are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ae *app.AnalyticsError
	if errors.As(err, &ae) {
		return err
	}
	var ie *analytics.InputError
	if errors.As(err, &ie) {
		return &app.AnalyticsError{Code: app.ErrCodeInvalidInput, Message: ie.Error(), Err: err}
	}
	if errors.Is(err, repository.ErrNotFound) {
		return &app.AnalyticsError{Code: app.ErrCodeNotFound, Message: err.Error(), Err: err}
	}
	return err
}

// invalidInput reports a domain validation failure as INVALID_INPUT.
func invalidInput(err error) error {
	return &app.AnalyticsError{Code: app.ErrCodeInvalidInput, Message: err.Error(), Err: err}
}
