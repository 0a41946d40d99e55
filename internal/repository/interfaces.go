package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
)

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns projects in creation order with their clients attached.
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type RiskRepo interface {
	Create(ctx context.Context, r *domain.Risk) error
	List(ctx context.Context) ([]domain.Risk, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Risk, error)
	// Delete returns ErrNotFound when no risk has id.
	Delete(ctx context.Context, id string) error
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	// List returns the bench ordered by name, optionally limited to one region.
	List(ctx context.Context, region string) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	Delete(ctx context.Context, id string) error
}

type GapRepo interface {
	Create(ctx context.Context, g *domain.Gap) error
	GetByID(ctx context.Context, id string) (*domain.Gap, error)
	// List returns gaps oldest first.
	List(ctx context.Context) ([]*domain.Gap, error)
	Update(ctx context.Context, g *domain.Gap) error
	Delete(ctx context.Context, id string) error
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.ProcessTemplate) error
	GetByName(ctx context.Context, name string) (*domain.ProcessTemplate, error)
	// List returns templates oldest first; the first entry is the default
	// template recommendations point at.
	List(ctx context.Context) ([]domain.ProcessTemplate, error)
}

type RuleFeedbackRepo interface {
	Get(ctx context.Context, ruleKey string) (*domain.RuleFeedback, error)
	List(ctx context.Context) ([]domain.RuleFeedback, error)
	// EnsureDefault inserts a default row for ruleKey unless one exists.
	EnsureDefault(ctx context.Context, ruleKey string) error
	// CompareAndSwap sets the success rate to next only if it still equals
	// expected. It reports whether the row was updated.
	CompareAndSwap(ctx context.Context, ruleKey string, expected, next float64, updatedAt time.Time) (bool, error)
}

type DecisionRepo interface {
	Create(ctx context.Context, d *domain.Decision) error
	GetByID(ctx context.Context, id string) (*domain.Decision, error)
	// List returns decisions newest first, optionally filtered by status.
	List(ctx context.Context, status *domain.DecisionStatus) ([]*domain.Decision, error)
	Update(ctx context.Context, d *domain.Decision) error
}

type OutcomeRepo interface {
	Create(ctx context.Context, o *domain.Outcome) error
	ListByDecision(ctx context.Context, decisionID string) ([]domain.Outcome, error)
}
