package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/recommend"
	"github.com/alexanderramin/pdsops/internal/repository"
	"github.com/google/uuid"
)

type decisionService struct {
	decisions   repository.DecisionRepo
	outcomes    repository.OutcomeRepo
	recommender app.RecommendUseCase
	feedback    app.FeedbackUseCase
	observer    UseCaseObserver
}

func NewDecisionService(
	decisions repository.DecisionRepo,
	outcomes repository.OutcomeRepo,
	recommender app.RecommendUseCase,
	feedback app.FeedbackUseCase,
	observers ...UseCaseObserver,
) DecisionService {
	return &decisionService{
		decisions:   decisions,
		outcomes:    outcomes,
		recommender: recommender,
		feedback:    feedback,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Propose records rec as a proposed decision owned by owner. An empty
// rationale falls back to the recommendation's explanation.
func (s *decisionService) Propose(ctx context.Context, rec recommend.Recommendation, owner, rationale string) (d *domain.Decision, err error) {
	fields := map[string]any{"rule_key": rec.RuleKey, "decision_type": rec.DecisionType}
	defer observe(ctx, s.observer, "propose-decision", time.Now(), fields, &err)

	if rec.RuleKey == "" && rec.DecisionType == "" {
		return nil, &app.AnalyticsError{Code: app.ErrCodeInvalidInput, Message: "recommendation has no rule key or decision type"}
	}

	now := time.Now().UTC()
	d = &domain.Decision{
		ID:                uuid.New().String(),
		RuleKey:           rec.RuleKey,
		DecisionType:      rec.DecisionType,
		Rationale:         domain.CoalesceStr(strings.TrimSpace(rationale), rec.Explanation),
		ExpectedImpact:    rec.ExpectedImpact,
		Status:            domain.DecisionProposed,
		Owner:             owner,
		RelatedProjectIDs: rec.AffectedProjectIDs,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err = s.decisions.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("creating decision: %w", err)
	}
	fields["decision_id"] = d.ID
	return d, nil
}

// Accept re-evaluates the portfolio and proposes the current recommendation
// for req.RuleKey. A per-project rule that fired for several projects needs
// req.ProjectID to pick one.
func (s *decisionService) Accept(ctx context.Context, req app.AcceptRequest) (*domain.Decision, error) {
	resp, err := s.recommender.Recommendations(ctx, app.AnalyticsRequest{AsOf: req.AsOf})
	if err != nil {
		return nil, err
	}

	var matches []recommend.Recommendation
	for _, rec := range resp.Recommendations {
		if rec.RuleKey != req.RuleKey {
			continue
		}
		if req.ProjectID != "" && !slices.Contains(rec.AffectedProjectIDs, req.ProjectID) {
			continue
		}
		matches = append(matches, rec)
	}

	switch len(matches) {
	case 0:
		msg := fmt.Sprintf("no current recommendation for rule %s", req.RuleKey)
		if req.ProjectID != "" {
			msg += " on project " + req.ProjectID
		}
		return nil, &app.AnalyticsError{Code: app.ErrCodeNoMatch, Message: msg}
	case 1:
		return s.Propose(ctx, matches[0], req.Owner, req.Rationale)
	default:
		return nil, &app.AnalyticsError{
			Code:    app.ErrCodeInvalidInput,
			Message: fmt.Sprintf("rule %s fired for %d projects; pick one with a project id", req.RuleKey, len(matches)),
		}
	}
}

func (s *decisionService) List(ctx context.Context, status *domain.DecisionStatus) ([]*domain.Decision, error) {
	out, err := s.decisions.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("listing decisions: %w", err)
	}
	return out, nil
}

func (s *decisionService) Execute(ctx context.Context, id string) (d *domain.Decision, err error) {
	fields := map[string]any{"decision_id": id}
	defer observe(ctx, s.observer, "execute-decision", time.Now(), fields, &err)

	d, err = s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = d.Execute(time.Now().UTC()); err != nil {
		return nil, &app.AnalyticsError{Code: app.ErrCodeConflict, Message: err.Error(), Err: err}
	}
	if err = s.decisions.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("updating decision: %w", err)
	}
	return d, nil
}

func (s *decisionService) RecordOutcome(ctx context.Context, req app.OutcomeRequest) (o *domain.Outcome, err error) {
	fields := map[string]any{"decision_id": req.DecisionID}
	defer observe(ctx, s.observer, "record-outcome", time.Now(), fields, &err)

	if _, err = s.get(ctx, req.DecisionID); err != nil {
		return nil, err
	}

	measuredAt := time.Now().UTC()
	if req.MeasuredAt != nil {
		measuredAt = *req.MeasuredAt
	}
	o = &domain.Outcome{
		ID:         uuid.New().String(),
		DecisionID: req.DecisionID,
		MeasuredAt: measuredAt,
		KPIBefore:  req.KPIBefore,
		KPIAfter:   req.KPIAfter,
		Notes:      req.Notes,
	}
	if err = s.outcomes.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("creating outcome: %w", err)
	}
	fields["outcome_id"] = o.ID
	return o, nil
}

// RecordDecisionFeedback credits the decision's rule with the reported outcome.
func (s *decisionService) RecordDecisionFeedback(ctx context.Context, decisionID string, wasSuccessful bool) (*domain.RuleFeedback, error) {
	d, err := s.get(ctx, decisionID)
	if err != nil {
		return nil, err
	}
	return s.feedback.RecordFeedback(ctx, app.FeedbackRequest{
		RuleKey:       d.FeedbackKey(),
		WasSuccessful: wasSuccessful,
	})
}

func (s *decisionService) get(ctx context.Context, id string) (*domain.Decision, error) {
	d, err := s.decisions.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return d, nil
}
