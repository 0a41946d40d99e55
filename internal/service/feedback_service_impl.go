package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/recommend"
	"github.com/alexanderramin/pdsops/internal/repository"
	"github.com/cenkalti/backoff/v4"
)

// DefaultFeedbackRetry bounds how long a feedback update keeps retrying
// when other writers keep winning the compare-and-swap.
const DefaultFeedbackRetry = 2 * time.Second

var errFeedbackConflict = errors.New("rule feedback changed concurrently")

type feedbackService struct {
	feedback   repository.RuleFeedbackRepo
	mirror     *recommend.FeedbackTable
	maxElapsed time.Duration
	observer   UseCaseObserver
}

func NewFeedbackService(
	feedback repository.RuleFeedbackRepo,
	maxElapsed time.Duration,
	observers ...UseCaseObserver,
) FeedbackService {
	if maxElapsed <= 0 {
		maxElapsed = DefaultFeedbackRetry
	}
	return &feedbackService{
		feedback:   feedback,
		mirror:     recommend.NewFeedbackTable(),
		maxElapsed: maxElapsed,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// RecordFeedback nudges a rule's success rate by one step. The read-modify-
// write runs as a compare-and-swap; losers retry with exponential backoff so
// concurrent outcomes for one rule are all applied.
func (s *feedbackService) RecordFeedback(ctx context.Context, req app.FeedbackRequest) (row *domain.RuleFeedback, err error) {
	fields := map[string]any{"rule_key": req.RuleKey, "was_successful": req.WasSuccessful}
	defer observe(ctx, s.observer, "record-feedback", time.Now(), fields, &err)

	key := strings.TrimSpace(req.RuleKey)
	if key == "" {
		return nil, &app.AnalyticsError{Code: app.ErrCodeInvalidInput, Message: "rule key is required"}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 5 * time.Millisecond
	bo.MaxElapsedTime = s.maxElapsed

	attempts := 0
	var updated domain.RuleFeedback
	op := func() error {
		attempts++
		if err := s.feedback.EnsureDefault(ctx, key); err != nil {
			return backoff.Permanent(err)
		}
		current, err := s.feedback.Get(ctx, key)
		if err != nil {
			return backoff.Permanent(err)
		}
		next := recommend.UpdateRuleFeedback(key, req.WasSuccessful, current)
		// Stamped at the store's precision so mirror and store rows compare equal.
		next.UpdatedAt = time.Now().UTC().Truncate(time.Second)
		swapped, err := s.feedback.CompareAndSwap(ctx, key, current.SuccessRate, next.SuccessRate, next.UpdatedAt)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !swapped {
			return errFeedbackConflict
		}
		updated = next
		return nil
	}

	err = backoff.Retry(op, backoff.WithContext(bo, ctx))
	fields["attempts"] = attempts
	if errors.Is(err, errFeedbackConflict) {
		return nil, &app.AnalyticsError{
			Code:    app.ErrCodeConflict,
			Message: fmt.Sprintf("rule %s: gave up after %d attempts", key, attempts),
			Err:     err,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("recording feedback for %s: %w", key, err)
	}
	s.mirror.Put(updated)
	fields["success_rate"] = updated.SuccessRate
	return &updated, nil
}

// ListFeedback refreshes the in-process mirror from the store and returns it
// ordered by rule key. Rows this process recorded after the store read stay
// in the mirror.
func (s *feedbackService) ListFeedback(ctx context.Context) ([]domain.RuleFeedback, error) {
	rows, err := s.feedback.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rule feedback: %w", err)
	}
	for _, row := range rows {
		s.mirror.Put(row)
	}
	return s.mirror.Snapshot(), nil
}
