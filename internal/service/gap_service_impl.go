package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/repository"
	"github.com/google/uuid"
)

type gapService struct {
	gaps     repository.GapRepo
	observer UseCaseObserver
}

func NewGapService(gaps repository.GapRepo, observers ...UseCaseObserver) GapService {
	return &gapService{
		gaps:     gaps,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *gapService) RecordGap(ctx context.Context, req app.GapRequest) (gap *domain.Gap, err error) {
	defer observe(ctx, s.observer, "record-gap", time.Now(), map[string]any{"category": req.Category}, &err)

	now := time.Now().UTC()
	gap = &domain.Gap{
		ID:          uuid.New().String(),
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Question:    strings.TrimSpace(req.Question),
		Answer:      strings.TrimSpace(req.Answer),
		Confidence:  req.Confidence,
		Attachments: req.Attachments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := gap.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if err := s.gaps.Create(ctx, gap); err != nil {
		return nil, fmt.Errorf("creating gap: %w", err)
	}
	return gap, nil
}

// ListGaps returns gaps oldest first; openOnly drops answered ones.
func (s *gapService) ListGaps(ctx context.Context, openOnly bool) ([]*domain.Gap, error) {
	gaps, err := s.gaps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing gaps: %w", err)
	}
	if !openOnly {
		return gaps, nil
	}
	open := gaps[:0]
	for _, g := range gaps {
		if g.IsOpen() {
			open = append(open, g)
		}
	}
	return open, nil
}

func (s *gapService) AnswerGap(ctx context.Context, id, answer string, confidence float64) (gap *domain.Gap, err error) {
	defer observe(ctx, s.observer, "answer-gap", time.Now(), map[string]any{"gap_id": id}, &err)

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, invalidInput(errors.New("answer is required"))
	}
	gap, err = s.gaps.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	gap.Answer = answer
	gap.Confidence = confidence
	if err := gap.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	gap.UpdatedAt = time.Now().UTC()
	if err := s.gaps.Update(ctx, gap); err != nil {
		return nil, classify(err)
	}
	return gap, nil
}

func (s *gapService) RemoveGap(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "remove-gap", time.Now(), map[string]any{"gap_id": id}, &err)
	return classify(s.gaps.Delete(ctx, id))
}
