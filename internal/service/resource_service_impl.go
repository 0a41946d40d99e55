package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/repository"
	"github.com/google/uuid"
)

type resourceService struct {
	resources repository.ResourceRepo
	observer  UseCaseObserver
}

func NewResourceService(resources repository.ResourceRepo, observers ...UseCaseObserver) ResourceService {
	return &resourceService{
		resources: resources,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *resourceService) AddResource(ctx context.Context, req app.ResourceRequest) (res *domain.Resource, err error) {
	defer observe(ctx, s.observer, "add-resource", time.Now(), map[string]any{"region": req.Region}, &err)

	now := time.Now().UTC()
	res = &domain.Resource{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(req.Name),
		Role:           strings.TrimSpace(req.Role),
		Region:         strings.TrimSpace(req.Region),
		SkillTags:      domain.ParseSkillTags(req.SkillTags...),
		UtilizationPct: req.UtilizationPct,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := res.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if err := s.resources.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}
	return res, nil
}

func (s *resourceService) ListResources(ctx context.Context, region string) ([]*domain.Resource, error) {
	resources, err := s.resources.List(ctx, strings.TrimSpace(region))
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	return resources, nil
}

// UpdateResource applies the non-empty fields of req to the stored entry.
func (s *resourceService) UpdateResource(ctx context.Context, id string, req app.ResourceRequest) (res *domain.Resource, err error) {
	defer observe(ctx, s.observer, "update-resource", time.Now(), map[string]any{"resource_id": id}, &err)

	res, err = s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	if v := strings.TrimSpace(req.Name); v != "" {
		res.Name = v
	}
	if v := strings.TrimSpace(req.Role); v != "" {
		res.Role = v
	}
	if v := strings.TrimSpace(req.Region); v != "" {
		res.Region = v
	}
	if len(req.SkillTags) > 0 {
		res.SkillTags = domain.ParseSkillTags(req.SkillTags...)
	}
	if req.SetUtilization {
		res.UtilizationPct = req.UtilizationPct
	}
	if err := res.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	res.UpdatedAt = time.Now().UTC()
	if err := s.resources.Update(ctx, res); err != nil {
		return nil, classify(err)
	}
	return res, nil
}

func (s *resourceService) RemoveResource(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "remove-resource", time.Now(), map[string]any{"resource_id": id}, &err)
	return classify(s.resources.Delete(ctx, id))
}

// StaffingCapacity derives a scenario staffing factor from the bench in
// region. A region with nobody on it falls back to the whole bench, and the
// result's Region is then empty.
func (s *resourceService) StaffingCapacity(ctx context.Context, region string) (*app.StaffingResult, error) {
	region = strings.TrimSpace(region)
	resources, err := s.resources.List(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	if len(resources) == 0 && region != "" {
		region = ""
		if resources, err = s.resources.List(ctx, ""); err != nil {
			return nil, fmt.Errorf("listing resources: %w", err)
		}
	}

	utils := make([]float64, 0, len(resources))
	var sum float64
	for _, r := range resources {
		u := r.NormalizedUtilization()
		utils = append(utils, u)
		sum += u
	}
	out := &app.StaffingResult{
		Region:    region,
		Resources: len(resources),
		Factor:    analytics.StaffingCapacity(utils),
	}
	if len(resources) > 0 {
		out.AverageUtilization = sum / float64(len(resources))
	}
	return out, nil
}
