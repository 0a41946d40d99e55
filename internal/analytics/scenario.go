package analytics

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
	"golang.org/x/sync/errgroup"
)

// PortfolioScenario runs MonteCarlo for every project concurrently. Each
// project gets its own Simulator; with a seed every project is seeded
// identically, so a project's result does not depend on its position in the
// portfolio. Results are returned in project order.
func PortfolioScenario(ctx context.Context, projects []*domain.Project, risks []domain.Risk, params ScenarioParams) ([]ScenarioResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	byProject := RisksByProject(risks)
	results := make([]ScenarioResult, len(projects))
	base := time.Now().UnixNano()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range projects {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			src := rand.NewSource(base + int64(i))
			if params.Seed != nil {
				src = rand.NewSource(*params.Seed)
			}
			res, err := NewSimulator(src).Run(p, byProject[p.ID], params)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
