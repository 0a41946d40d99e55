package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/recommend"
	"github.com/alexanderramin/pdsops/internal/repository"
	"github.com/alexanderramin/pdsops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackService_FirstReportStartsFromDefault(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewFeedbackService(repository.NewSQLiteRuleFeedbackRepo(database), time.Second)
	ctx := context.Background()

	row, err := svc.RecordFeedback(ctx, app.FeedbackRequest{RuleKey: recommend.RuleCostOverrun, WasSuccessful: true})
	require.NoError(t, err)
	assert.InDelta(t, 0.55, row.SuccessRate, 1e-9)
	assert.False(t, row.UpdatedAt.IsZero())

	row, err = svc.RecordFeedback(ctx, app.FeedbackRequest{RuleKey: recommend.RuleCostOverrun, WasSuccessful: false})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, row.SuccessRate, 1e-9)

	rows, err := svc.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 0.5, rows[0].SuccessRate, 1e-9)
}

func TestFeedbackService_ClampsAtBounds(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewFeedbackService(repository.NewSQLiteRuleFeedbackRepo(database), time.Second)
	ctx := context.Background()

	var row *domain.RuleFeedback
	var err error
	for i := 0; i < 12; i++ {
		row, err = svc.RecordFeedback(ctx, app.FeedbackRequest{RuleKey: "r", WasSuccessful: true})
		require.NoError(t, err)
	}
	assert.Equal(t, recommend.MaxSuccessRate, row.SuccessRate)

	for i := 0; i < 20; i++ {
		row, err = svc.RecordFeedback(ctx, app.FeedbackRequest{RuleKey: "r", WasSuccessful: false})
		require.NoError(t, err)
	}
	assert.Equal(t, recommend.MinSuccessRate, row.SuccessRate)
}

func TestFeedbackService_RequiresRuleKey(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewFeedbackService(repository.NewSQLiteRuleFeedbackRepo(database), time.Second)

	_, err := svc.RecordFeedback(context.Background(), app.FeedbackRequest{RuleKey: "  "})
	requireCode(t, err, app.ErrCodeInvalidInput)
}

func TestFeedbackService_ConcurrentReportsAreAllApplied(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	svc := NewFeedbackService(repository.NewSQLiteRuleFeedbackRepo(database), 10*time.Second)
	ctx := context.Background()

	const writers, perWriter = 3, 2
	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if _, err := svc.RecordFeedback(ctx, app.FeedbackRequest{RuleKey: "shared", WasSuccessful: true}); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rows, err := svc.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 0.8, rows[0].SuccessRate, 1e-9)
}

// staleListRepo lists whatever rows it was given instead of the store.
type staleListRepo struct {
	repository.RuleFeedbackRepo
	listed []domain.RuleFeedback
}

func (r *staleListRepo) List(context.Context) ([]domain.RuleFeedback, error) {
	return r.listed, nil
}

func TestFeedbackService_ListMergesRecordedRowsIntoStoreView(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := &staleListRepo{
		RuleFeedbackRepo: repository.NewSQLiteRuleFeedbackRepo(database),
		listed: []domain.RuleFeedback{
			{RuleKey: "a_rule", SuccessRate: 0.7, UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	svc := NewFeedbackService(repo, time.Second)
	ctx := context.Background()

	recorded, err := svc.RecordFeedback(ctx, app.FeedbackRequest{RuleKey: "z_rule", WasSuccessful: false})
	require.NoError(t, err)

	rows, err := svc.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a_rule", rows[0].RuleKey)
	assert.Equal(t, *recorded, rows[1])

	// A newer store row replaces the mirrored one.
	repo.listed = []domain.RuleFeedback{{RuleKey: "z_rule", SuccessRate: 0.3, UpdatedAt: recorded.UpdatedAt.Add(time.Minute)}}
	rows, err = svc.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.InDelta(t, 0.3, rows[1].SuccessRate, 1e-12)
}

// losingFeedbackRepo never wins a compare-and-swap.
type losingFeedbackRepo struct {
	repository.RuleFeedbackRepo
	swaps int
}

func (r *losingFeedbackRepo) EnsureDefault(context.Context, string) error { return nil }

func (r *losingFeedbackRepo) Get(_ context.Context, key string) (*domain.RuleFeedback, error) {
	row := domain.NewRuleFeedback(key)
	return &row, nil
}

func (r *losingFeedbackRepo) CompareAndSwap(context.Context, string, float64, float64, time.Time) (bool, error) {
	r.swaps++
	return false, nil
}

func TestFeedbackService_GivesUpAsConflict(t *testing.T) {
	repo := &losingFeedbackRepo{}
	obs := &recordingObserver{}
	svc := NewFeedbackService(repo, 30*time.Millisecond, obs)

	_, err := svc.RecordFeedback(context.Background(), app.FeedbackRequest{RuleKey: "r", WasSuccessful: true})
	requireCode(t, err, app.ErrCodeConflict)
	assert.ErrorIs(t, err, errFeedbackConflict)
	assert.Greater(t, repo.swaps, 1)

	require.Len(t, obs.events, 1)
	assert.Equal(t, repo.swaps, obs.events[0].Fields["attempts"])
}
