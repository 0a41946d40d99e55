package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleFeedbackRepo_EnsureDefault(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRuleFeedbackRepo(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "cost_overrun")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.EnsureDefault(ctx, "cost_overrun"))
	fb, err := repo.Get(ctx, "cost_overrun")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSuccessRate, fb.SuccessRate)

	// A second call must not reset an existing rate.
	ok, err := repo.CompareAndSwap(ctx, "cost_overrun", 0.5, 0.55, time.Now())
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, repo.EnsureDefault(ctx, "cost_overrun"))

	fb, err = repo.Get(ctx, "cost_overrun")
	require.NoError(t, err)
	assert.Equal(t, 0.55, fb.SuccessRate)
}

func TestRuleFeedbackRepo_CompareAndSwapConflict(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRuleFeedbackRepo(db)
	ctx := context.Background()
	require.NoError(t, repo.EnsureDefault(ctx, "k"))

	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ok, err := repo.CompareAndSwap(ctx, "k", 0.4, 0.45, stamp)
	require.NoError(t, err)
	assert.False(t, ok, "stale expected value must not update")

	ok, err = repo.CompareAndSwap(ctx, "k", 0.5, 0.45, stamp)
	require.NoError(t, err)
	assert.True(t, ok)

	fb, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 0.45, fb.SuccessRate)
	assert.True(t, stamp.Equal(fb.UpdatedAt))

	ok, err = repo.CompareAndSwap(ctx, "missing", 0.5, 0.55, stamp)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuleFeedbackRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRuleFeedbackRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.EnsureDefault(ctx, "staff_training_gap"))
	require.NoError(t, repo.EnsureDefault(ctx, "cost_overrun"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "cost_overrun", list[0].RuleKey)
	assert.Equal(t, "staff_training_gap", list[1].RuleKey)
}

// TestRuleFeedbackRepo_ConcurrentCASLosesNoUpdates runs several writers that
// each read-modify-CAS in a loop. Every increment must land exactly once.
func TestRuleFeedbackRepo_ConcurrentCASLosesNoUpdates(t *testing.T) {
	db := testutil.NewFileTestDB(t)
	repo := NewSQLiteRuleFeedbackRepo(db)
	ctx := context.Background()
	require.NoError(t, repo.EnsureDefault(ctx, "k"))

	const writers, perWriter = 4, 5
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				for {
					fb, err := repo.Get(ctx, "k")
					if err != nil {
						t.Errorf("get: %v", err)
						return
					}
					ok, err := repo.CompareAndSwap(ctx, "k", fb.SuccessRate, fb.SuccessRate+0.01, time.Now())
					if err != nil {
						t.Errorf("cas: %v", err)
						return
					}
					if ok {
						break
					}
				}
			}
		}()
	}
	wg.Wait()

	fb, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.InDelta(t, 0.5+writers*perWriter*0.01, fb.SuccessRate, 1e-9)
}
