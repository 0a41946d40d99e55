package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/repository"
	"github.com/alexanderramin/pdsops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGapService_RecordAnswerList(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewGapService(repository.NewSQLiteGapRepo(database))
	ctx := context.Background()

	first, err := svc.RecordGap(ctx, app.GapRequest{
		Category:    " Controls ",
		Question:    "Who signs off change orders above 50k?",
		Attachments: map[string]string{"raci": "raci-v2.xlsx"},
	})
	require.NoError(t, err)
	assert.Equal(t, "controls", first.Category)
	assert.True(t, first.IsOpen())

	_, err = svc.RecordGap(ctx, app.GapRequest{Category: "safety", Question: "Who runs toolbox talks?"})
	require.NoError(t, err)

	answered, err := svc.AnswerGap(ctx, first.ID, "Regional director", 0.7)
	require.NoError(t, err)
	assert.False(t, answered.IsOpen())
	assert.Equal(t, 0.7, answered.Confidence)

	all, err := svc.ListGaps(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "raci-v2.xlsx", all[0].Attachments["raci"])

	open, err := svc.ListGaps(ctx, true)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "safety", open[0].Category)
}

func TestGapService_Validation(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteGapRepo(database)
	svc := NewGapService(repo)
	ctx := context.Background()

	_, err := svc.RecordGap(ctx, app.GapRequest{Category: "controls", Confidence: 1.5})
	requireCode(t, err, app.ErrCodeInvalidInput)
	assert.Contains(t, err.Error(), "question is required")

	gap := testutil.NewTestGap("controls", "Who approves?")
	require.NoError(t, repo.Create(ctx, gap))

	_, err = svc.AnswerGap(ctx, gap.ID, "  ", 0.5)
	requireCode(t, err, app.ErrCodeInvalidInput)
	_, err = svc.AnswerGap(ctx, gap.ID, "PM", 2)
	requireCode(t, err, app.ErrCodeInvalidInput)
	_, err = svc.AnswerGap(ctx, "missing", "PM", 0.5)
	requireCode(t, err, app.ErrCodeNotFound)

	stored, err := repo.GetByID(ctx, gap.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOpen(), "a rejected answer is not stored")
}

func TestGapService_Remove(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteGapRepo(database)
	svc := NewGapService(repo)
	ctx := context.Background()
	gap := testutil.NewTestGap("controls", "Who approves?")
	require.NoError(t, repo.Create(ctx, gap))

	require.NoError(t, svc.RemoveGap(ctx, gap.ID))
	requireCode(t, svc.RemoveGap(ctx, gap.ID), app.ErrCodeNotFound)
}
