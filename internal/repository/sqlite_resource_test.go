package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/pdsops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceRepo_CreateGetUpdateDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)
	ctx := context.Background()

	res := testutil.NewTestResource("Dana", "NA", 85)
	res.SkillTags = []string{"cpm", "cost"}
	require.NoError(t, repo.Create(ctx, res))

	fetched, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana", fetched.Name)
	assert.Equal(t, "project controls", fetched.Role)
	assert.Equal(t, []string{"cpm", "cost"}, fetched.SkillTags)
	assert.Equal(t, 85.0, fetched.UtilizationPct)
	assert.True(t, res.CreatedAt.Equal(fetched.CreatedAt))

	fetched.UtilizationPct = 60
	fetched.SkillTags = nil
	require.NoError(t, repo.Update(ctx, fetched))

	again, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, again.UtilizationPct)
	assert.Empty(t, again.SkillTags)

	require.NoError(t, repo.Delete(ctx, res.ID))
	_, err = repo.GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, res.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, res), ErrNotFound)
}

func TestResourceRepo_ListByRegion(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestResource("Zoe", "EMEA", 70)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestResource("Ari", "NA", 90)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestResource("Bo", "na", 50)))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ari", all[0].Name)
	assert.Equal(t, "Zoe", all[2].Name)

	na, err := repo.List(ctx, "NA")
	require.NoError(t, err)
	require.Len(t, na, 2)
	assert.Equal(t, "Ari", na[0].Name)
	assert.Equal(t, "Bo", na[1].Name)
}

func TestResourceRepo_RejectsUtilizationAboveFull(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)

	assert.Error(t, repo.Create(context.Background(), testutil.NewTestResource("Over", "NA", 140)))
}
