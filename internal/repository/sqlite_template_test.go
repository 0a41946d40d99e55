package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pdsops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRepo_CreateAndGetByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	tpl := testutil.NewTestTemplate("Schedule Recovery Playbook")
	require.NoError(t, repo.Create(ctx, tpl))

	fetched, err := repo.GetByName(ctx, "Schedule Recovery Playbook")
	require.NoError(t, err)
	assert.Equal(t, tpl.ID, fetched.ID)
	assert.Equal(t, tpl.Checklist, fetched.Checklist)
	assert.Equal(t, 0.45, fetched.AdoptionRatePct)

	_, err = repo.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTemplateRepo_NamesAreUnique(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestTemplate("Playbook")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestTemplate("Playbook")))
}

func TestTemplateRepo_ListOldestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	newer := testutil.NewTestTemplate("Newer")
	newer.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	older := testutil.NewTestTemplate("Older")
	older.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older.Checklist = nil
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, older))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Older", list[0].Name)
	assert.Empty(t, list[0].Checklist)
	assert.Equal(t, "Newer", list[1].Name)
}
