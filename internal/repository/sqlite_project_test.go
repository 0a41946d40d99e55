package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Acme", testutil.WithPriority(5))
	require.NoError(t, clients.Create(ctx, client))
	proj := testutil.NewTestProject("Harbor Bridge",
		testutil.WithClient(client),
		testutil.WithSafetyIncidents(2),
	)
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Bridge", fetched.Name)
	assert.Equal(t, client.ID, fetched.ClientID)
	assert.Equal(t, "2024-01-01", fetched.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-12-31", fetched.EndDate.Format("2006-01-02"))
	assert.Equal(t, 1000.0, fetched.BaselineBudget)
	assert.Equal(t, 1100.0, fetched.CurrentForecast)
	assert.Equal(t, 400.0, fetched.ActualSpend)
	assert.Equal(t, 365, fetched.BaselineScheduleDays)
	assert.Equal(t, 380, fetched.ForecastScheduleDays)
	assert.Equal(t, 0.4, fetched.PercentComplete)
	assert.Equal(t, 2, fetched.SafetyIncidents)
	assert.Equal(t, domain.ProjectActive, fetched.Status)

	require.NotNil(t, fetched.Client, "client should be attached")
	assert.Equal(t, 5, fetched.Client.StrategicPriority)
	assert.Equal(t, "Acme", fetched.Client.Name)
}

func TestProjectRepo_WithoutClient(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Solo")
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.ClientID)
	assert.Nil(t, fetched.Client)
}

func TestProjectRepo_UnknownClientRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	proj := testutil.NewTestProject("Orphan")
	proj.ClientID = "no-such-client"
	assert.Error(t, repo.Create(context.Background(), proj))
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectRepo_ListInCreationOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	names := []string{"First", "Second", "Third"}
	for i, name := range names {
		p := testutil.NewTestProject(name)
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, p))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, name := range names {
		assert.Equal(t, name, list[i].Name)
	}
}

func TestProjectRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Tower")
	require.NoError(t, repo.Create(ctx, proj))

	proj.ActualSpend = 650
	proj.PercentComplete = 55
	proj.Status = domain.ProjectOnHold
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 650.0, fetched.ActualSpend)
	assert.Equal(t, 55.0, fetched.PercentComplete)
	assert.Equal(t, domain.ProjectOnHold, fetched.Status)

	require.NoError(t, repo.Delete(ctx, proj.ID))
	_, err = repo.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_ClientDeletionDetaches(t *testing.T) {
	db := testutil.NewTestDB(t)
	clients := NewSQLiteClientRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Acme")
	require.NoError(t, clients.Create(ctx, client))
	proj := testutil.NewTestProject("Tower", testutil.WithClient(client))
	require.NoError(t, repo.Create(ctx, proj))

	require.NoError(t, clients.Delete(ctx, client.ID))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Client)
	assert.Empty(t, fetched.ClientID)
}
