package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/pdsops/internal/repository"
	"github.com/alexanderramin/pdsops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_ListProjectsWithClients(t *testing.T) {
	database := testutil.NewTestDB(t)
	first := seedProject(t, database, "First", 3)
	second := seedProject(t, database, "Second", 5)

	projects, err := NewProjectService(repository.NewSQLiteProjectRepo(database)).ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, first.ID, projects[0].ID)
	assert.Equal(t, second.ID, projects[1].ID)
	require.NotNil(t, projects[1].Client)
	assert.Equal(t, 5, projects[1].Client.StrategicPriority)
}

func TestProjectService_ListProjectsEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)

	projects, err := NewProjectService(repository.NewSQLiteProjectRepo(database)).ListProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}
