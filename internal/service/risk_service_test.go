package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/alexanderramin/pdsops/internal/repository"
	"github.com/alexanderramin/pdsops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRiskService(t *testing.T) (RiskService, *domain.Project) {
	t.Helper()
	database := testutil.NewTestDB(t)
	project := seedProject(t, database, "Harbor Bridge", 3)
	return NewRiskService(repository.NewSQLiteRiskRepo(database), repository.NewSQLiteProjectRepo(database)), project
}

func TestRiskService_AddToStoredProject(t *testing.T) {
	svc, project := newRiskService(t)
	ctx := context.Background()

	risk, err := svc.AddRisk(ctx, app.RiskRequest{
		ProjectID: project.ID, Category: " Permitting ", Probability: 0.4, ImpactCost: 25000, ImpactDays: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "permitting", risk.Category)
	assert.Equal(t, domain.MitigationOpen, risk.MitigationStatus)
	assert.NotEmpty(t, risk.ID)

	risks, err := svc.ListRisks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, risks, 1)
	assert.Equal(t, risk.ID, risks[0].ID)

	all, err := svc.ListRisks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRiskService_AddValidates(t *testing.T) {
	svc, project := newRiskService(t)
	ctx := context.Background()

	_, err := svc.AddRisk(ctx, app.RiskRequest{ProjectID: "missing", Category: "scope", Probability: 0.2})
	requireCode(t, err, app.ErrCodeNotFound)

	_, err = svc.AddRisk(ctx, app.RiskRequest{ProjectID: project.ID, Category: "scope", Probability: 1.2, MitigationStatus: "maybe"})
	requireCode(t, err, app.ErrCodeInvalidInput)
	assert.Contains(t, err.Error(), "probability")
	assert.Contains(t, err.Error(), `invalid value "maybe"`)

	_, err = svc.ListRisks(ctx, "missing")
	requireCode(t, err, app.ErrCodeNotFound)
}

func TestRiskService_Remove(t *testing.T) {
	svc, project := newRiskService(t)
	ctx := context.Background()
	risk, err := svc.AddRisk(ctx, app.RiskRequest{ProjectID: project.ID, Category: "scope", Probability: 0.2})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveRisk(ctx, risk.ID))
	requireCode(t, svc.RemoveRisk(ctx, risk.ID), app.ErrCodeNotFound)
}
