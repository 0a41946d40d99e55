package analytics

import (
	"testing"

	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestExposure_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Exposure(nil))
}

func TestExposure_CombinesCostAndSchedule(t *testing.T) {
	risks := []domain.Risk{
		{ProjectID: "p-1", Probability: 0.5, ImpactCost: 10000, ImpactDays: 5},
		{ProjectID: "p-1", Probability: 0.2, ImpactCost: 0, ImpactDays: 10},
	}
	// 0.5*(10000+5000) + 0.2*(0+10000)
	assert.InDelta(t, 9500.0, Exposure(risks), 1e-9)
}

func TestExposureByProject_GroupsAndIgnoresNothing(t *testing.T) {
	risks := []domain.Risk{
		{ProjectID: "p-1", Probability: 1, ImpactCost: 100},
		{ProjectID: "p-2", Probability: 0.5, ImpactDays: 2},
		{ProjectID: "p-1", Probability: 0.5, ImpactCost: 100},
	}

	got := ExposureByProject(risks)
	assert.InDelta(t, 150.0, got["p-1"], 1e-9)
	assert.InDelta(t, 1000.0, got["p-2"], 1e-9)
	assert.Equal(t, 0.0, got["p-missing"])
}

func TestRisksByProject_KeepsOrder(t *testing.T) {
	risks := []domain.Risk{
		{ID: "r-1", ProjectID: "p-1"},
		{ID: "r-2", ProjectID: "p-2"},
		{ID: "r-3", ProjectID: "p-1"},
	}

	got := RisksByProject(risks)
	if assert.Len(t, got["p-1"], 2) {
		assert.Equal(t, "r-1", got["p-1"][0].ID)
		assert.Equal(t, "r-3", got["p-1"][1].ID)
	}
	assert.Len(t, got["p-2"], 1)
}
