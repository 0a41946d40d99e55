package formatter

import (
	"testing"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatResourceList(t *testing.T) {
	out := stripANSI(FormatResourceList([]*domain.Resource{{
		ID: "r-0123456789", Name: "Dana Ortiz", Role: "scheduler", Region: "NA",
		SkillTags: []string{"p6", "claims"}, UtilizationPct: 85,
	}}))
	assert.Contains(t, out, "Dana Ortiz")
	assert.Contains(t, out, "p6, claims")
	assert.Contains(t, out, "85%")

	assert.Contains(t, stripANSI(FormatResourceList(nil)), "pdsops resource add")
}

func TestFormatStaffing(t *testing.T) {
	assert.Equal(t, "Staffing factor 0.80 from 2 resources in NA (avg utilization 100%)",
		stripANSI(FormatStaffing(&app.StaffingResult{Region: "NA", Resources: 2, AverageUtilization: 1, Factor: 0.8})))
	assert.Contains(t, stripANSI(FormatStaffing(&app.StaffingResult{Resources: 3, Factor: 1})), "all regions")
	assert.Contains(t, stripANSI(FormatStaffing(&app.StaffingResult{Factor: 1})), "No resources recorded")
}

func TestFormatGapList(t *testing.T) {
	out := stripANSI(FormatGapList([]*domain.Gap{
		{ID: "g-1", Category: "controls", Question: "Who approves change orders?",
			Answer: "Regional director", Confidence: 0.7, Attachments: map[string]string{"raci": "raci.xlsx"}},
		{ID: "g-2", Category: "safety", Question: "Who runs toolbox talks?"},
	}))
	assert.Contains(t, out, "answered")
	assert.Contains(t, out, "→ Regional director (confidence 70%)")
	assert.Contains(t, out, "• raci: raci.xlsx")
	assert.Contains(t, out, "open")
}

func TestFormatRiskList(t *testing.T) {
	out := stripANSI(FormatRiskList([]domain.Risk{{
		ID: "k-1", ProjectID: "p-1", Category: "permitting", Probability: 0.4,
		ImpactCost: 25000, ImpactDays: 12, MitigationStatus: domain.MitigationOpen,
	}}, map[string]string{"p-1": "Harbor Bridge"}))
	assert.Contains(t, out, "Harbor Bridge")
	assert.Contains(t, out, "permitting")
	assert.Contains(t, out, "40%")
	assert.Contains(t, out, "12.0d")

	assert.Contains(t, stripANSI(FormatRiskList(nil, nil)), "No risks recorded.")
}
