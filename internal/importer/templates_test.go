package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateSeeds(t *testing.T) {
	data := `
templates:
  - name: Schedule Recovery Playbook
    description: Recovery controls
    checklist:
      - Daily schedule variance review
      - Critical path analysis
    adoption_rate_pct: 0.45
  - name: Cost Control Gate
    adoption_rate_pct: 0.8
`
	seeds, err := ParseTemplateSeeds([]byte(data))
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "Schedule Recovery Playbook", seeds[0].Name)
	assert.Len(t, seeds[0].Checklist, 2)
	assert.Equal(t, 0.8, seeds[1].AdoptionRatePct)
}

func TestParseTemplateSeeds_Rejects(t *testing.T) {
	_, err := ParseTemplateSeeds([]byte("templates:\n  - description: nameless\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "templates[0].name is required")

	_, err = ParseTemplateSeeds([]byte("templates:\n  - name: X\n    adoption_rate_pct: 45\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = ParseTemplateSeeds([]byte("templates: [unclosed"))
	require.Error(t, err)
}

func TestDefaultTemplateSeeds(t *testing.T) {
	seeds := DefaultTemplateSeeds()
	require.Len(t, seeds, 1)
	assert.Equal(t, "Schedule Recovery Playbook", seeds[0].Name)
	assert.Equal(t, []string{
		"Daily schedule variance review",
		"Critical path analysis",
		"Client escalation triggers",
	}, seeds[0].Checklist)
	assert.Equal(t, 0.45, seeds[0].AdoptionRatePct)
}
