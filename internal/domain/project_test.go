package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedPercentComplete_Fraction(t *testing.T) {
	p := &Project{PercentComplete: 0.4}
	assert.Equal(t, 0.4, p.NormalizedPercentComplete())
}

func TestNormalizedPercentComplete_Percentage(t *testing.T) {
	p := &Project{PercentComplete: 40}
	assert.InDelta(t, 0.4, p.NormalizedPercentComplete(), 1e-12)
}

func TestNormalizedPercentComplete_ExactlyOneIsFraction(t *testing.T) {
	p := &Project{PercentComplete: 1}
	assert.Equal(t, 1.0, p.NormalizedPercentComplete())
}

func TestValidate_EndBeforeStart(t *testing.T) {
	p := &Project{
		Name:      "Harbor Bridge",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start date")
}

func TestValidate_NegativePercentComplete(t *testing.T) {
	p := &Project{
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		PercentComplete: -0.1,
	}
	assert.Error(t, p.Validate())
}

func TestValidate_SameDayIsValid(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &Project{StartDate: day, EndDate: day}
	assert.NoError(t, p.Validate())
}

func TestDisplayID_WithName(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", Name: "Harbor Bridge"}
	assert.Equal(t, "Harbor Bridge", p.DisplayID())
}

func TestDisplayID_WithoutName(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", p.DisplayID())
}

func TestDisplayID_ShortUUID(t *testing.T) {
	p := &Project{ID: "abc"}
	assert.Equal(t, "abc", p.DisplayID())
}

func TestTraitsOf_NilClientDefaults(t *testing.T) {
	traits := TraitsOf(nil)
	assert.Equal(t, 1, traits.StrategicPriority)
	assert.Equal(t, 0.0, traits.SatisfactionScore)
	assert.Equal(t, 0.0, traits.PipelineValue)
}

func TestTraitsOf_Client(t *testing.T) {
	traits := TraitsOf(&Client{StrategicPriority: 5, SatisfactionScore: 3.5, PipelineValue: 1e6})
	assert.Equal(t, 5, traits.StrategicPriority)
	assert.Equal(t, 3.5, traits.SatisfactionScore)
	assert.Equal(t, 1e6, traits.PipelineValue)
}
