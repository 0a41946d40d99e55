package domain

import "time"

// Client carries the account attributes that feed attention ranking.
type Client struct {
	ID                string
	Name              string
	SatisfactionScore float64
	PipelineValue     float64
	StrategicPriority int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ClientTraits are the client-derived inputs to scoring, with defaults
// applied when a project has no client attached.
type ClientTraits struct {
	StrategicPriority int
	SatisfactionScore float64
	PipelineValue     float64
}

// DefaultStrategicPriority is assumed for projects without a client.
const DefaultStrategicPriority = 1

// TraitsOf returns the scoring traits for c. A nil client yields priority 1,
// satisfaction 0 and pipeline 0.
func TraitsOf(c *Client) ClientTraits {
	if c == nil {
		return ClientTraits{StrategicPriority: DefaultStrategicPriority}
	}
	return ClientTraits{
		StrategicPriority: c.StrategicPriority,
		SatisfactionScore: c.SatisfactionScore,
		PipelineValue:     c.PipelineValue,
	}
}
