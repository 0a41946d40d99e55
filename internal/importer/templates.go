package importer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateSeed is one process template in a YAML seed file.
type TemplateSeed struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Checklist       []string `yaml:"checklist"`
	AdoptionRatePct float64  `yaml:"adoption_rate_pct"`
}

type templateSeedFile struct {
	Templates []TemplateSeed `yaml:"templates"`
}

// DefaultTemplateSeeds is the playbook seeded when no seed file is given.
func DefaultTemplateSeeds() []TemplateSeed {
	return []TemplateSeed{{
		Name:        "Schedule Recovery Playbook",
		Description: "Standard controls for projects slipping against baseline schedule.",
		Checklist: []string{
			"Daily schedule variance review",
			"Critical path analysis",
			"Client escalation triggers",
		},
		AdoptionRatePct: 0.45,
	}}
}

// LoadTemplateSeeds reads a YAML file of the form
//
//	templates:
//	  - name: Schedule Recovery Playbook
//	    checklist: [...]
//	    adoption_rate_pct: 0.45
func LoadTemplateSeeds(path string) ([]TemplateSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTemplateSeeds(data)
}

func ParseTemplateSeeds(data []byte) ([]TemplateSeed, error) {
	var file templateSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing template seed file: %w", err)
	}
	for i, t := range file.Templates {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("templates[%d].name is required", i)
		}
		if t.AdoptionRatePct < 0 || t.AdoptionRatePct > 1 {
			return nil, fmt.Errorf("templates[%d].adoption_rate_pct: %.2f out of range [0, 1]", i, t.AdoptionRatePct)
		}
	}
	return file.Templates, nil
}
