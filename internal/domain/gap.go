package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Gap is a discovery question captured during an operations review, with
// the answer once one is known and how far the answer can be trusted.
type Gap struct {
	ID         string
	Category   string
	Question   string
	Answer     string
	Confidence float64
	// Attachments describes supporting material by name; the files live elsewhere.
	Attachments map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpen reports whether the question still lacks an answer.
func (g *Gap) IsOpen() bool {
	return strings.TrimSpace(g.Answer) == ""
}

func (g *Gap) Validate() error {
	var errs []error
	if strings.TrimSpace(g.Category) == "" {
		errs = append(errs, errors.New("category is required"))
	}
	if strings.TrimSpace(g.Question) == "" {
		errs = append(errs, errors.New("question is required"))
	}
	if !(g.Confidence >= 0 && g.Confidence <= 1) {
		errs = append(errs, fmt.Errorf("confidence %v out of range [0, 1]", g.Confidence))
	}
	return errors.Join(errs...)
}
