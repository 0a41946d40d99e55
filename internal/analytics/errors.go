package analytics

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/pdsops/internal/domain"
)

// ErrInvalidInput is matched by every InputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InputError rejects a request whose parameters the engine cannot compute on.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidateProject rejects a snapshot whose dates or progress make the
// earned-value figures meaningless.
func ValidateProject(p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return &InputError{Field: "project", Message: err.Error()}
	}
	return nil
}
