package normalize

import (
	"fmt"
	"strings"

	"github.com/jonathan/roadmap-planner/internal/schemas"
)

// ValidationError reports a parsed reply that does not have the roadmap shape
type ValidationError struct {
	Message string
	Fields  []schemas.FieldError
	Cause   error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
		}
		return fmt.Sprintf("validation error: %s", e.Message)
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("validation error: %s (%s)", e.Message, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
