package extract

import (
	"fmt"
	"strings"
)

// Attempt records one strategy that found a candidate but failed to parse it
type Attempt struct {
	Strategy string
	Err      error
}

// ParseError is returned when no strategy produced valid JSON.
// Cause is the error from the direct parse of the whole text.
type ParseError struct {
	Cause    error
	Attempts []Attempt
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("parse error: failed to parse JSON response")
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	if len(e.Attempts) > 1 {
		names := make([]string, 0, len(e.Attempts))
		for _, a := range e.Attempts {
			names = append(names, a.Strategy)
		}
		sb.WriteString(fmt.Sprintf(" (tried %s)", strings.Join(names, ", ")))
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
