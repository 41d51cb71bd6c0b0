// Package extract coerces free-form generative replies into parsed JSON values.
//
// Replies are treated as hostile input. Extraction walks an ordered list of
// strategies (whole text, fenced ```json block, outermost braces) and stops at
// the first candidate that parses.
package extract

import (
	"encoding/json"
	"errors"
)

// Extract parses text with DefaultStrategies.
func Extract(text string) (any, error) {
	return ExtractWith(text, DefaultStrategies)
}

// ExtractWith parses text using strategies in order. Sanitizing strategies
// try the raw candidate first and the sanitized candidate second.
func ExtractWith(text string, strategies []Strategy) (any, error) {
	var firstErr error
	var attempts []Attempt

	for _, s := range strategies {
		candidate, ok := s.Find(text)
		if !ok {
			continue
		}

		v, err := parseStrict(candidate)
		if err == nil {
			return v, nil
		}
		if s.Sanitize {
			if sanitized := Sanitize(candidate); sanitized != candidate {
				v, serr := parseStrict(sanitized)
				if serr == nil {
					return v, nil
				}
				err = serr
			}
		}

		if firstErr == nil {
			firstErr = err
		}
		attempts = append(attempts, Attempt{Strategy: s.Name, Err: err})
	}

	if firstErr == nil {
		firstErr = errors.New("no JSON candidate found")
	}
	return nil, &ParseError{Cause: firstErr, Attempts: attempts}
}

// parseStrict decodes exactly one JSON value; trailing content is an error.
func parseStrict(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}
