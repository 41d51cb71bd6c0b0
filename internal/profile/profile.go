// Package profile loads and validates user Profiles supplied as YAML or JSON.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/roadmap-planner/internal/types"
)

// Format selects the decoder used for a profile document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so errors match the wire format.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError is one failed validation rule
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError lists every rule the profile failed
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.message())
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

func (fe FieldError) message() string {
	switch fe.Rule {
	case "required_without":
		return fmt.Sprintf("%s is required when specificRole is empty", fe.Field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field)
	case "required":
		return fmt.Sprintf("%s must not contain empty entries", fe.Field)
	default:
		return fmt.Sprintf("%s failed %s", fe.Field, fe.Rule)
	}
}

// Validate checks p against its struct rules. The resolved target role must
// be present; list entries must be non-empty; email, if given, must be valid.
func Validate(p types.Profile) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate profile: %w", err)
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		// dive failures name the element, e.g. goals[1]
		out.Errors = append(out.Errors, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a profile document.
func Decode(data []byte, format Format) (types.Profile, error) {
	var p types.Profile
	if len(bytes.TrimSpace(data)) == 0 {
		return p, fmt.Errorf("profile document is empty")
	}

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &p); err != nil {
			return types.Profile{}, fmt.Errorf("failed to parse profile JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return types.Profile{}, fmt.Errorf("failed to parse profile YAML: %w", err)
		}
	}
	return p, nil
}

// Load reads, decodes and validates the profile at path.
func Load(path string) (types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Profile{}, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	p, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return types.Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := Validate(p); err != nil {
		return types.Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
