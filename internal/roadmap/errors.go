package roadmap

import (
	"errors"
	"fmt"

	"github.com/jonathan/roadmap-planner/internal/extract"
	"github.com/jonathan/roadmap-planner/internal/llm"
	"github.com/jonathan/roadmap-planner/internal/normalize"
)

// Error kinds reported by ErrorKind
const (
	KindConfiguration = "configuration"
	KindTransport     = "transport"
	KindAPI           = "api"
	KindParse         = "parse"
	KindValidation    = "validation"
	KindPanic         = "panic"
	KindUnknown       = "unknown"
)

// PanicError carries a panic recovered from the generative path
type PanicError struct {
	Stage Stage
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic during %s: %v", e.Stage, e.Value)
}

// ErrorKind classifies err for logs and run history. It returns "" for nil.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var (
		cfgErr       *llm.ConfigurationError
		transportErr *llm.TransportError
		apiErr       *llm.APIError
		parseErr     *extract.ParseError
		validErr     *normalize.ValidationError
		panicErr     *PanicError
	)
	switch {
	case errors.As(err, &panicErr):
		return KindPanic
	case errors.As(err, &cfgErr):
		return KindConfiguration
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &validErr):
		return KindValidation
	default:
		return KindUnknown
	}
}
