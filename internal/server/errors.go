package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/roadmap-planner/internal/profile"
)

// ErrHistoryDisabled is returned by history endpoints when no store is configured
var ErrHistoryDisabled = errors.New("run history is not configured")

// ErrRunNotFound indicates no stored run has the id
type ErrRunNotFound struct {
	ID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("roadmap not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound *ErrRunNotFound
		invalid  *ErrValidation
		profErr  *profile.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &profErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrHistoryDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
