package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/roadmap-planner/internal/types"
)

// Default and maximum page sizes for ListRuns
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// RunInput is everything recorded about one generation
type RunInput struct {
	Profile      types.Profile
	Result       types.GenerationResult
	Source       string
	FailureStage string
	FailureKind  string
	FailureError string
	Duration     time.Duration
}

// Run is a stored generation record
type Run struct {
	ID           uuid.UUID              `json:"id"`
	Role         string                 `json:"role"`
	Profile      types.Profile          `json:"profile"`
	Result       types.GenerationResult `json:"result"`
	Source       string                 `json:"source"`
	FailureStage string                 `json:"failure_stage,omitempty"`
	FailureKind  string                 `json:"failure_kind,omitempty"`
	FailureError string                 `json:"failure_error,omitempty"`
	DurationMS   int64                  `json:"duration_ms"`
	CreatedAt    time.Time              `json:"created_at"`
}

// clampLimit maps a requested page size into [1, MaxListLimit]; zero or
// negative selects DefaultListLimit.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
