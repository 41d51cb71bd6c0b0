package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/roadmap-planner/internal/db"
	"github.com/jonathan/roadmap-planner/internal/profile"
	"github.com/jonathan/roadmap-planner/internal/roadmap"
	"github.com/jonathan/roadmap-planner/internal/types"
)

const maxProfileBytes = 64 << 10

// RoadmapResponse is the public shape of a generated roadmap. It never says
// whether the model or the fallback produced it.
type RoadmapResponse struct {
	ID        string     `json:"id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	types.GenerationResult
}

// RunSummary is one entry of GET /roadmaps
type RunSummary struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Phases    int       `json:"phases"`
	Tasks     int       `json:"tasks"`
	Resources int       `json:"resources"`
	Badges    int       `json:"badges"`
	CreatedAt time.Time `json:"created_at"`
}

// handleCreateRoadmap validates a profile, generates, and persists the run when
// a store is configured. Generation itself cannot fail.
func (s *Server) handleCreateRoadmap(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxProfileBytes)
	var p types.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := profile.Validate(p); err != nil {
		s.errorFromErr(w, err)
		return
	}

	outcome := s.generator.Generate(r.Context(), p)
	resp := RoadmapResponse{GenerationResult: outcome.Result}

	if s.store != nil {
		id, err := s.store.SaveRun(r.Context(), NewRunInput(p, outcome))
		if err != nil {
			// the roadmap is still returned, only without an id
			s.logger.Error("Failed to save run", "error", err, "role", p.Role())
		} else {
			resp.ID = id.String()
		}
	}

	s.jsonResponse(w, http.StatusCreated, resp)
}

// NewRunInput builds the history record for one generation.
func NewRunInput(p types.Profile, o roadmap.Outcome) db.RunInput {
	in := db.RunInput{
		Profile:      p,
		Result:       o.Result,
		Source:       string(o.Source),
		FailureStage: string(o.Stage),
		Duration:     o.Duration,
	}
	if o.Err != nil {
		in.FailureKind = roadmap.ErrorKind(o.Err)
		in.FailureError = o.Err.Error()
	}
	return in
}

// handleGetRoadmap returns a stored roadmap by id
func (s *Server) handleGetRoadmap(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFromErr(w, ErrHistoryDisabled)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.logger.Error("Failed to load run", "id", id.String(), "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to load roadmap")
		return
	}
	if run == nil {
		s.errorFromErr(w, &ErrRunNotFound{ID: id})
		return
	}

	created := run.CreatedAt
	s.jsonResponse(w, http.StatusOK, RoadmapResponse{
		ID:               run.ID.String(),
		CreatedAt:        &created,
		GenerationResult: run.Result,
	})
}

// handleListRoadmaps returns recent runs, newest first. ?limit= is clamped
// by the store.
func (s *Server) handleListRoadmaps(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFromErr(w, ErrHistoryDisabled)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.errorFromErr(w, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to list runs", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list roadmaps")
		return
	}

	out := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		phases, tasks, resources, badges := run.Result.Counts()
		out = append(out, RunSummary{
			ID:        run.ID.String(),
			Role:      run.Role,
			Phases:    phases,
			Tasks:     tasks,
			Resources: resources,
			Badges:    badges,
			CreatedAt: run.CreatedAt,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"roadmaps": out, "count": len(out)})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	history := "disabled"
	if s.store != nil {
		history = "enabled"
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "history": history})
}

// errorFromErr maps typed errors to a status and body
func (s *Server) errorFromErr(w http.ResponseWriter, err error) {
	var verr *profile.ValidationError
	if errors.As(err, &verr) {
		fields := make([]map[string]string, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields = append(fields, map[string]string{"field": fe.Field, "rule": fe.Rule})
		}
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{"error": err.Error(), "fields": fields})
		return
	}
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
