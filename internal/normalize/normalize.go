// Package normalize turns a parsed generative reply into a trusted GenerationResult.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/roadmap-planner/internal/fallback"
	"github.com/jonathan/roadmap-planner/internal/schemas"
	"github.com/jonathan/roadmap-planner/internal/types"
)

// The wire structs mirror the reply shape but omit completed, isBookmarked,
// earned and earnedDate so that model-supplied progress never survives decoding.
type wireTask struct {
	ID    any    `json:"id"`
	Text  string `json:"text"`
	Notes string `json:"notes"`
	Link  string `json:"link"`
}

type wirePhase struct {
	ID         any        `json:"id"`
	Title      string     `json:"title"`
	Period     string     `json:"period"`
	Color      string     `json:"color"`
	IsExpanded *bool      `json:"isExpanded"`
	Tasks      []wireTask `json:"tasks"`
}

type wireResource struct {
	ID          any    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Description string `json:"description"`
	IsCustom    bool   `json:"isCustom"`
	IsFeatured  bool   `json:"isFeatured"`
}

type wireBadge struct {
	ID          any    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      any    `json:"points"`
}

type wireResult struct {
	Phases    []wirePhase    `json:"phases"`
	Resources []wireResource `json:"resources"`
	Badges    []wireBadge    `json:"badges"`
}

// Normalize validates parsed against the roadmap schema and converts it into a
// GenerationResult with unique ids, a colour on every phase and all progress
// flags cleared.
func Normalize(parsed any) (types.GenerationResult, error) {
	if err := schemas.ValidateRoadmap(parsed); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			return types.GenerationResult{}, &ValidationError{
				Message: "reply does not match the roadmap schema",
				Fields:  schemaErr.Errors,
				Cause:   err,
			}
		}
		return types.GenerationResult{}, &ValidationError{Message: "roadmap schema unavailable", Cause: err}
	}

	raw, err := json.Marshal(parsed)
	if err != nil {
		return types.GenerationResult{}, &ValidationError{Message: "failed to re-encode reply", Cause: err}
	}
	var wire wireResult
	if err := json.Unmarshal(raw, &wire); err != nil {
		return types.GenerationResult{}, &ValidationError{Message: "failed to decode roadmap", Cause: err}
	}

	return build(wire), nil
}

func build(w wireResult) types.GenerationResult {
	phaseIDs := idSet{}
	taskIDs := idSet{}
	resourceIDs := idSet{}
	badgeIDs := idSet{}

	result := types.GenerationResult{
		Phases:    make([]types.Phase, 0, len(w.Phases)),
		Resources: make([]types.Resource, 0, len(w.Resources)),
		Badges:    make([]types.Badge, 0, len(w.Badges)),
	}

	for i, wp := range w.Phases {
		n := i + 1
		phase := types.Phase{
			ID:         phaseIDs.claim(idString(wp.ID), fmt.Sprintf("phase-%d", n)),
			Title:      wp.Title,
			Period:     wp.Period,
			Color:      strings.TrimSpace(wp.Color),
			IsExpanded: i == 0,
			Tasks:      make([]types.Task, 0, len(wp.Tasks)),
		}
		if wp.IsExpanded != nil {
			phase.IsExpanded = *wp.IsExpanded
		}
		if phase.Color == "" {
			phase.Color = fallback.PhaseColor(i)
		}
		for j, wt := range wp.Tasks {
			phase.Tasks = append(phase.Tasks, types.Task{
				ID:    taskIDs.claim(idString(wt.ID), fmt.Sprintf("task-%d-%d", n, j+1)),
				Text:  wt.Text,
				Notes: wt.Notes,
				Link:  wt.Link,
			})
		}
		result.Phases = append(result.Phases, phase)
	}

	for i, wr := range w.Resources {
		result.Resources = append(result.Resources, types.Resource{
			ID:          resourceIDs.claim(idString(wr.ID), fmt.Sprintf("res-%d", i+1)),
			Title:       wr.Title,
			URL:         wr.URL,
			Category:    wr.Category,
			Description: wr.Description,
			IsCustom:    wr.IsCustom,
			IsFeatured:  wr.IsFeatured,
		})
	}

	for i, wb := range w.Badges {
		result.Badges = append(result.Badges, types.Badge{
			ID:          badgeIDs.claim(idString(wb.ID), fmt.Sprintf("badge-%d", i+1)),
			Title:       wb.Title,
			Description: wb.Description,
			Icon:        wb.Icon,
			Points:      points(wb.Points),
		})
	}

	return result
}

// idSet hands out ids unique within one collection.
type idSet map[string]struct{}

// claim returns want if it is non-empty and unused, otherwise fallbackID,
// suffixed with -2, -3, ... until it is unused.
func (s idSet) claim(want, fallbackID string) string {
	if want != "" {
		if _, taken := s[want]; !taken {
			s[want] = struct{}{}
			return want
		}
	}

	id := fallbackID
	for n := 2; ; n++ {
		if _, taken := s[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s-%d", fallbackID, n)
	}
	s[id] = struct{}{}
	return id
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

// points accepts integers and numeric strings such as "100"; anything else
// scores zero.
func points(v any) int {
	switch p := v.(type) {
	case float64:
		return int(p)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
