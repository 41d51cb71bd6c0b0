package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestRoadmapSchema_Compiles(t *testing.T) {
	_, err := roadmap()
	require.NoError(t, err)
	assert.Contains(t, RoadmapSchema(), `"phases"`)
}

func TestValidateRoadmap(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantFields []string
	}{
		{
			name: "minimal valid",
			doc:  `{"phases": [], "resources": [], "badges": []}`,
		},
		{
			name: "full valid",
			doc: `{
				"phases": [{"id": "phase-1", "title": "Foundations", "period": "Summer", "color": "from-blue-500 to-cyan-500", "isExpanded": true,
					"tasks": [{"id": "task-1-1", "text": "Set up GitHub", "completed": true}]}],
				"resources": [{"id": "res-1", "title": "LeetCode", "url": "https://leetcode.com", "category": "Coding Practice", "isBookmarked": true}],
				"badges": [{"id": "badge-1", "title": "Starter", "points": 50, "earned": true}]
			}`,
		},
		{
			name: "null and numeric ids tolerated",
			doc:  `{"phases": [{"id": 3, "title": null, "tasks": [{"id": null, "text": "x"}]}], "resources": [], "badges": [{"points": null}]}`,
		},
		{
			name: "numeric string points tolerated",
			doc:  `{"phases": [], "resources": [], "badges": [{"points": "100"}]}`,
		},
		{
			name:       "badges missing",
			doc:        `{"phases": [], "resources": []}`,
			wantFields: []string{"(root)"},
		},
		{
			name:       "phases not an array",
			doc:        `{"phases": {}, "resources": [], "badges": []}`,
			wantFields: []string{"phases"},
		},
		{
			name:       "phase without tasks",
			doc:        `{"phases": [{"title": "Orphan"}], "resources": [], "badges": []}`,
			wantFields: []string{"phases.0"},
		},
		{
			name:       "task is a string",
			doc:        `{"phases": [{"tasks": ["do it"]}], "resources": [], "badges": []}`,
			wantFields: []string{"phases.0.tasks.0"},
		},
		{
			name:       "fractional points",
			doc:        `{"phases": [], "resources": [], "badges": [{"points": 12.5}]}`,
			wantFields: []string{"badges.0.points"},
		},
		{
			name:       "isExpanded as string",
			doc:        `{"phases": [{"isExpanded": "yes", "tasks": []}], "resources": [], "badges": []}`,
			wantFields: []string{"phases.0.isExpanded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoadmap(decode(t, tt.doc))
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantFields, vErr.Fields())
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateRoadmap_NonObject(t *testing.T) {
	var vErr *ValidationError
	assert.True(t, errors.As(ValidateRoadmap([]any{}), &vErr))
	assert.True(t, errors.As(ValidateRoadmap("roadmap"), &vErr))
	assert.True(t, errors.As(ValidateRoadmap(nil), &vErr))
}

func TestValidateRoadmapFile(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"phases": [], "resources": [], "badges": []}`), 0o644))
	assert.NoError(t, ValidateRoadmapFile(valid))

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"phases": []}`), 0o644))
	var vErr *ValidationError
	assert.True(t, errors.As(ValidateRoadmapFile(invalid), &vErr))

	err := ValidateRoadmapFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}
