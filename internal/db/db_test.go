package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: 0, want: DefaultListLimit},
		{in: -3, want: DefaultListLimit},
		{in: 1, want: 1},
		{in: 50, want: 50},
		{in: MaxListLimit + 1, want: MaxListLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampLimit(tt.in), "clampLimit(%d)", tt.in)
	}
}

func TestDecodeRun(t *testing.T) {
	var run Run
	err := decodeRun(&run,
		[]byte(`{"name": "Ana", "targetRole": "Backend Developer Intern", "goals": ["Get mentorship"]}`),
		[]byte(`{"phases": [{"id": "phase-1", "title": "A", "tasks": [{"id": "task-1-1", "text": "x", "completed": false}]}], "resources": [], "badges": []}`),
	)
	require.NoError(t, err)

	assert.Equal(t, "Backend Developer Intern", run.Profile.Role())
	require.Len(t, run.Result.Phases, 1)
	assert.Equal(t, "task-1-1", run.Result.Phases[0].Tasks[0].ID)
}

func TestDecodeRun_Corrupt(t *testing.T) {
	var run Run
	err := decodeRun(&run, []byte(`{`), []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stored profile")

	err = decodeRun(&run, []byte(`{}`), []byte(`[`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stored result")
}
