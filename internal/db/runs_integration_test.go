//go:build integration
// +build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/roadmap-planner/internal/types"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestSaveAndGetRun_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	in := RunInput{
		Profile: types.Profile{Name: "Integration", TargetRole: "Mobile Developer Intern"},
		Result: types.GenerationResult{
			Phases:    []types.Phase{{ID: "phase-1", Title: "A", Tasks: []types.Task{{ID: "task-1-1", Text: "x"}}}},
			Resources: []types.Resource{},
			Badges:    []types.Badge{},
		},
		Source:       "fallback",
		FailureStage: "request",
		FailureKind:  "transport",
		FailureError: "transport error: dial tcp",
		Duration:     1500 * time.Millisecond,
	}

	id, err := db.SaveRun(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	run, err := db.GetRun(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "Mobile Developer Intern", run.Role)
	assert.Equal(t, "fallback", run.Source)
	assert.Equal(t, "transport", run.FailureKind)
	assert.Equal(t, int64(1500), run.DurationMS)
	assert.Equal(t, in.Result, run.Result)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestGetRun_NotFound_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	run, err := db.GetRun(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestListRuns_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		id, err := db.SaveRun(ctx, RunInput{
			Profile: types.Profile{TargetRole: "Backend Developer Intern"},
			Result:  types.GenerationResult{Phases: []types.Phase{}, Resources: []types.Resource{}, Badges: []types.Badge{}},
			Source:  "ai",
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := db.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.False(t, runs[0].CreatedAt.Before(runs[1].CreatedAt))
}
