package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const runColumns = `id, role, profile, result, source, failure_stage, failure_kind, failure_error, duration_ms, created_at`

// SaveRun stores a generation record and returns its ID
func (db *DB) SaveRun(ctx context.Context, in RunInput) (uuid.UUID, error) {
	profileJSON, err := json.Marshal(in.Profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	resultJSON, err := json.Marshal(in.Result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO roadmap_runs (id, role, profile, result, source, failure_stage, failure_kind, failure_error, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, in.Profile.Role(), profileJSON, resultJSON, in.Source,
		in.FailureStage, in.FailureKind, in.FailureError, in.Duration.Milliseconds(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// GetRun retrieves a generation record by ID. It returns nil, nil when no
// such record exists.
func (db *DB) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+runColumns+` FROM roadmap_runs WHERE id = $1`,
		id,
	)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves the most recent generation records, newest first
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+runColumns+` FROM roadmap_runs ORDER BY created_at DESC LIMIT $1`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

func scanRun(row pgx.Row) (*Run, error) {
	var run Run
	var profileJSON, resultJSON []byte
	if err := row.Scan(
		&run.ID, &run.Role, &profileJSON, &resultJSON, &run.Source,
		&run.FailureStage, &run.FailureKind, &run.FailureError, &run.DurationMS, &run.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := decodeRun(&run, profileJSON, resultJSON); err != nil {
		return nil, err
	}
	return &run, nil
}

func decodeRun(run *Run, profileJSON, resultJSON []byte) error {
	if err := json.Unmarshal(profileJSON, &run.Profile); err != nil {
		return fmt.Errorf("failed to decode stored profile: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
		return fmt.Errorf("failed to decode stored result: %w", err)
	}
	return nil
}
