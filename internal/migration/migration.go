package migration

import (
	"context"
	"fmt"

	"surveystat/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createAnalysisRunsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create analysis_runs table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createAnalysisRunsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_runs (
			id UUID PRIMARY KEY,
			survey_id TEXT NOT NULL DEFAULT '',
			method VARCHAR(50) NOT NULL,
			confidence_level VARCHAR(10) NOT NULL,
			fingerprint VARCHAR(64) NOT NULL,
			total_responses INTEGER NOT NULL,
			test_count INTEGER NOT NULL DEFAULT 0,
			weights JSONB,
			estimates JSONB,
			variance JSONB,
			tests JSONB,
			duration_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_runs_survey_id ON analysis_runs(survey_id)",
		"CREATE INDEX IF NOT EXISTS idx_runs_method ON analysis_runs(method)",
		"CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON analysis_runs(fingerprint)",
		"CREATE INDEX IF NOT EXISTS idx_runs_created_at ON analysis_runs(created_at DESC)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Log but don't fail on index creation errors
			fmt.Printf("Warning: failed to create index: %v\n", err)
		}
	}

	return nil
}
