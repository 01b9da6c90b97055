package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
	"surveystat/ports"
)

// ArchiveRepository persists completed analysis runs in PostgreSQL
type ArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository creates a new PostgreSQL run archive
func NewArchiveRepository(db *sqlx.DB) ports.ArchivePort {
	return &ArchiveRepository{db: db}
}

// StoreRun persists a completed run. The archive is append-only: storing
// a run ID that already exists is a silent no-op, never an update.
func (r *ArchiveRepository) StoreRun(ctx context.Context, run *estimation.AnalysisRun) error {
	weightsJSON, err := json.Marshal(run.Weights)
	if err != nil {
		return fmt.Errorf("failed to marshal weight report: %w", err)
	}
	estimatesJSON, err := json.Marshal(run.Estimates)
	if err != nil {
		return fmt.Errorf("failed to marshal estimate report: %w", err)
	}
	varianceJSON, err := json.Marshal(run.Variance)
	if err != nil {
		return fmt.Errorf("failed to marshal variance report: %w", err)
	}
	testsJSON, err := json.Marshal(run.Tests)
	if err != nil {
		return fmt.Errorf("failed to marshal test outcomes: %w", err)
	}

	query := `
		INSERT INTO analysis_runs (
			id, survey_id, method, confidence_level, fingerprint,
			total_responses, test_count, weights, estimates, variance,
			tests, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING`

	_, err = r.db.ExecContext(ctx, query,
		run.ID.String(),
		run.SurveyID.String(),
		string(run.Method),
		string(run.ConfidenceLevel),
		run.Fingerprint.String(),
		run.TotalResponses,
		run.TestCount(),
		weightsJSON,
		estimatesJSON,
		varianceJSON,
		testsJSON,
		run.DurationMs,
		run.CreatedAt.Time(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return nil
}

// GetRun retrieves a stored run by ID, or (nil, nil) when it does not exist
func (r *ArchiveRepository) GetRun(ctx context.Context, runID core.RunID) (*estimation.AnalysisRun, error) {
	query := `
		SELECT id, survey_id, method, confidence_level, fingerprint,
			   total_responses, weights, estimates, variance, tests,
			   duration_ms, created_at
		FROM analysis_runs
		WHERE id = $1`

	var (
		id, surveyID, method, level, fingerprint string
		totalResponses                           int
		weightsJSON, estimatesJSON, varianceJSON []byte
		testsJSON                                []byte
		durationMs                               int64
		createdAt                                time.Time
	)

	err := r.db.QueryRowContext(ctx, query, runID.String()).Scan(
		&id,
		&surveyID,
		&method,
		&level,
		&fingerprint,
		&totalResponses,
		&weightsJSON,
		&estimatesJSON,
		&varianceJSON,
		&testsJSON,
		&durationMs,
		&createdAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Run not archived
		}
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	run := &estimation.AnalysisRun{
		ID:              core.RunID(id),
		SurveyID:        core.SurveyID(surveyID),
		Method:          survey.SamplingMethod(method),
		ConfidenceLevel: survey.ConfidenceLevel(level),
		Fingerprint:     core.RunFingerprint(fingerprint),
		TotalResponses:  totalResponses,
		DurationMs:      durationMs,
		CreatedAt:       core.NewTimestamp(createdAt),
	}

	if len(weightsJSON) > 0 {
		if err := json.Unmarshal(weightsJSON, &run.Weights); err != nil {
			return nil, fmt.Errorf("failed to unmarshal weight report: %w", err)
		}
	}
	if len(estimatesJSON) > 0 {
		if err := json.Unmarshal(estimatesJSON, &run.Estimates); err != nil {
			return nil, fmt.Errorf("failed to unmarshal estimate report: %w", err)
		}
	}
	if len(varianceJSON) > 0 {
		if err := json.Unmarshal(varianceJSON, &run.Variance); err != nil {
			return nil, fmt.Errorf("failed to unmarshal variance report: %w", err)
		}
	}
	if len(testsJSON) > 0 {
		if err := json.Unmarshal(testsJSON, &run.Tests); err != nil {
			return nil, fmt.Errorf("failed to unmarshal test outcomes: %w", err)
		}
	}

	return run, nil
}

// ListRuns returns stored run summaries, newest first
func (r *ArchiveRepository) ListRuns(ctx context.Context, filters ports.RunFilters) ([]ports.RunSummary, error) {
	query := `
		SELECT id, survey_id, method, confidence_level, total_responses,
			   test_count, duration_ms, created_at
		FROM analysis_runs`

	var conditions []string
	var args []interface{}

	if filters.SurveyID != nil {
		args = append(args, filters.SurveyID.String())
		conditions = append(conditions, fmt.Sprintf("survey_id = $%d", len(args)))
	}
	if filters.Method != nil {
		args = append(args, string(*filters.Method))
		conditions = append(conditions, fmt.Sprintf("method = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var summaries []ports.RunSummary
	for rows.Next() {
		var (
			id, surveyID, method, level string
			totalResponses, testCount   int
			durationMs                  int64
			createdAt                   time.Time
		)

		err := rows.Scan(
			&id,
			&surveyID,
			&method,
			&level,
			&totalResponses,
			&testCount,
			&durationMs,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}

		summaries = append(summaries, ports.RunSummary{
			ID:              core.RunID(id),
			SurveyID:        core.SurveyID(surveyID),
			Method:          survey.SamplingMethod(method),
			ConfidenceLevel: survey.ConfidenceLevel(level),
			TotalResponses:  totalResponses,
			TestCount:       testCount,
			Duration:        durationMs,
			CreatedAt:       core.NewTimestamp(createdAt),
		})
	}

	return summaries, rows.Err()
}
