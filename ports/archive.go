package ports

import (
	"context"

	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// ArchiveWriterPort provides append-only write access to completed runs
// This is the ONLY way to persist a run - results are immutable once stored
type ArchiveWriterPort interface {
	StoreRun(ctx context.Context, run *estimation.AnalysisRun) error
}

// ArchiveReaderPort provides read-only access to stored analysis runs
// Use this for queries, replay, and CLI access
type ArchiveReaderPort interface {
	GetRun(ctx context.Context, runID core.RunID) (*estimation.AnalysisRun, error)
	ListRuns(ctx context.Context, filters RunFilters) ([]RunSummary, error)
}

// RunFilters for querying stored runs
type RunFilters struct {
	SurveyID *core.SurveyID
	Method   *survey.SamplingMethod
	Limit    int
	Offset   int
}

// RunSummary is the compact read model returned by run listings
type RunSummary struct {
	ID              core.RunID             `json:"id"`
	SurveyID        core.SurveyID          `json:"survey_id,omitempty"`
	Method          survey.SamplingMethod  `json:"method"`
	ConfidenceLevel survey.ConfidenceLevel `json:"confidence_level"`
	TotalResponses  int                    `json:"total_responses"`
	TestCount       int                    `json:"test_count"`
	Duration        int64                  `json:"duration_ms"`
	CreatedAt       core.Timestamp         `json:"created_at"`
}

// ArchivePort combines read and write access for adapters that serve both
type ArchivePort interface {
	ArchiveWriterPort
	ArchiveReaderPort
}
