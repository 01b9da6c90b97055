// Package testkit provides deterministic fixtures and database-free
// adapters for exercising the analysis pipeline.
package testkit

import (
	"context"
	"sync"

	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
	"surveystat/ports"
)

// TestKit bundles the fixtures most tests need
type TestKit struct {
	archive *InMemoryArchive
}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{archive: NewInMemoryArchive()}
}

// Archive returns the shared in-memory archive so tests can observe
// stored runs
func (t *TestKit) Archive() *InMemoryArchive {
	return t.archive
}

// Generator returns a response generator with the default configuration
func (t *TestKit) Generator() *SurveyGenerator {
	return NewSurveyGenerator(DefaultGeneratorConfig())
}

// GenerateResponses produces a deterministic fixture batch. A count of 0
// keeps the configured default.
func (t *TestKit) GenerateResponses(count int) []survey.ResponseRecord {
	config := DefaultGeneratorConfig()
	if count > 0 {
		config.ResponseCount = count
	}
	return NewSurveyGenerator(config).GenerateResponses()
}

// InMemoryArchive implements ports.ArchivePort with map storage. It backs
// tests and database-free CLI runs.
type InMemoryArchive struct {
	mu    sync.RWMutex
	runs  map[core.RunID]*estimation.AnalysisRun
	order []core.RunID
}

var _ ports.ArchivePort = (*InMemoryArchive)(nil)

// NewInMemoryArchive creates an empty in-memory run archive
func NewInMemoryArchive() *InMemoryArchive {
	return &InMemoryArchive{
		runs: make(map[core.RunID]*estimation.AnalysisRun),
	}
}

// StoreRun keeps the run in memory. Like the SQL archive, storing an
// existing run ID is a no-op.
func (a *InMemoryArchive) StoreRun(ctx context.Context, run *estimation.AnalysisRun) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.runs[run.ID]; exists {
		return nil
	}
	a.runs[run.ID] = run
	a.order = append(a.order, run.ID)
	return nil
}

// GetRun returns the stored run, or (nil, nil) when it does not exist
func (a *InMemoryArchive) GetRun(ctx context.Context, runID core.RunID) (*estimation.AnalysisRun, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	run, exists := a.runs[runID]
	if !exists {
		return nil, nil
	}
	return run, nil
}

// ListRuns returns stored run summaries, newest first
func (a *InMemoryArchive) ListRuns(ctx context.Context, filters ports.RunFilters) ([]ports.RunSummary, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var summaries []ports.RunSummary
	skipped := 0
	for i := len(a.order) - 1; i >= 0; i-- {
		run := a.runs[a.order[i]]
		if filters.SurveyID != nil && run.SurveyID != *filters.SurveyID {
			continue
		}
		if filters.Method != nil && run.Method != *filters.Method {
			continue
		}
		if skipped < filters.Offset {
			skipped++
			continue
		}

		summaries = append(summaries, ports.RunSummary{
			ID:              run.ID,
			SurveyID:        run.SurveyID,
			Method:          run.Method,
			ConfidenceLevel: run.ConfidenceLevel,
			TotalResponses:  run.TotalResponses,
			TestCount:       run.TestCount(),
			Duration:        run.DurationMs,
			CreatedAt:       run.CreatedAt,
		})
		if filters.Limit > 0 && len(summaries) >= filters.Limit {
			break
		}
	}

	return summaries, nil
}

// Count reports how many runs the archive holds
func (a *InMemoryArchive) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.runs)
}
