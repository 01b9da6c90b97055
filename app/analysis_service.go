package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"surveystat/adapters/stats/designs"
	"surveystat/adapters/stats/estimate"
	"surveystat/adapters/stats/tests"
	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
	"surveystat/internal"
	"surveystat/internal/profiling"
	"surveystat/ports"
)

// AnalysisService runs the full estimation pipeline over one response batch:
// weighting, population estimates, the variance summary, significance tests,
// and an optional response profile. Finished runs can be archived.
type AnalysisService struct {
	calculator *designs.Calculator
	estimator  *estimate.Estimator
	tester     *tests.Runner
	archive    ports.ArchiveWriterPort
	logger     *internal.Logger
}

// AnalysisRequest defines one analysis over an in-memory response batch.
// Method and confidence level fall back to engine defaults when unset;
// Variables defaults to every field observed in the data.
type AnalysisRequest struct {
	SurveyID        core.SurveyID
	Responses       []survey.ResponseRecord
	Method          survey.SamplingMethod
	Frame           survey.PopulationFrame
	ConfidenceLevel survey.ConfidenceLevel
	Variables       []core.VariableKey
	Tests           []estimation.TestSpec
	DesignEffect    float64
	ProfileFields   []profiling.FieldSpec
	WithProfile     bool
	Store           bool
}

// AnalysisResult contains the complete output of one analysis run.
type AnalysisResult struct {
	RunID       core.RunID                        `json:"run_id"`
	Fingerprint core.RunFingerprint               `json:"fingerprint"`
	Weights     *estimation.WeightReport          `json:"weights"`
	Estimates   *estimation.EstimateReport        `json:"estimates"`
	Variance    *estimation.VarianceReport        `json:"variance"`
	Tests       map[string]estimation.TestOutcome `json:"tests,omitempty"`
	Profile     *profiling.ResponseProfile        `json:"profile,omitempty"`
	DurationMs  int64                             `json:"duration_ms"`
	Archived    bool                              `json:"archived"`
}

// NewAnalysisService creates an analysis service. The archive may be nil when
// runs are not persisted; a nil logger falls back to the default.
func NewAnalysisService(archive ports.ArchiveWriterPort, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		calculator: designs.NewCalculator(),
		estimator:  estimate.NewEstimator(),
		tester:     tests.NewRunner(),
		archive:    archive,
		logger:     logger,
	}
}

// Run executes the pipeline. A weighting failure aborts the run; estimates
// and the variance summary then proceed concurrently since both read only the
// responses and the weight vector. The context is checked between stages so a
// cancelled caller never pays for the remaining work.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	startTime := time.Now()

	method := survey.ParseSamplingMethod(string(req.Method))
	level := survey.ParseConfidenceLevel(string(req.ConfidenceLevel))

	// Engine errors surface verbatim; callers rely on the exact message.
	weights, err := s.calculator.ComputeWeights(req.Responses, req.Frame, method)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Computed %s weights for %d responses (effective n=%.1f)",
		weights.Method, weights.TotalResponses, weights.EffectiveSampleSize)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	targets := req.Variables
	if len(targets) == 0 {
		targets = observedVariables(req.Responses)
	}

	var (
		estimates *estimation.EstimateReport
		variance  *estimation.VarianceReport
	)
	var g errgroup.Group
	g.Go(func() error {
		report, err := s.estimator.Estimate(req.Responses, weights.Weights, targets, level)
		if err != nil {
			return fmt.Errorf("estimation failed: %w", err)
		}
		estimates = report
		return nil
	})
	g.Go(func() error {
		report, err := estimate.EstimateVariance(req.Responses, weights.Weights, req.DesignEffect)
		if err != nil {
			return fmt.Errorf("variance estimation failed: %w", err)
		}
		variance = report
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var outcomes map[string]estimation.TestOutcome
	if len(req.Tests) > 0 {
		outcomes = s.tester.RunAll(req.Responses, weights.Weights, req.Tests)
		s.logger.Debug("Ran %d significance tests", len(outcomes))
	}

	var profile *profiling.ResponseProfile
	if req.WithProfile {
		profile = profiling.Profile(req.Responses, req.ProfileFields)
		quality := profiling.ScoreQuality(req.Responses, fieldNames(req.ProfileFields))
		profile.Quality = &quality
	}

	fingerprint := core.ComputeRunFingerprint(
		string(weights.Method),
		string(level),
		variableNames(targets),
		responseIDs(req.Responses),
	)

	run := &estimation.AnalysisRun{
		ID:              core.NewRunID(),
		SurveyID:        req.SurveyID,
		Method:          weights.Method,
		ConfidenceLevel: level,
		Fingerprint:     fingerprint,
		TotalResponses:  len(req.Responses),
		Weights:         weights,
		Estimates:       estimates,
		Variance:        variance,
		Tests:           outcomes,
		DurationMs:      time.Since(startTime).Milliseconds(),
		CreatedAt:       core.Now(),
	}

	archived := false
	if req.Store && s.archive != nil {
		if err := s.archive.StoreRun(ctx, run); err != nil {
			// Archiving is best-effort; the caller still gets the result.
			s.logger.Warn("Failed to archive run %s: %v", run.ID, err)
		} else {
			archived = true
		}
	}

	return &AnalysisResult{
		RunID:       run.ID,
		Fingerprint: fingerprint,
		Weights:     weights,
		Estimates:   estimates,
		Variance:    variance,
		Tests:       outcomes,
		Profile:     profile,
		DurationMs:  run.DurationMs,
		Archived:    archived,
	}, nil
}

// observedVariables derives the default estimation targets: every field that
// appears in any response, in sorted order.
func observedVariables(responses []survey.ResponseRecord) []core.VariableKey {
	seen := make(map[string]bool)
	for _, r := range responses {
		for field := range r.Data {
			seen[field] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return core.VariableKeys(names)
}

func variableNames(targets []core.VariableKey) []string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.String()
	}
	return names
}

func responseIDs(responses []survey.ResponseRecord) []string {
	ids := make([]string, len(responses))
	for i, r := range responses {
		ids[i] = r.ID.String()
	}
	return ids
}

func fieldNames(fields []profiling.FieldSpec) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
