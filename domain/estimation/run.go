package estimation

import (
	"surveystat/domain/core"
	"surveystat/domain/survey"
)

// AnalysisRun is the archived record of one full analysis: the request shape
// plus every report the engine produced. Runs are immutable once stored.
type AnalysisRun struct {
	ID              core.RunID             `json:"id"`
	SurveyID        core.SurveyID          `json:"survey_id,omitempty"`
	Method          survey.SamplingMethod  `json:"method"`
	ConfidenceLevel survey.ConfidenceLevel `json:"confidence_level"`
	Fingerprint     core.RunFingerprint    `json:"fingerprint"`
	TotalResponses  int                    `json:"total_responses"`
	Weights         *WeightReport          `json:"weights,omitempty"`
	Estimates       *EstimateReport        `json:"estimates,omitempty"`
	Variance        *VarianceReport        `json:"variance,omitempty"`
	Tests           map[string]TestOutcome `json:"tests,omitempty"`
	DurationMs      int64                  `json:"duration_ms"`
	CreatedAt       core.Timestamp         `json:"created_at"`
}

// TestCount returns how many test outcomes the run holds.
func (r *AnalysisRun) TestCount() int {
	return len(r.Tests)
}
