// Package survey holds the input-side domain types of the estimation engine:
// response records as collected, the population frame used for weighting, and
// the enumerated sampling methods and confidence levels.
package survey

import (
	"surveystat/domain/core"
)

// ResponseRecord is one collected survey response. The engine treats records
// as immutable and only ever reads them; all transformations allocate new
// values.
type ResponseRecord struct {
	ID             core.ResponseID        `json:"id"`
	SurveyID       core.SurveyID          `json:"survey_id,omitempty"`
	Data           map[string]interface{} `json:"data"`
	IsComplete     bool                   `json:"is_complete"`
	CompletionTime float64                `json:"completion_time,omitempty"`
	CreatedAt      core.Timestamp         `json:"created_at,omitempty"`
}

// Value looks up a field answer. The second return is false when the field
// was never answered; a present-but-nil answer returns (nil, true).
func (r ResponseRecord) Value(field string) (interface{}, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[field]
	return v, ok
}

// Has reports whether the field appears in the response data at all.
func (r ResponseRecord) Has(field string) bool {
	_, ok := r.Value(field)
	return ok
}
