package ports

import (
	"surveystat/domain/survey"
)

// ResponseSourcePort loads survey responses from an external source.
// Implementations decide the format; the engine only sees records.
type ResponseSourcePort interface {
	LoadResponses(path string) ([]survey.ResponseRecord, error)
}
