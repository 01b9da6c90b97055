package estimation

import (
	"surveystat/domain/core"
	"surveystat/domain/survey"
)

// VariableKind tells how a target variable was estimated.
type VariableKind string

const (
	KindNumeric     VariableKind = "numeric"
	KindCategorical VariableKind = "categorical"
)

// ConfidenceInterval is a two-sided interval at the named level. Bounds
// always satisfy Lower ≤ estimate ≤ Upper; both collapse onto the estimate
// when the standard error is 0.
type ConfidenceInterval struct {
	Lower float64                `json:"lower"`
	Upper float64                `json:"upper"`
	Level survey.ConfidenceLevel `json:"level"`
}

// NumericEstimate is the weighted point and interval estimate of a numeric
// variable. Variance is population-style and weight-normalized, not
// Bessel-corrected.
type NumericEstimate struct {
	Estimate            float64            `json:"estimate"`
	StandardError       float64            `json:"standard_error"`
	ConfidenceInterval  ConfidenceInterval `json:"confidence_interval"`
	Variance            float64            `json:"variance"`
	StandardDeviation   float64            `json:"standard_deviation"`
	SampleSize          int                `json:"sample_size"`
	EffectiveSampleSize float64            `json:"effective_sample_size"`
}

// CategoryEstimate is the weighted share of one category. Count is the sum of
// weights over responses in the category, so it is population-scaled rather
// than a raw tally.
type CategoryEstimate struct {
	Proportion         float64            `json:"proportion"`
	Count              float64            `json:"count"`
	StandardError      float64            `json:"standard_error"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
}

// CategoricalEstimate reports proportions for every observed category of a
// variable. Proportions sum to 1 across categories.
type CategoricalEstimate struct {
	Categories          map[string]CategoryEstimate `json:"categories"`
	TotalResponses      int                         `json:"total_responses"`
	EffectiveSampleSize float64                     `json:"effective_sample_size"`
}

// VariableEstimate is the per-variable slot of an estimate report. Exactly
// one of Numeric, Categorical, or Error is set; a failed variable never
// disturbs its siblings.
type VariableEstimate struct {
	Variable    core.VariableKey     `json:"variable"`
	Kind        VariableKind         `json:"variable_type,omitempty"`
	Numeric     *NumericEstimate     `json:"numeric,omitempty"`
	Categorical *CategoricalEstimate `json:"categorical,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// Failed reports whether this variable produced an error instead of an
// estimate.
func (v VariableEstimate) Failed() bool { return v.Error != "" }

// EstimateReport is the output of population estimation across all requested
// variables.
type EstimateReport struct {
	Estimates           map[string]VariableEstimate `json:"estimates"`
	ConfidenceLevel     survey.ConfidenceLevel      `json:"confidence_level"`
	TotalResponses      int                         `json:"total_responses"`
	EffectiveSampleSize float64                     `json:"effective_sample_size"`
}
