package estimation

import (
	"surveystat/domain/survey"
)

// DesignDiagnostics carries the method-specific detail a weighting design
// reports alongside the weight vector. Only the fields relevant to the design
// that actually ran are populated.
type DesignDiagnostics struct {
	// Stratified
	StrataCounts          map[string]int     `json:"strata_counts,omitempty"`
	PopulationProportions map[string]float64 `json:"population_proportions,omitempty"`

	// Cluster
	ClusterCounts map[string]int `json:"cluster_counts,omitempty"`
	ClusterSizes  map[string]int `json:"cluster_sizes,omitempty"`

	// Systematic
	SamplingInterval int     `json:"sampling_interval,omitempty"`
	PopulationSize   float64 `json:"population_size,omitempty"`

	Description string `json:"description,omitempty"`
}

// WeightReport is the full output of weight computation: the vector itself,
// index-aligned with the input responses, plus the diagnostics callers use to
// judge the weighting. The vector must be treated as read-only by every
// downstream consumer.
type WeightReport struct {
	Weights             []float64             `json:"weights"`
	Method              survey.SamplingMethod `json:"method"`
	WeightType          survey.WeightType     `json:"weight_type"`
	TotalResponses      int                   `json:"total_responses"`
	EffectiveSampleSize float64               `json:"effective_sample_size"`
	Statistics          WeightStatistics      `json:"weight_statistics"`

	DesignDiagnostics
}

// VarianceReport summarizes how the sampling design inflates variance. The
// design effect is a caller-supplied pass-through multiplier, not a value
// derived from the stratification or cluster structure; AdjustedStandardErrors
// signals that downstream standard errors should be scaled by √design_effect.
type VarianceReport struct {
	DesignEffect           float64 `json:"design_effect"`
	EffectiveSampleSize    float64 `json:"effective_sample_size"`
	NominalSampleSize      int     `json:"nominal_sample_size"`
	VarianceInflation      float64 `json:"variance_inflation"`
	AdjustedStandardErrors bool    `json:"adjusted_standard_errors"`
}
