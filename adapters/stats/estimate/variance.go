package estimate

import (
	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// EstimateVariance reports how the sampling design inflates variance relative
// to simple random sampling. The design effect passes through as supplied and
// is not derived from the weighting structure; the report only pairs it with
// the effective and nominal sample sizes so callers can scale standard errors
// by √design_effect. Non-positive design effects normalize to 1.0.
func EstimateVariance(responses []survey.ResponseRecord, weights []float64, designEffect float64) (*estimation.VarianceReport, error) {
	if len(responses) == 0 || len(weights) == 0 {
		return nil, core.ErrNoWeights
	}

	if designEffect <= 0 {
		designEffect = 1.0
	}

	return &estimation.VarianceReport{
		DesignEffect:           designEffect,
		EffectiveSampleSize:    estimation.EffectiveSampleSize(weights),
		NominalSampleSize:      len(responses),
		VarianceInflation:      designEffect,
		AdjustedStandardErrors: true,
	}, nil
}
