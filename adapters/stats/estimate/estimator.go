// Package estimate implements weighted population estimation and the
// design-effect variance summary. Estimation is pure: it reads responses and
// a weight vector and returns freshly allocated reports, so one Estimator can
// serve any number of concurrent callers.
package estimate

import (
	"math"

	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// Estimator produces weighted point and interval estimates. The critical
// value table is fixed at construction; unrecognized confidence levels use
// the 95% value.
type Estimator struct {
	zscores map[survey.ConfidenceLevel]float64
}

// NewEstimator creates an estimator with the standard two-sided normal
// critical values.
func NewEstimator() *Estimator {
	return &Estimator{
		zscores: map[survey.ConfidenceLevel]float64{
			survey.Confidence90: 1.645,
			survey.Confidence95: 1.96,
			survey.Confidence99: 2.576,
		},
	}
}

func (e *Estimator) zFor(level survey.ConfidenceLevel) float64 {
	if z, ok := e.zscores[level]; ok {
		return z
	}
	return e.zscores[survey.Confidence95]
}

// Estimate computes one estimate per target variable. Weights pair with
// responses by index; responses beyond the vector's length count with weight
// 1.0. A variable that cannot be estimated occupies its slot with an error
// and never disturbs the other variables.
func (e *Estimator) Estimate(responses []survey.ResponseRecord, weights []float64, targets []core.VariableKey, level survey.ConfidenceLevel) (*estimation.EstimateReport, error) {
	if len(responses) == 0 {
		return nil, core.ErrNoResponses
	}

	z := e.zFor(level)
	report := &estimation.EstimateReport{
		Estimates:           make(map[string]estimation.VariableEstimate, len(targets)),
		ConfidenceLevel:     level,
		TotalResponses:      len(responses),
		EffectiveSampleSize: estimation.EffectiveSampleSize(weights),
	}

	for _, key := range targets {
		report.Estimates[key.String()] = e.estimateVariable(responses, weights, key, z, level)
	}

	return report, nil
}

func (e *Estimator) estimateVariable(responses []survey.ResponseRecord, weights []float64, key core.VariableKey, z float64, level survey.ConfidenceLevel) estimation.VariableEstimate {
	field := key.String()
	values := make([]interface{}, 0, len(responses))
	subset := make([]float64, 0, len(responses))

	for i, r := range responses {
		v, ok := r.Value(field)
		if !ok || survey.IsMissing(v) {
			continue
		}
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		values = append(values, v)
		subset = append(subset, w)
	}

	if len(values) == 0 {
		return estimation.VariableEstimate{
			Variable: key,
			Error:    "No valid values found for variable " + field,
		}
	}

	if nums, ok := survey.NumericValues(values); ok {
		return e.estimateNumeric(key, nums, subset, z, level)
	}
	return e.estimateCategorical(key, values, subset, z, level)
}

func (e *Estimator) estimateNumeric(key core.VariableKey, values, weights []float64, z float64, level survey.ConfidenceLevel) estimation.VariableEstimate {
	var sumW, sumWV float64
	for i, v := range values {
		sumW += weights[i]
		sumWV += weights[i] * v
	}
	if sumW == 0 {
		return estimation.VariableEstimate{
			Variable: key,
			Error:    "Estimation failed: zero total weight for variable " + key.String(),
		}
	}

	mean := sumWV / sumW

	var sumWDev float64
	for i, v := range values {
		d := v - mean
		sumWDev += weights[i] * d * d
	}
	variance := sumWDev / sumW
	std := math.Sqrt(variance)

	neff := estimation.EffectiveSampleSize(weights)
	se := 0.0
	if neff > 0 {
		se = std / math.Sqrt(neff)
	}

	return estimation.VariableEstimate{
		Variable: key,
		Kind:     estimation.KindNumeric,
		Numeric: &estimation.NumericEstimate{
			Estimate:      mean,
			StandardError: se,
			ConfidenceInterval: estimation.ConfidenceInterval{
				Lower: mean - z*se,
				Upper: mean + z*se,
				Level: level,
			},
			Variance:            variance,
			StandardDeviation:   std,
			SampleSize:          len(values),
			EffectiveSampleSize: neff,
		},
	}
}

func (e *Estimator) estimateCategorical(key core.VariableKey, values []interface{}, weights []float64, z float64, level survey.ConfidenceLevel) estimation.VariableEstimate {
	var totalW float64
	catWeights := make(map[string]float64)
	for i, v := range values {
		label := survey.CategoryLabel(v)
		catWeights[label] += weights[i]
		totalW += weights[i]
	}

	neff := estimation.EffectiveSampleSize(weights)
	categories := make(map[string]estimation.CategoryEstimate, len(catWeights))
	for label, wsum := range catWeights {
		p := 0.0
		if totalW > 0 {
			p = wsum / totalW
		}
		se := 0.0
		if neff > 0 {
			se = math.Sqrt(p * (1 - p) / neff)
		}
		categories[label] = estimation.CategoryEstimate{
			Proportion:    p,
			Count:         wsum,
			StandardError: se,
			ConfidenceInterval: estimation.ConfidenceInterval{
				// Clipped to the unit interval: a proportion CI is a normal
				// approximation, not exact binomial.
				Lower: math.Max(0, p-z*se),
				Upper: math.Min(1, p+z*se),
				Level: level,
			},
		}
	}

	return estimation.VariableEstimate{
		Variable: key,
		Kind:     estimation.KindCategorical,
		Categorical: &estimation.CategoricalEstimate{
			Categories:          categories,
			TotalResponses:      len(values),
			EffectiveSampleSize: neff,
		},
	}
}
