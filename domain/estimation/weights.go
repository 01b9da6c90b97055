// Package estimation holds the result types produced by the statistical
// engine plus the weight arithmetic shared by all of its components: Kish's
// effective sample size and the descriptive summary of a weight vector.
package estimation

import (
	"github.com/montanaflynn/stats"
)

// EffectiveSampleSize implements Kish's approximation (Σw)²/Σw². It measures
// the information left after unequal weighting: equal weights give back the
// nominal sample size, spread-out weights give less. Returns 0 for an empty
// vector or an all-zero denominator.
func EffectiveSampleSize(weights []float64) float64 {
	if len(weights) == 0 {
		return 0
	}
	var sum, sumSq float64
	for _, w := range weights {
		sum += w
		sumSq += w * w
	}
	if sumSq == 0 {
		return 0
	}
	return (sum * sum) / sumSq
}

// WeightStatistics summarizes a weight vector. Std is the population standard
// deviation; the coefficient of variation is 0 when the mean is 0.
type WeightStatistics struct {
	Mean                   float64 `json:"mean"`
	Median                 float64 `json:"median"`
	Std                    float64 `json:"std"`
	Min                    float64 `json:"min"`
	Max                    float64 `json:"max"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
}

// ComputeWeightStatistics builds the descriptive summary for a weight vector.
// An empty vector yields the zero summary.
func ComputeWeightStatistics(weights []float64) WeightStatistics {
	if len(weights) == 0 {
		return WeightStatistics{}
	}

	mean, _ := stats.Mean(weights)
	median, _ := stats.Median(weights)
	std, _ := stats.StandardDeviation(weights)
	min, _ := stats.Min(weights)
	max, _ := stats.Max(weights)

	cv := 0.0
	if mean != 0 {
		cv = std / mean
	}

	return WeightStatistics{
		Mean:                   mean,
		Median:                 median,
		Std:                    std,
		Min:                    min,
		Max:                    max,
		CoefficientOfVariation: cv,
	}
}
