package estimation

import (
	"math"
	"testing"
)

func TestEffectiveSampleSize_EqualWeights(t *testing.T) {
	weights := []float64{1, 1, 1, 1}
	if got := EffectiveSampleSize(weights); got != 4.0 {
		t.Errorf("effective sample size %v, want 4.0 for equal weights", got)
	}

	// Scaling all weights by a constant changes nothing.
	scaled := []float64{2.5, 2.5, 2.5, 2.5}
	if got := EffectiveSampleSize(scaled); math.Abs(got-4.0) > 1e-12 {
		t.Errorf("effective sample size %v, want 4.0 for scaled equal weights", got)
	}
}

func TestEffectiveSampleSize_UnequalWeightsLoseInformation(t *testing.T) {
	weights := []float64{2, 1}
	// (3)² / 5 = 1.8
	if got := EffectiveSampleSize(weights); math.Abs(got-1.8) > 1e-12 {
		t.Errorf("effective sample size %v, want 1.8", got)
	}

	cases := [][]float64{
		{1, 2, 3},
		{0.5, 1.5, 1.0, 4.0},
		{10, 1, 1, 1, 1},
	}
	for _, ws := range cases {
		got := EffectiveSampleSize(ws)
		if got >= float64(len(ws)) {
			t.Errorf("weights %v: effective size %v must stay below nominal %d", ws, got, len(ws))
		}
		if got <= 0 {
			t.Errorf("weights %v: effective size %v must stay positive", ws, got)
		}
	}
}

func TestEffectiveSampleSize_Degenerate(t *testing.T) {
	if got := EffectiveSampleSize(nil); got != 0 {
		t.Errorf("empty vector effective size %v, want 0", got)
	}
	if got := EffectiveSampleSize([]float64{0, 0, 0}); got != 0 {
		t.Errorf("all-zero vector effective size %v, want 0", got)
	}
}

func TestComputeWeightStatistics(t *testing.T) {
	stats := ComputeWeightStatistics([]float64{1, 2, 3, 4})

	if stats.Mean != 2.5 {
		t.Errorf("mean %v, want 2.5", stats.Mean)
	}
	if stats.Median != 2.5 {
		t.Errorf("median %v, want 2.5", stats.Median)
	}
	if stats.Min != 1 || stats.Max != 4 {
		t.Errorf("min/max %v/%v, want 1/4", stats.Min, stats.Max)
	}

	// Population standard deviation: sqrt(1.25).
	wantStd := math.Sqrt(1.25)
	if math.Abs(stats.Std-wantStd) > 1e-12 {
		t.Errorf("std %v, want %v", stats.Std, wantStd)
	}
	if math.Abs(stats.CoefficientOfVariation-wantStd/2.5) > 1e-12 {
		t.Errorf("cv %v, want %v", stats.CoefficientOfVariation, wantStd/2.5)
	}
}

func TestComputeWeightStatistics_Degenerate(t *testing.T) {
	if got := ComputeWeightStatistics(nil); got != (WeightStatistics{}) {
		t.Errorf("empty vector statistics %+v, want zero value", got)
	}

	// A zero mean pins the coefficient of variation at 0.
	got := ComputeWeightStatistics([]float64{-1, 1})
	if got.CoefficientOfVariation != 0 {
		t.Errorf("cv %v, want 0 when the mean is 0", got.CoefficientOfVariation)
	}
}
