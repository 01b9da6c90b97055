// Package designs implements sampling-weight computation for the four
// supported survey designs. Each design is a stateless strategy behind a
// common interface; a Calculator owns the dispatch table and assembles the
// full weight report (Kish effective sample size, weight statistics,
// per-design diagnostics) around the raw vector.
package designs

import (
	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// DesignWeights is the raw output of one design: the weight vector,
// index-aligned with the input responses, plus what the design wants to
// report about itself. Method and WeightType are returned by the design
// rather than assumed by the caller because a design may degrade to another
// one (stratified without population proportions answers as simple random).
type DesignWeights struct {
	Weights     []float64
	Method      survey.SamplingMethod
	WeightType  survey.WeightType
	Diagnostics estimation.DesignDiagnostics
}

// Design computes sampling weights for one survey design. Implementations
// are stateless and safe for concurrent use.
type Design interface {
	// Method names the design.
	Method() survey.SamplingMethod

	// Description explains the weighting in one sentence, surfaced in
	// report diagnostics.
	Description() string

	// Compute derives the weight vector for the given responses. It is
	// only called with a non-empty response list.
	Compute(responses []survey.ResponseRecord, frame survey.PopulationFrame) DesignWeights
}

// Calculator dispatches weight computation across the registered designs.
// The dispatch table is fixed at construction; unknown methods resolve to
// simple random by policy rather than failing.
type Calculator struct {
	designs map[survey.SamplingMethod]Design
}

// NewCalculator creates a calculator with all four standard designs.
func NewCalculator() *Calculator {
	c := &Calculator{designs: make(map[survey.SamplingMethod]Design)}
	c.register(NewSimpleRandomDesign())
	c.register(NewStratifiedDesign())
	c.register(NewClusterDesign())
	c.register(NewSystematicDesign())
	return c
}

func (c *Calculator) register(d Design) {
	c.designs[d.Method()] = d
}

// ForMethod returns the design registered for the method, falling back to
// simple random for unknown names.
func (c *Calculator) ForMethod(method survey.SamplingMethod) Design {
	if d, ok := c.designs[method]; ok {
		return d
	}
	return c.designs[survey.SimpleRandom]
}

// Designs lists the registered designs in a stable order.
func (c *Calculator) Designs() []Design {
	out := make([]Design, 0, len(c.designs))
	for _, m := range survey.SamplingMethods() {
		if d, ok := c.designs[m]; ok {
			out = append(out, d)
		}
	}
	return out
}

// ComputeWeights runs the design selected by method and wraps its vector in
// a full report. Empty responses are the one hard failure.
func (c *Calculator) ComputeWeights(responses []survey.ResponseRecord, frame survey.PopulationFrame, method survey.SamplingMethod) (*estimation.WeightReport, error) {
	if len(responses) == 0 {
		return nil, core.ErrNoResponses
	}

	design := c.ForMethod(survey.ParseSamplingMethod(method.String()))
	out := design.Compute(responses, frame)

	return &estimation.WeightReport{
		Weights:             out.Weights,
		Method:              out.Method,
		WeightType:          out.WeightType,
		TotalResponses:      len(responses),
		EffectiveSampleSize: estimation.EffectiveSampleSize(out.Weights),
		Statistics:          estimation.ComputeWeightStatistics(out.Weights),
		DesignDiagnostics:   out.Diagnostics,
	}, nil
}
