package designs

import (
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// SimpleRandomDesign assigns every response a weight of 1.0: the sample is
// assumed to already mirror the population. It is also the fallback target
// for unknown methods and for stratified requests without population
// proportions.
type SimpleRandomDesign struct{}

// NewSimpleRandomDesign creates the equal-weights design.
func NewSimpleRandomDesign() *SimpleRandomDesign {
	return &SimpleRandomDesign{}
}

func (d *SimpleRandomDesign) Method() survey.SamplingMethod {
	return survey.SimpleRandom
}

func (d *SimpleRandomDesign) Description() string {
	return "Equal weights; the sample is assumed representative of the population"
}

func (d *SimpleRandomDesign) Compute(responses []survey.ResponseRecord, frame survey.PopulationFrame) DesignWeights {
	weights := make([]float64, len(responses))
	for i := range weights {
		weights[i] = 1.0
	}

	return DesignWeights{
		Weights:    weights,
		Method:     survey.SimpleRandom,
		WeightType: survey.WeightEqual,
		Diagnostics: estimation.DesignDiagnostics{
			Description: d.Description(),
		},
	}
}
