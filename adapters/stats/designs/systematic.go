package designs

import (
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// SystematicDesign applies one uniform weight of population size over sample
// size. When the frame gives no population size it is reconstructed from the
// sampling interval: every k-th selection implies a population of n·k.
type SystematicDesign struct{}

// NewSystematicDesign creates the systematic design.
func NewSystematicDesign() *SystematicDesign {
	return &SystematicDesign{}
}

func (d *SystematicDesign) Method() survey.SamplingMethod {
	return survey.Systematic
}

func (d *SystematicDesign) Description() string {
	return "Uniform weight of population size over sample size for interval sampling"
}

func (d *SystematicDesign) Compute(responses []survey.ResponseRecord, frame survey.PopulationFrame) DesignWeights {
	n := len(responses)
	interval := frame.Interval()

	populationSize := frame.PopulationSize
	if populationSize <= 0 {
		populationSize = float64(n * interval)
	}

	weight := populationSize / float64(n)
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = weight
	}

	return DesignWeights{
		Weights:    weights,
		Method:     survey.Systematic,
		WeightType: survey.WeightSystematic,
		Diagnostics: estimation.DesignDiagnostics{
			SamplingInterval: interval,
			PopulationSize:   populationSize,
			Description:      d.Description(),
		},
	}
}
