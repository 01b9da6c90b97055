package designs

import (
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// StratifiedDesign weights each response by how over- or under-represented
// its stratum is in the sample: weight = population share / sample share.
// Strata the frame does not map, and responses missing the stratification
// field entirely, keep weight 1.0 so one unmapped stratum never distorts the
// rest of the vector.
type StratifiedDesign struct{}

// NewStratifiedDesign creates the stratified design.
func NewStratifiedDesign() *StratifiedDesign {
	return &StratifiedDesign{}
}

func (d *StratifiedDesign) Method() survey.SamplingMethod {
	return survey.Stratified
}

func (d *StratifiedDesign) Description() string {
	return "Weights responses so stratum shares match known population proportions"
}

func (d *StratifiedDesign) Compute(responses []survey.ResponseRecord, frame survey.PopulationFrame) DesignWeights {
	// Without population proportions there is nothing to rebalance against;
	// the whole request degrades to the equal-weights design.
	if !frame.HasProportions() {
		return NewSimpleRandomDesign().Compute(responses, frame)
	}

	field := frame.StratumField()
	strata := make([]string, len(responses))
	counts := make(map[string]int)
	for i, r := range responses {
		label := survey.UnknownStratum
		if v, ok := r.Value(field); ok && v != nil {
			label = survey.CategoryLabel(v)
		}
		strata[i] = label
		counts[label]++
	}

	total := float64(len(responses))
	weights := make([]float64, len(responses))
	for i, label := range strata {
		weight := 1.0
		if prop, ok := frame.PopulationProportions[label]; ok && counts[label] > 0 {
			sampleShare := float64(counts[label]) / total
			weight = prop / sampleShare
		}
		weights[i] = weight
	}

	return DesignWeights{
		Weights:    weights,
		Method:     survey.Stratified,
		WeightType: survey.WeightStratified,
		Diagnostics: estimation.DesignDiagnostics{
			StrataCounts:          counts,
			PopulationProportions: frame.PopulationProportions,
			Description:           d.Description(),
		},
	}
}
