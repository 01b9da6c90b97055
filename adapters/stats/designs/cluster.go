package designs

import (
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// ClusterDesign weights each response by the size of its cluster relative to
// how many responses the cluster contributed: weight = cluster size / sampled
// count. Clusters with no known size keep weight 1.0.
type ClusterDesign struct{}

// NewClusterDesign creates the cluster design.
func NewClusterDesign() *ClusterDesign {
	return &ClusterDesign{}
}

func (d *ClusterDesign) Method() survey.SamplingMethod {
	return survey.Cluster
}

func (d *ClusterDesign) Description() string {
	return "Weights responses by cluster size relative to the sampled cluster count"
}

func (d *ClusterDesign) Compute(responses []survey.ResponseRecord, frame survey.PopulationFrame) DesignWeights {
	field := frame.ClusterField()
	clusters := make([]string, len(responses))
	counts := make(map[string]int)
	for i, r := range responses {
		label := survey.UnknownStratum
		if v, ok := r.Value(field); ok && v != nil {
			label = survey.CategoryLabel(v)
		}
		clusters[i] = label
		counts[label]++
	}

	weights := make([]float64, len(responses))
	for i, label := range clusters {
		weight := 1.0
		if size, ok := frame.ClusterSizes[label]; ok && counts[label] > 0 {
			weight = float64(size) / float64(counts[label])
		}
		weights[i] = weight
	}

	return DesignWeights{
		Weights:    weights,
		Method:     survey.Cluster,
		WeightType: survey.WeightCluster,
		Diagnostics: estimation.DesignDiagnostics{
			ClusterCounts: counts,
			ClusterSizes:  frame.ClusterSizes,
			Description:   d.Description(),
		},
	}
}
