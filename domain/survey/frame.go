package survey

// Default field names when the frame does not declare them.
const (
	DefaultStratumField = "region"
	DefaultClusterField = "cluster_id"

	// UnknownStratum labels responses missing the stratification field.
	UnknownStratum = "unknown"
)

// PopulationFrame carries the method-specific auxiliary data that turns a
// convenience sample into weighted population estimates. Fields irrelevant to
// the chosen sampling method are ignored; missing entries degrade gracefully
// rather than erroring.
type PopulationFrame struct {
	// Stratified sampling
	StratificationVariable string             `json:"stratification_variable,omitempty"`
	PopulationProportions  map[string]float64 `json:"population_proportions,omitempty"`

	// Cluster sampling
	ClusterVariable string         `json:"cluster_variable,omitempty"`
	ClusterSizes    map[string]int `json:"cluster_sizes,omitempty"`

	// Systematic sampling
	SamplingInterval int     `json:"sampling_interval,omitempty"`
	PopulationSize   float64 `json:"population_size,omitempty"`
}

// StratumField returns the stratification field name, defaulting to "region".
func (f PopulationFrame) StratumField() string {
	if f.StratificationVariable == "" {
		return DefaultStratumField
	}
	return f.StratificationVariable
}

// ClusterField returns the cluster field name, defaulting to "cluster_id".
func (f PopulationFrame) ClusterField() string {
	if f.ClusterVariable == "" {
		return DefaultClusterField
	}
	return f.ClusterVariable
}

// Interval returns the systematic sampling interval, defaulting to 1.
func (f PopulationFrame) Interval() int {
	if f.SamplingInterval <= 0 {
		return 1
	}
	return f.SamplingInterval
}

// HasProportions reports whether stratified weighting has anything to work
// with. Without proportions the stratified design degrades to simple random.
func (f PopulationFrame) HasProportions() bool {
	return len(f.PopulationProportions) > 0
}
