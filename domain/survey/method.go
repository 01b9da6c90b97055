package survey

// SamplingMethod enumerates the supported weighting designs.
type SamplingMethod string

const (
	SimpleRandom SamplingMethod = "simple_random"
	Stratified   SamplingMethod = "stratified"
	Cluster      SamplingMethod = "cluster"
	Systematic   SamplingMethod = "systematic"
)

// String returns the wire name of the method.
func (m SamplingMethod) String() string { return string(m) }

// IsValid reports whether the method is one of the four supported designs.
func (m SamplingMethod) IsValid() bool {
	switch m {
	case SimpleRandom, Stratified, Cluster, Systematic:
		return true
	}
	return false
}

// ParseSamplingMethod maps a caller-supplied method name onto a supported
// design. Unknown or empty names fall back to simple random; that fallback is
// documented policy, not an error.
func ParseSamplingMethod(s string) SamplingMethod {
	m := SamplingMethod(s)
	if m.IsValid() {
		return m
	}
	return SimpleRandom
}

// SamplingMethods lists the supported designs in a stable order.
func SamplingMethods() []SamplingMethod {
	return []SamplingMethod{SimpleRandom, Stratified, Cluster, Systematic}
}

// WeightType describes the family of weights a design produces.
type WeightType string

const (
	WeightEqual      WeightType = "equal"
	WeightStratified WeightType = "stratified"
	WeightCluster    WeightType = "cluster"
	WeightSystematic WeightType = "systematic"
)
