package survey

// ConfidenceLevel names a two-sided normal confidence level. The value is
// kept as written by the caller; estimation maps unrecognized levels to the
// 95% critical value rather than rejecting them.
type ConfidenceLevel string

const (
	Confidence90 ConfidenceLevel = "90%"
	Confidence95 ConfidenceLevel = "95%"
	Confidence99 ConfidenceLevel = "99%"

	DefaultConfidenceLevel = Confidence95
)

// String returns the wire form of the level.
func (c ConfidenceLevel) String() string { return string(c) }

// ParseConfidenceLevel keeps the caller's string, substituting the default
// only when the input is empty.
func ParseConfidenceLevel(s string) ConfidenceLevel {
	if s == "" {
		return DefaultConfidenceLevel
	}
	return ConfidenceLevel(s)
}
