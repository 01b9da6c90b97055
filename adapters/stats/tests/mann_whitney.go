package tests

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// MannWhitneyTest compares two groups with the two-sided Mann-Whitney U rank
// test, using the normal approximation with average ranks for ties, a
// tie-corrected variance, and a continuity correction. The reported statistic
// is the U of group1 (the lexicographically smaller label).
type MannWhitneyTest struct{}

// NewMannWhitneyTest creates the two-sided Mann-Whitney U test.
func NewMannWhitneyTest() *MannWhitneyTest {
	return &MannWhitneyTest{}
}

func (t *MannWhitneyTest) Type() estimation.TestType {
	return estimation.TestMannWhitney
}

func (t *MannWhitneyTest) Description() string {
	return "Two-sided Mann-Whitney U rank test"
}

func (t *MannWhitneyTest) Run(responses []survey.ResponseRecord, weights []float64, variables []core.VariableKey) (*estimation.TestResult, error) {
	groups, err := splitTwoGroups(responses, variables, "Mann-Whitney test")
	if err != nil {
		return nil, err
	}

	n1, n2 := len(groups.first), len(groups.second)
	u1, sigma := mannWhitneyU(groups.first, groups.second)
	if sigma == 0 {
		return nil, core.NewInsufficientSampleError("Mann-Whitney test failed: all values are identical")
	}

	mu := float64(n1) * float64(n2) / 2.0
	numerator := u1 - mu
	// Continuity correction: pull the statistic half a rank toward the mean.
	switch {
	case numerator > 0:
		numerator -= 0.5
	case numerator < 0:
		numerator += 0.5
	}
	z := numerator / sigma

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	p := 2 * normal.Survival(math.Abs(z))
	if p > 1 {
		p = 1
	}

	median1, _ := stats.Median(groups.first)
	median2, _ := stats.Median(groups.second)

	return &estimation.TestResult{
		Type:        estimation.TestMannWhitney,
		Variables:   variables,
		Statistic:   u1,
		PValue:      p,
		Significant: p < estimation.SignificanceAlpha,
		Groups: &estimation.GroupComparison{
			Group1: estimation.GroupSummary{Label: groups.firstLabel, Size: n1, Median: &median1},
			Group2: estimation.GroupSummary{Label: groups.secondLabel, Size: n2, Median: &median2},
		},
	}, nil
}

// mannWhitneyU returns group1's U statistic and the tie-corrected standard
// deviation of U under the null hypothesis.
func mannWhitneyU(first, second []float64) (float64, float64) {
	n1, n2 := len(first), len(second)
	n := n1 + n2

	combined := make([]float64, 0, n)
	combined = append(combined, first...)
	combined = append(combined, second...)
	ranks, tieTerm := averageRanks(combined)

	var r1 float64
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}
	u1 := r1 - float64(n1)*float64(n1+1)/2.0

	nf := float64(n)
	variance := float64(n1) * float64(n2) / 12.0 * ((nf + 1) - tieTerm/(nf*(nf-1)))
	if variance <= 0 {
		return u1, 0
	}
	return u1, math.Sqrt(variance)
}

// averageRanks assigns 1-based ranks with tied values sharing their average
// rank. The second return is Σ(t³−t) over tie groups, the correction term in
// the rank variance.
func averageRanks(values []float64) ([]float64, float64) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks := make([]float64, n)
	var tieTerm float64
	i := 0
	for i < n {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// Sorted positions i..j share the average of ranks i+1..j+1.
		avg := float64(i+j+2) / 2.0
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		if size := j - i + 1; size > 1 {
			s := float64(size)
			tieTerm += s*s*s - s
		}
		i = j + 1
	}
	return ranks, tieTerm
}
