package tests

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// TTest compares two group means with an independent two-sample t-test under
// the equal-variance assumption. The first variable names the grouping field,
// the second the measured value; sampling weights do not enter the statistic.
type TTest struct{}

// NewTTest creates the independent two-sample t-test.
func NewTTest() *TTest {
	return &TTest{}
}

func (t *TTest) Type() estimation.TestType {
	return estimation.TestTTest
}

func (t *TTest) Description() string {
	return "Independent two-sample t-test with pooled variance"
}

func (t *TTest) Run(responses []survey.ResponseRecord, weights []float64, variables []core.VariableKey) (*estimation.TestResult, error) {
	groups, err := splitTwoGroups(responses, variables, "T-test")
	if err != nil {
		return nil, err
	}

	n1, n2 := len(groups.first), len(groups.second)
	mean1, _ := stats.Mean(groups.first)
	mean2, _ := stats.Mean(groups.second)
	var1, _ := stats.SampleVariance(groups.first)
	var2, _ := stats.SampleVariance(groups.second)

	df := float64(n1 + n2 - 2)
	pooled := (float64(n1-1)*var1 + float64(n2-1)*var2) / df
	se := math.Sqrt(pooled * (1.0/float64(n1) + 1.0/float64(n2)))
	if se == 0 {
		return nil, core.NewInsufficientSampleError("T-test failed: zero variance in both groups")
	}

	statistic := (mean1 - mean2) / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(statistic))

	return &estimation.TestResult{
		Type:        estimation.TestTTest,
		Variables:   variables,
		Statistic:   statistic,
		PValue:      p,
		Significant: p < estimation.SignificanceAlpha,
		Groups: &estimation.GroupComparison{
			Group1: estimation.GroupSummary{Label: groups.firstLabel, Size: n1, Mean: &mean1},
			Group2: estimation.GroupSummary{Label: groups.secondLabel, Size: n2, Mean: &mean2},
		},
	}, nil
}
