package tests

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// minChiSquarePairs is the minimum paired observations for a chi-square test.
const minChiSquarePairs = 5

// ChiSquareTest tests independence of two categorical variables with the
// Pearson chi-square statistic over a weighted contingency table. Sampling
// weights enter the table cells, so the test reflects the weighted sample.
type ChiSquareTest struct{}

// NewChiSquareTest creates the chi-square independence test.
func NewChiSquareTest() *ChiSquareTest {
	return &ChiSquareTest{}
}

func (t *ChiSquareTest) Type() estimation.TestType {
	return estimation.TestChiSquare
}

func (t *ChiSquareTest) Description() string {
	return "Pearson chi-square test of independence on weighted counts"
}

func (t *ChiSquareTest) Run(responses []survey.ResponseRecord, weights []float64, variables []core.VariableKey) (*estimation.TestResult, error) {
	if len(variables) != 2 {
		return nil, core.NewInputError("Chi-square test requires exactly 2 variables")
	}
	rowVar, colVar := variables[0].String(), variables[1].String()

	type cell struct {
		row, col string
		weight   float64
	}
	pairs := make([]cell, 0, len(responses))
	for i, r := range responses {
		v1, ok1 := r.Value(rowVar)
		v2, ok2 := r.Value(colVar)
		if !ok1 || !ok2 || v1 == nil || v2 == nil {
			continue
		}
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		pairs = append(pairs, cell{
			row:    survey.CategoryLabel(v1),
			col:    survey.CategoryLabel(v2),
			weight: w,
		})
	}

	if len(pairs) < minChiSquarePairs {
		return nil, core.NewInsufficientSampleError("Insufficient data for chi-square test")
	}

	rowIndex := make(map[string]int)
	colIndex := make(map[string]int)
	for _, p := range pairs {
		rowIndex[p.row] = 0
		colIndex[p.col] = 0
	}
	rowLabels := sortedKeys(rowIndex)
	colLabels := sortedKeys(colIndex)
	for i, label := range rowLabels {
		rowIndex[label] = i
	}
	for i, label := range colLabels {
		colIndex[label] = i
	}

	table := make([][]float64, len(rowLabels))
	for i := range table {
		table[i] = make([]float64, len(colLabels))
	}
	for _, p := range pairs {
		table[rowIndex[p.row]][colIndex[p.col]] += p.weight
	}

	statistic, dof, err := pearsonChiSquare(table)
	if err != nil {
		return nil, err
	}

	// A degenerate table (single row or column) carries no independence
	// information: statistic 0, p-value 1.
	p := 1.0
	if dof > 0 {
		dist := distuv.ChiSquared{K: float64(dof)}
		p = dist.Survival(statistic)
	}

	return &estimation.TestResult{
		Type:        estimation.TestChiSquare,
		Variables:   variables,
		Statistic:   statistic,
		PValue:      p,
		Significant: p < estimation.SignificanceAlpha,
		ChiSquare: &estimation.ChiSquareDetail{
			DegreesOfFreedom: dof,
			ContingencyTable: table,
			RowLabels:        rowLabels,
			ColumnLabels:     colLabels,
		},
	}, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// pearsonChiSquare computes the statistic and degrees of freedom for a
// weighted contingency table. For 2x2 tables the Yates continuity correction
// applies, with the |O−E| shift capped so it never crosses zero.
func pearsonChiSquare(table [][]float64) (float64, int, error) {
	rows := len(table)
	cols := len(table[0])
	dof := (rows - 1) * (cols - 1)
	if dof <= 0 {
		return 0, 0, nil
	}

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	var grand float64
	for i := range table {
		for j, obs := range table[i] {
			rowTotals[i] += obs
			colTotals[j] += obs
			grand += obs
		}
	}
	if grand == 0 {
		return 0, 0, core.NewInputError("Chi-square test failed: contingency table has zero total weight")
	}

	yates := dof == 1
	var statistic float64
	for i := range table {
		for j, obs := range table[i] {
			expected := rowTotals[i] * colTotals[j] / grand
			if expected == 0 {
				return 0, 0, core.NewInputError("Chi-square test failed: zero expected frequency in contingency table")
			}
			diff := math.Abs(obs - expected)
			if yates {
				diff = math.Max(0, diff-0.5)
			}
			statistic += diff * diff / expected
		}
	}

	return statistic, dof, nil
}
