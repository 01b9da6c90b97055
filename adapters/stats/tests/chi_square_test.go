package tests

import (
	"math"
	"strings"
	"testing"

	"surveystat/domain/core"
	"surveystat/domain/survey"
)

func pairRecords(rowField, colField string, cells map[[2]string]int) []survey.ResponseRecord {
	var out []survey.ResponseRecord
	for pair, count := range cells {
		for i := 0; i < count; i++ {
			out = append(out, survey.ResponseRecord{
				Data: map[string]interface{}{rowField: pair[0], colField: pair[1]},
			})
		}
	}
	return out
}

func twoVars(a, b string) []core.VariableKey {
	return []core.VariableKey{core.VariableKey(a), core.VariableKey(b)}
}

func TestChiSquare_RequiresTwoVariables(t *testing.T) {
	test := NewChiSquareTest()
	_, err := test.Run(nil, nil, []core.VariableKey{"color"})
	if err == nil {
		t.Fatal("expected arity error")
	}
	if err.Error() != "Chi-square test requires exactly 2 variables" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !core.IsInputError(err) {
		t.Errorf("expected input error class, got %v", err)
	}
}

func TestChiSquare_InsufficientPairs(t *testing.T) {
	test := NewChiSquareTest()
	responses := pairRecords("color", "size", map[[2]string]int{
		{"red", "small"}: 2,
		{"blue", "big"}:  2,
	})

	_, err := test.Run(responses, nil, twoVars("color", "size"))
	if err == nil {
		t.Fatal("expected insufficient data error for 4 pairs")
	}
	if err.Error() != "Insufficient data for chi-square test" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !core.IsInsufficientSampleError(err) {
		t.Errorf("expected insufficient sample class, got %v", err)
	}
}

func TestChiSquare_YatesCorrectedTwoByTwo(t *testing.T) {
	test := NewChiSquareTest()
	// Strong diagonal association: expected cells are all 12.5.
	responses := pairRecords("pref", "grp", map[[2]string]int{
		{"a", "x"}: 20,
		{"a", "y"}: 5,
		{"b", "x"}: 5,
		{"b", "y"}: 20,
	})

	result, err := test.Run(responses, nil, twoVars("pref", "grp"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// With Yates: 4 cells of (7.5-0.5)²/12.5 = 3.92 each.
	if math.Abs(result.Statistic-15.68) > 1e-9 {
		t.Errorf("statistic %v, want 15.68", result.Statistic)
	}
	if result.ChiSquare.DegreesOfFreedom != 1 {
		t.Errorf("dof %d, want 1", result.ChiSquare.DegreesOfFreedom)
	}
	if !result.Significant || result.PValue >= 0.001 {
		t.Errorf("expected a strongly significant result, p=%v", result.PValue)
	}
	if len(result.ChiSquare.ContingencyTable) != 2 || len(result.ChiSquare.ContingencyTable[0]) != 2 {
		t.Errorf("unexpected table shape: %v", result.ChiSquare.ContingencyTable)
	}
}

func TestChiSquare_SortedLabelsAndWeightedCells(t *testing.T) {
	test := NewChiSquareTest()
	responses := pairRecords("pref", "grp", map[[2]string]int{
		{"zebra", "x"}: 3,
		{"apple", "y"}: 3,
	})
	weights := []float64{2, 2, 2, 2, 2, 2}

	result, err := test.Run(responses, weights, twoVars("pref", "grp"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rows := result.ChiSquare.RowLabels
	if strings.Join(rows, ",") != "apple,zebra" {
		t.Errorf("row labels %v, want sorted [apple zebra]", rows)
	}
	cols := result.ChiSquare.ColumnLabels
	if strings.Join(cols, ",") != "x,y" {
		t.Errorf("column labels %v, want sorted [x y]", cols)
	}

	var total float64
	for _, row := range result.ChiSquare.ContingencyTable {
		for _, c := range row {
			total += c
		}
	}
	if total != 12.0 {
		t.Errorf("weighted table total %v, want 12.0 (6 pairs of weight 2)", total)
	}
}

func TestChiSquare_SkipsRowsMissingEitherVariable(t *testing.T) {
	test := NewChiSquareTest()
	responses := []survey.ResponseRecord{
		{Data: map[string]interface{}{"pref": "a", "grp": "x"}},
		{Data: map[string]interface{}{"pref": "a"}},
		{Data: map[string]interface{}{"grp": "y"}},
		{Data: map[string]interface{}{"pref": nil, "grp": "y"}},
	}

	_, err := test.Run(responses, nil, twoVars("pref", "grp"))
	if err == nil {
		t.Fatal("expected insufficient data: only one complete pair")
	}
}

func TestChiSquare_DegenerateTableHasZeroStatistic(t *testing.T) {
	test := NewChiSquareTest()
	// Single row category: (rows-1)(cols-1) = 0 degrees of freedom.
	responses := pairRecords("pref", "grp", map[[2]string]int{
		{"a", "x"}: 3,
		{"a", "y"}: 3,
	})

	result, err := test.Run(responses, nil, twoVars("pref", "grp"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Statistic != 0 || result.PValue != 1.0 {
		t.Errorf("degenerate table should give statistic 0 and p 1, got %v / %v", result.Statistic, result.PValue)
	}
	if result.Significant {
		t.Error("degenerate table must not be significant")
	}
}

func TestChiSquare_IndependentDataNotSignificant(t *testing.T) {
	test := NewChiSquareTest()
	// Perfectly proportional rows carry no association.
	responses := pairRecords("pref", "grp", map[[2]string]int{
		{"a", "x"}: 10,
		{"a", "y"}: 10,
		{"b", "x"}: 10,
		{"b", "y"}: 10,
	})

	result, err := test.Run(responses, nil, twoVars("pref", "grp"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Statistic != 0 {
		t.Errorf("statistic %v, want 0 for perfectly independent table", result.Statistic)
	}
	if result.Significant {
		t.Errorf("independent data flagged significant, p=%v", result.PValue)
	}
}
