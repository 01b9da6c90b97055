package estimation

import (
	"surveystat/domain/core"
)

// SignificanceAlpha is the fixed significance threshold: a test is flagged
// significant when its p-value falls below this.
const SignificanceAlpha = 0.05

// TestType enumerates the supported significance tests.
type TestType string

const (
	TestChiSquare   TestType = "chi_square"
	TestTTest       TestType = "t_test"
	TestMannWhitney TestType = "mann_whitney"
)

// TestSpec is one requested significance test. Name keys the result map and
// defaults to test_<index>; an empty Type defaults to chi_square.
type TestSpec struct {
	Type      TestType           `json:"type"`
	Variables []core.VariableKey `json:"variables"`
	Name      string             `json:"name"`
}

// ChiSquareDetail carries the contingency table behind a chi-square result.
// Cells hold weighted counts; labels are the sorted category names.
type ChiSquareDetail struct {
	DegreesOfFreedom int         `json:"degrees_of_freedom"`
	ContingencyTable [][]float64 `json:"contingency_table"`
	RowLabels        []string    `json:"row_labels"`
	ColumnLabels     []string    `json:"column_labels"`
}

// GroupSummary describes one side of a two-group comparison. Mean is set for
// the t-test, Median for Mann-Whitney.
type GroupSummary struct {
	Label  string   `json:"label"`
	Size   int      `json:"size"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
}

// GroupComparison pairs the two groups of a t-test or Mann-Whitney result.
// Group1 is always the lexicographically smaller label.
type GroupComparison struct {
	Group1 GroupSummary `json:"group1"`
	Group2 GroupSummary `json:"group2"`
}

// TestResult is a completed significance test. ChiSquare and Groups are
// per-test detail; exactly one of them is set, matching Type.
type TestResult struct {
	Type        TestType           `json:"test_type"`
	Variables   []core.VariableKey `json:"variables"`
	Statistic   float64            `json:"statistic"`
	PValue      float64            `json:"p_value"`
	Significant bool               `json:"significant"`
	ChiSquare   *ChiSquareDetail   `json:"chi_square,omitempty"`
	Groups      *GroupComparison   `json:"groups,omitempty"`
}

// TestOutcome is one slot of a test batch: either a result or the error that
// kept this test from running. A failed test never affects sibling outcomes.
type TestOutcome struct {
	Name   string      `json:"name"`
	Type   TestType    `json:"test_type"`
	Result *TestResult `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Failed reports whether this slot holds an error instead of a result.
func (o TestOutcome) Failed() bool { return o.Error != "" }
