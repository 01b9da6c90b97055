package tests

import (
	"math"
	"testing"

	"surveystat/domain/core"
)

func TestMannWhitney_RequiresTwoVariables(t *testing.T) {
	test := NewMannWhitneyTest()
	_, err := test.Run(nil, nil, []core.VariableKey{"group"})
	if err == nil {
		t.Fatal("expected arity error")
	}
	want := "Mann-Whitney test requires exactly 2 variables (grouping variable and numeric variable)"
	if err.Error() != want {
		t.Errorf("message %q, want %q", err.Error(), want)
	}
}

func TestMannWhitney_RequiresExactlyTwoGroups(t *testing.T) {
	test := NewMannWhitneyTest()
	responses := append(groupScores("group", "score", "a", 1, 2, 3),
		append(groupScores("group", "score", "b", 4, 5, 6),
			groupScores("group", "score", "c", 7, 8, 9)...)...)

	_, err := test.Run(responses, nil, twoVars("group", "score"))
	if err == nil {
		t.Fatal("expected unresolved grouping error for 3 groups")
	}
	if err.Error() != "Mann-Whitney test requires exactly 2 groups" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestMannWhitney_InsufficientGroupData(t *testing.T) {
	test := NewMannWhitneyTest()
	responses := append(groupScores("group", "score", "a", 1, 2, 3),
		groupScores("group", "score", "b", 5, 6)...)

	_, err := test.Run(responses, nil, twoVars("group", "score"))
	if err == nil {
		t.Fatal("expected insufficient data error")
	}
	if err.Error() != "Insufficient data in one or both groups" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestMannWhitney_SeparatedGroups(t *testing.T) {
	test := NewMannWhitneyTest()
	responses := append(groupScores("group", "score", "a", 1, 2, 3),
		groupScores("group", "score", "b", 4, 5, 6)...)

	result, err := test.Run(responses, nil, twoVars("group", "score"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Complete separation: every a-value ranks below every b-value, U1 = 0.
	if result.Statistic != 0 {
		t.Errorf("U statistic %v, want 0", result.Statistic)
	}
	// Normal approximation with continuity correction: z ≈ -1.75, p ≈ 0.081.
	if result.PValue < 0.07 || result.PValue > 0.09 {
		t.Errorf("p-value %v outside the expected window around 0.081", result.PValue)
	}
	if result.Significant {
		t.Error("n=3 per group should not reach significance under the normal approximation")
	}

	g := result.Groups
	if g.Group1.Median == nil || *g.Group1.Median != 2.0 {
		t.Errorf("group1 median %v, want 2.0", g.Group1.Median)
	}
	if g.Group2.Median == nil || *g.Group2.Median != 5.0 {
		t.Errorf("group2 median %v, want 5.0", g.Group2.Median)
	}
	if g.Group1.Mean != nil || g.Group2.Mean != nil {
		t.Error("Mann-Whitney reports medians, not means")
	}
}

func TestMannWhitney_TiedValues(t *testing.T) {
	test := NewMannWhitneyTest()
	responses := append(groupScores("group", "score", "a", 1, 2, 2),
		groupScores("group", "score", "b", 2, 3, 4)...)

	result, err := test.Run(responses, nil, twoVars("group", "score"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Ranks: 1, then three 2s sharing rank 3, then 5 and 6.
	// R1 = 1 + 3 + 3 = 7, so U1 = 7 - 6 = 1.
	if result.Statistic != 1.0 {
		t.Errorf("U statistic %v, want 1.0 with average ranks for ties", result.Statistic)
	}
	if result.PValue <= 0 || result.PValue > 1 {
		t.Errorf("p-value %v outside (0, 1]", result.PValue)
	}
}

func TestMannWhitney_AllValuesIdentical(t *testing.T) {
	test := NewMannWhitneyTest()
	responses := append(groupScores("group", "score", "a", 5, 5, 5),
		groupScores("group", "score", "b", 5, 5, 5)...)

	_, err := test.Run(responses, nil, twoVars("group", "score"))
	if err == nil {
		t.Fatal("expected error when every value is tied")
	}
}

func TestAverageRanks(t *testing.T) {
	ranks, tieTerm := averageRanks([]float64{10, 20, 20, 30})
	want := []float64{1, 2.5, 2.5, 4}
	for i, r := range ranks {
		if math.Abs(r-want[i]) > 1e-12 {
			t.Errorf("rank[%d] = %v, want %v", i, r, want[i])
		}
	}
	// One tie group of size 2: 2³-2 = 6.
	if tieTerm != 6.0 {
		t.Errorf("tie term %v, want 6.0", tieTerm)
	}
}
