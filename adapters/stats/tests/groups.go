package tests

import (
	"sort"

	"surveystat/domain/core"
	"surveystat/domain/survey"
)

// minGroupSize is the minimum observations per group for the two-sample tests.
const minGroupSize = 3

// twoGroups holds the split observations for a two-sample comparison, with
// firstLabel lexicographically smaller than secondLabel.
type twoGroups struct {
	firstLabel  string
	secondLabel string
	first       []float64
	second      []float64
}

// splitTwoGroups gathers (group, value) observations for the two-sample
// tests. A row qualifies when its grouping answer is present and non-nil and
// its value answer is numeric. Exactly two distinct group labels must appear;
// anything else is an unresolved grouping rather than a guess about which two
// groups to compare. testLabel prefixes the error messages ("T-test",
// "Mann-Whitney test").
func splitTwoGroups(responses []survey.ResponseRecord, variables []core.VariableKey, testLabel string) (*twoGroups, error) {
	if len(variables) != 2 {
		return nil, core.NewInputError("%s requires exactly 2 variables (grouping variable and numeric variable)", testLabel)
	}
	groupVar, valueVar := variables[0].String(), variables[1].String()

	byGroup := make(map[string][]float64)
	for _, r := range responses {
		g, ok := r.Value(groupVar)
		if !ok || g == nil {
			continue
		}
		raw, ok := r.Value(valueVar)
		if !ok {
			continue
		}
		v, numeric := survey.NumericValue(raw)
		if !numeric {
			continue
		}
		label := survey.CategoryLabel(g)
		byGroup[label] = append(byGroup[label], v)
	}

	if len(byGroup) != 2 {
		return nil, core.NewUnresolvedGroupingError("%s requires exactly 2 groups", testLabel)
	}

	labels := make([]string, 0, 2)
	for label := range byGroup {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	groups := &twoGroups{
		firstLabel:  labels[0],
		secondLabel: labels[1],
		first:       byGroup[labels[0]],
		second:      byGroup[labels[1]],
	}
	if len(groups.first) < minGroupSize || len(groups.second) < minGroupSize {
		return nil, core.NewInsufficientSampleError("Insufficient data in one or both groups")
	}
	return groups, nil
}
