// Package tests implements the significance testing batch: chi-square,
// independent two-sample t-test, and Mann-Whitney U behind a common
// interface. Specifications run independently; one failing test occupies its
// own result slot and never aborts the batch.
package tests

import (
	"fmt"
	"sync"

	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
)

// Test runs one significance test over the responses. Implementations are
// stateless and safe for concurrent use.
type Test interface {
	// Type names the test in specifications and results.
	Type() estimation.TestType

	// Description explains the test in one sentence.
	Description() string

	// Run executes the test on the given variables. Errors cover bad
	// variable arity, unresolved grouping, and insufficient samples.
	Run(responses []survey.ResponseRecord, weights []float64, variables []core.VariableKey) (*estimation.TestResult, error)
}

// Runner executes test specification batches. The dispatch table is fixed at
// construction.
type Runner struct {
	tests map[estimation.TestType]Test
}

// NewRunner creates a runner with the three standard tests registered.
func NewRunner() *Runner {
	r := &Runner{tests: make(map[estimation.TestType]Test)}
	r.register(NewChiSquareTest())
	r.register(NewTTest())
	r.register(NewMannWhitneyTest())
	return r
}

func (r *Runner) register(t Test) {
	r.tests[t.Type()] = t
}

// Tests lists the registered tests in a stable order.
func (r *Runner) Tests() []Test {
	order := []estimation.TestType{estimation.TestChiSquare, estimation.TestTTest, estimation.TestMannWhitney}
	out := make([]Test, 0, len(order))
	for _, typ := range order {
		if t, ok := r.tests[typ]; ok {
			out = append(out, t)
		}
	}
	return out
}

// RunAll executes every specification concurrently and collects the outcomes
// keyed by specification name. Unnamed specs key as test_<index>; when two
// specs share a name, the later specification's outcome wins,
// deterministically, regardless of scheduling.
func (r *Runner) RunAll(responses []survey.ResponseRecord, weights []float64, specs []estimation.TestSpec) map[string]estimation.TestOutcome {
	outcomes := make(map[string]estimation.TestOutcome, len(specs))
	if len(specs) == 0 {
		return outcomes
	}

	type indexedOutcome struct {
		idx     int
		outcome estimation.TestOutcome
	}

	results := make(chan indexedOutcome, len(specs))
	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		go func(idx int, spec estimation.TestSpec) {
			defer wg.Done()
			results <- indexedOutcome{idx: idx, outcome: r.runOne(idx, spec, responses, weights)}
		}(i, spec)
	}
	wg.Wait()
	close(results)

	ordered := make([]estimation.TestOutcome, len(specs))
	for res := range results {
		ordered[res.idx] = res.outcome
	}
	for _, outcome := range ordered {
		outcomes[outcome.Name] = outcome
	}
	return outcomes
}

// runOne executes a single specification, converting every failure, including
// panics from unexpected internal faults, into an error outcome.
func (r *Runner) runOne(idx int, spec estimation.TestSpec, responses []survey.ResponseRecord, weights []float64) (outcome estimation.TestOutcome) {
	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("test_%d", idx)
	}
	typ := spec.Type
	if typ == "" {
		typ = estimation.TestChiSquare
	}

	defer func() {
		if rec := recover(); rec != nil {
			outcome = estimation.TestOutcome{
				Name:  name,
				Type:  typ,
				Error: fmt.Sprintf("%s test failed: %v", typ, rec),
			}
		}
	}()

	test, ok := r.tests[typ]
	if !ok {
		return estimation.TestOutcome{
			Name:  name,
			Type:  typ,
			Error: core.NewUnsupportedMethodError("Unknown test type: %s", typ).Error(),
		}
	}

	result, err := test.Run(responses, weights, spec.Variables)
	if err != nil {
		return estimation.TestOutcome{Name: name, Type: typ, Error: err.Error()}
	}
	return estimation.TestOutcome{Name: name, Type: typ, Result: result}
}
