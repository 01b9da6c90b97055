package core

import (
	"testing"
)

func TestNewHashDeterministic(t *testing.T) {
	a := NewHash([]byte("survey data"))
	b := NewHash([]byte("survey data"))
	if !a.Equals(b) {
		t.Errorf("same input produced different hashes: %s vs %s", a, b)
	}
	if a.IsEmpty() {
		t.Error("hash of non-empty input should not be empty")
	}
	if len(a.String()) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a.String()))
	}

	c := NewHash([]byte("other data"))
	if a.Equals(c) {
		t.Error("different inputs produced the same hash")
	}
}

func TestComputeRunFingerprint_TargetOrderInsensitive(t *testing.T) {
	ids := []string{"r1", "r2", "r3"}

	fp1 := ComputeRunFingerprint("stratified", "95%", []string{"age", "region"}, ids)
	fp2 := ComputeRunFingerprint("stratified", "95%", []string{"region", "age"}, ids)
	if fp1 != fp2 {
		t.Error("target order should not change the fingerprint")
	}
}

func TestComputeRunFingerprint_SensitiveInputs(t *testing.T) {
	targets := []string{"age"}
	ids := []string{"r1", "r2"}
	base := ComputeRunFingerprint("stratified", "95%", targets, ids)

	if got := ComputeRunFingerprint("cluster", "95%", targets, ids); got == base {
		t.Error("method change should change the fingerprint")
	}
	if got := ComputeRunFingerprint("stratified", "99%", targets, ids); got == base {
		t.Error("confidence level change should change the fingerprint")
	}
	// Weights are index-aligned with responses, so response order matters.
	if got := ComputeRunFingerprint("stratified", "95%", targets, []string{"r2", "r1"}); got == base {
		t.Error("response order change should change the fingerprint")
	}
}

func TestComputeRunFingerprint_DoesNotMutateTargets(t *testing.T) {
	targets := []string{"z", "a"}
	ComputeRunFingerprint("simple_random", "95%", targets, nil)
	if targets[0] != "z" || targets[1] != "a" {
		t.Errorf("caller's target slice was reordered: %v", targets)
	}
}
