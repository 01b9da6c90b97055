package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// RunFingerprint identifies the inputs of one analysis run. Two runs over the
// same responses, method, confidence level, and targets share a fingerprint.
type RunFingerprint Hash

// String returns the string representation
func (h RunFingerprint) String() string { return Hash(h).String() }

// ComputeRunFingerprint hashes the analysis inputs. Target variables are
// sorted so request ordering does not change the fingerprint; response IDs
// keep their order because the weight vector is index-aligned with them.
func ComputeRunFingerprint(method, confidenceLevel string, targets []string, responseIDs []string) RunFingerprint {
	sorted := make([]string, len(targets))
	copy(sorted, targets)
	sort.Strings(sorted)

	var data strings.Builder
	data.WriteString(method)
	data.WriteByte('|')
	data.WriteString(confidenceLevel)
	data.WriteByte('|')
	for _, t := range sorted {
		data.WriteString(t)
		data.WriteByte(',')
	}
	data.WriteByte('|')
	for _, id := range responseIDs {
		data.WriteString(id)
		data.WriteByte(',')
	}

	return RunFingerprint(NewHash([]byte(data.String())))
}
