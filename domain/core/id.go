package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SurveyID    ID
	ResponseID  ID
	RunID       ID
	VariableKey ID
)

// String conversions for domain IDs
func (id SurveyID) String() string    { return ID(id).String() }
func (id ResponseID) String() string  { return ID(id).String() }
func (id RunID) String() string       { return ID(id).String() }
func (id VariableKey) String() string { return ID(id).String() }

// NewRunID creates a fresh identifier for one analysis run
func NewRunID() RunID {
	return RunID(NewID())
}

// NewResponseID creates a fresh identifier for a response record
func NewResponseID() ResponseID {
	return ResponseID(NewID())
}

// ParseSurveyID parses a string into SurveyID
func ParseSurveyID(s string) (SurveyID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("survey ID cannot be empty")
	}
	return SurveyID(s), nil
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseVariableKey parses a string into VariableKey
func ParseVariableKey(s string) (VariableKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("variable key cannot be empty")
	}
	return VariableKey(s), nil
}

// VariableKeys converts plain field names into typed keys, skipping blanks.
func VariableKeys(names []string) []VariableKey {
	keys := make([]VariableKey, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		keys = append(keys, VariableKey(name))
	}
	return keys
}
