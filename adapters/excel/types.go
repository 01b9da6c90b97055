package excel

// RawRow represents one data row as string key-value pairs, keyed by header
type RawRow map[string]string

// TableData represents a parsed tabular file
type TableData struct {
	Headers []string // Column headers
	Rows    []RawRow // Data rows
}

// Reserved columns recognized during ingestion. Every other column
// becomes a response data field.
const (
	ColumnID             = "id"
	ColumnIsComplete     = "is_complete"
	ColumnCompletionTime = "completion_time"
)

// ListSeparator splits multi-select cells into value lists
const ListSeparator = ";"
