package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"surveystat/domain/survey"
)

// ResponseWriter exports response records back into tabular files, mostly
// for seeding fixture data
type ResponseWriter struct{}

// NewResponseWriter creates a writer for survey response files
func NewResponseWriter() *ResponseWriter {
	return &ResponseWriter{}
}

// WriteResponses writes records to the path, picking the format by extension
func (w *ResponseWriter) WriteResponses(path string, records []survey.ResponseRecord) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return w.writeWorkbook(path, records)
	case ".csv":
		return w.writeCSV(path, records)
	default:
		return fmt.Errorf("unsupported file type: %s", ext)
	}
}

// writeWorkbook writes records to the first sheet of a new workbook
func (w *ResponseWriter) writeWorkbook(path string, records []survey.ResponseRecord) error {
	headers := responseHeaders(records)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		values := responseCells(record, headers)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

// writeCSV writes records as comma-separated values
func (w *ResponseWriter) writeCSV(path string, records []survey.ResponseRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	headers := responseHeaders(records)
	writer := csv.NewWriter(file)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(responseRow(record, headers)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// responseHeaders builds a stable column order: reserved columns first,
// then every data field seen across records, sorted
func responseHeaders(records []survey.ResponseRecord) []string {
	seen := make(map[string]bool)
	for _, record := range records {
		for field := range record.Data {
			seen[field] = true
		}
	}

	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	headers := []string{ColumnID, ColumnIsComplete, ColumnCompletionTime}
	return append(headers, fields...)
}

// responseCells renders one record as native cell values so numbers and
// booleans keep their Excel types
func responseCells(record survey.ResponseRecord, headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, header := range headers {
		switch header {
		case ColumnID:
			cells[i] = record.ID.String()
		case ColumnIsComplete:
			cells[i] = record.IsComplete
		case ColumnCompletionTime:
			cells[i] = record.CompletionTime
		default:
			switch v := record.Data[header].(type) {
			case nil:
				cells[i] = ""
			case []interface{}:
				cells[i] = formatCell(v)
			default:
				cells[i] = v
			}
		}
	}
	return cells
}

// responseRow renders one record in header order
func responseRow(record survey.ResponseRecord, headers []string) []string {
	row := make([]string, len(headers))
	for i, header := range headers {
		switch header {
		case ColumnID:
			row[i] = record.ID.String()
		case ColumnIsComplete:
			row[i] = strconv.FormatBool(record.IsComplete)
		case ColumnCompletionTime:
			row[i] = strconv.FormatFloat(record.CompletionTime, 'g', -1, 64)
		default:
			row[i] = formatCell(record.Data[header])
		}
	}
	return row
}

// formatCell renders a typed value back into cell text, the inverse of
// coerceCell
func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, formatCell(item))
		}
		return strings.Join(parts, ListSeparator)
	default:
		return fmt.Sprintf("%v", v)
	}
}
