package excel

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"surveystat/domain/core"
	"surveystat/domain/survey"
	"surveystat/internal"
	"surveystat/ports"
)

// ResponseReader loads survey responses from tabular files. It handles
// .xlsx workbooks, .csv exports, and .json response dumps.
type ResponseReader struct {
	logger *internal.Logger
}

var _ ports.ResponseSourcePort = (*ResponseReader)(nil)

// NewResponseReader creates a reader for survey response files
func NewResponseReader(logger *internal.Logger) *ResponseReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ResponseReader{logger: logger}
}

// LoadResponses reads a response file into records. The file format is
// chosen by extension.
func (r *ResponseReader) LoadResponses(path string) ([]survey.ResponseRecord, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("response file not found: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return r.readWorkbook(path)
	case ".csv":
		return r.readCSV(path)
	case ".json":
		return r.readJSON(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// readWorkbook reads the first sheet of an Excel workbook
func (r *ResponseReader) readWorkbook(path string) ([]survey.ResponseRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	table, err := tableFromRows(rows)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("loaded %d rows x %d columns from %s", len(table.Rows), len(table.Headers), path)
	return r.recordsFromTable(table), nil
}

// readCSV reads a comma-separated response export
func (r *ResponseReader) readCSV(path string) ([]survey.ResponseRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	table, err := tableFromRows(rows)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("loaded %d rows x %d columns from %s", len(table.Rows), len(table.Headers), path)
	return r.recordsFromTable(table), nil
}

// readJSON reads an array of response objects. JSON values keep their
// native types, so no cell coercion happens here.
func (r *ResponseReader) readJSON(path string) ([]survey.ResponseRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON responses: %w", err)
	}

	records := make([]survey.ResponseRecord, 0, len(rows))
	for _, row := range rows {
		record := survey.ResponseRecord{
			Data:       make(map[string]interface{}, len(row)),
			IsComplete: true,
		}
		for key, value := range row {
			switch key {
			case ColumnID:
				if s, ok := value.(string); ok && s != "" {
					record.ID = core.ResponseID(s)
				}
			case ColumnIsComplete:
				if b, ok := value.(bool); ok {
					record.IsComplete = b
				}
			case ColumnCompletionTime:
				if f, ok := value.(float64); ok {
					record.CompletionTime = f
				}
			default:
				record.Data[key] = value
			}
		}
		if record.ID == "" {
			record.ID = core.NewResponseID()
		}
		records = append(records, record)
	}

	r.logger.Debug("loaded %d responses from %s", len(records), path)
	return records, nil
}

// tableFromRows converts raw string rows into a header-keyed table
func tableFromRows(rows [][]string) (*TableData, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("response file must have a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []RawRow
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRow)
		for j, cell := range rows[i] {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &TableData{Headers: headers, Rows: dataRows}, nil
}

// recordsFromTable converts table rows into response records, coercing
// cell text into typed values
func (r *ResponseReader) recordsFromTable(table *TableData) []survey.ResponseRecord {
	records := make([]survey.ResponseRecord, 0, len(table.Rows))

	for _, row := range table.Rows {
		record := survey.ResponseRecord{
			Data:       make(map[string]interface{}),
			IsComplete: true,
		}

		for _, header := range table.Headers {
			cell, exists := row[header]
			if !exists {
				continue
			}
			switch header {
			case ColumnID:
				if cell != "" {
					record.ID = core.ResponseID(cell)
				}
			case ColumnIsComplete:
				if b, err := strconv.ParseBool(strings.ToLower(cell)); err == nil {
					record.IsComplete = b
				}
			case ColumnCompletionTime:
				if f, err := strconv.ParseFloat(cell, 64); err == nil {
					record.CompletionTime = f
				}
			default:
				record.Data[header] = coerceCell(cell)
			}
		}

		if record.ID == "" {
			record.ID = core.NewResponseID()
		}
		records = append(records, record)
	}

	return records
}

// coerceCell converts cell text into the value type the engine expects.
// Numbers become float64, true/false become bool, semicolon-separated
// cells become lists, empty cells become nil (treated as missing).
func coerceCell(cell string) interface{} {
	if cell == "" {
		return nil
	}

	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}

	if strings.EqualFold(cell, "true") {
		return true
	}
	if strings.EqualFold(cell, "false") {
		return false
	}

	if strings.Contains(cell, ListSeparator) {
		parts := strings.Split(cell, ListSeparator)
		list := make([]interface{}, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				list = append(list, coerceCell(trimmed))
			}
		}
		return list
	}

	return cell
}
