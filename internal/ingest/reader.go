// Package ingest reads the raw account and outbound datasets, normalizes
// them into model rows, and enriches outbound events from matched accounts.
package ingest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Format identifies a supported tabular input format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat resolves a format from an explicit flag value, falling back to
// the file extension. An empty flag with an unrecognized extension resolves
// to CSV.
func DetectFormat(flag, path string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "":
	default:
		return "", eris.Errorf("ingest: unsupported format %q", flag)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX, nil
	}
	return FormatCSV, nil
}

// Table is a parsed tabular file: one header row plus data rows. Rows may be
// ragged; column lookups treat missing cells as blank.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable parses a CSV or XLSX file into a Table.
func ReadTable(path string, format Format) (*Table, error) {
	switch format {
	case FormatCSV:
		return readCSV(path)
	case FormatXLSX:
		return readXLSX(path)
	default:
		return nil, eris.Errorf("ingest: unsupported format %q", format)
	}
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("ingest: csv is empty")
	}

	for _, row := range records {
		for i, field := range row {
			row[i] = strings.TrimSpace(field)
		}
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}

func readXLSX(path string) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("ingest: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("ingest: xlsx sheet is empty")
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = strings.TrimSpace(cell.String())
		}
		rows = append(rows, cells)
	}

	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}

// columnIndex maps trimmed header names to positions.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	return idx
}

// getCol safely retrieves a column value from a row.
func getCol(row []string, colIdx map[string]int, col string) string {
	idx, ok := colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
