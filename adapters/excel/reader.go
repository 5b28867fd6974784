// Package excel reads forcing datasets from Excel and CSV files. It is the
// external data-loading collaborator: everything downstream consumes the
// validated forcing.Dataset it produces.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"etbench/domain/forcing"
)

// timestampLayouts are tried in order when parsing the time column.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01-02-06", // excelize default date rendering
}

// ForcingReader handles reading Excel and CSV forcing files. The first column
// must be the timestamp axis; remaining header cells name forcing variables.
type ForcingReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewForcingReader creates a reader for the given file, switching on extension.
func NewForcingReader(filePath string) *ForcingReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &ForcingReader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a validated forcing dataset.
func (r *ForcingReader) Read() (*forcing.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("forcing file not found: %s", r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("forcing file must have a header row and at least one data row")
	}
	return r.processRows(rows)
}

func (r *ForcingReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read first sheet: %w", err)
	}
	log.Printf("[ForcingReader] read %d rows from %s", len(rows), r.filePath)
	return rows, nil
}

func (r *ForcingReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	log.Printf("[ForcingReader] read %d rows from %s", len(rows), r.filePath)
	return rows, nil
}

// processRows maps the header onto variable keys and parses each data row.
// Unparseable numeric cells become NaN; the statistics layer's pairwise
// NaN policy handles them downstream.
func (r *ForcingReader) processRows(rows [][]string) (*forcing.Dataset, error) {
	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("header must have a timestamp column and at least one variable")
	}

	keys := make([]forcing.VariableKey, 0, len(header)-1)
	for _, cell := range header[1:] {
		key := forcing.VariableKey(strings.TrimSpace(cell))
		if !forcing.IsKnownVariable(key) {
			log.Printf("[ForcingReader] column %q is outside the known vocabulary", key)
		}
		keys = append(keys, key)
	}

	dataRows := rows[1:]
	times := make([]time.Time, 0, len(dataRows))
	columns := make(map[forcing.VariableKey][]float64, len(keys))
	for _, key := range keys {
		columns[key] = make([]float64, 0, len(dataRows))
	}

	for rowIdx, row := range dataRows {
		if len(row) == 0 {
			continue
		}
		ts, err := parseTimestamp(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIdx+2, err)
		}
		times = append(times, ts)

		for colIdx, key := range keys {
			value := math.NaN()
			if colIdx+1 < len(row) {
				if parsed, err := strconv.ParseFloat(strings.TrimSpace(row[colIdx+1]), 64); err == nil {
					value = parsed
				}
			}
			columns[key] = append(columns[key], value)
		}
	}

	return forcing.New(times, columns)
}

func parseTimestamp(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", cell)
}
