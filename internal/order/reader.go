// =============================================================================
// EagleBOM - Order File Reader
// =============================================================================
//
// This module reads the purchase order to verify against the BOM. Two
// formats are accepted:
//   - CSV, as exported from the vendor's cart (*.csv and anything else)
//   - XLSX, the same table saved as a workbook (*.xlsx)
//
// TABLE LAYOUT:
//   The first non-empty row is the header. Column names are matched
//   case-insensitively against the configured part-number and quantity
//   columns ("Mouser No" and "Order Qty." by default). Every following
//   non-empty row is one order line.
//
// ERRORS:
//   - a missing required column is fatal (HeaderError)
//   - a quantity that is not an integer is fatal (ParseError)
//
// =============================================================================

package order

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ginjaninja78/eaglebom/internal/config"
	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

// Record is one line of the order file.
type Record struct {
	PartNumber string
	Quantity   int

	// Line is the 1-based line (or sheet row) the record came from.
	Line int
}

// Columns names the order columns to read.
type Columns struct {
	PartNumber string
	Quantity   string
}

// ColumnsFromConfig returns the configured order columns.
func ColumnsFromConfig(cfg config.OrderConfig) Columns {
	return Columns{
		PartNumber: cfg.PartNumberColumn,
		Quantity:   cfg.QuantityColumn,
	}
}

// ReadFile reads an order file, choosing the format by extension.
func ReadFile(path string, cols Columns) ([]Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, cols)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.NewFileError("order", path, err)
	}
	defer file.Close()

	return ParseCSV(file, filepath.Base(path), cols)
}

// byteOrderMark is written at the start of "CSV UTF-8" files by Excel.
const byteOrderMark = "\ufeff"

// ParseCSV reads CSV order lines from r. name is used in error messages.
//
// Fields are split on commas outside double quotes. The reader is
// line-based: a quoted field cannot span lines.
func ParseCSV(r io.Reader, name string, cols Columns) ([]Record, error) {
	var rows [][]string
	var lines []int

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNumber == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		rows = append(rows, SplitCSVLine(line))
		lines = append(lines, lineNumber)
	}
	if err := scanner.Err(); err != nil {
		return nil, pkgerrors.NewFileError("order", name, err)
	}

	return parseTable(rows, lines, name, cols)
}

// SplitCSVLine splits a line on commas that are not inside double quotes
// and strips the quotes surrounding a field.
func SplitCSVLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			field.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, unquote(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, unquote(field.String()))

	return fields
}

// unquote trims a field and removes one pair of surrounding quotes,
// collapsing doubled quotes inside.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return s
}

// parseTable applies the header and row rules to a table of cells.
//
// PARAMETERS:
//   - rows: The cells of every row.
//   - lines: The source line number of each row.
//   - name: The file name for error messages.
//   - cols: The columns to read.
func parseTable(rows [][]string, lines []int, name string, cols Columns) ([]Record, error) {
	var records []Record
	pnCol, qtyCol := -1, -1
	headerSeen := false

	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		if !headerSeen {
			headerSeen = true
			var err error
			pnCol, qtyCol, err = findColumns(row, name, cols)
			if err != nil {
				return nil, err
			}
			continue
		}

		pn := cell(row, pnCol)
		raw := cell(row, qtyCol)
		qty, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			return nil, pkgerrors.NewParseError(name, lines[i], "quantity", raw, "not an integer")
		}

		records = append(records, Record{PartNumber: pn, Quantity: qty, Line: lines[i]})
	}

	if !headerSeen {
		return nil, pkgerrors.NewHeaderError(name, cols.PartNumber)
	}
	return records, nil
}

// findColumns locates the required columns in the header row.
func findColumns(header []string, name string, cols Columns) (int, int, error) {
	index := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	pnCol, ok := index[strings.ToLower(cols.PartNumber)]
	if !ok {
		return -1, -1, pkgerrors.NewHeaderError(name, cols.PartNumber)
	}
	qtyCol, ok := index[strings.ToLower(cols.Quantity)]
	if !ok {
		return -1, -1, pkgerrors.NewHeaderError(name, cols.Quantity)
	}
	return pnCol, qtyCol, nil
}

// cell returns the trimmed cell at index i, or "" past the end of the row.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// String formats a record for debugging.
func (r Record) String() string {
	return fmt.Sprintf("%s x%d (line %d)", r.PartNumber, r.Quantity, r.Line)
}
