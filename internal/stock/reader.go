// =============================================================================
// EagleBOM - Stock File Reader
// =============================================================================
//
// This file reads the vendor stock catalog: a tab-delimited text file with
// one part per line.
//
// LINE FORMAT (empty fields are dropped before counting):
//   [0] vendor part number
//   [1] quantity      "available" or "available/in-house"
//   [2] unit price
//   [3] package
//   [4] value         "-" means no value
//   [5] manufacturer
//   [6] description
//
// Lines with fewer than seven fields are skipped. Unparseable quantities and
// prices read as zero: the report is more useful with a zero than with no
// report at all.
//
// =============================================================================

package stock

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/eaglebom/internal/types"
	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

// minFields is the number of non-empty fields a stock line needs.
const minFields = 7

// ReadFile reads a stock file from disk.
func ReadFile(path string) ([]types.StockPart, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.NewFileError("stock", path, err)
	}
	defer file.Close()

	parts, err := Parse(file)
	if err != nil {
		return nil, pkgerrors.NewFileError("stock", path, err)
	}
	return parts, nil
}

// Parse reads stock lines from r.
func Parse(r io.Reader) ([]types.StockPart, error) {
	var parts []types.StockPart

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		line := scanner.Text()
		if lineNumber == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		part, ok := parseLine(line)
		if !ok {
			continue
		}
		part.Line = lineNumber
		parts = append(parts, part)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", lineNumber+1, err)
	}
	return parts, nil
}

// parseLine converts one line. The boolean is false for lines that do not
// describe a part.
func parseLine(line string) (types.StockPart, bool) {
	tokens := splitFields(line)
	if len(tokens) < minFields {
		return types.StockPart{}, false
	}

	part := types.StockPart{
		VendorPartNumber: tokens[0],
		UnitPrice:        parsePrice(tokens[2]),
		Package:          normalize(tokens[3]),
		Value:            normalize(tokens[4]),
		Manufacturer:     tokens[5],
		Description:      tokens[6],
	}
	part.QuantityAvailable, part.QuantityInHouse = parseQuantity(tokens[1])

	return part, true
}

// splitFields splits on tabs, trims every field and drops empty ones.
func splitFields(line string) []string {
	raw := strings.Split(strings.TrimRight(line, "\r"), "\t")
	fields := make([]string, 0, len(raw))
	for _, f := range raw {
		if f == "" {
			continue
		}
		fields = append(fields, strings.TrimSpace(f))
	}
	return fields
}

// parseQuantity parses "available" or "available/in-house".
func parseQuantity(field string) (available, inHouse uint64) {
	pieces := strings.Split(field, "/")
	available = parseCount(pieces[0])
	if len(pieces) >= 2 {
		inHouse = parseCount(pieces[1])
	}
	return available, inHouse
}

func parseCount(s string) uint64 {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parsePrice parses a unit price. Invalid or negative prices read as zero.
func parsePrice(s string) decimal.Decimal {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// normalize maps the placeholder tokens to "absent".
func normalize(s string) string {
	if s == "-" {
		return ""
	}
	return s
}
