// =============================================================================
// EagleBOM - Report Assembler
// =============================================================================
//
// This package turns the reconciled BOM into output. A Report collects every
// result of a run; a Formatter writes it to the report stream in one of the
// supported formats, and the diagnostics helpers write the warnings.
//
// REPORT SECTIONS:
//   1. All parts in design      (one row per line item)
//   2. Most expensive parts     (top N lines by line price)
//   3. Total price
//   4. Packages in use          (package -> part names)
//
// FORMATS:
//   text   fixed-width columns, part names wrapped across rows
//   table  bordered tables (tablewriter)
//   json   one JSON document
//   yaml   one YAML document
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/eaglebom/internal/natsort"
	"github.com/ginjaninja78/eaglebom/internal/order"
	"github.com/ginjaninja78/eaglebom/internal/stock"
	"github.com/ginjaninja78/eaglebom/internal/types"
	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

// =============================================================================
// REPORT
// =============================================================================

// Report holds everything a run produced.
type Report struct {
	// Schematic is the schematic file the report was built from.
	Schematic string

	RunID       string
	GeneratedAt time.Time

	// Individual is true when lines were grouped per instance.
	Individual bool

	// Lines are the priced line items in report order.
	Lines []stock.PricedLine

	// MostExpensive is the price ranking, always grouped.
	MostExpensive []stock.PricedLine

	Total decimal.Decimal

	Packages []PackageUse

	// Warnings are the BOM and stock warnings, in the order raised.
	Warnings []types.Warning

	// Order is nil when no order file was checked.
	Order *order.Result
}

// PackageUse lists the parts placed with one package.
type PackageUse struct {
	Package string   `json:"package" yaml:"package"`
	Parts   []string `json:"parts" yaml:"parts"`
}

// BuildPackages maps each package to the entries using it. Entries without
// a resolved device or package are left out. Packages and the part names of
// each package are in natural order.
func BuildPackages(entries []types.BomEntry) []PackageUse {
	byPackage := make(map[string][]string)
	for _, e := range entries {
		pkg := e.Package()
		if pkg == "" {
			continue
		}
		byPackage[pkg] = append(byPackage[pkg], e.Name)
	}

	packages := make([]PackageUse, 0, len(byPackage))
	for pkg, parts := range byPackage {
		natsort.Strings(parts)
		packages = append(packages, PackageUse{Package: pkg, Parts: parts})
	}
	sort.SliceStable(packages, func(i, j int) bool {
		return natsort.Less(packages[i].Package, packages[j].Package)
	})
	return packages
}

// =============================================================================
// ROWS
// =============================================================================

// Row is the flat view of a priced line shared by every format.
type Row struct {
	Parts                  []string `json:"parts" yaml:"parts"`
	Value                  string   `json:"value,omitempty" yaml:"value,omitempty"`
	Manufacturer           string   `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	ManufacturerPartNumber string   `json:"manufacturer_pn,omitempty" yaml:"manufacturer_pn,omitempty"`
	VendorPartNumber       string   `json:"vendor_pn,omitempty" yaml:"vendor_pn,omitempty"`
	Package                string   `json:"package,omitempty" yaml:"package,omitempty"`

	// InStock is false when the vendor part number has no stock row.
	InStock           bool   `json:"in_stock" yaml:"in_stock"`
	QuantityAvailable uint64 `json:"quantity_available" yaml:"quantity_available"`
	QuantityInHouse   uint64 `json:"quantity_in_house" yaml:"quantity_in_house"`
	UnitPrice         string `json:"unit_price" yaml:"unit_price"`

	Quantity  int    `json:"quantity" yaml:"quantity"`
	LinePrice string `json:"line_price" yaml:"line_price"`
}

// NewRow flattens a priced line.
func NewRow(line stock.PricedLine) Row {
	rep := line.Representative()

	row := Row{
		Parts:                  line.Names(),
		Value:                  rep.Value,
		Manufacturer:           rep.Manufacturer,
		ManufacturerPartNumber: rep.ManufacturerPartNumber,
		VendorPartNumber:       rep.VendorPartNumber,
		Package:                rep.Package(),
		UnitPrice:              Money(line.UnitPrice()),
		Quantity:               line.Quantity(),
		LinePrice:              Money(line.LinePrice),
	}

	if line.Stock != nil {
		row.InStock = true
		row.QuantityAvailable = line.Stock.QuantityAvailable
		row.QuantityInHouse = line.Stock.QuantityInHouse
	}
	return row
}

// Rows flattens a list of priced lines.
func Rows(lines []stock.PricedLine) []Row {
	rows := make([]Row, len(lines))
	for i, l := range lines {
		rows[i] = NewRow(l)
	}
	return rows
}

// cells returns the display columns of a row. Stock columns are blank when
// the part is not stocked.
func (r Row) cells() []string {
	available, inHouse, unit := "", "", ""
	if r.InStock {
		available = strconv.FormatUint(r.QuantityAvailable, 10)
		inHouse = strconv.FormatUint(r.QuantityInHouse, 10)
		unit = r.UnitPrice
	}

	return []string{
		types.OrDash(r.Value),
		r.Manufacturer,
		r.ManufacturerPartNumber,
		r.VendorPartNumber,
		available,
		inHouse,
		unit,
		strconv.Itoa(r.Quantity),
		r.LinePrice,
	}
}

// Money formats an amount with two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// =============================================================================
// FORMATS
// =============================================================================

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatXML   Format = "xml"
)

// ParseFormat validates a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON, FormatYAML, FormatXML:
		return format, nil
	default:
		return "", pkgerrors.NewConfigError("report.format",
			fmt.Sprintf("invalid format %q: must be one of: text, table, json, yaml, xml", s))
	}
}

// Options control layout.
type Options struct {
	// NameListWidth is where the text format wraps a line's part names.
	NameListWidth int

	// PackageListWidth is where the text format wraps a package's part names.
	PackageListWidth int
}

// DefaultOptions returns the standard layout.
func DefaultOptions() Options {
	return Options{NameListWidth: 28, PackageListWidth: 100}
}

// Formatter writes a report to the report stream.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, *Report) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, r *Report) error {
	return f(w, r)
}

// NewFormatter returns the formatter for format.
func NewFormatter(format Format, opts Options) Formatter {
	switch format {
	case FormatTable:
		return &TableFormatter{}
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatXML:
		return &XMLFormatter{Indent: "  "}
	default:
		return &TextFormatter{Options: opts}
	}
}
