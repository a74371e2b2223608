// =============================================================================
// EagleBOM - Stock Reconciler
// =============================================================================
//
// The reconciler prices every line item against the stock catalog and
// reports where the schematic and the catalog disagree.
//
// PER LINE ITEM:
//   Found in stock:
//     - every member: package vs stock package, value vs stock value
//       (one warning per mismatching field per member)
//     - the representative: manufacturer vs stock manufacturer
//       (one warning per line)
//   Not found (or no vendor part number):
//     - one "not found in stock" warning, unit price zero
//
//   line price = unit price x member count
//   total      = sum of line prices, in line order
//
// =============================================================================

package stock

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/eaglebom/internal/grouper"
	"github.com/ginjaninja78/eaglebom/internal/types"
)

// PricedLine is a line item annotated with its stock match and price.
type PricedLine struct {
	grouper.LineItem

	// Stock is the matching catalog row, nil when the part is not stocked.
	Stock *types.StockPart

	// LinePrice is the unit price times the member count.
	LinePrice decimal.Decimal
}

// UnitPrice returns the stock unit price, zero when not stocked.
func (p PricedLine) UnitPrice() decimal.Decimal {
	if p.Stock == nil {
		return decimal.Zero
	}
	return p.Stock.UnitPrice
}

// Result is the outcome of reconciling line items against stock.
type Result struct {
	Lines    []PricedLine
	Total    decimal.Decimal
	Warnings []types.Warning
}

// Reconcile prices the line items and checks them against the index.
//
// PARAMETERS:
//   - items: The grouped line items, in report order.
//   - idx: The stock index.
//
// RETURNS:
//   - The priced lines in the same order, the running total and the
//     mismatch warnings.
func Reconcile(items []grouper.LineItem, idx *Index) Result {
	result := Result{
		Lines: make([]PricedLine, 0, len(items)),
		Total: decimal.Zero,
	}

	for _, item := range items {
		line := price(item, idx)
		result.Warnings = append(result.Warnings, check(line)...)
		result.Total = result.Total.Add(line.LinePrice)
		result.Lines = append(result.Lines, line)
	}

	return result
}

// MostExpensive ranks the grouped lines of entries by line price,
// highest first, and keeps the top n. The ranking always uses the grouped
// key, whatever grouping the main report uses. Equal prices keep the
// grouped order.
func MostExpensive(entries []types.BomEntry, idx *Index, n int) []PricedLine {
	items := grouper.Group(entries, false)

	lines := make([]PricedLine, len(items))
	for i, item := range items {
		lines[i] = price(item, idx)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].LinePrice.GreaterThan(lines[j].LinePrice)
	})

	if n >= 0 && len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

// price looks up the line's stock row and computes its price.
func price(item grouper.LineItem, idx *Index) PricedLine {
	line := PricedLine{LineItem: item, LinePrice: decimal.Zero}

	if part, ok := idx.Lookup(item.Representative().VendorPartNumber); ok {
		line.Stock = &part
		line.LinePrice = part.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity())))
	}
	return line
}

// check compares a priced line with its stock row.
func check(line PricedLine) []types.Warning {
	rep := line.Representative()

	if line.Stock == nil {
		subject := rep.VendorPartNumber
		if subject == "" {
			subject = rep.DeviceName
		}
		return []types.Warning{types.NewWarning(types.KindNotInStock, subject,
			"Part %s not found in stock", subject)}
	}

	stock := line.Stock
	var warnings []types.Warning

	for _, m := range line.Members {
		if m.Package() != stock.Package {
			warnings = append(warnings, types.NewWarning(types.KindPackageMismatch, m.Name,
				"Part %s package %s doesn't match stock spec %s (vendor PN %s)",
				m.Name, types.OrDash(m.Package()), types.OrDash(stock.Package), m.VendorPartNumber))
		}
		if m.Value != stock.Value {
			warnings = append(warnings, types.NewWarning(types.KindValueMismatch, m.Name,
				"Part %s value %s doesn't match stock spec %s (vendor PN %s)",
				m.Name, types.OrDash(m.Value), types.OrDash(stock.Value), m.VendorPartNumber))
		}
	}

	if rep.Manufacturer != stock.Manufacturer {
		warnings = append(warnings, types.NewWarning(types.KindManufacturerMismatch, rep.Name,
			"Part %s manufacturer %s doesn't match stock spec %s (vendor PN %s)",
			rep.Name, types.OrDash(rep.Manufacturer), types.OrDash(stock.Manufacturer), rep.VendorPartNumber))
	}

	return warnings
}
