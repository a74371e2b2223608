// =============================================================================
// EagleBOM - XLSX Export
// =============================================================================
//
// The export writes the report to a workbook for purchasing:
//
//   BOM             one row per line item, then the total
//   Most Expensive  the price ranking
//   Packages        package -> parts
//   Warnings        every warning, order warnings included
//
// Quantities and prices are written as numbers so they can be summed in a
// spreadsheet.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/eaglebom/internal/stock"
)

// Sheet names of the exported workbook.
const (
	SheetBOM           = "BOM"
	SheetMostExpensive = "Most Expensive"
	SheetPackages      = "Packages"
	SheetWarnings      = "Warnings"
)

// exportHeaders are the line item columns of the BOM sheets.
var exportHeaders = []any{
	"Parts", "Value", "Manufacturer", "MFG PN", "Vendor PN", "Package",
	"Available", "In House", "Unit Price", "Qty", "Line Price",
}

// ExportXLSX writes r to a new workbook at path.
//
// PARAMETERS:
//   - path: The workbook to create. An existing file is overwritten.
//   - r: The report.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func ExportXLSX(path string, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetBOM); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetMostExpensive, SheetPackages, SheetWarnings} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	// BOM
	if err := writeSheet(f, SheetBOM, exportHeaders, lineRows(r.Lines), bold); err != nil {
		return err
	}
	totalCell, err := excelize.CoordinatesToCellName(len(exportHeaders)-1, len(r.Lines)+3)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetBOM, totalCell, &[]any{"Total", r.Total.InexactFloat64()}); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	// Most Expensive
	if err := writeSheet(f, SheetMostExpensive, exportHeaders, lineRows(r.MostExpensive), bold); err != nil {
		return err
	}

	// Packages
	packages := make([][]any, len(r.Packages))
	for i, p := range r.Packages {
		packages[i] = []any{p.Package, len(p.Parts), strings.Join(p.Parts, ",")}
	}
	if err := writeSheet(f, SheetPackages, []any{"Package", "Count", "Parts"}, packages, bold); err != nil {
		return err
	}

	// Warnings
	warnings := make([][]any, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		warnings = append(warnings, []any{string(w.Kind), w.Subject, w.Message})
	}
	if r.Order != nil {
		for _, w := range r.Order.Warnings {
			warnings = append(warnings, []any{string(w.Kind), w.Subject, w.Message})
		}
	}
	if err := writeSheet(f, SheetWarnings, []any{"Kind", "Subject", "Message"}, warnings, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// lineRows converts priced lines to spreadsheet cells. Stock columns stay
// empty for parts that are not stocked.
func lineRows(lines []stock.PricedLine) [][]any {
	out := make([][]any, len(lines))
	for i, line := range lines {
		row := NewRow(line)

		var available, inHouse, unit any
		if row.InStock {
			available = row.QuantityAvailable
			inHouse = row.QuantityInHouse
			unit = line.UnitPrice().InexactFloat64()
		}

		out[i] = []any{
			strings.Join(row.Parts, ","),
			row.Value,
			row.Manufacturer,
			row.ManufacturerPartNumber,
			row.VendorPartNumber,
			row.Package,
			available,
			inHouse,
			unit,
			row.Quantity,
			line.LinePrice.InexactFloat64(),
		}
	}
	return out
}

// writeSheet writes a bold header row followed by the data rows.
func writeSheet(f *excelize.File, sheet string, headers []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
