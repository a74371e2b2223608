package report

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// lineHeaders are the column titles of a line item table.
var lineHeaders = []string{
	"Parts", "Value", "Manufacturer", "MFG PN", "Vendor PN",
	"Available", "In House", "Unit Price", "Qty", "Line Price",
}

// lineAlignment right-aligns the numeric columns.
var lineAlignment = []tw.Align{
	tw.AlignLeft, tw.AlignLeft, tw.AlignLeft, tw.AlignLeft, tw.AlignLeft,
	tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignRight,
}

// TableFormatter writes the report as bordered tables.
type TableFormatter struct{}

// Format implements the Formatter interface.
func (f *TableFormatter) Format(w io.Writer, r *Report) error {
	out := &errWriter{w: w}

	out.printf("All parts in design:\n\n")
	if out.err != nil {
		return out.err
	}
	if err := writeLineTable(w, Rows(r.Lines)); err != nil {
		return err
	}

	out.printf("\nMost expensive parts:\n\n")
	if out.err != nil {
		return out.err
	}
	if err := writeLineTable(w, Rows(r.MostExpensive)); err != nil {
		return err
	}

	out.printf("\nTotal price: %s\n", Money(r.Total))
	out.printf("\nPackages in use:\n\n")
	if out.err != nil {
		return out.err
	}

	packages := make([][]string, len(r.Packages))
	for i, p := range r.Packages {
		packages[i] = []string{p.Package, strings.Join(p.Parts, ",")}
	}
	return writeTable(w, []string{"Package", "Parts"}, packages, nil)
}

func writeLineTable(w io.Writer, rows []Row) error {
	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = append([]string{strings.Join(row.Parts, ",")}, row.cells()...)
	}
	return writeTable(w, lineHeaders, data, lineAlignment)
}

func writeTable(w io.Writer, headers []string, rows [][]string, align []tw.Align) error {
	config := tablewriter.Config{}
	if len(align) > 0 {
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	table.Header(header...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}

	return table.Render()
}
