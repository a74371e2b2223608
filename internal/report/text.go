package report

import (
	"fmt"
	"io"
	"strings"
)

// rowFormat lays out one report row: names, value, manufacturer, MFG PN,
// vendor PN, available, in house, unit price, count, line price.
const rowFormat = "%-30s%-13s%-30s%-30s%-25s%10s%10s%8s%5s%8s\n"

// packageFormat lays out one row of the packages section.
const packageFormat = "    %-60s%s\n"

// TextFormatter writes the fixed-width text report.
type TextFormatter struct {
	Options Options
}

// Format implements the Formatter interface.
func (f *TextFormatter) Format(w io.Writer, r *Report) error {
	out := &errWriter{w: w}

	out.printf("All parts in design:\n\n")
	for _, line := range r.Lines {
		f.writeRow(out, NewRow(line))
	}

	out.printf("\nMost expensive parts:\n\n")
	for _, line := range r.MostExpensive {
		row := NewRow(line)
		out.printf(rowFormat, rowArgs(strings.Join(row.Parts, ","), row)...)
	}

	out.printf("\nTotal price: %s\n", Money(r.Total))

	out.printf("\nPackages in use:\n\n")
	for _, p := range r.Packages {
		for i, chunk := range wrap(p.Parts, f.Options.PackageListWidth) {
			label := ""
			if i == 0 {
				label = p.Package
			}
			out.printf(packageFormat, label, chunk)
		}
	}

	return out.err
}

// writeRow writes a line item. The first row carries the columns; the
// remaining part names follow on their own rows.
func (f *TextFormatter) writeRow(out *errWriter, row Row) {
	names := WrapNames(row.Parts, f.Options.NameListWidth)

	out.printf(rowFormat, rowArgs(names[0], row)...)
	for _, rest := range names[1:] {
		out.printf("%s\n", rest)
	}
}

func rowArgs(names string, row Row) []any {
	args := []any{names}
	for _, c := range row.cells() {
		args = append(args, c)
	}
	return args
}

// WrapNames splits a comma-separated name list into rows no longer than
// width. Every row but the last ends in ",". A single name longer than
// width gets a row of its own.
func WrapNames(names []string, width int) []string {
	rows := wrap(names, width)
	for i := 0; i < len(rows)-1; i++ {
		rows[i] += ","
	}
	return rows
}

// wrap joins items with "," and starts a new chunk whenever the next item
// would push the current one past width. It always returns at least one
// chunk.
func wrap(items []string, width int) []string {
	var chunks []string
	current := ""

	for _, item := range items {
		switch {
		case current == "":
			current = item
		case len(current)+1+len(item) > width:
			chunks = append(chunks, current)
			current = item
		default:
			current += "," + item
		}
	}
	return append(chunks, current)
}

// errWriter remembers the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
