// =============================================================================
// EagleBOM - XML Report
// =============================================================================
//
// XML STRUCTURE:
//
//   <bom schematic="amp.sch" run_id="..." generated_at="...">
//     <line n="1">                       <!-- One element per line item -->
//       <parts>R1, R2</parts>
//       <value>10k</value>
//       ...
//     </line>
//     <mostExpensive>
//       <line n="1">...</line>
//     </mostExpensive>
//     <total>1.23</total>
//     <packages>
//       <package name="0402">R1, R2</package>
//     </packages>
//     <warnings>
//       <warning kind="not_in_stock" subject="R3">...</warning>
//     </warnings>
//     <order skipped="0">                <!-- Only with order verification -->
//       <item partNumber="VPN1" outcome="matched" want="2" have="2"/>
//     </order>
//   </bom>
//
// Line items are numbered from 1 in each list.
//
// =============================================================================

package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ginjaninja78/eaglebom/internal/types"
)

type xmlBOM struct {
	XMLName       xml.Name     `xml:"bom"`
	Schematic     string       `xml:"schematic,attr"`
	RunID         string       `xml:"run_id,attr,omitempty"`
	GeneratedAt   string       `xml:"generated_at,attr"`
	Individual    bool         `xml:"individual,attr"`
	Lines         []xmlLine    `xml:"line"`
	MostExpensive []xmlLine    `xml:"mostExpensive>line"`
	Total         string       `xml:"total"`
	Packages      []xmlPackage `xml:"packages>package"`
	Warnings      []xmlWarning `xml:"warnings>warning"`
	Order         *xmlOrder    `xml:"order"`
}

type xmlLine struct {
	N                      int    `xml:"n,attr"`
	Parts                  string `xml:"parts"`
	Value                  string `xml:"value,omitempty"`
	Manufacturer           string `xml:"manufacturer,omitempty"`
	ManufacturerPartNumber string `xml:"manufacturerPartNumber,omitempty"`
	VendorPartNumber       string `xml:"vendorPartNumber,omitempty"`
	Package                string `xml:"package,omitempty"`
	InStock                bool   `xml:"inStock"`
	QuantityAvailable      uint64 `xml:"quantityAvailable,omitempty"`
	QuantityInHouse        uint64 `xml:"quantityInHouse,omitempty"`
	UnitPrice              string `xml:"unitPrice,omitempty"`
	Quantity               int    `xml:"quantity"`
	LinePrice              string `xml:"linePrice"`
}

type xmlPackage struct {
	Name  string `xml:"name,attr"`
	Parts string `xml:",chardata"`
}

type xmlWarning struct {
	Kind    string `xml:"kind,attr"`
	Subject string `xml:"subject,attr,omitempty"`
	Message string `xml:",chardata"`
}

type xmlOrder struct {
	Skipped  int            `xml:"skipped,attr"`
	Items    []xmlOrderItem `xml:"item"`
	Warnings []xmlWarning   `xml:"warning"`
}

type xmlOrderItem struct {
	PartNumber string `xml:"partNumber,attr"`
	Outcome    string `xml:"outcome,attr"`
	Want       int    `xml:"want,attr"`
	Have       int    `xml:"have,attr"`
}

// XMLFormatter outputs XML format.
type XMLFormatter struct {
	// Indent is the indentation string. Empty writes a single line.
	Indent string

	// OmitDeclaration drops the <?xml ...?> header.
	OmitDeclaration bool
}

// Format implements the Formatter interface for XML output.
func (f *XMLFormatter) Format(w io.Writer, r *Report) error {
	if !f.OmitDeclaration {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
	}

	encoder := xml.NewEncoder(w)
	if f.Indent != "" {
		encoder.Indent("", f.Indent)
	}
	if err := encoder.Encode(buildXML(r)); err != nil {
		return fmt.Errorf("failed to marshal XML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// buildXML converts the report into its XML document.
func buildXML(r *Report) xmlBOM {
	doc := NewDocument(r)

	out := xmlBOM{
		Schematic:     doc.Schematic,
		RunID:         doc.RunID,
		GeneratedAt:   doc.GeneratedAt.Format(time.RFC3339),
		Individual:    doc.Individual,
		Lines:         xmlLines(doc.Lines),
		MostExpensive: xmlLines(doc.MostExpensive),
		Total:         doc.Total,
	}

	for _, p := range doc.Packages {
		out.Packages = append(out.Packages, xmlPackage{
			Name:  p.Package,
			Parts: strings.Join(p.Parts, ", "),
		})
	}
	out.Warnings = xmlWarnings(doc.Warnings)

	if doc.Order != nil {
		o := &xmlOrder{Skipped: doc.Order.Skipped, Warnings: xmlWarnings(doc.Order.Warnings)}
		for _, l := range doc.Order.Lines {
			o.Items = append(o.Items, xmlOrderItem{
				PartNumber: l.PartNumber,
				Outcome:    string(l.Outcome),
				Want:       l.Want,
				Have:       l.Have,
			})
		}
		out.Order = o
	}
	return out
}

func xmlLines(rows []Row) []xmlLine {
	lines := make([]xmlLine, len(rows))
	for i, row := range rows {
		lines[i] = xmlLine{
			N:                      i + 1,
			Parts:                  strings.Join(row.Parts, ", "),
			Value:                  row.Value,
			Manufacturer:           row.Manufacturer,
			ManufacturerPartNumber: row.ManufacturerPartNumber,
			VendorPartNumber:       row.VendorPartNumber,
			Package:                row.Package,
			InStock:                row.InStock,
			QuantityAvailable:      row.QuantityAvailable,
			QuantityInHouse:        row.QuantityInHouse,
			UnitPrice:              row.UnitPrice,
			Quantity:               row.Quantity,
			LinePrice:              row.LinePrice,
		}
	}
	return lines
}

func xmlWarnings(warnings []types.Warning) []xmlWarning {
	out := make([]xmlWarning, len(warnings))
	for i, w := range warnings {
		out[i] = xmlWarning{Kind: string(w.Kind), Subject: w.Subject, Message: w.Message}
	}
	return out
}
