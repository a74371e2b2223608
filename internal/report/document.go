package report

import (
	"encoding/json"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/eaglebom/internal/order"
	"github.com/ginjaninja78/eaglebom/internal/types"
)

// Document is the machine-readable form of a report.
type Document struct {
	Schematic     string          `json:"schematic" yaml:"schematic"`
	RunID         string          `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	GeneratedAt   time.Time       `json:"generated_at" yaml:"generated_at"`
	Individual    bool            `json:"individual" yaml:"individual"`
	Lines         []Row           `json:"lines" yaml:"lines"`
	MostExpensive []Row           `json:"most_expensive" yaml:"most_expensive"`
	Total         string          `json:"total" yaml:"total"`
	Packages      []PackageUse    `json:"packages" yaml:"packages"`
	Warnings      []types.Warning `json:"warnings" yaml:"warnings"`
	Order         *OrderSummary   `json:"order,omitempty" yaml:"order,omitempty"`
}

// OrderSummary is the order verification part of a Document.
type OrderSummary struct {
	Lines    []order.Line    `json:"lines" yaml:"lines"`
	Skipped  int             `json:"skipped" yaml:"skipped"`
	Warnings []types.Warning `json:"warnings" yaml:"warnings"`
}

// NewDocument builds the document for r.
func NewDocument(r *Report) Document {
	doc := Document{
		Schematic:     r.Schematic,
		RunID:         r.RunID,
		GeneratedAt:   r.GeneratedAt,
		Individual:    r.Individual,
		Lines:         Rows(r.Lines),
		MostExpensive: Rows(r.MostExpensive),
		Total:         Money(r.Total),
		Packages:      r.Packages,
		Warnings:      r.Warnings,
	}

	if doc.Packages == nil {
		doc.Packages = []PackageUse{}
	}
	if doc.Warnings == nil {
		doc.Warnings = []types.Warning{}
	}

	if r.Order != nil {
		doc.Order = &OrderSummary{
			Lines:    r.Order.Lines,
			Skipped:  r.Order.Skipped,
			Warnings: r.Order.Warnings,
		}
	}
	return doc
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(NewDocument(r))
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format implements the Formatter interface for YAML output.
func (f *YAMLFormatter) Format(w io.Writer, r *Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewDocument(r)); err != nil {
		return err
	}
	return encoder.Close()
}
