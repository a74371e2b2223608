// =============================================================================
// EagleBOM - Order Reconciler
// =============================================================================
//
// The reconciler compares what the BOM needs with what the order buys.
//
//   have   = order quantities summed per part number
//            (a repeated part number is a warning, its quantities add up)
//   demand = BOM entries counted per vendor part number, times copies
//
// Every demand key is visited once, in BOM order:
//   - not in have        -> missing
//   - in have, qty differs -> quantity mismatch
//   - either way the key is removed from have
// Whatever is left in have is extra, reported in order-file order.
//
// Entries without a vendor part number cannot be ordered; they are counted
// and reported once instead of being treated as a demand key.
//
// =============================================================================

package order

import (
	"github.com/ginjaninja78/eaglebom/internal/types"
)

// Outcome classifies a demand key or leftover order line.
type Outcome string

// Outcomes of order reconciliation.
const (
	OutcomeMatched    Outcome = "matched"
	OutcomeMissing    Outcome = "missing"
	OutcomeMismatched Outcome = "mismatched"
	OutcomeExtra      Outcome = "extra"
)

// Line is the reconciliation result for one part number.
type Line struct {
	PartNumber string  `json:"part_number" yaml:"part_number"`
	Outcome    Outcome `json:"outcome" yaml:"outcome"`
	Want       int     `json:"want" yaml:"want"`
	Have       int     `json:"have" yaml:"have"`
}

// Result is the outcome of order reconciliation.
type Result struct {
	// Lines holds one line per demand key in BOM order, then one per
	// extra order part number in order-file order.
	Lines []Line

	// Skipped counts BOM entries without a vendor part number.
	Skipped int

	Warnings []types.Warning
}

// Count returns how many lines have the given outcome.
func (r Result) Count(outcome Outcome) int {
	n := 0
	for _, l := range r.Lines {
		if l.Outcome == outcome {
			n++
		}
	}
	return n
}

// quantities is an insertion-ordered part number -> quantity map.
type quantities struct {
	keys []string
	qty  map[string]int
}

func newQuantities() *quantities {
	return &quantities{qty: make(map[string]int)}
}

func (q *quantities) add(key string, n int) bool {
	_, exists := q.qty[key]
	if !exists {
		q.keys = append(q.keys, key)
	}
	q.qty[key] += n
	return exists
}

// Reconcile verifies the order against the BOM.
//
// PARAMETERS:
//   - entries: The BOM entries.
//   - copies: How many boards the order is for. Values below 1 count as 1.
//   - records: The order file lines.
func Reconcile(entries []types.BomEntry, copies int, records []Record) Result {
	if copies < 1 {
		copies = 1
	}

	var result Result

	have := newQuantities()
	for _, rec := range records {
		if have.add(rec.PartNumber, rec.Quantity) {
			result.Warnings = append(result.Warnings, types.NewWarning(types.KindOrderDuplicate, rec.PartNumber,
				"Order has duplicate entry for PN %s", rec.PartNumber))
		}
	}

	demand := newQuantities()
	for _, e := range entries {
		if e.VendorPartNumber == "" {
			result.Skipped++
			continue
		}
		demand.add(e.VendorPartNumber, copies)
	}

	for _, pn := range demand.keys {
		want := demand.qty[pn]
		got, ok := have.qty[pn]

		switch {
		case !ok:
			result.Lines = append(result.Lines, Line{PartNumber: pn, Outcome: OutcomeMissing, Want: want})
			result.Warnings = append(result.Warnings, types.NewWarning(types.KindOrderMissing, pn,
				"Order is missing PN %s qty %d", pn, want))
		case got != want:
			result.Lines = append(result.Lines, Line{PartNumber: pn, Outcome: OutcomeMismatched, Want: want, Have: got})
			result.Warnings = append(result.Warnings, types.NewWarning(types.KindOrderQuantity, pn,
				"Order PN %s has qty %d but want %d", pn, got, want))
		default:
			result.Lines = append(result.Lines, Line{PartNumber: pn, Outcome: OutcomeMatched, Want: want, Have: got})
		}

		delete(have.qty, pn)
	}

	for _, pn := range have.keys {
		got, ok := have.qty[pn]
		if !ok {
			continue
		}
		result.Lines = append(result.Lines, Line{PartNumber: pn, Outcome: OutcomeExtra, Have: got})
		result.Warnings = append(result.Warnings, types.NewWarning(types.KindOrderExtra, pn,
			"Order has extra PN %s qty %d", pn, got))
	}

	if result.Skipped > 0 {
		result.Warnings = append(result.Warnings, types.NewWarning(types.KindOrderSkipped, "",
			"Order check skipped %d part(s) without vendor PN", result.Skipped))
	}

	return result
}
