package stock

import (
	"github.com/ginjaninja78/eaglebom/internal/types"
)

// Index looks up stock parts by vendor part number.
// The first row for a vendor part number wins; later rows are reported
// as duplicates and ignored.
type Index struct {
	parts map[string]types.StockPart
}

// NewIndex indexes parts by vendor part number.
func NewIndex(parts []types.StockPart) (*Index, []types.Warning) {
	idx := &Index{parts: make(map[string]types.StockPart, len(parts))}
	var warnings []types.Warning

	for _, p := range parts {
		if _, exists := idx.parts[p.VendorPartNumber]; exists {
			warnings = append(warnings, types.NewWarning(types.KindDuplicateStock, p.VendorPartNumber,
				"Stock file has duplicate entry for PN %s (line %d ignored)", p.VendorPartNumber, p.Line))
			continue
		}
		idx.parts[p.VendorPartNumber] = p
	}

	return idx, warnings
}

// Lookup returns the stock part for an exact vendor part number.
// An empty part number never matches.
func (i *Index) Lookup(vendorPartNumber string) (types.StockPart, bool) {
	if i == nil || vendorPartNumber == "" {
		return types.StockPart{}, false
	}
	p, ok := i.parts[vendorPartNumber]
	return p, ok
}

// Len returns the number of distinct vendor part numbers.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.parts)
}
