// =============================================================================
// EagleBOM - Line Item Grouper
// =============================================================================
//
// The grouper turns the flat BOM into purchasable line items.
//
// GROUPING KEY (pipe-joined, order matters):
//   grouped:    device | value | manufacturer | MFG PN | vendor PN
//   individual: name | device | value | manufacturer | MFG PN | vendor PN
//
// Leaving the instance name out of the grouped key merges every instance of
// an otherwise identical part into one line.
//
// ORDERING:
//   - Members of a group are sorted by name in natural order.
//   - The representative is the first member after that sort.
//   - Groups are sorted by their representative's name in natural order.
//
// =============================================================================

package grouper

import (
	"sort"
	"strings"

	"github.com/ginjaninja78/eaglebom/internal/natsort"
	"github.com/ginjaninja78/eaglebom/internal/types"
)

// keySeparator joins the fields of a grouping key.
const keySeparator = "|"

// LineItem is a group of BOM entries bought as one line.
type LineItem struct {
	// Key is the grouping key shared by every member.
	Key string

	// Members are the entries of the group in natural name order.
	Members []types.BomEntry
}

// Representative returns the first member, whose purchasing fields stand
// for the whole line.
func (l LineItem) Representative() types.BomEntry {
	if len(l.Members) == 0 {
		return types.BomEntry{}
	}
	return l.Members[0]
}

// Quantity returns the number of members.
func (l LineItem) Quantity() int {
	return len(l.Members)
}

// Names returns the member names in natural order.
func (l LineItem) Names() []string {
	names := make([]string, len(l.Members))
	for i, m := range l.Members {
		names[i] = m.Name
	}
	return names
}

// Key returns the grouping key for an entry.
func Key(e types.BomEntry, individual bool) string {
	fields := []string{
		e.DeviceName,
		e.Value,
		e.Manufacturer,
		e.ManufacturerPartNumber,
		e.VendorPartNumber,
	}
	if individual {
		fields = append([]string{e.Name}, fields...)
	}
	return strings.Join(fields, keySeparator)
}

// Group groups entries into line items.
//
// PARAMETERS:
//   - entries: The BOM entries, in any order.
//   - individual: Use the per-instance key (one line per part).
//
// RETURNS:
//   - The line items, sorted by representative name.
func Group(entries []types.BomEntry, individual bool) []LineItem {
	index := make(map[string]int)
	var items []LineItem

	for _, e := range entries {
		key := Key(e, individual)
		i, ok := index[key]
		if !ok {
			i = len(items)
			index[key] = i
			items = append(items, LineItem{Key: key})
		}
		items[i].Members = append(items[i].Members, e)
	}

	for i := range items {
		SortEntries(items[i].Members)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return natsort.Less(items[i].Representative().Name, items[j].Representative().Name)
	})

	return items
}

// SortEntries sorts entries by name in natural order, keeping the input
// order of equal names.
func SortEntries(entries []types.BomEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return natsort.Less(entries[i].Name, entries[j].Name)
	})
}
