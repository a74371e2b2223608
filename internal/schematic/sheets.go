package schematic

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ginjaninja78/eaglebom/internal/types"
	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

// SheetRange is an inclusive range of 1-based sheet numbers.
type SheetRange struct {
	First int
	Last  int
}

// SheetSet is a selection of sheets, kept as sorted, non-overlapping
// ranges. An empty set selects every sheet.
type SheetSet []SheetRange

// ParseSheets parses a sheet selection such as "1,3-5".
//
// Each comma-separated element is a sheet number or an inclusive range
// "a-b" with a <= b. Sheet numbers start at 1. An empty string selects all
// sheets.
func ParseSheets(s string) (SheetSet, error) {
	if strings.TrimSpace(s) == "" {
		return SheetSet{}, nil
	}

	var ranges []SheetRange
	for _, element := range strings.Split(s, ",") {
		element = strings.TrimSpace(element)

		bounds := strings.Split(element, "-")
		if len(bounds) > 2 {
			return nil, pkgerrors.NewParseError("--sheets", 0, "sheet range", element, "too many '-'")
		}

		first, err := parseSheetNumber(bounds[0], element)
		if err != nil {
			return nil, err
		}
		last := first
		if len(bounds) == 2 {
			if last, err = parseSheetNumber(bounds[1], element); err != nil {
				return nil, err
			}
		}
		if last < first {
			return nil, pkgerrors.NewParseError("--sheets", 0, "sheet range", element, "range end is before its start")
		}

		ranges = append(ranges, SheetRange{First: first, Last: last})
	}
	return merge(ranges), nil
}

// merge sorts ranges and joins the ones that overlap or touch.
func merge(ranges []SheetRange) SheetSet {
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].First < ranges[j].First })

	set := SheetSet{}
	for _, r := range ranges {
		if n := len(set); n > 0 && r.First <= set[n-1].Last+1 {
			if r.Last > set[n-1].Last {
				set[n-1].Last = r.Last
			}
			continue
		}
		set = append(set, r)
	}
	return set
}

func parseSheetNumber(s, element string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, pkgerrors.NewParseError("--sheets", 0, "sheet range", element, "not a number")
	}
	if n < 1 {
		return 0, pkgerrors.NewParseError("--sheets", 0, "sheet range", element, "sheets are numbered from 1")
	}
	return n, nil
}

// Contains reports whether sheet n is selected.
func (s SheetSet) Contains(n int) bool {
	if len(s) == 0 {
		return true
	}
	i := sort.Search(len(s), func(i int) bool { return s[i].Last >= n })
	return i < len(s) && s[i].First <= n
}

// String renders the selection in the "1,3-5" form it is parsed from.
func (s SheetSet) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		if r.First == r.Last {
			parts[i] = strconv.Itoa(r.First)
		} else {
			parts[i] = strconv.Itoa(r.First) + "-" + strconv.Itoa(r.Last)
		}
	}
	return strings.Join(parts, ",")
}

// FilterSheets keeps the parts with at least one instance on a selected
// sheet. Parts without any instance are dropped once a selection is made.
func FilterSheets(parts []types.RawPart, sheets SheetSet) []types.RawPart {
	if len(sheets) == 0 {
		return parts
	}

	var kept []types.RawPart
	for _, p := range parts {
		for _, n := range p.Sheets {
			if sheets.Contains(n) {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept
}
