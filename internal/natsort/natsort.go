// =============================================================================
// EagleBOM - Natural Sort
// =============================================================================
//
// Reference designators and package names mix letters and numbers ("R2",
// "R10", "C1A"). A lexical sort puts "R10" before "R2". This package orders
// them the way a person reads them.
//
// ALGORITHM:
//   1. Split both strings into alternating runs of digits and non-digits.
//   2. Compare run by run:
//      - two digit runs compare by numeric value (no integer conversion, so
//        arbitrarily long runs cannot overflow)
//      - anything else compares case-insensitively
//   3. If every shared run is equal, the string with fewer runs sorts first.
//
// =============================================================================

package natsort

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b in natural order. Strings that differ only in letter case or in
// leading zeros compare equal.
func Compare(a, b string) int {
	ra := split(a)
	rb := split(b)

	for i := 0; i < len(ra) && i < len(rb); i++ {
		x, y := ra[i], rb[i]

		var c int
		if isDigitRun(x) && isDigitRun(y) {
			c = compareNumeric(x, y)
		} else {
			c = strings.Compare(foldCase(x), foldCase(y))
		}
		if c != 0 {
			return c
		}
	}

	switch {
	case len(ra) < len(rb):
		return -1
	case len(ra) > len(rb):
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts strictly before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Strings sorts s in place in natural order. Equal elements keep their
// original relative order.
func Strings(s []string) {
	sort.SliceStable(s, func(i, j int) bool {
		return Less(s[i], s[j])
	})
}

// split breaks s into maximal runs of digits and non-digits.
func split(s string) []string {
	var runs []string
	start := 0
	prevDigit := false

	for i, r := range s {
		digit := isDigit(r)
		if i > 0 && digit != prevDigit {
			runs = append(runs, s[start:i])
			start = i
		}
		prevDigit = digit
	}
	if start < len(s) {
		runs = append(runs, s[start:])
	}
	return runs
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDigitRun(s string) bool {
	return s != "" && isDigit(rune(s[0]))
}

// foldCase returns the case-folded form of s. Casers carry state, so each
// call gets its own.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// compareNumeric compares two digit runs by value.
func compareNumeric(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")

	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	return strings.Compare(x, y)
}
