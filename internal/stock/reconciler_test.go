package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/eaglebom/internal/grouper"
	"github.com/ginjaninja78/eaglebom/internal/types"
)

var res0402 = &types.Device{Name: "RES0402", HasUserValue: true, Package: "0402"}

func entry(name, value, vpn string) types.BomEntry {
	return types.BomEntry{
		Name:                   name,
		DeviceName:             "RES0402",
		Value:                  value,
		Manufacturer:           "Vishay",
		ManufacturerPartNumber: "ABC",
		VendorPartNumber:       vpn,
		Device:                 res0402,
	}
}

func stockPart(vpn, price, pkg, value, mfg string) types.StockPart {
	return types.StockPart{
		VendorPartNumber:  vpn,
		QuantityAvailable: 100,
		QuantityInHouse:   5,
		UnitPrice:         decimal.RequireFromString(price),
		Package:           pkg,
		Value:             value,
		Manufacturer:      mfg,
	}
}

func index(t *testing.T, parts ...types.StockPart) *Index {
	t.Helper()
	idx, warnings := NewIndex(parts)
	require.Empty(t, warnings)
	return idx
}

func TestReconcileMatch(t *testing.T) {
	idx := index(t, stockPart("VPN1", "0.10", "0402", "10k", "Vishay"))
	items := grouper.Group([]types.BomEntry{entry("R1", "10k", "VPN1")}, false)

	result := Reconcile(items, idx)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Lines, 1)

	line := result.Lines[0]
	require.NotNil(t, line.Stock)
	assert.Equal(t, uint64(100), line.Stock.QuantityAvailable)
	assert.Equal(t, uint64(5), line.Stock.QuantityInHouse)
	assert.Equal(t, "0.10", line.UnitPrice().StringFixed(2))
	assert.Equal(t, "0.10", line.LinePrice.StringFixed(2))
	assert.Equal(t, "0.10", result.Total.StringFixed(2))
}

func TestReconcileMismatchesPerMember(t *testing.T) {
	idx := index(t, stockPart("VPN1", "0.10", "0603", "10k", "Yageo"))

	other := entry("R2", "10k", "VPN1")
	other.Device = &types.Device{Name: "RES0402", Package: "0402"}
	items := grouper.Group([]types.BomEntry{entry("R1", "10k", "VPN1"), other}, false)
	require.Len(t, items, 1)

	result := Reconcile(items, idx)

	var messages []string
	for _, w := range result.Warnings {
		messages = append(messages, w.Message)
	}
	assert.Equal(t, []string{
		"Part R1 package 0402 doesn't match stock spec 0603 (vendor PN VPN1)",
		"Part R2 package 0402 doesn't match stock spec 0603 (vendor PN VPN1)",
		"Part R1 manufacturer Vishay doesn't match stock spec Yageo (vendor PN VPN1)",
	}, messages)
}

func TestReconcileValueMismatchRendersDash(t *testing.T) {
	idx := index(t, stockPart("VPN1", "0.10", "0402", "", "Vishay"))
	items := grouper.Group([]types.BomEntry{entry("R1", "10k", "VPN1")}, false)

	result := Reconcile(items, idx)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, types.KindValueMismatch, result.Warnings[0].Kind)
	assert.Equal(t, "Part R1 value 10k doesn't match stock spec - (vendor PN VPN1)", result.Warnings[0].Message)
}

func TestReconcileNotFound(t *testing.T) {
	idx := index(t)

	noPN := entry("R2", "1k", "")
	items := grouper.Group([]types.BomEntry{entry("R1", "10k", "VPN9"), noPN}, false)

	result := Reconcile(items, idx)
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, "WARNING: Part VPN9 not found in stock", result.Warnings[0].String())
	assert.Equal(t, "WARNING: Part RES0402 not found in stock", result.Warnings[1].String())

	for _, line := range result.Lines {
		assert.Nil(t, line.Stock)
		assert.True(t, line.LinePrice.IsZero())
		assert.True(t, line.UnitPrice().IsZero())
	}
	assert.True(t, result.Total.IsZero())
}

func TestReconcileTotalIsSumOfLines(t *testing.T) {
	idx := index(t,
		stockPart("VPN1", "0.10", "0402", "10k", "Vishay"),
		stockPart("VPN2", "1.25", "0402", "1k", "Vishay"),
	)
	entries := []types.BomEntry{
		entry("R1", "10k", "VPN1"),
		entry("R2", "10k", "VPN1"),
		entry("R3", "10k", "VPN1"),
		entry("R4", "1k", "VPN2"),
		entry("R5", "1k", "VPN2"),
		entry("R6", "47k", "VPN3"),
	}

	result := Reconcile(grouper.Group(entries, false), idx)

	sum := decimal.Zero
	for _, line := range result.Lines {
		expected := line.UnitPrice().Mul(decimal.NewFromInt(int64(line.Quantity())))
		assert.True(t, expected.Equal(line.LinePrice))
		sum = sum.Add(line.LinePrice)
	}
	assert.True(t, sum.Equal(result.Total))
	assert.Equal(t, "2.80", result.Total.StringFixed(2))
}

func TestMostExpensive(t *testing.T) {
	idx := index(t,
		stockPart("CHEAP", "0.01", "0402", "10k", "Vishay"),
		stockPart("MID", "0.50", "0402", "1k", "Vishay"),
		stockPart("PRICY", "3.00", "0402", "0R", "Vishay"),
	)
	var entries []types.BomEntry
	entries = append(entries, entry("R1", "10k", "CHEAP"), entry("R2", "10k", "CHEAP"))
	entries = append(entries, entry("R3", "1k", "MID"))
	entries = append(entries, entry("R4", "0R", "PRICY"))
	entries = append(entries, entry("R5", "47k", "NONE"))

	ranked := MostExpensive(entries, idx, 10)
	require.Len(t, ranked, 4)
	assert.Equal(t, "R4", ranked[0].Representative().Name)
	assert.Equal(t, "R3", ranked[1].Representative().Name)
	assert.Equal(t, []string{"R1", "R2"}, ranked[2].Names())
	assert.Equal(t, "R5", ranked[3].Representative().Name)

	assert.Len(t, MostExpensive(entries, idx, 2), 2)
}

func TestMostExpensiveIgnoresIndividualGrouping(t *testing.T) {
	idx := index(t, stockPart("VPN1", "0.10", "0402", "10k", "Vishay"))
	entries := []types.BomEntry{entry("R1", "10k", "VPN1"), entry("R2", "10k", "VPN1")}

	ranked := MostExpensive(entries, idx, 10)
	require.Len(t, ranked, 1)
	assert.Equal(t, 2, ranked[0].Quantity())
	assert.Equal(t, "0.20", ranked[0].LinePrice.StringFixed(2))
}

func TestMostExpensiveTopTen(t *testing.T) {
	idx := index(t)
	var entries []types.BomEntry
	for _, name := range []string{"R1", "R2", "R3", "R4", "R5", "R6", "R7", "R8", "R9", "R10", "R11", "R12"} {
		entries = append(entries, entry(name, name, "X"))
	}

	ranked := MostExpensive(entries, idx, 10)
	require.Len(t, ranked, 10)
	// All prices are zero, so grouped order is kept.
	assert.Equal(t, "R1", ranked[0].Representative().Name)
	assert.Equal(t, "R10", ranked[9].Representative().Name)
}
