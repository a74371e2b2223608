package bom

import (
	"testing"

	"github.com/ginjaninja78/eaglebom/internal/catalog"
	"github.com/ginjaninja78/eaglebom/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	sets := []types.RawDeviceSet{
		{
			Name:      "RES",
			UserValue: true,
			Devices: []types.RawDevice{{
				Name:    "0402",
				Package: "0402",
				Attributes: map[string]string{
					"MFG":      "Vishay",
					"MFGPN":    "CRCW0402",
					"MOUSERPN": "71-CRCW0402",
				},
			}},
		},
		{
			Name: "LM317",
			Devices: []types.RawDevice{{
				Name:    "T",
				Package: "TO220",
				Attributes: map[string]string{
					"MFG":      "TI",
					"MFGPN":    "LM317T",
					"MOUSERPN": "595-LM317T",
				},
			}},
		},
	}
	cat, warnings := catalog.New(sets, types.DefaultAttributeNames())
	require.Empty(t, warnings)
	return cat
}

func newBuilder() *Builder {
	return NewBuilder(DefaultExemptComponents, types.DefaultAttributeNames())
}

func TestBuildInheritsFromDevice(t *testing.T) {
	parts := []types.RawPart{
		{Name: "R1", DeviceSet: "RES", Device: "0402", Value: strPtr("10k")},
	}

	entries, warnings := newBuilder().Build(parts, testCatalog(t))
	require.Empty(t, warnings)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "R1", e.Name)
	assert.Equal(t, "RES0402", e.DeviceName)
	assert.Equal(t, "10k", e.Value)
	assert.Equal(t, "Vishay", e.Manufacturer)
	assert.Equal(t, "CRCW0402", e.ManufacturerPartNumber)
	assert.Equal(t, "71-CRCW0402", e.VendorPartNumber)
	require.NotNil(t, e.Device)
	assert.Equal(t, "0402", e.Package())
}

func TestBuildInstanceOverrideWins(t *testing.T) {
	parts := []types.RawPart{{
		Name:       "R1",
		DeviceSet:  "RES",
		Device:     "0402",
		Attributes: map[string]string{"MFG": " Yageo ", "MOUSERPN": "603-RC0402"},
	}}

	entries, _ := newBuilder().Build(parts, testCatalog(t))
	require.Len(t, entries, 1)
	assert.Equal(t, "Yageo", entries[0].Manufacturer)
	assert.Equal(t, "CRCW0402", entries[0].ManufacturerPartNumber)
	assert.Equal(t, "603-RC0402", entries[0].VendorPartNumber)
}

func TestBuildSkipsExemptParts(t *testing.T) {
	parts := []types.RawPart{
		{Name: "GND1", DeviceSet: "GROUND/GND/EARTH"},
		{Name: "P+1", DeviceSet: "+5V"},
		{Name: "P+2", DeviceSet: " +3.3V_A "},
		{Name: "FRAME1", DeviceSet: "A4L-LOC"},
		{Name: "R1", DeviceSet: "RES", Device: "0402"},
	}

	entries, warnings := newBuilder().Build(parts, testCatalog(t))
	require.Len(t, entries, 1)
	assert.Equal(t, "R1", entries[0].Name)
	assert.Empty(t, warnings)
}

func TestBuildUnknownDevice(t *testing.T) {
	parts := []types.RawPart{{Name: "J1", DeviceSet: "HEADER", Device: "2X5", Value: strPtr("JTAG")}}

	entries, warnings := newBuilder().Build(parts, testCatalog(t))
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Device)
	assert.Equal(t, "HEADER2X5", entries[0].DeviceName)
	assert.Empty(t, entries[0].Package())

	// No device means no user-value check, only the three missing attributes.
	require.Len(t, warnings, 3)
	assert.Equal(t, "WARNING: Part J1 (HEADER2X5) is missing MFG attribute", warnings[0].String())
	assert.Equal(t, "WARNING: Part J1 (HEADER2X5) is missing MFGPN attribute", warnings[1].String())
	assert.Equal(t, "WARNING: Part J1 (HEADER2X5) is missing MOUSERPN attribute", warnings[2].String())
}

func TestBuildValueWithoutUserValue(t *testing.T) {
	parts := []types.RawPart{{Name: "U1", DeviceSet: "LM317", Device: "T", Value: strPtr("LM317")}}

	_, warnings := newBuilder().Build(parts, testCatalog(t))
	require.Len(t, warnings, 1)
	assert.Equal(t, types.KindUnexpectedValue, warnings[0].Kind)
	assert.Equal(t, "Part U1 (LM317T) has a value but device has no user-editable value", warnings[0].Message)
}

func TestBuildBlankValueIsAbsent(t *testing.T) {
	parts := []types.RawPart{{Name: "U1", DeviceSet: "LM317", Device: "T", Value: strPtr("   ")}}

	entries, warnings := newBuilder().Build(parts, testCatalog(t))
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Value)
	assert.Empty(t, warnings)
}

func TestBuildEmptyOverrideClearsInherited(t *testing.T) {
	parts := []types.RawPart{{
		Name:       "R1",
		DeviceSet:  "RES",
		Device:     "0402",
		Attributes: map[string]string{"MOUSERPN": ""},
	}}

	entries, warnings := newBuilder().Build(parts, testCatalog(t))
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].VendorPartNumber)
	require.Len(t, warnings, 1)
	assert.Equal(t, types.KindMissingVendorPN, warnings[0].Kind)
}

func TestBuildKeepsOrderAndDuplicates(t *testing.T) {
	parts := []types.RawPart{
		{Name: "R10", DeviceSet: "RES", Device: "0402"},
		{Name: "R2", DeviceSet: "RES", Device: "0402"},
		{Name: "R1", DeviceSet: "RES", Device: "0402"},
	}

	entries, _ := newBuilder().Build(parts, testCatalog(t))
	require.Len(t, entries, 3)
	assert.Equal(t, "R10", entries[0].Name)
	assert.Equal(t, "R2", entries[1].Name)
	assert.Equal(t, "R1", entries[2].Name)
	assert.Same(t, entries[0].Device, entries[2].Device)
}

func TestWarningsDoNotStopLaterParts(t *testing.T) {
	parts := []types.RawPart{
		{Name: "X1", DeviceSet: "MYSTERY"},
		{Name: "R1", DeviceSet: "RES", Device: "0402"},
	}

	entries, warnings := newBuilder().Build(parts, testCatalog(t))
	assert.Len(t, entries, 2)
	assert.Len(t, warnings, 3)
	for _, w := range warnings {
		assert.Equal(t, "X1", w.Subject)
	}
}

func TestCustomExemptSet(t *testing.T) {
	b := NewBuilder([]string{"LOGO"}, types.DefaultAttributeNames())
	assert.True(t, b.IsExempt("LOGO"))
	assert.False(t, b.IsExempt("+5V"))
}
