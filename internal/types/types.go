// =============================================================================
// EagleBOM - Shared Types
// =============================================================================
//
// This package contains the domain records shared by the reconciliation
// packages. Keeping them here avoids import cycles between:
//   - schematic  (produces raw device-set and part records)
//   - catalog    (turns raw device-sets into Devices)
//   - bom        (turns raw parts into BomEntries)
//   - grouper, stock, order, report
//
// OPTIONAL STRINGS:
//   Optional text fields use the empty string for "absent". Every reader
//   trims its input, so a whitespace-only attribute is absent as well.
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ATTRIBUTE NAMES
// =============================================================================

// AttributeNames are the schematic attribute names that carry purchasing data.
// Lookups are case-sensitive and exact.
type AttributeNames struct {
	Manufacturer   string `mapstructure:"manufacturer" yaml:"manufacturer"`
	ManufacturerPN string `mapstructure:"manufacturer_pn" yaml:"manufacturer_pn"`
	VendorPN       string `mapstructure:"vendor_pn" yaml:"vendor_pn"`
}

// DefaultAttributeNames returns the Mouser attribute convention.
func DefaultAttributeNames() AttributeNames {
	return AttributeNames{
		Manufacturer:   "MFG",
		ManufacturerPN: "MFGPN",
		VendorPN:       "MOUSERPN",
	}
}

// =============================================================================
// RAW SCHEMATIC RECORDS
// =============================================================================

// RawDeviceSet is a device-set as read from the schematic.
type RawDeviceSet struct {
	// Name is the device-set name, e.g. "RES".
	Name string

	// UserValue is true when instances may carry their own value.
	UserValue bool

	// Devices are the package variants of this device-set.
	Devices []RawDevice
}

// RawDevice is one package variant of a device-set.
type RawDevice struct {
	Name    string
	Package string

	// Attributes are the attributes of the default (unnamed) technology.
	Attributes map[string]string
}

// RawPart is one part instance placed on the schematic.
type RawPart struct {
	Name      string
	DeviceSet string
	Device    string

	// Value is nil when the instance declares no value attribute.
	Value *string

	// Attributes are the instance-level attribute overrides.
	Attributes map[string]string

	// Sheets lists the 1-based sheet numbers the part has instances on.
	Sheets []int
}

// =============================================================================
// DEVICE
// =============================================================================

// Device is the canonical definition shared by all instances of a
// device-set/device pair. Devices are owned by the catalog and never
// mutated after it is built.
type Device struct {
	// Name is the device-set name followed by the device name.
	Name string

	Manufacturer           string
	ManufacturerPartNumber string
	VendorPartNumber       string

	// HasUserValue comes from the device-set's uservalue flag.
	HasUserValue bool

	Package string
}

// =============================================================================
// BOM ENTRY
// =============================================================================

// BomEntry is one physical part instance after device resolution.
type BomEntry struct {
	// Name is the reference designator, e.g. "R12".
	Name string

	// DeviceName is the catalog key (device-set + device), kept even when
	// the device could not be resolved.
	DeviceName string

	Value                  string
	Manufacturer           string
	ManufacturerPartNumber string
	VendorPartNumber       string

	// Device is borrowed from the catalog. It is nil when the
	// device-set/device pair is unknown.
	Device *Device
}

// Package returns the resolved device's package, or "" without a device.
func (e BomEntry) Package() string {
	if e.Device == nil {
		return ""
	}
	return e.Device.Package
}

// =============================================================================
// STOCK PART
// =============================================================================

// StockPart is one row of the vendor stock catalog.
type StockPart struct {
	VendorPartNumber  string
	QuantityAvailable uint64
	QuantityInHouse   uint64
	UnitPrice         decimal.Decimal
	Package           string
	Value             string
	Manufacturer      string
	Description       string

	// Line is the 1-based line number in the stock file.
	Line int
}
