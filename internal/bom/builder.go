// =============================================================================
// EagleBOM - BOM Builder
// =============================================================================
//
// The builder walks the schematic's part instances and produces one BomEntry
// per purchasable part.
//
// PER-INSTANCE STEPS:
//   1. Skip power/ground pseudo-symbols (the exempt device-sets). Skipped
//      instances produce neither an entry nor a warning.
//   2. Resolve the device through the catalog. An unknown device is allowed.
//   3. Instance attributes override the device's manufacturer and part
//      numbers; missing ones are inherited from the device.
//   4. An empty or whitespace value counts as no value.
//   5. Warn about missing purchasing data and about a value on a device that
//      has no user-editable value.
//
// Entries keep schematic order and are not de-duplicated.
//
// =============================================================================

package bom

import (
	"strings"

	"github.com/ginjaninja78/eaglebom/internal/catalog"
	"github.com/ginjaninja78/eaglebom/internal/types"
)

// DefaultExemptComponents are the device-sets that are drawing symbols,
// not parts: supply rails, ground and the frame.
var DefaultExemptComponents = []string{
	"GROUND/GND/EARTH",
	"+3.3V",
	"+3.3V_A",
	"+12V",
	"-12V",
	"+5V",
	"A4L-LOC",
}

// Builder turns raw part instances into BOM entries.
type Builder struct {
	exempt map[string]struct{}
	attrs  types.AttributeNames
}

// NewBuilder creates a builder.
//
// PARAMETERS:
//   - exempt: Device-set names to skip. Matching is exact after trimming.
//   - attrs: The attribute names carrying manufacturer and part numbers.
func NewBuilder(exempt []string, attrs types.AttributeNames) *Builder {
	set := make(map[string]struct{}, len(exempt))
	for _, name := range exempt {
		set[strings.TrimSpace(name)] = struct{}{}
	}
	return &Builder{exempt: set, attrs: attrs}
}

// IsExempt reports whether parts of the given device-set are skipped.
func (b *Builder) IsExempt(deviceSet string) bool {
	_, ok := b.exempt[strings.TrimSpace(deviceSet)]
	return ok
}

// Build resolves every part instance against the catalog.
//
// RETURNS:
//   - The BOM entries in schematic order.
//   - The warnings raised while building, in the same order.
func (b *Builder) Build(parts []types.RawPart, cat *catalog.Catalog) ([]types.BomEntry, []types.Warning) {
	entries := make([]types.BomEntry, 0, len(parts))
	var warnings []types.Warning

	for _, part := range parts {
		if b.IsExempt(part.DeviceSet) {
			continue
		}

		entry := b.resolve(part, cat)
		warnings = append(warnings, b.check(entry)...)
		entries = append(entries, entry)
	}

	return entries, warnings
}

// resolve builds the entry for a single part instance.
func (b *Builder) resolve(part types.RawPart, cat *catalog.Catalog) types.BomEntry {
	device, _ := cat.Resolve(part.DeviceSet, part.Device)

	entry := types.BomEntry{
		Name:       strings.TrimSpace(part.Name),
		DeviceName: catalog.Key(part.DeviceSet, part.Device),
		Device:     device,
	}

	if part.Value != nil {
		entry.Value = strings.TrimSpace(*part.Value)
	}

	var inherited types.Device
	if device != nil {
		inherited = *device
	}

	entry.Manufacturer = override(part.Attributes, b.attrs.Manufacturer, inherited.Manufacturer)
	entry.ManufacturerPartNumber = override(part.Attributes, b.attrs.ManufacturerPN, inherited.ManufacturerPartNumber)
	entry.VendorPartNumber = override(part.Attributes, b.attrs.VendorPN, inherited.VendorPartNumber)

	return entry
}

// check returns the data-quality warnings for one entry.
func (b *Builder) check(entry types.BomEntry) []types.Warning {
	var warnings []types.Warning

	if entry.Manufacturer == "" {
		warnings = append(warnings, types.NewWarning(types.KindMissingManufacturer, entry.Name,
			"Part %s (%s) is missing %s attribute", entry.Name, entry.DeviceName, b.attrs.Manufacturer))
	}
	if entry.ManufacturerPartNumber == "" {
		warnings = append(warnings, types.NewWarning(types.KindMissingMfgPN, entry.Name,
			"Part %s (%s) is missing %s attribute", entry.Name, entry.DeviceName, b.attrs.ManufacturerPN))
	}
	if entry.VendorPartNumber == "" {
		warnings = append(warnings, types.NewWarning(types.KindMissingVendorPN, entry.Name,
			"Part %s (%s) is missing %s attribute", entry.Name, entry.DeviceName, b.attrs.VendorPN))
	}
	if entry.Value != "" && entry.Device != nil && !entry.Device.HasUserValue {
		warnings = append(warnings, types.NewWarning(types.KindUnexpectedValue, entry.Name,
			"Part %s (%s) has a value but device has no user-editable value", entry.Name, entry.DeviceName))
	}

	return warnings
}

// override returns the instance attribute when the instance declares it,
// the inherited value otherwise.
func override(attrs map[string]string, name, inherited string) string {
	if name == "" {
		return inherited
	}
	if v, ok := attrs[name]; ok {
		return strings.TrimSpace(v)
	}
	return inherited
}
