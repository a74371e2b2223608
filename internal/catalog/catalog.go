// =============================================================================
// EagleBOM - Device Catalog
// =============================================================================
//
// The catalog resolves a part instance's device-set/device pair to its
// canonical Device record (manufacturer, part numbers, package, user-value
// flag).
//
// BUILD RULES:
//   - The key is the device-set name followed by the device name, each trimmed.
//   - Only the default (unnamed) technology supplies attributes. The schematic
//     reader has already narrowed each device to that technology's map.
//   - Attribute lookup is exact and case-sensitive; values are trimmed.
//   - A repeated key keeps the FIRST definition. Every repeat is reported as
//     a warning instead of failing the run.
//
// OWNERSHIP:
//   The catalog owns every Device. BomEntries borrow pointers into it, so the
//   catalog must live at least as long as the BOM built from it.
//
// =============================================================================

package catalog

import (
	"strings"

	"github.com/ginjaninja78/eaglebom/internal/types"
)

// Catalog is an immutable index of devices keyed by device name.
type Catalog struct {
	devices map[string]*types.Device

	// order keeps the devices in schematic order for listing.
	order []*types.Device
}

// New builds a catalog from the schematic's device-sets.
//
// PARAMETERS:
//   - sets: The raw device-sets in schematic order.
//   - attrs: The attribute names carrying manufacturer and part numbers.
//
// RETURNS:
//   - The catalog.
//   - One warning per duplicate device key.
func New(sets []types.RawDeviceSet, attrs types.AttributeNames) (*Catalog, []types.Warning) {
	c := &Catalog{
		devices: make(map[string]*types.Device),
	}
	var warnings []types.Warning

	for _, set := range sets {
		for _, dev := range set.Devices {
			name := Key(set.Name, dev.Name)

			if _, exists := c.devices[name]; exists {
				warnings = append(warnings, types.NewWarning(types.KindDuplicateDevice, name,
					"Device %s is defined more than once; using the first definition", name))
				continue
			}

			device := &types.Device{
				Name:                   name,
				Manufacturer:           Attribute(dev.Attributes, attrs.Manufacturer),
				ManufacturerPartNumber: Attribute(dev.Attributes, attrs.ManufacturerPN),
				VendorPartNumber:       Attribute(dev.Attributes, attrs.VendorPN),
				HasUserValue:           set.UserValue,
				Package:                strings.TrimSpace(dev.Package),
			}

			c.devices[name] = device
			c.order = append(c.order, device)
		}
	}

	return c, warnings
}

// Resolve returns the device for a device-set/device pair.
// The boolean is false when the pair is unknown.
func (c *Catalog) Resolve(deviceSet, device string) (*types.Device, bool) {
	d, ok := c.devices[Key(deviceSet, device)]
	return d, ok
}

// Len returns the number of distinct devices.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Devices returns the devices in schematic order.
func (c *Catalog) Devices() []*types.Device {
	out := make([]*types.Device, len(c.order))
	copy(out, c.order)
	return out
}

// Key builds the catalog key for a device-set/device pair.
func Key(deviceSet, device string) string {
	return strings.TrimSpace(deviceSet) + strings.TrimSpace(device)
}

// Attribute looks up name in attrs and returns the trimmed value.
// A missing map, missing key or empty name yields "".
func Attribute(attrs map[string]string, name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(attrs[name])
}
