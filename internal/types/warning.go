package types

import "fmt"

// WarningKind classifies a data-quality warning.
type WarningKind string

// Warning kinds, grouped by the component that raises them.
const (
	KindDuplicateDevice     WarningKind = "duplicate_device"
	KindMissingManufacturer WarningKind = "missing_manufacturer"
	KindMissingMfgPN        WarningKind = "missing_mfg_pn"
	KindMissingVendorPN     WarningKind = "missing_vendor_pn"
	KindUnexpectedValue     WarningKind = "unexpected_value"

	KindDuplicateStock       WarningKind = "duplicate_stock"
	KindPackageMismatch      WarningKind = "package_mismatch"
	KindValueMismatch        WarningKind = "value_mismatch"
	KindManufacturerMismatch WarningKind = "manufacturer_mismatch"
	KindNotInStock           WarningKind = "not_in_stock"

	KindOrderDuplicate WarningKind = "order_duplicate"
	KindOrderMissing   WarningKind = "order_missing"
	KindOrderQuantity  WarningKind = "order_quantity"
	KindOrderExtra     WarningKind = "order_extra"
	KindOrderSkipped   WarningKind = "order_skipped"
)

// Warning is a recoverable data-quality problem. Warnings never stop a run.
type Warning struct {
	Kind WarningKind `json:"kind" yaml:"kind"`

	// Subject is the part name, vendor part number or device the warning is about.
	Subject string `json:"subject" yaml:"subject"`

	Message string `json:"message" yaml:"message"`
}

// NewWarning formats a warning message.
func NewWarning(kind WarningKind, subject, format string, args ...any) Warning {
	return Warning{
		Kind:    kind,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}

// String renders the warning as a diagnostics line.
func (w Warning) String() string {
	return "WARNING: " + w.Message
}

// OrDash renders an absent value as "-".
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
