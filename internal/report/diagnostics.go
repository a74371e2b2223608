package report

import (
	"io"

	"github.com/ginjaninja78/eaglebom/internal/order"
	"github.com/ginjaninja78/eaglebom/internal/types"
)

// WriteDiagnostics writes one "WARNING: ..." line per warning.
func WriteDiagnostics(w io.Writer, warnings []types.Warning) error {
	out := &errWriter{w: w}
	for _, warning := range warnings {
		out.printf("%s\n", warning.String())
	}
	return out.err
}

// WriteOrderDiagnostics writes the order verification block.
func WriteOrderDiagnostics(w io.Writer, result order.Result) error {
	out := &errWriter{w: w}
	out.printf("\nVerifying order...\n")
	if out.err != nil {
		return out.err
	}
	if err := WriteDiagnostics(w, result.Warnings); err != nil {
		return err
	}
	out.printf("Order verification complete.\n")
	return out.err
}
