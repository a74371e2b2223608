// =============================================================================
// EagleBOM - Main Entry Point
// =============================================================================
//
// USAGE:
//   eaglebom report <schematic>  - Print the BOM report for a schematic
//   eaglebom version             - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : BOM reconciliation (catalog, bom, grouper, stock, order)
//                  and its I/O (schematic, report, pipeline, config)
//   - pkg/       : Errors, logging and file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/eaglebom/cmd"
)

func main() {
	cmd.Execute()
}
