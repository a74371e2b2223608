// =============================================================================
// EagleBOM - Report Command
// =============================================================================
//
// This file defines the 'report' command, which runs the whole pipeline for
// one schematic.
//
// COMMAND USAGE:
//   eaglebom report <schematic> [flags]
//
// FLAGS:
//   --stock       : Stock file to use (default: search for "Mouser Stock.txt")
//   --order       : Order file (CSV or XLSX) to verify against the BOM
//   --copies      : Number of boards the order is for (default 1)
//   --individual  : List every part on its own line
//   --sheets      : Only use parts on these sheets, e.g. "1,3-5"
//   --format      : Report format: text, table, json, yaml, xml
//   --xlsx        : Also export the report to a workbook ("auto" names it)
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/eaglebom/internal/pipeline"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var reportOpts pipeline.Options

// =============================================================================
// REPORT COMMAND DEFINITION
// =============================================================================

var reportCmd = &cobra.Command{
	Use:   "report <schematic>",
	Short: "Print the BOM report for a schematic",
	Long: `The report command reads an Eagle schematic, resolves every part against
its library device, groups identical parts into line items and prices them
against the stock file.

With --order the order file is checked against the BOM: part numbers the
order is missing, quantities that differ and part numbers the BOM does not
need are reported as warnings.

Nothing is printed when an input file is missing or unreadable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	flags := reportCmd.Flags()
	flags.StringVar(&reportOpts.StockPath, "stock", "", "Stock file to use")
	flags.StringVar(&reportOpts.OrderPath, "order", "", "Order file (CSV or XLSX) to verify")
	flags.IntVar(&reportOpts.Copies, "copies", 1, "Number of copies the order is for")
	flags.BoolVar(&reportOpts.Individual, "individual", false, "List each part separately")
	flags.StringVar(&reportOpts.Sheets, "sheets", "", `Only consider parts on these sheets, e.g. "1,3-5"`)
	flags.StringVar(&reportOpts.Format, "format", "", "Report format: text, table, json, yaml, xml")
	flags.StringVar(&reportOpts.XLSXPath, "xlsx", "", `Export the report to this workbook ("auto" to name it)`)
}

// runReport runs the pipeline for one schematic.
func runReport(cmd *cobra.Command, schematicPath string) error {
	opts := reportOpts
	opts.SchematicPath = schematicPath

	runner := pipeline.New(appConfig, logger)
	result, err := runner.Run(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logger.Debug().
		Str("run_id", runner.RunID()).
		Int("entries", result.Stats.Entries).
		Int("stock_parts", result.Stats.StockParts).
		Int("order_records", result.Stats.OrderRecords).
		Msg("Run statistics")

	if result.ExportFile != "" {
		cmd.PrintErrf("Exported report to %s\n", result.ExportFile)
	}
	return nil
}
