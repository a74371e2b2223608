// =============================================================================
// EagleBOM - Pipeline
// =============================================================================
//
// This module runs one BOM report from start to finish.
//
// PIPELINE:
//   1. Check the run options
//   2. Read every input (schematic, stock file, order file)
//   3. Build the device catalog and the BOM
//   4. Group the BOM into line items and price them against stock
//   5. Verify the order
//   6. Render the report and the diagnostics into memory
//   7. Export the workbook, if asked
//   8. Flush the report and the diagnostics
//
// Any error before step 8 aborts the run with nothing written to the
// report or diagnostics streams.
//
// =============================================================================

package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ginjaninja78/eaglebom/internal/bom"
	"github.com/ginjaninja78/eaglebom/internal/catalog"
	"github.com/ginjaninja78/eaglebom/internal/config"
	"github.com/ginjaninja78/eaglebom/internal/grouper"
	"github.com/ginjaninja78/eaglebom/internal/order"
	"github.com/ginjaninja78/eaglebom/internal/report"
	"github.com/ginjaninja78/eaglebom/internal/schematic"
	"github.com/ginjaninja78/eaglebom/internal/stock"
	"github.com/ginjaninja78/eaglebom/internal/types"
	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
	"github.com/ginjaninja78/eaglebom/pkg/utils"
)

// ExportAuto asks for a generated export file name.
const ExportAuto = "auto"

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options are the per-run settings, usually taken from the command line.
type Options struct {
	// SchematicPath is the Eagle schematic to report on.
	SchematicPath string

	// StockPath overrides the configured stock file.
	StockPath string

	// OrderPath is the order file to verify. Empty skips verification.
	OrderPath string

	// Copies multiplies the BOM for order verification. Zero means 1.
	Copies int

	// Individual lists every part instance on its own line.
	Individual bool

	// Sheets restricts the report to some sheets, e.g. "1,3-5".
	Sheets string

	// Format overrides the configured report format.
	Format string

	// XLSXPath is the workbook to export, ExportAuto, or empty for none.
	XLSXPath string
}

// Stats are counts collected during a run.
type Stats struct {
	DeviceSets     int
	Devices        int
	Parts          int
	Entries        int
	Lines          int
	StockParts     int
	OrderRecords   int
	Warnings       int
	ProcessingTime time.Duration
}

// Result is the outcome of a successful run.
type Result struct {
	Report *report.Report

	// StockFile is the stock file that was used.
	StockFile string

	// ExportFile is the exported workbook, empty when none was written.
	ExportFile string

	Stats Stats
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes report runs with a fixed configuration.
type Runner struct {
	cfg    *config.Config
	logger zerolog.Logger
	runID  string
	now    func() time.Time
}

// New creates a Runner. Every log line of the runner carries its run id.
func New(cfg *config.Config, logger zerolog.Logger) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	runID := uuid.NewString()
	return &Runner{
		cfg:    cfg,
		logger: logger.With().Str("run_id", runID).Logger(),
		runID:  runID,
		now:    time.Now,
	}
}

// RunID returns the id attached to this runner's reports and logs.
func (r *Runner) RunID() string {
	return r.runID
}

// inputs holds everything read from disk.
type inputs struct {
	schematic *schematic.Schematic
	stockFile string
	stock     []types.StockPart
	order     []order.Record
}

// Run executes the pipeline.
//
// PARAMETERS:
//   - opts: The run options.
//   - out: The report stream.
//   - diag: The diagnostics stream ("WARNING: ..." lines).
//
// RETURNS:
//   - The run result.
//   - The first fatal error. Nothing has been written to out or diag then.
func (r *Runner) Run(opts Options, out, diag io.Writer) (*Result, error) {
	start := r.now()
	result := &Result{}

	// =========================================================================
	// STEP 1: CHECK OPTIONS
	// =========================================================================

	copies := opts.Copies
	if copies == 0 {
		copies = 1
	}
	if copies < 1 {
		return nil, pkgerrors.NewConfigError("copies", fmt.Sprintf("must be at least 1, got %d", copies))
	}

	sheets, err := schematic.ParseSheets(opts.Sheets)
	if err != nil {
		return nil, err
	}

	formatName := opts.Format
	if formatName == "" {
		formatName = r.cfg.Report.Format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 2: READ INPUTS
	// =========================================================================

	in, err := r.readInputs(opts)
	if err != nil {
		return nil, err
	}
	result.StockFile = in.stockFile

	// =========================================================================
	// STEP 3: CATALOG AND BOM
	// =========================================================================

	var warnings []types.Warning

	cat, catWarnings := catalog.New(in.schematic.DeviceSets, r.cfg.Attributes)
	warnings = append(warnings, catWarnings...)

	parts := schematic.FilterSheets(in.schematic.Parts, sheets)
	if len(sheets) > 0 {
		r.logger.Debug().
			Stringer("sheets", sheets).
			Int("kept", len(parts)).
			Int("total", len(in.schematic.Parts)).
			Msg("Filtered parts by sheet")
	}

	builder := bom.NewBuilder(r.cfg.ExemptComponents, r.cfg.Attributes)
	entries, bomWarnings := builder.Build(parts, cat)
	warnings = append(warnings, bomWarnings...)

	r.logger.Debug().
		Int("devices", cat.Len()).
		Int("parts", len(parts)).
		Int("entries", len(entries)).
		Msg("Built BOM")

	// =========================================================================
	// STEP 4: GROUP AND PRICE
	// =========================================================================

	idx, stockWarnings := stock.NewIndex(in.stock)
	warnings = append(warnings, stockWarnings...)

	items := grouper.Group(entries, opts.Individual)
	priced := stock.Reconcile(items, idx)
	warnings = append(warnings, priced.Warnings...)

	r.logger.Debug().
		Int("lines", len(priced.Lines)).
		Str("total", report.Money(priced.Total)).
		Msg("Priced line items")

	rep := &report.Report{
		Schematic:     opts.SchematicPath,
		RunID:         r.runID,
		GeneratedAt:   start,
		Individual:    opts.Individual,
		Lines:         priced.Lines,
		MostExpensive: stock.MostExpensive(entries, idx, r.cfg.Report.TopN),
		Total:         priced.Total,
		Packages:      report.BuildPackages(entries),
		Warnings:      warnings,
	}

	// =========================================================================
	// STEP 5: VERIFY ORDER
	// =========================================================================

	if opts.OrderPath != "" {
		verified := order.Reconcile(entries, copies, in.order)
		rep.Order = &verified

		r.logger.Debug().
			Int("missing", verified.Count(order.OutcomeMissing)).
			Int("mismatched", verified.Count(order.OutcomeMismatched)).
			Int("extra", verified.Count(order.OutcomeExtra)).
			Msg("Verified order")
	}

	// =========================================================================
	// STEP 6: RENDER
	// =========================================================================

	var reportBuf, diagBuf bytes.Buffer

	layout := report.Options{
		NameListWidth:    r.cfg.Report.NameListWidth,
		PackageListWidth: r.cfg.Report.PackageListWidth,
	}
	if err := report.NewFormatter(format, layout).Format(&reportBuf, rep); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	if err := report.WriteDiagnostics(&diagBuf, rep.Warnings); err != nil {
		return nil, fmt.Errorf("failed to render diagnostics: %w", err)
	}
	if rep.Order != nil {
		if err := report.WriteOrderDiagnostics(&diagBuf, *rep.Order); err != nil {
			return nil, fmt.Errorf("failed to render order diagnostics: %w", err)
		}
	}

	// =========================================================================
	// STEP 7: EXPORT
	// =========================================================================

	if opts.XLSXPath != "" {
		path := r.exportPath(opts)
		if err := utils.EnsureDir(path); err != nil {
			return nil, err
		}
		if err := report.ExportXLSX(path, rep); err != nil {
			return nil, err
		}
		result.ExportFile = path
		r.logger.Info().Str("path", path).Msg("Exported workbook")
	}

	// =========================================================================
	// STEP 8: FLUSH
	// =========================================================================

	if _, err := reportBuf.WriteTo(out); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	if _, err := diagBuf.WriteTo(diag); err != nil {
		return nil, fmt.Errorf("failed to write diagnostics: %w", err)
	}

	result.Report = rep
	result.Stats = Stats{
		DeviceSets:     len(in.schematic.DeviceSets),
		Devices:        cat.Len(),
		Parts:          len(parts),
		Entries:        len(entries),
		Lines:          len(priced.Lines),
		StockParts:     idx.Len(),
		OrderRecords:   len(in.order),
		Warnings:       len(rep.Warnings),
		ProcessingTime: r.now().Sub(start),
	}
	if rep.Order != nil {
		result.Stats.Warnings += len(rep.Order.Warnings)
	}

	r.logger.Info().
		Int("lines", result.Stats.Lines).
		Int("warnings", result.Stats.Warnings).
		Dur("elapsed", result.Stats.ProcessingTime).
		Msg("Report complete")

	return result, nil
}

// readInputs reads the schematic, the stock file and the order file.
func (r *Runner) readInputs(opts Options) (*inputs, error) {
	in := &inputs{}

	sch, err := schematic.ReadFile(opts.SchematicPath)
	if err != nil {
		return nil, err
	}
	in.schematic = sch
	r.logger.Debug().
		Str("path", opts.SchematicPath).
		Int("device_sets", len(sch.DeviceSets)).
		Int("parts", len(sch.Parts)).
		Int("sheets", sch.SheetCount).
		Msg("Read schematic")

	explicit := opts.StockPath
	if explicit == "" {
		explicit = r.cfg.StockFile
	}
	stockFile, err := utils.FindFile(explicit, r.cfg.StockFileName, r.cfg.StockSearchPaths)
	if err != nil {
		return nil, pkgerrors.NewFileError("stock", "", err)
	}
	in.stockFile = stockFile

	if in.stock, err = stock.ReadFile(stockFile); err != nil {
		return nil, err
	}
	r.logger.Debug().Str("path", stockFile).Int("rows", len(in.stock)).Msg("Read stock file")

	if opts.OrderPath != "" {
		if in.order, err = order.ReadFile(opts.OrderPath, order.ColumnsFromConfig(r.cfg.Order)); err != nil {
			return nil, err
		}
		r.logger.Debug().Str("path", opts.OrderPath).Int("records", len(in.order)).Msg("Read order file")
	}

	return in, nil
}

// exportPath resolves the workbook path. ExportAuto names the file after
// the schematic and writes it to the working directory.
func (r *Runner) exportPath(opts Options) string {
	if opts.XLSXPath != ExportAuto {
		return opts.XLSXPath
	}
	name := utils.GenerateOutputFileName(r.cfg.Report.ExportName, map[string]string{
		"schematic": utils.BaseName(opts.SchematicPath),
	}, ".xlsx")
	return filepath.Clean(name)
}
