// =============================================================================
// EagleBOM - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every subcommand is
// attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (eaglebom)
//   ├── reportCmd  (eaglebom report <schematic>)
//   └── versionCmd (eaglebom version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads a .env file from the working directory, if there is one
//   2. Loads the configuration (eaglebom.yaml, EAGLEBOM_* variables)
//   3. Sets up logging from the flags and the configuration
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/eaglebom/internal/config"
	"github.com/ginjaninja78/eaglebom/pkg/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// Logging flags.
var (
	verbose   bool
	quiet     bool
	logLevel  string
	logFormat string
)

// appConfig and logger are set up by the root command before any
// subcommand runs.
var (
	appConfig *config.Config
	logger    = zerolog.Nop()

	// logCloser releases the log file, if logging goes to one.
	logCloser io.Closer
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "eaglebom",
	Short: "EagleBOM - Bill of materials and order checks for Eagle schematics",
	Long: `EagleBOM extracts the bill of materials from an Eagle schematic, prices it
against a vendor stock file and checks a purchase order against it.

The BOM report is printed to standard output. Warnings about missing
attributes, stock mismatches and order differences are printed to standard
error.

Example Usage:
  eaglebom report amp.sch
  eaglebom report amp.sch --order order.csv --copies 5
  eaglebom report amp.sch --sheets 1,3-5 --format table
  eaglebom report amp.sch --xlsx auto`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. A failed run prints a single error line and
// exits with status 1.
func Execute() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// closeLog closes the log file opened by initialize.
func closeLog() {
	if logCloser == nil {
		return
	}
	if err := logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to close log file: %v\n", err)
	}
	logCloser = nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&quiet,
		"quiet",
		"q",
		false,
		"Only log errors",
	)

	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"Log level (debug, info, warn, error)",
	)

	rootCmd.PersistentFlags().StringVar(
		&logFormat,
		"log-format",
		"",
		"Log format (auto, console, json)",
	)
}

// initialize loads the environment, the configuration and the logger.
func initialize(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	explicit := cmd.Flags().Changed("config")
	cfg, err := config.Load(viper.New(), cfgFile, explicit)
	if err != nil {
		return err
	}

	level, err := logging.ResolveLevel(logLevel, verbose, quiet, cfg.LogLevel)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.Output = cfg.LogOutput
	logCfg.Format = cfg.LogFormat
	if logFormat != "" {
		logCfg.Format = logFormat
	}

	newLogger, closer, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	closeLog()
	appConfig = cfg
	logger = newLogger
	logCloser = closer
	logger.Debug().Str("config", cfgFile).Bool("explicit", explicit).Msg("Loaded configuration")

	return nil
}
