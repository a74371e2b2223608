// =============================================================================
// EagleBOM - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Values come from, in
// increasing priority:
//   1. Built-in defaults (DefaultConfig)
//   2. The YAML config file (eaglebom.yaml, or --config)
//   3. EAGLEBOM_* environment variables (a .env file is loaded first)
//
// Command-line flags are applied on top by the cmd package.
//
// CONFIG FILE EXAMPLE:
//   stock_file: "/srv/parts/Mouser Stock.txt"
//   exempt_components: ["GROUND/GND/EARTH", "+5V", "LOGO"]
//   attributes:
//     vendor_pn: DIGIKEYPN
//   order:
//     part_number_column: "digi-key part number"
//     quantity_column: "quantity"
//   report:
//     top_n: 20
//
// =============================================================================

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ginjaninja78/eaglebom/internal/types"
	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "EAGLEBOM"

// DefaultConfigFile is the config file looked up when --config is not given.
const DefaultConfigFile = "eaglebom.yaml"

// DefaultStockFileName is the stock file searched for when none is given.
const DefaultStockFileName = "Mouser Stock.txt"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// StockFile is the stock catalog to use. Empty means search for
	// StockFileName in StockSearchPaths.
	StockFile string `mapstructure:"stock_file" yaml:"stock_file"`

	// StockFileName is the file name searched for in StockSearchPaths.
	StockFileName string `mapstructure:"stock_file_name" yaml:"stock_file_name"`

	// StockSearchPaths are the directories searched, in order.
	// Default: the executable's directory, then the working directory.
	StockSearchPaths []string `mapstructure:"stock_search_paths" yaml:"stock_search_paths"`

	// ExemptComponents are device-set names that are never BOM entries.
	ExemptComponents []string `mapstructure:"exempt_components" yaml:"exempt_components"`

	// Attributes name the schematic attributes with purchasing data.
	Attributes types.AttributeNames `mapstructure:"attributes" yaml:"attributes"`

	// Order describes the order file's columns.
	Order OrderConfig `mapstructure:"order" yaml:"order"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	Report ReportConfig `mapstructure:"report" yaml:"report"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of operational logging.
	// Valid values: "debug", "info", "warn", "error"
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// LogFormat is "auto", "console" or "json".
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// LogOutput is "stderr", "stdout", "discard" or a file path.
	LogOutput string `mapstructure:"log_output" yaml:"log_output"`
}

// OrderConfig names the order file columns. Matching is case-insensitive.
type OrderConfig struct {
	PartNumberColumn string `mapstructure:"part_number_column" yaml:"part_number_column"`
	QuantityColumn   string `mapstructure:"quantity_column" yaml:"quantity_column"`
}

// ReportConfig controls report layout.
type ReportConfig struct {
	// Format is the report format: text, table, json or yaml.
	Format string `mapstructure:"format" yaml:"format"`

	// TopN is the length of the most-expensive-lines ranking.
	TopN int `mapstructure:"top_n" yaml:"top_n"`

	// NameListWidth is where the text report wraps a line's part names.
	NameListWidth int `mapstructure:"name_list_width" yaml:"name_list_width"`

	// PackageListWidth is where the packages section wraps part names.
	PackageListWidth int `mapstructure:"package_list_width" yaml:"package_list_width"`

	// ExportName is the file name pattern for "--xlsx auto".
	// Placeholders: {uuid}, {timestamp}, {date}, {time}, {schematic}.
	ExportName string `mapstructure:"export_name" yaml:"export_name"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		StockFileName:    DefaultStockFileName,
		StockSearchPaths: defaultSearchPaths(),
		ExemptComponents: []string{
			"GROUND/GND/EARTH",
			"+3.3V",
			"+3.3V_A",
			"+12V",
			"-12V",
			"+5V",
			"A4L-LOC",
		},
		Attributes: types.DefaultAttributeNames(),
		Order: OrderConfig{
			PartNumberColumn: "mouser no",
			QuantityColumn:   "order qty.",
		},
		Report: ReportConfig{
			Format:           "text",
			TopN:             10,
			NameListWidth:    28,
			PackageListWidth: 100,
			ExportName:       "bom_{schematic}_{timestamp}_{uuid}.xlsx",
		},
		LogLevel:  "warn",
		LogFormat: "auto",
		LogOutput: "stderr",
	}
}

// defaultSearchPaths returns the executable's directory and the working
// directory, skipping whichever cannot be determined.
func defaultSearchPaths() []string {
	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, wd)
	}
	return paths
}

// setDefaults registers every default with viper so environment variables
// can override keys that the config file does not mention.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("stock_file", d.StockFile)
	v.SetDefault("stock_file_name", d.StockFileName)
	v.SetDefault("stock_search_paths", d.StockSearchPaths)
	v.SetDefault("exempt_components", d.ExemptComponents)
	v.SetDefault("attributes.manufacturer", d.Attributes.Manufacturer)
	v.SetDefault("attributes.manufacturer_pn", d.Attributes.ManufacturerPN)
	v.SetDefault("attributes.vendor_pn", d.Attributes.VendorPN)
	v.SetDefault("order.part_number_column", d.Order.PartNumberColumn)
	v.SetDefault("order.quantity_column", d.Order.QuantityColumn)
	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("report.top_n", d.Report.TopN)
	v.SetDefault("report.name_list_width", d.Report.NameListWidth)
	v.SetDefault("report.package_list_width", d.Report.PackageListWidth)
	v.SetDefault("report.export_name", d.Report.ExportName)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_output", d.LogOutput)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration.
//
// PARAMETERS:
//   - v: The viper instance to read into (a fresh one when nil).
//   - configPath: The config file. When explicit is false a missing file
//     is not an error and the defaults are used.
//   - explicit: Whether the user named the config file.
//
// RETURNS:
//   - The validated configuration.
//   - A FileError for an unreadable file, a ConfigError for bad values.
func Load(v *viper.Viper, configPath string, explicit bool) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			if explicit || !pkgerrors.IsNotExist(err) {
				return nil, pkgerrors.NewFileError("config", configPath, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, pkgerrors.NewConfigError("", err.Error())
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills values the file set to empty.
func applyDefaults(cfg *Config) {
	d := DefaultConfig()

	if cfg.StockFileName == "" {
		cfg.StockFileName = d.StockFileName
	}
	if len(cfg.StockSearchPaths) == 0 {
		cfg.StockSearchPaths = d.StockSearchPaths
	}
	if cfg.Order.PartNumberColumn == "" {
		cfg.Order.PartNumberColumn = d.Order.PartNumberColumn
	}
	if cfg.Order.QuantityColumn == "" {
		cfg.Order.QuantityColumn = d.Order.QuantityColumn
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = d.Report.Format
	}
	if cfg.Report.ExportName == "" {
		cfg.Report.ExportName = d.Report.ExportName
	}
}

// Validate checks values that would make the report meaningless.
func (c *Config) Validate() error {
	if c.Attributes.Manufacturer == "" {
		return pkgerrors.NewConfigError("attributes.manufacturer", "must not be empty")
	}
	if c.Attributes.ManufacturerPN == "" {
		return pkgerrors.NewConfigError("attributes.manufacturer_pn", "must not be empty")
	}
	if c.Attributes.VendorPN == "" {
		return pkgerrors.NewConfigError("attributes.vendor_pn", "must not be empty")
	}
	if c.Report.TopN <= 0 {
		return pkgerrors.NewConfigError("report.top_n", "must be positive")
	}
	if c.Report.NameListWidth <= 0 {
		return pkgerrors.NewConfigError("report.name_list_width", "must be positive")
	}
	if c.Report.PackageListWidth <= 0 {
		return pkgerrors.NewConfigError("report.package_list_width", "must be positive")
	}
	return nil
}
