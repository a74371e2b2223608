// =============================================================================
// EagleBOM - File Utilities
// =============================================================================
//
// This module provides the file helpers used around a run:
//   - Stock file discovery (explicit path or search path)
//   - Output file naming for exports
//   - Directory management for export targets
//
// STOCK FILE DISCOVERY:
//   1. An explicit path (flag or config) is used as-is, even if missing,
//      so the user sees an error for the file they named.
//   2. Otherwise each search directory is tried in order and the first
//      existing regular file named <name> wins.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// FindFile resolves a file from an explicit path or a search path.
//
// PARAMETERS:
//   - explicit: A path given by the user. Wins when non-empty.
//   - name: The file name to look for in searchPaths.
//   - searchPaths: Directories to try, in order.
//
// RETURNS:
//   - The resolved path.
//   - A not-found error listing the searched locations.
func FindFile(explicit, name string, searchPaths []string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	tried := make([]string, 0, len(searchPaths))
	for _, dir := range searchPaths {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if FileExists(candidate) {
			return candidate, nil
		}
		tried = append(tried, candidate)
	}

	return "", fmt.Errorf("%w: %s (searched %s)", pkgerrors.ErrNotFound, name, strings.Join(tried, ", "))
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDir creates the parent directory of path if needed.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {<key>}     - Any key of params
//   - params: A map of placeholder values.
//   - ext: The required extension, e.g. ".xlsx". Appended when missing.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "bom_{schematic}_{timestamp}_{uuid}.xlsx"
//   params: {"schematic": "amp"}
//   output: "bom_amp_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"
func GenerateOutputFileName(format string, params map[string]string, ext string) string {
	return generateOutputFileName(format, params, ext, time.Now(), uuid.New())
}

func generateOutputFileName(format string, params map[string]string, ext string, now time.Time, id uuid.UUID) string {
	replacements := map[string]string{
		"{uuid}":      id.String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}
	return result
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
