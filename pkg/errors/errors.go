// Package errors provides the error types that abort an eaglebom run.
//
// Data-quality problems (missing attributes, stock mismatches, order
// differences) are never errors. They travel as types.Warning values next
// to each component's result. Only the conditions below stop a run.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
var New = errors.New

// Sentinel errors used with errors.Is.
var (
	// ErrNotFound indicates that an input file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that an input file is structurally unusable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfig indicates a bad configuration value or flag.
	ErrConfig = errors.New("configuration error")
)

// FileError is returned when an input file cannot be opened or read.
type FileError struct {
	Kind string // "schematic", "stock", "order", ...
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s file: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s file %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Is reports a missing file as ErrNotFound.
func (e *FileError) Is(target error) bool {
	return target == ErrNotFound && IsNotExist(e.Err)
}

// NewFileError creates a new FileError.
func NewFileError(kind, path string, err error) *FileError {
	return &FileError{Kind: kind, Path: path, Err: err}
}

// HeaderError is returned when a tabular input lacks a required column.
type HeaderError struct {
	File   string
	Column string
}

// Error implements the error interface.
func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s is missing '%s' column", e.File, e.Column)
}

// Is implements errors.Is support.
func (e *HeaderError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewHeaderError creates a new HeaderError.
func NewHeaderError(file, column string) *HeaderError {
	return &HeaderError{File: file, Column: column}
}

// ParseError is returned when a required field of an input row cannot be parsed.
type ParseError struct {
	File    string
	Line    int
	Field   string
	Value   string
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	where := e.File
	if e.Line > 0 {
		where = fmt.Sprintf("%s line %d", e.File, e.Line)
	}
	if e.Value == "" {
		return fmt.Sprintf("%s: invalid %s: %s", where, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: invalid %s %q: %s", where, e.Field, e.Value, e.Message)
}

// Is implements errors.Is support.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError.
func NewParseError(file string, line int, field, value, message string) *ParseError {
	return &ParseError{File: file, Line: line, Field: field, Value: value, Message: message}
}

// ConfigError represents a bad configuration value.
type ConfigError struct {
	Key     string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config %s: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("config: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(key, message string) *ConfigError {
	return &ConfigError{Key: key, Message: message}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if an error is an invalid input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfig checks if an error is a configuration error.
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}

// As is errors.As re-exported so callers need a single errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}
