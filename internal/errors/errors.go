// Package errors defines the error taxonomy shared by the ETL pipeline.
package errors

import "errors"

// Sentinel errors. AppError values wrap these as their Cause so callers can
// branch with errors.Is without inspecting messages.
var (
	// ErrOutputDirMissing is returned by a write whose target directory does not exist.
	// It is the only recoverable failure in a run.
	ErrOutputDirMissing = errors.New("output directory does not exist")

	// ErrInsufficientRows is returned when a statistic needs more rows than the dataset has.
	ErrInsufficientRows = errors.New("insufficient rows")

	// ErrNoInputFiles is returned when the input folder holds no files to read.
	ErrNoInputFiles = errors.New("no input files")

	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// Is forwards to the standard library so callers importing this package
// under its default name keep errors.Is available.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As forwards to the standard library.
func As(err error, target any) bool {
	return errors.As(err, target)
}
