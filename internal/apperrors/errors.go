package apperrors

import (
	"errors"
	"fmt"
)

// ErrFormat indicates a file that cannot be processed at all: missing required
// header fields, an undecodable or empty payload, or zero valid rows.
var ErrFormat = errors.New("invalid file format")

// ErrRowThreshold indicates that the row-level error rate exceeded the
// configured threshold, so the parse result is considered unusable.
var ErrRowThreshold = errors.New("row error rate exceeds threshold")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// FormatError is a fatal parse failure carrying the context the caller needs
// to report it: source filename and how far the parser got.
type FormatError struct {
	Filename      string
	Reason        string
	RowsProcessed int
}

func (e *FormatError) Error() string {
	if e.RowsProcessed > 0 {
		return fmt.Sprintf("format error in %s after %d rows: %s", e.Filename, e.RowsProcessed, e.Reason)
	}
	return fmt.Sprintf("format error in %s: %s", e.Filename, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// ThresholdError is raised when too many rows fail to parse. It wraps
// ErrRowThreshold so callers can match it with errors.Is.
type ThresholdError struct {
	Filename   string
	Failed     int
	Total      int
	Threshold  float64
	FirstError string
}

func (e *ThresholdError) Error() string {
	rate := 0.0
	if e.Total > 0 {
		rate = float64(e.Failed) / float64(e.Total) * 100
	}
	return fmt.Sprintf("parse error rate (%.1f%%) exceeds threshold (%.1f%%) in %s: %d of %d rows failed, first error: %s",
		rate, e.Threshold, e.Filename, e.Failed, e.Total, e.FirstError)
}

func (e *ThresholdError) Unwrap() error {
	return ErrRowThreshold
}
