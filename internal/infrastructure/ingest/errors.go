package ingest

import "errors"

var (
	// ErrEmptyFile is returned when the CSV file has no content
	ErrEmptyFile = errors.New("CSV file is empty")
	// ErrInvalidEncoding is returned when the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("CSV file is not valid UTF-8")
	// ErrMissingHeader is returned when the file ends before both header rows
	ErrMissingHeader = errors.New("CSV file is missing its header rows")
	// ErrNoDataRows is returned when the file contains headers but no data
	ErrNoDataRows = errors.New("CSV file contains no data rows")
	// ErrTooManyRows is returned when the file exceeds the configured row limit
	ErrTooManyRows = errors.New("CSV file exceeds the maximum row count")
)
