package dataset

import "errors"

var (
	// ErrUnsupportedFormat is returned for a trade file that is neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported trade file format")

	// ErrEmptyFile is returned when the trade file has no header row.
	ErrEmptyFile = errors.New("trade file is empty")

	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMalformedRow is returned when a data row cannot be parsed or fails validation.
	ErrMalformedRow = errors.New("malformed trade row")

	// ErrInvalidBoundary is returned for a boundary feature without a usable name or geometry.
	ErrInvalidBoundary = errors.New("invalid boundary feature")
)
