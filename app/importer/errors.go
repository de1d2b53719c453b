package importer

import (
	"errors"
	"fmt"
)

// Input errors: the upload itself is unusable. No store mutation has
// happened when one of these is returned, so the HTTP layer reports them
// as client errors.
var (
	// ErrNoFile is returned when the request carried no file at all.
	ErrNoFile = errors.New("no file supplied")

	// ErrEmptyFile is returned when the uploaded file has no content.
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrMissingHeader is returned when the CSV has no header row.
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrNoUsableRows is returned when parsing and normalization yield
	// zero candidate projects. A header-only file lands here.
	ErrNoUsableRows = errors.New("CSV file contains no usable rows")
)

// ParseError reports malformed CSV content (bad quoting and the like) at a
// specific line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("CSV parse error at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RowError reports a data row that could not be normalized into a project.
// A RowError fails only that row; the import continues with the rest.
type RowError struct {
	Row int
	Msg string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Msg)
}

// StoreError wraps a failure from the project or account store during the
// import transaction. These are server-side failures, not input problems.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsInputError reports whether err is the caller's fault: a missing,
// malformed or empty upload rather than a store failure.
func IsInputError(err error) bool {
	var parseErr *ParseError
	return errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrMissingHeader) ||
		errors.Is(err, ErrNoUsableRows) ||
		errors.As(err, &parseErr)
}
