package schema

import (
	"errors"
	"fmt"
)

// ErrSessionNotReady is returned by read accessors before a dataset is loaded.
var ErrSessionNotReady = errors.New("session is not ready")

// ParseError reports a raw row whose field could not be decoded.
type ParseError struct {
	Row   int // 1-based data row, excluding the header
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: field %s: cannot parse %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DataLoadError reports a failed one-time dataset load.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// InvalidFilterValue reports a rejected filter mutation.
type InvalidFilterValue struct {
	Field  FilterField
	Value  string
	Reason string
}

func (e *InvalidFilterValue) Error() string {
	return fmt.Sprintf("invalid %s filter value %q: %s", e.Field, e.Value, e.Reason)
}
