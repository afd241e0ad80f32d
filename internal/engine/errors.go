package engine

import "fmt"

// SchemaError means a requested or required column is absent (or unusable).
// Loader and exporter both return it; it is always fatal for the operation
// that raised it.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: column %q: %s", e.Column, e.Reason)
}

// ValidationError is a per-record load problem. The loader collects these in
// the LoadReport and skips the offending row; it never aborts the load.
type ValidationError struct {
	Row    int // 1-based data row, header excluded
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: field %q value %q: %s", e.Row, e.Field, e.Value, e.Reason)
}

// RangeWarning flags a record whose simulated compensation went negative
// after a pay-cut percentage. The result is still produced; the warning is
// surfaced alongside it.
type RangeWarning struct {
	Name    string  `json:"name"`
	Updated float64 `json:"updated"`
}

func (w RangeWarning) String() string {
	return fmt.Sprintf("updated compensation for %q is negative (%g)", w.Name, w.Updated)
}
