package internal

import "fmt"

// ParseError represents a record that failed JSON parsing. Parse
// failures are isolated per record: the failing record renders as an
// error leaf and the rest of the stream still loads.
type ParseError struct {
	Index int // zero-based position in the record stream
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record %d: malformed JSON: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StoreError represents errors accessing the preference store
type StoreError struct {
	Op  string // "open", "init", "get", "set", "list"
	Key string // store path or category name
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
