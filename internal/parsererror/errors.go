// Package parsererror defines the error types shared by the statement
// parsers and the importer.
package parsererror

import "fmt"

// ParseError represents an error during parsing of a whole input,
// as opposed to a single malformed record (those are dropped, not raised).
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MappingError represents an invalid CSV column mapping, e.g. a role name
// that does not exist in the file's headers.
type MappingError struct {
	Role   string
	Header string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("column mapping: role %s refers to unknown header '%s'", e.Role, e.Header)
}

// AuthError represents a commit attempt without an authenticated user.
// It is fatal for the whole import run.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("not authenticated: %s", e.Reason)
}

// CommitError represents a store rejection for a single row. It is recovered
// at the row level and never aborts the remaining rows.
type CommitError struct {
	RowID     string
	Operation string
	Err       error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed for row %s during %s: %v", e.RowID, e.Operation, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
