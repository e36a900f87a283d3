package quill

import (
	"errors"
	"fmt"

	"github.com/syssam/quill/dialect/sql"
)

// ErrNotFound is reported by single-result lookups that matched no row.
// It is the same sentinel the statement layer's Single.OrErr returns, so
// errors.Is works against either package's name.
var ErrNotFound = sql.ErrNotFound

// NotFoundError reports a lookup that matched no row, carrying the table
// searched and optionally the id searched for. It matches ErrNotFound
// under errors.Is.
type NotFoundError struct {
	table string
	id    any
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("quill: %s not found (id=%v)", e.table, e.id)
	}
	return fmt.Sprintf("quill: %s not found", e.table)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Table returns the table that was searched.
func (e *NotFoundError) Table() string {
	return e.table
}

// ID returns the id that was searched for, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given table.
func NewNotFoundError(table string) *NotFoundError {
	return &NotFoundError{table: table}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the id that was
// searched for.
func NewNotFoundErrorWithID(table string, id any) *NotFoundError {
	return &NotFoundError{table: table, id: id}
}

// IsNotFound returns true if the error reports a lookup that matched no
// row.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// IsConstraintError returns true if the error reports any database
// constraint violation. Detection covers the sqlite, mysql and postgres
// driver error types with message fallbacks; see the sql package for the
// finer-grained predicates' contracts.
func IsConstraintError(err error) bool {
	return sql.IsConstraintError(err)
}

// IsUniqueConstraintError returns true if the error reports a unique or
// primary-key constraint violation.
func IsUniqueConstraintError(err error) bool {
	return sql.IsUniqueConstraintError(err)
}

// IsForeignKeyConstraintError returns true if the error reports a
// foreign-key constraint violation.
func IsForeignKeyConstraintError(err error) bool {
	return sql.IsForeignKeyConstraintError(err)
}

// IsCheckConstraintError returns true if the error reports a check or
// not-null constraint violation.
func IsCheckConstraintError(err error) bool {
	return sql.IsCheckConstraintError(err)
}
