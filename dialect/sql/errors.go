package sql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
)

// Sentinel errors surfaced by statement execution and row decoding.
var (
	// ErrNotFound is reported by single-result lookups that matched no row.
	ErrNotFound = errors.New("quill: entity not found")

	// ErrNoInsertID is reported when an insert completed but the database
	// yielded no generated row id.
	ErrNoInsertID = errors.New("quill: insert returned no row id")

	// ErrMissingColumn is the cause carried by a ReadError when a named
	// column is absent from the result set.
	ErrMissingColumn = errors.New("column not found in result")
)

// BindError reports a value that failed to attach to its placeholder.
// It wraps the driver's own error text.
type BindError struct {
	Index int   // 1-based placeholder position
	Err   error // underlying driver error
}

// Error returns the error string.
func (e *BindError) Error() string {
	return fmt.Sprintf("quill: bind value at index %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *BindError) Unwrap() error { return e.Err }

// NewBindError returns a new BindError for the given placeholder index.
func NewBindError(index int, err error) *BindError {
	return &BindError{Index: index, Err: err}
}

// IsBindError returns true if the error is a BindError.
func IsBindError(err error) bool {
	if err == nil {
		return false
	}
	var e *BindError
	return errors.As(err, &e)
}

// PrepareError reports SQL text the database failed to compile. For
// statements built through the algebra this indicates a construction bug
// (for example a misspelled function name passed to Fn), not a data
// problem.
type PrepareError struct {
	Query string // the SQL text that failed to compile
	Err   error  // underlying driver error
}

// Error returns the error string.
func (e *PrepareError) Error() string {
	return fmt.Sprintf("quill: prepare %q: %v", e.Query, e.Err)
}

// Unwrap returns the underlying error.
func (e *PrepareError) Unwrap() error { return e.Err }

// NewPrepareError returns a new PrepareError for the given query.
func NewPrepareError(query string, err error) *PrepareError {
	return &PrepareError{Query: query, Err: err}
}

// IsPrepareError returns true if the error is a PrepareError.
func IsPrepareError(err error) bool {
	if err == nil {
		return false
	}
	var e *PrepareError
	return errors.As(err, &e)
}

// ExecError reports a statement that failed while executing or stepping
// through results: constraint violations, type mismatches, IO failures.
// It wraps the driver's own error text.
type ExecError struct {
	Query string // the SQL text that was executing
	Err   error  // underlying driver error
}

// Error returns the error string.
func (e *ExecError) Error() string {
	return fmt.Sprintf("quill: execute %q: %v", e.Query, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecError) Unwrap() error { return e.Err }

// NewExecError returns a new ExecError for the given query.
func NewExecError(query string, err error) *ExecError {
	return &ExecError{Query: query, Err: err}
}

// IsExecError returns true if the error is an ExecError.
func IsExecError(err error) bool {
	if err == nil {
		return false
	}
	var e *ExecError
	return errors.As(err, &e)
}

// ReadError reports a row that could not be decoded into a domain value:
// a named column missing from the result set, or a value the entity's
// row constructor could not accept. It identifies both the column and
// the table for diagnostics.
type ReadError struct {
	Table  string
	Column string
	Err    error
}

// Error returns the error string.
func (e *ReadError) Error() string {
	return fmt.Sprintf("quill: read %s.%s: %v", e.Table, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error { return e.Err }

// NewReadError returns a new ReadError for the given table and column.
func NewReadError(table, column string, err error) *ReadError {
	return &ReadError{Table: table, Column: column, Err: err}
}

// IsReadError returns true if the error is a ReadError.
func IsReadError(err error) bool {
	if err == nil {
		return false
	}
	var e *ReadError
	return errors.As(err, &e)
}

// PostgreSQL SQLSTATE codes for constraint violations (Class 23).
const (
	pgIntegrityViolation  = "23"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MySQL error numbers for constraint violations.
const (
	mysqlNullViolation    = 1048
	mysqlDuplicateEntry   = 1062
	mysqlForeignKeyParent = 1451 // cannot delete or update a parent row
	mysqlForeignKeyChild  = 1452 // cannot add or update a child row
	mysqlCheckViolation   = 3819
)

// SQLite primary and extended result codes for constraint violations.
const (
	sqliteConstraint           = 19
	sqliteConstraintCheck      = 275
	sqliteConstraintForeignKey = 787
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// IsConstraintError returns true if the error resulted from a database
// constraint violation of any kind.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqliteCode(err); ok && code&0xff == sqliteConstraint {
		return true
	}
	if state, ok := pgCode(err); ok && strings.HasPrefix(state, pgIntegrityViolation) {
		return true
	}
	if num, ok := mysqlNumber(err); ok {
		switch num {
		case mysqlNullViolation, mysqlDuplicateEntry, mysqlForeignKeyParent, mysqlForeignKeyChild, mysqlCheckViolation:
			return true
		}
	}
	return containsAny(err.Error(),
		"constraint failed", // SQLite
		"violates",          // Postgres
		"Duplicate entry",   // MySQL
	)
}

// IsUniqueConstraintError reports if the error resulted from a
// uniqueness constraint violation, e.g. a duplicate value in a unique
// column.
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqliteCode(err); ok {
		return code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey
	}
	if state, ok := pgCode(err); ok {
		return state == pgUniqueViolation
	}
	if num, ok := mysqlNumber(err); ok {
		return num == mysqlDuplicateEntry
	}
	// Fallback to string matching for wrapped or foreign driver errors.
	return containsAny(err.Error(),
		"UNIQUE constraint failed",   // SQLite
		"violates unique constraint", // Postgres
		"Error 1062",                 // MySQL
		"Duplicate entry",            // MySQL
	)
}

// IsForeignKeyConstraintError reports if the error resulted from a
// foreign-key constraint violation, e.g. a referenced parent row that
// does not exist.
func IsForeignKeyConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqliteCode(err); ok {
		return code == sqliteConstraintForeignKey
	}
	if state, ok := pgCode(err); ok {
		return state == pgForeignKeyViolation
	}
	if num, ok := mysqlNumber(err); ok {
		return num == mysqlForeignKeyParent || num == mysqlForeignKeyChild
	}
	return containsAny(err.Error(),
		"FOREIGN KEY constraint failed",   // SQLite
		"violates foreign key constraint", // Postgres
		"Error 1451",                      // MySQL
		"Error 1452",                      // MySQL
	)
}

// IsCheckConstraintError reports if the error resulted from a check
// constraint violation.
func IsCheckConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqliteCode(err); ok {
		return code == sqliteConstraintCheck
	}
	if state, ok := pgCode(err); ok {
		return state == pgCheckViolation
	}
	if num, ok := mysqlNumber(err); ok {
		return num == mysqlCheckViolation
	}
	return containsAny(err.Error(),
		"CHECK constraint failed",   // SQLite
		"violates check constraint", // Postgres
		"Error 3819",                // MySQL
	)
}

// sqliteCode extracts the extended result code from a modernc.org/sqlite
// error anywhere in the chain.
func sqliteCode(err error) (int, bool) {
	var e *sqlite.Error
	if errors.As(err, &e) {
		return e.Code(), true
	}
	return 0, false
}

// pgCode extracts the SQLSTATE code from a lib/pq error anywhere in the
// chain.
func pgCode(err error) (string, bool) {
	var e *pq.Error
	if errors.As(err, &e) {
		return string(e.Code), true
	}
	return "", false
}

// mysqlNumber extracts the server error number from a go-sql-driver/mysql
// error anywhere in the chain.
func mysqlNumber(err error) (uint16, bool) {
	var e *mysql.MySQLError
	if errors.As(err, &e) {
		return e.Number, true
	}
	return 0, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
