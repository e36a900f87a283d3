// Package dialect defines the executor boundary between the quill
// statement algebra and a concrete SQL database.
//
// The algebra (dialect/sql) renders statements to parameterized SQL text
// plus an ordered bind-value list; this package describes the minimal
// contract it needs from a database to run them:
//
//	prepare(sql) -> handle
//	bind(handle, index, value)
//	step(handle) -> row | done
//	exec(handle) -> result
//	finalize(handle)
//
// # Driver Interface
//
// A Driver hands out prepared-statement handles:
//
//	type Driver interface {
//	    Prepare(ctx context.Context, query string) (Stmt, error)
//	    Close() error
//	}
//
// The dialect/sql package provides the standard implementation over
// database/sql; any other executor (a direct SQLite binding, a test
// double) participates by implementing these two interfaces.
//
// # Statement Lifecycle
//
// Every execution owns exactly one handle and walks it through the same
// lifecycle: prepare, bind values at 1-based positions, step to
// completion (or exec for non-row statements), finalize. Finalize must
// run on every exit path; the layers above guarantee this with deferred
// calls, and driver implementations must tolerate Finalize after an
// errored Step.
//
// # Error Reporting
//
// Drivers report failures as ordinary error values carrying the
// database's own message text; the dialect/sql error taxonomy
// (PrepareError, BindError, ExecError) wraps them without losing the
// original text.
package dialect
