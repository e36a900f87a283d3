package dialect

import "context"

// Driver is the boundary between the statement algebra and a concrete
// database. A driver only needs to hand out prepared-statement handles;
// everything else (rendering, binding order, result decoding) is the
// responsibility of the layers above it.
type Driver interface {
	// Prepare compiles the given SQL text and returns a statement handle.
	// The caller owns the handle and must call Finalize on every exit
	// path, including errors.
	Prepare(ctx context.Context, query string) (Stmt, error)

	// Close releases the driver and its underlying resources.
	Close() error
}

// Stmt is a single prepared-statement handle: bind values by position,
// step through result rows or execute, then finalize. A handle is not
// safe for concurrent use; each execution owns exactly one handle.
//
// Bind indexes are 1-based, matching the placeholder positions in the
// prepared SQL text. Text and byte binds have transient copy semantics:
// the implementation must copy the data, the source buffer is not
// required to outlive the call.
type Stmt interface {
	// BindInt64 binds a 64-bit signed integer to the placeholder at index.
	BindInt64(index int, v int64) error
	// BindFloat64 binds a 64-bit float to the placeholder at index.
	BindFloat64(index int, v float64) error
	// BindText binds a UTF-8 string to the placeholder at index.
	BindText(index int, v string) error
	// BindBytes binds a byte slice to the placeholder at index.
	BindBytes(index int, v []byte) error
	// BindNull binds SQL NULL to the placeholder at index.
	BindNull(index int) error

	// Step advances to the next result row. It reports true while a row
	// is available and false once the statement is done.
	Step() (bool, error)

	// Exec runs a statement that returns no rows and reports its result.
	Exec() (Result, error)

	// ColumnCount reports the number of columns in the current result row.
	ColumnCount() int
	// ColumnName returns the name of the i-th result column (0-based).
	ColumnName(i int) string
	// ColumnType reports the storage class of the i-th column's value in
	// the current row.
	ColumnType(i int) StorageClass
	// ColumnInt64 reads the i-th column of the current row as an integer.
	ColumnInt64(i int) int64
	// ColumnFloat64 reads the i-th column of the current row as a float.
	ColumnFloat64(i int) float64
	// ColumnText reads the i-th column of the current row as a string.
	ColumnText(i int) string
	// ColumnBytes reads the i-th column of the current row as a byte
	// slice. The returned slice is owned by the caller.
	ColumnBytes(i int) []byte

	// Finalize releases the handle. It must be called exactly once on
	// every exit path; a leaked handle on an error path is a defect.
	Finalize() error
}

// Result reports the outcome of a non-row statement. It mirrors the
// database/sql result contract so standard results satisfy it directly.
type Result interface {
	// LastInsertId returns the row id generated by an insert, when the
	// database supports it.
	LastInsertId() (int64, error)
	// RowsAffected returns the number of rows changed by the statement.
	RowsAffected() (int64, error)
}

// StorageClass identifies the runtime storage class of a value in a
// result row, as reported by the database. It is distinct from the
// declared column type: a nullable integer column holds StorageNull
// in rows where the value is NULL.
type StorageClass uint8

// Storage classes.
const (
	StorageNull StorageClass = iota
	StorageInteger
	StorageReal
	StorageText
	StorageBlob
)

var storageNames = [...]string{
	StorageNull:    "null",
	StorageInteger: "integer",
	StorageReal:    "real",
	StorageText:    "text",
	StorageBlob:    "blob",
}

// String returns the storage class name.
func (c StorageClass) String() string {
	if int(c) < len(storageNames) {
		return storageNames[c]
	}
	return "invalid"
}
