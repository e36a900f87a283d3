package sql

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/quill/dialect"
	"github.com/syssam/quill/schema"
)

// Row reads typed column values out of the current result row of a
// stepped statement handle. It is valid only between a Step that
// returned a row and the next Step or Finalize; entity decoders receive
// one and must not retain it.
//
// Columns are resolved by name, case-sensitively. When a statement
// yields several result columns with the same name the last one wins,
// matching the driver's own resolution rule. Reading a column the
// statement did not return fails with a ReadError naming the table and
// column.
type Row struct {
	table string
	stmt  dialect.Stmt
	idx   map[string]int
}

func newRow(table string, stmt dialect.Stmt) *Row {
	return &Row{table: table, stmt: stmt}
}

func (r *Row) index(column schema.Column) (int, error) {
	if r.idx == nil {
		n := r.stmt.ColumnCount()
		r.idx = make(map[string]int, n)
		for i := 0; i < n; i++ {
			r.idx[r.stmt.ColumnName(i)] = i
		}
	}
	i, ok := r.idx[column.Name()]
	if !ok {
		return 0, NewReadError(r.table, column.Name(), ErrMissingColumn)
	}
	return i, nil
}

// Int returns the column as an int64.
func (r *Row) Int(column schema.Column) (int64, error) {
	i, err := r.index(column)
	if err != nil {
		return 0, err
	}
	return r.stmt.ColumnInt64(i), nil
}

// Float returns the column as a float64.
func (r *Row) Float(column schema.Column) (float64, error) {
	i, err := r.index(column)
	if err != nil {
		return 0, err
	}
	return r.stmt.ColumnFloat64(i), nil
}

// Text returns the column as a string.
func (r *Row) Text(column schema.Column) (string, error) {
	i, err := r.index(column)
	if err != nil {
		return "", err
	}
	return r.stmt.ColumnText(i), nil
}

// Bool returns the column as a bool. Any non-zero integer is true.
func (r *Row) Bool(column schema.Column) (bool, error) {
	i, err := r.index(column)
	if err != nil {
		return false, err
	}
	return r.stmt.ColumnInt64(i) != 0, nil
}

// Time returns the column as a UTC time, decoded from Unix seconds.
func (r *Row) Time(column schema.Column) (time.Time, error) {
	i, err := r.index(column)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(r.stmt.ColumnInt64(i), 0).UTC(), nil
}

// Bytes returns the column as a byte slice. The slice is the caller's to
// keep; it does not alias driver memory.
func (r *Row) Bytes(column schema.Column) ([]byte, error) {
	i, err := r.index(column)
	if err != nil {
		return nil, err
	}
	return r.stmt.ColumnBytes(i), nil
}

// NullableInt is Int for nullable columns: it returns nil when the
// stored value is NULL. The non-nullable accessors never check, reading
// NULL as the type's zero value.
func (r *Row) NullableInt(column schema.Column) (*int64, error) {
	i, err := r.index(column)
	if err != nil {
		return nil, err
	}
	if r.stmt.ColumnType(i) == dialect.StorageNull {
		return nil, nil
	}
	v := r.stmt.ColumnInt64(i)
	return &v, nil
}

// NullableFloat is Float for nullable columns: it returns nil when the
// stored value is NULL.
func (r *Row) NullableFloat(column schema.Column) (*float64, error) {
	i, err := r.index(column)
	if err != nil {
		return nil, err
	}
	if r.stmt.ColumnType(i) == dialect.StorageNull {
		return nil, nil
	}
	v := r.stmt.ColumnFloat64(i)
	return &v, nil
}

// NullableText is Text for nullable columns: it returns nil when the
// stored value is NULL.
func (r *Row) NullableText(column schema.Column) (*string, error) {
	i, err := r.index(column)
	if err != nil {
		return nil, err
	}
	if r.stmt.ColumnType(i) == dialect.StorageNull {
		return nil, nil
	}
	v := r.stmt.ColumnText(i)
	return &v, nil
}

// NullableBool is Bool for nullable columns: it returns nil when the
// stored value is NULL.
func (r *Row) NullableBool(column schema.Column) (*bool, error) {
	i, err := r.index(column)
	if err != nil {
		return nil, err
	}
	if r.stmt.ColumnType(i) == dialect.StorageNull {
		return nil, nil
	}
	v := r.stmt.ColumnInt64(i) != 0
	return &v, nil
}

// NullableTime is Time for nullable columns: it returns nil when the
// stored value is NULL.
func (r *Row) NullableTime(column schema.Column) (*time.Time, error) {
	i, err := r.index(column)
	if err != nil {
		return nil, err
	}
	if r.stmt.ColumnType(i) == dialect.StorageNull {
		return nil, nil
	}
	v := time.Unix(r.stmt.ColumnInt64(i), 0).UTC()
	return &v, nil
}

// NullableBytes is Bytes for nullable columns: it returns nil when the
// stored value is NULL.
func (r *Row) NullableBytes(column schema.Column) ([]byte, error) {
	i, err := r.index(column)
	if err != nil {
		return nil, err
	}
	if r.stmt.ColumnType(i) == dialect.StorageNull {
		return nil, nil
	}
	return r.stmt.ColumnBytes(i), nil
}

// Unmarshal decodes the msgpack blob stored in column into v, which must
// be a non-nil pointer. It is the read half of Marshal.
func (r *Row) Unmarshal(column schema.Column, v any) error {
	i, err := r.index(column)
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(r.stmt.ColumnBytes(i), v); err != nil {
		return NewReadError(r.table, column.Name(), err)
	}
	return nil
}
