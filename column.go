package quill

import (
	"time"

	"github.com/syssam/quill/dialect/sql"
	"github.com/syssam/quill/schema"
)

// The typed columns wrap schema.Column with comparison methods accepting
// only the Go type matching the column's declared storage type, closing
// the gap between a column's declaration and the values bound to it at
// compile time. The wrapped column is the embedded field; table layouts
// list it directly.

// IntColumn is a typed reference to an integer column.
type IntColumn struct{ schema.Column }

// Int declares an integer column.
func Int(name string, opts ...schema.Option) IntColumn {
	return IntColumn{schema.NewColumn(name, schema.TypeInteger, opts...)}
}

// EQ matches rows whose column equals v.
func (c IntColumn) EQ(v int64) sql.Expression { return sql.EQ(c.Column, sql.Int(v)) }

// NEQ matches rows whose column differs from v.
func (c IntColumn) NEQ(v int64) sql.Expression { return sql.NEQ(c.Column, sql.Int(v)) }

// LT matches rows whose column is less than v.
func (c IntColumn) LT(v int64) sql.Expression { return sql.LT(c.Column, sql.Int(v)) }

// LTE matches rows whose column is at most v.
func (c IntColumn) LTE(v int64) sql.Expression { return sql.LTE(c.Column, sql.Int(v)) }

// GT matches rows whose column is greater than v.
func (c IntColumn) GT(v int64) sql.Expression { return sql.GT(c.Column, sql.Int(v)) }

// GTE matches rows whose column is at least v.
func (c IntColumn) GTE(v int64) sql.Expression { return sql.GTE(c.Column, sql.Int(v)) }

// In matches rows whose column equals one of vs.
func (c IntColumn) In(vs ...int64) sql.Expression {
	return sql.In(c.Column, toValues(vs, intValue)...)
}

// NotIn matches rows whose column equals none of vs.
func (c IntColumn) NotIn(vs ...int64) sql.Expression {
	return sql.NotIn(c.Column, toValues(vs, intValue)...)
}

// IsNull matches rows whose column is null.
func (c IntColumn) IsNull() sql.Expression { return sql.IsNull(c.Column) }

// NotNull matches rows whose column is not null.
func (c IntColumn) NotNull() sql.Expression { return sql.NotNull(c.Column) }

// Asc orders ascending by the column.
func (c IntColumn) Asc() sql.Ordering { return sql.Asc(c.Column) }

// Desc orders descending by the column.
func (c IntColumn) Desc() sql.Ordering { return sql.Desc(c.Column) }

// RealColumn is a typed reference to a real (floating-point) column.
type RealColumn struct{ schema.Column }

// Real declares a real column.
func Real(name string, opts ...schema.Option) RealColumn {
	return RealColumn{schema.NewColumn(name, schema.TypeReal, opts...)}
}

// EQ matches rows whose column equals v.
func (c RealColumn) EQ(v float64) sql.Expression { return sql.EQ(c.Column, sql.Float(v)) }

// NEQ matches rows whose column differs from v.
func (c RealColumn) NEQ(v float64) sql.Expression { return sql.NEQ(c.Column, sql.Float(v)) }

// LT matches rows whose column is less than v.
func (c RealColumn) LT(v float64) sql.Expression { return sql.LT(c.Column, sql.Float(v)) }

// LTE matches rows whose column is at most v.
func (c RealColumn) LTE(v float64) sql.Expression { return sql.LTE(c.Column, sql.Float(v)) }

// GT matches rows whose column is greater than v.
func (c RealColumn) GT(v float64) sql.Expression { return sql.GT(c.Column, sql.Float(v)) }

// GTE matches rows whose column is at least v.
func (c RealColumn) GTE(v float64) sql.Expression { return sql.GTE(c.Column, sql.Float(v)) }

// In matches rows whose column equals one of vs.
func (c RealColumn) In(vs ...float64) sql.Expression {
	return sql.In(c.Column, toValues(vs, realValue)...)
}

// NotIn matches rows whose column equals none of vs.
func (c RealColumn) NotIn(vs ...float64) sql.Expression {
	return sql.NotIn(c.Column, toValues(vs, realValue)...)
}

// IsNull matches rows whose column is null.
func (c RealColumn) IsNull() sql.Expression { return sql.IsNull(c.Column) }

// NotNull matches rows whose column is not null.
func (c RealColumn) NotNull() sql.Expression { return sql.NotNull(c.Column) }

// Asc orders ascending by the column.
func (c RealColumn) Asc() sql.Ordering { return sql.Asc(c.Column) }

// Desc orders descending by the column.
func (c RealColumn) Desc() sql.Ordering { return sql.Desc(c.Column) }

// TextColumn is a typed reference to a text column.
type TextColumn struct{ schema.Column }

// Text declares a text column.
func Text(name string, opts ...schema.Option) TextColumn {
	return TextColumn{schema.NewColumn(name, schema.TypeText, opts...)}
}

// EQ matches rows whose column equals v.
func (c TextColumn) EQ(v string) sql.Expression { return sql.EQ(c.Column, sql.Text(v)) }

// NEQ matches rows whose column differs from v.
func (c TextColumn) NEQ(v string) sql.Expression { return sql.NEQ(c.Column, sql.Text(v)) }

// LT matches rows whose column sorts before v.
func (c TextColumn) LT(v string) sql.Expression { return sql.LT(c.Column, sql.Text(v)) }

// LTE matches rows whose column sorts at or before v.
func (c TextColumn) LTE(v string) sql.Expression { return sql.LTE(c.Column, sql.Text(v)) }

// GT matches rows whose column sorts after v.
func (c TextColumn) GT(v string) sql.Expression { return sql.GT(c.Column, sql.Text(v)) }

// GTE matches rows whose column sorts at or after v.
func (c TextColumn) GTE(v string) sql.Expression { return sql.GTE(c.Column, sql.Text(v)) }

// In matches rows whose column equals one of vs.
func (c TextColumn) In(vs ...string) sql.Expression {
	return sql.In(c.Column, toValues(vs, textValue)...)
}

// NotIn matches rows whose column equals none of vs.
func (c TextColumn) NotIn(vs ...string) sql.Expression {
	return sql.NotIn(c.Column, toValues(vs, textValue)...)
}

// IsNull matches rows whose column is null.
func (c TextColumn) IsNull() sql.Expression { return sql.IsNull(c.Column) }

// NotNull matches rows whose column is not null.
func (c TextColumn) NotNull() sql.Expression { return sql.NotNull(c.Column) }

// Uppercase returns the column rendered through upper() in expressions.
func (c TextColumn) Uppercase() TextColumn { return TextColumn{c.Column.Uppercase()} }

// Lowercase returns the column rendered through lower() in expressions.
func (c TextColumn) Lowercase() TextColumn { return TextColumn{c.Column.Lowercase()} }

// Asc orders ascending by the column.
func (c TextColumn) Asc() sql.Ordering { return sql.Asc(c.Column) }

// Desc orders descending by the column.
func (c TextColumn) Desc() sql.Ordering { return sql.Desc(c.Column) }

// BoolColumn is a typed reference to a boolean column. Booleans order
// trivially, so the column carries equality comparisons only.
type BoolColumn struct{ schema.Column }

// Bool declares a boolean column.
func Bool(name string, opts ...schema.Option) BoolColumn {
	return BoolColumn{schema.NewColumn(name, schema.TypeBoolean, opts...)}
}

// EQ matches rows whose column equals v.
func (c BoolColumn) EQ(v bool) sql.Expression { return sql.EQ(c.Column, sql.Bool(v)) }

// NEQ matches rows whose column differs from v.
func (c BoolColumn) NEQ(v bool) sql.Expression { return sql.NEQ(c.Column, sql.Bool(v)) }

// IsNull matches rows whose column is null.
func (c BoolColumn) IsNull() sql.Expression { return sql.IsNull(c.Column) }

// NotNull matches rows whose column is not null.
func (c BoolColumn) NotNull() sql.Expression { return sql.NotNull(c.Column) }

// Asc orders ascending by the column.
func (c BoolColumn) Asc() sql.Ordering { return sql.Asc(c.Column) }

// Desc orders descending by the column.
func (c BoolColumn) Desc() sql.Ordering { return sql.Desc(c.Column) }

// TimeColumn is a typed reference to a timestamp column.
type TimeColumn struct{ schema.Column }

// Time declares a timestamp column.
func Time(name string, opts ...schema.Option) TimeColumn {
	return TimeColumn{schema.NewColumn(name, schema.TypeTimestamp, opts...)}
}

// EQ matches rows whose column equals v.
func (c TimeColumn) EQ(v time.Time) sql.Expression { return sql.EQ(c.Column, sql.Time(v)) }

// NEQ matches rows whose column differs from v.
func (c TimeColumn) NEQ(v time.Time) sql.Expression { return sql.NEQ(c.Column, sql.Time(v)) }

// LT matches rows whose column is before v.
func (c TimeColumn) LT(v time.Time) sql.Expression { return sql.LT(c.Column, sql.Time(v)) }

// LTE matches rows whose column is at or before v.
func (c TimeColumn) LTE(v time.Time) sql.Expression { return sql.LTE(c.Column, sql.Time(v)) }

// GT matches rows whose column is after v.
func (c TimeColumn) GT(v time.Time) sql.Expression { return sql.GT(c.Column, sql.Time(v)) }

// GTE matches rows whose column is at or after v.
func (c TimeColumn) GTE(v time.Time) sql.Expression { return sql.GTE(c.Column, sql.Time(v)) }

// In matches rows whose column equals one of vs.
func (c TimeColumn) In(vs ...time.Time) sql.Expression {
	return sql.In(c.Column, toValues(vs, timeValue)...)
}

// NotIn matches rows whose column equals none of vs.
func (c TimeColumn) NotIn(vs ...time.Time) sql.Expression {
	return sql.NotIn(c.Column, toValues(vs, timeValue)...)
}

// IsNull matches rows whose column is null.
func (c TimeColumn) IsNull() sql.Expression { return sql.IsNull(c.Column) }

// NotNull matches rows whose column is not null.
func (c TimeColumn) NotNull() sql.Expression { return sql.NotNull(c.Column) }

// Asc orders ascending by the column.
func (c TimeColumn) Asc() sql.Ordering { return sql.Asc(c.Column) }

// Desc orders descending by the column.
func (c TimeColumn) Desc() sql.Ordering { return sql.Desc(c.Column) }

// BlobColumn is a typed reference to a blob column. Blobs compare by
// byte equality only.
type BlobColumn struct{ schema.Column }

// Blob declares a blob column.
func Blob(name string, opts ...schema.Option) BlobColumn {
	return BlobColumn{schema.NewColumn(name, schema.TypeBlob, opts...)}
}

// EQ matches rows whose column equals v byte for byte.
func (c BlobColumn) EQ(v []byte) sql.Expression { return sql.EQ(c.Column, sql.Bytes(v)) }

// NEQ matches rows whose column differs from v.
func (c BlobColumn) NEQ(v []byte) sql.Expression { return sql.NEQ(c.Column, sql.Bytes(v)) }

// IsNull matches rows whose column is null.
func (c BlobColumn) IsNull() sql.Expression { return sql.IsNull(c.Column) }

// NotNull matches rows whose column is not null.
func (c BlobColumn) NotNull() sql.Expression { return sql.NotNull(c.Column) }

// Asc orders ascending by the column.
func (c BlobColumn) Asc() sql.Ordering { return sql.Asc(c.Column) }

// Desc orders descending by the column.
func (c BlobColumn) Desc() sql.Ordering { return sql.Desc(c.Column) }

func toValues[T any](vs []T, convert func(T) sql.Value) []sql.Value {
	values := make([]sql.Value, len(vs))
	for i, v := range vs {
		values[i] = convert(v)
	}
	return values
}

func intValue(v int64) sql.Value { return sql.Int(v) }

func realValue(v float64) sql.Value { return sql.Float(v) }

func textValue(v string) sql.Value { return sql.Text(v) }

func timeValue(v time.Time) sql.Value { return sql.Time(v) }
