package sql

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/quill/dialect"
)

// Value is a typed scalar that attaches itself to exactly one placeholder
// of a prepared statement. The set of implementations is closed: Integer,
// Real, Text, Boolean, Timestamp, Blob and the null value. Binding is the
// only side-effecting operation; values are otherwise immutable and
// freely shareable.
type Value interface {
	// Bind attaches the value to the placeholder at the given 1-based
	// index. A failed bind is reported as a *BindError wrapping the
	// driver's error text.
	Bind(s dialect.Stmt, index int) error
}

// Integer is a 64-bit signed integer value.
type Integer int64

// Int returns v as an Integer value.
func Int(v int64) Integer { return Integer(v) }

// Bind implements Value.
func (v Integer) Bind(s dialect.Stmt, index int) error {
	return wrapBind(index, s.BindInt64(index, int64(v)))
}

// Real is a 64-bit floating point value.
type Real float64

// Float returns v as a Real value.
func Float(v float64) Real { return Real(v) }

// Bind implements Value.
func (v Real) Bind(s dialect.Stmt, index int) error {
	return wrapBind(index, s.BindFloat64(index, float64(v)))
}

// Text is a UTF-8 string value. It binds with transient copy semantics:
// the driver copies the bytes during the call.
type Text string

// Bind implements Value.
func (v Text) Bind(s dialect.Stmt, index int) error {
	return wrapBind(index, s.BindText(index, string(v)))
}

// Boolean is a true/false value. It binds as the integer 1 or 0.
type Boolean bool

// Bool returns v as a Boolean value.
func Bool(v bool) Boolean { return Boolean(v) }

// Bind implements Value.
func (v Boolean) Bind(s dialect.Stmt, index int) error {
	var i int64
	if v {
		i = 1
	}
	return wrapBind(index, s.BindInt64(index, i))
}

// Timestamp is a point-in-time value. It binds as Unix epoch seconds
// (UTC), so timestamp columns use integer storage.
type Timestamp time.Time

// Time returns t as a Timestamp value.
func Time(t time.Time) Timestamp { return Timestamp(t) }

// Bind implements Value.
func (v Timestamp) Bind(s dialect.Stmt, index int) error {
	return wrapBind(index, s.BindInt64(index, time.Time(v).Unix()))
}

// Blob is a raw byte value. It binds with transient copy semantics: the
// driver copies the bytes during the call.
type Blob []byte

// Bytes returns b as a Blob value.
func Bytes(b []byte) Blob { return Blob(b) }

// Bind implements Value.
func (v Blob) Bind(s dialect.Stmt, index int) error {
	return wrapBind(index, s.BindBytes(index, []byte(v)))
}

// NullValue is the SQL NULL value. It binds as NULL regardless of the
// declared type of the column it targets.
type NullValue struct{}

// Null returns the SQL NULL value.
func Null() NullValue { return NullValue{} }

// Bind implements Value.
func (NullValue) Bind(s dialect.Stmt, index int) error {
	return wrapBind(index, s.BindNull(index))
}

func wrapBind(index int, err error) error {
	if err != nil {
		return NewBindError(index, err)
	}
	return nil
}

// ValueOf converts a plain Go scalar to its Value equivalent. Pointer
// forms of the scalar types convert to NULL when nil and to the pointed-to
// value otherwise. Passing an unsupported type is a programming error and
// panics.
func ValueOf(v any) Value {
	switch v := v.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case int:
		return Integer(v)
	case int8:
		return Integer(v)
	case int16:
		return Integer(v)
	case int32:
		return Integer(v)
	case int64:
		return Integer(v)
	case uint:
		return Integer(v)
	case uint8:
		return Integer(v)
	case uint16:
		return Integer(v)
	case uint32:
		return Integer(v)
	case float32:
		return Real(v)
	case float64:
		return Real(v)
	case string:
		return Text(v)
	case bool:
		return Boolean(v)
	case time.Time:
		return Timestamp(v)
	case []byte:
		return Blob(v)
	case *int64:
		if v == nil {
			return Null()
		}
		return Integer(*v)
	case *float64:
		if v == nil {
			return Null()
		}
		return Real(*v)
	case *string:
		if v == nil {
			return Null()
		}
		return Text(*v)
	case *bool:
		if v == nil {
			return Null()
		}
		return Boolean(*v)
	case *time.Time:
		if v == nil {
			return Null()
		}
		return Timestamp(*v)
	default:
		panic(fmt.Sprintf("quill: cannot convert %T to a sql.Value", v))
	}
}

// Values converts a list of plain Go scalars with ValueOf.
func Values(vs ...any) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = ValueOf(v)
	}
	return out
}

// Marshal encodes v with msgpack and returns the encoding as a Blob
// value, for storing structured Go values in blob columns. Row.Unmarshal
// reverses it.
func Marshal(v any) (Blob, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("quill: marshal blob value: %w", err)
	}
	return Blob(b), nil
}
