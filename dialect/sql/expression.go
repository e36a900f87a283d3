package sql

import (
	"github.com/syssam/quill/schema"
)

// Expression is an immutable boolean predicate tree over columns and
// values, used as a statement's filter. Leaves compare a column against
// values (EQ, NEQ, LT, LTE, GT, GTE, In, NotIn, Fn); And, Or and Not
// combine subtrees. Expressions render to parameterized SQL text and
// collect their bind values in the same left-to-right, depth-first walk,
// so the n-th "?" placeholder always corresponds to the n-th collected
// value.
type Expression struct {
	build func(b *Builder)
}

// SQL returns the expression's parameterized SQL text.
func (e Expression) SQL() string {
	if e.build == nil {
		return ""
	}
	b := &Builder{}
	e.build(b)
	return b.String()
}

// Values returns the bind values in placeholder order.
func (e Expression) Values() []Value {
	if e.build == nil {
		return nil
	}
	b := &Builder{}
	e.build(b)
	return b.Args()
}

func (e Expression) empty() bool {
	return e.build == nil
}

// isNull reports whether v is the SQL NULL value.
func isNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NullValue)
	return ok
}

// EQ compares a column for equality with a value. Comparing against the
// null value renders "<column> is null" and contributes no bind value.
func EQ(column schema.Column, v Value) Expression {
	return Expression{build: func(b *Builder) {
		b.WriteString(column.ExpressionName())
		if isNull(v) {
			b.WriteString(" is null")
			return
		}
		b.WriteString(" == ")
		b.Arg(v)
	}}
}

// NEQ compares a column for inequality with a value. It is the negation
// of EQ, so comparing against the null value renders
// "not (<column> is null)".
func NEQ(column schema.Column, v Value) Expression {
	return Not(EQ(column, v))
}

func compare(column schema.Column, op string, v Value) Expression {
	return Expression{build: func(b *Builder) {
		b.WriteString(column.ExpressionName())
		b.WriteString(" ")
		b.WriteString(op)
		b.WriteString(" ")
		b.Arg(v)
	}}
}

// LT compares a column strictly less than a value.
func LT(column schema.Column, v Value) Expression {
	return compare(column, "<", v)
}

// LTE compares a column less than or equal to a value.
func LTE(column schema.Column, v Value) Expression {
	return compare(column, "<=", v)
}

// GT compares a column strictly greater than a value.
func GT(column schema.Column, v Value) Expression {
	return compare(column, ">", v)
}

// GTE compares a column greater than or equal to a value.
func GTE(column schema.Column, v Value) Expression {
	return compare(column, ">=", v)
}

// In matches rows whose column value is one of the given values. With an
// empty value list it renders "<column> in ()", which matches no rows;
// this is intentional, not an error, so callers can pass through empty
// key sets without special-casing them.
func In(column schema.Column, vs ...Value) Expression {
	values := make([]Value, len(vs))
	copy(values, vs)
	return Expression{build: func(b *Builder) {
		b.WriteString(column.ExpressionName())
		b.WriteString(" in (")
		for i, v := range values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Arg(v)
		}
		b.WriteString(")")
	}}
}

// NotIn matches rows whose column value is none of the given values.
func NotIn(column schema.Column, vs ...Value) Expression {
	return Not(In(column, vs...))
}

// IsNull matches rows where the column is NULL.
func IsNull(column schema.Column) Expression {
	return EQ(column, Null())
}

// NotNull matches rows where the column is not NULL.
func NotNull(column schema.Column) Expression {
	return Not(IsNull(column))
}

// Fn renders a SQL function call as a predicate leaf. Operands may be
// schema.Column values, which render inline as their expression name and
// contribute no bind value, or scalar values (Value or plain Go scalars),
// which render as "?" placeholders. The function name is emitted verbatim
// and is not validated here; a name the database does not know surfaces
// as a *PrepareError at execution time.
func Fn(name string, operands ...any) Expression {
	ops := make([]any, len(operands))
	copy(ops, operands)
	return Expression{build: func(b *Builder) {
		b.WriteString(name)
		b.WriteString("(")
		for i, op := range ops {
			if i > 0 {
				b.WriteString(", ")
			}
			switch op := op.(type) {
			case schema.Column:
				b.WriteString(op.ExpressionName())
			case Value:
				b.Arg(op)
			default:
				b.Arg(ValueOf(op))
			}
		}
		b.WriteString(")")
	}}
}

// And matches rows satisfying every given expression. Expressions fold
// left into nested binary nodes: And(a, b, c) renders
// "((a and b) and c)".
func And(exprs ...Expression) Expression {
	if len(exprs) == 0 {
		panic("quill: sql.And requires at least one expression")
	}
	return fold("and", exprs)
}

// Or matches rows satisfying at least one of the given expressions.
func Or(exprs ...Expression) Expression {
	if len(exprs) == 0 {
		panic("quill: sql.Or requires at least one expression")
	}
	return fold("or", exprs)
}

func fold(op string, exprs []Expression) Expression {
	out := exprs[0]
	for _, next := range exprs[1:] {
		l, r := out, next
		out = Expression{build: func(b *Builder) {
			b.WriteString("(")
			l.build(b)
			b.WriteString(" ")
			b.WriteString(op)
			b.WriteString(" ")
			r.build(b)
			b.WriteString(")")
		}}
	}
	return out
}

// Not negates an expression, rendering "not (<expr>)".
func Not(e Expression) Expression {
	return Expression{build: func(b *Builder) {
		b.WriteString("not (")
		e.build(b)
		b.WriteString(")")
	}}
}
