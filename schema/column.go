package schema

import "strings"

// Column describes a single table column: a name, a storage type, an ordered
// set of options, and an ordered list of rendering modifiers. Columns are
// immutable; every method returns a new value and leaves the receiver
// untouched.
type Column struct {
	name      string
	typ       Type
	options   []Option
	modifiers []string
}

// NewColumn returns a column with the given name, type and options. The name
// must be unique within its table layout; this is not enforced here.
func NewColumn(name string, t Type, opts ...Option) Column {
	options := make([]Option, len(opts))
	copy(options, opts)
	return Column{name: name, typ: t, options: options}
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Type returns the declared storage type.
func (c Column) Type() Type { return c.typ }

// Options returns the column options in declaration order.
func (c Column) Options() []Option {
	opts := make([]Option, len(c.options))
	copy(opts, c.options)
	return opts
}

// Modifiers returns the rendering modifiers in the order they were appended.
func (c Column) Modifiers() []string {
	mods := make([]string, len(c.modifiers))
	copy(mods, c.modifiers)
	return mods
}

// Primary returns the column's primary-key option, if one is attached.
func (c Column) Primary() (PrimaryKeyOption, bool) {
	for _, opt := range c.options {
		if pk, ok := opt.(PrimaryKeyOption); ok {
			return pk, true
		}
	}
	return PrimaryKeyOption{}, false
}

// Equal reports whether both name and type match.
func (c Column) Equal(other Column) bool {
	return c.name == other.name && c.typ == other.typ
}

// Equivalent reports whether the names match, regardless of type or
// modifiers. It reconciles a modified column used in an expression with its
// base declaration in the table layout.
func (c Column) Equivalent(other Column) bool {
	return c.name == other.name
}

// Uppercase returns a new column whose expression rendering is wrapped in
// upper(). Appending twice wraps twice.
func (c Column) Uppercase() Column {
	return c.withModifier("upper")
}

// Lowercase returns a new column whose expression rendering is wrapped in
// lower(). Appending twice wraps twice.
func (c Column) Lowercase() Column {
	return c.withModifier("lower")
}

func (c Column) withModifier(m string) Column {
	mods := make([]string, len(c.modifiers), len(c.modifiers)+1)
	copy(mods, c.modifiers)
	c.modifiers = append(mods, m)
	return c
}

// ExpressionName returns the name as rendered inside filter expressions:
// the column name wrapped by one function call per modifier, innermost
// first. A column named "name" uppercased twice renders
// "upper(upper(name))".
func (c Column) ExpressionName() string {
	expr := c.name
	for _, m := range c.modifiers {
		expr = m + "(" + expr + ")"
	}
	return expr
}

// SQLDescription returns the column-definition fragment used in DDL:
// the name, the type, and the options in declaration order, space-joined.
func (c Column) SQLDescription() string {
	parts := make([]string, 0, 2+len(c.options))
	parts = append(parts, c.name, c.typ.String())
	for _, opt := range c.options {
		parts = append(parts, opt.SQLDescription())
	}
	return strings.Join(parts, " ")
}

// Names returns the names of the given columns, preserving order.
func Names(columns []Column) []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name()
	}
	return names
}
