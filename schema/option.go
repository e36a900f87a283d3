package schema

import (
	"fmt"
	"strings"
)

// Rule is the referential action attached to a foreign-key option.
type Rule uint8

// Referential actions. NoAction is the default and emits no clause at all,
// leaving the behavior to the database.
const (
	NoAction Rule = iota
	Cascade
	SetNull
	SetDefault
)

var ruleNames = [...]string{
	NoAction:   "no action",
	Cascade:    "cascade",
	SetNull:    "set null",
	SetDefault: "set default",
}

// String returns the SQL spelling of the rule.
func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "invalid"
}

// Option is a column option: a declaration attached to a single column that
// renders as part of its definition. Options are immutable values; the
// concrete implementations are PrimaryKeyOption and ForeignKeyOption.
type Option interface {
	// SQLDescription returns the option's DDL fragment.
	SQLDescription() string
}

// PrimaryKeyOption marks the column as the table's primary key. A table
// layout holding several primary-key options is not rejected, but only the
// first one found is meaningful.
type PrimaryKeyOption struct {
	// Autoincrement makes the database assign ascending ids on insert.
	Autoincrement bool
}

// SQLDescription implements Option.
func (o PrimaryKeyOption) SQLDescription() string {
	if o.Autoincrement {
		return "primary key autoincrement"
	}
	return "primary key"
}

// PrimaryKey returns a primary-key option without autoincrement.
func PrimaryKey() PrimaryKeyOption {
	return PrimaryKeyOption{}
}

// PrimaryKeyAutoincrement returns a primary-key option with autoincrement.
func PrimaryKeyAutoincrement() PrimaryKeyOption {
	return PrimaryKeyOption{Autoincrement: true}
}

// ForeignKeyOption declares that the column references a column of another
// table. The zero rules emit no on-update/on-delete clauses.
type ForeignKeyOption struct {
	table    string
	column   Column
	onUpdate Rule
	onDelete Rule
}

// References returns a foreign-key option pointing at the given table and
// column. Update and delete rules are attached with OnUpdate and OnDelete.
func References(table string, column Column) ForeignKeyOption {
	return ForeignKeyOption{table: table, column: column}
}

// OnUpdate returns a copy of the option with the given update rule.
func (o ForeignKeyOption) OnUpdate(r Rule) ForeignKeyOption {
	o.onUpdate = r
	return o
}

// OnDelete returns a copy of the option with the given delete rule.
func (o ForeignKeyOption) OnDelete(r Rule) ForeignKeyOption {
	o.onDelete = r
	return o
}

// Table returns the referenced table name.
func (o ForeignKeyOption) Table() string { return o.table }

// Column returns the referenced column.
func (o ForeignKeyOption) Column() Column { return o.column }

// SQLDescription implements Option. Rules equal to NoAction are omitted.
func (o ForeignKeyOption) SQLDescription() string {
	var b strings.Builder
	fmt.Fprintf(&b, "references %s(%s)", o.table, o.column.Name())
	if o.onUpdate != NoAction {
		b.WriteString(" on update ")
		b.WriteString(o.onUpdate.String())
	}
	if o.onDelete != NoAction {
		b.WriteString(" on delete ")
		b.WriteString(o.onDelete.String())
	}
	return b.String()
}

// Constraint is a table-level constraint, rendered after the column
// definitions in a create-table statement.
type Constraint interface {
	// SQLDescription returns the constraint's DDL fragment.
	SQLDescription() string
}

// UniqueConstraint requires the combination of its columns to be unique
// across the table.
type UniqueConstraint struct {
	columns []Column
}

// Unique returns a table-level unique constraint over the given columns.
func Unique(columns ...Column) UniqueConstraint {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return UniqueConstraint{columns: cols}
}

// Columns returns the constrained columns in declaration order.
func (c UniqueConstraint) Columns() []Column {
	cols := make([]Column, len(c.columns))
	copy(cols, c.columns)
	return cols
}

// SQLDescription implements Constraint.
func (c UniqueConstraint) SQLDescription() string {
	names := make([]string, len(c.columns))
	for i, col := range c.columns {
		names[i] = col.Name()
	}
	return fmt.Sprintf("unique (%s) on conflict abort", strings.Join(names, ", "))
}
