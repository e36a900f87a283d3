package quill

import (
	"context"

	"github.com/syssam/quill/dialect"
	"github.com/syssam/quill/dialect/sql"
	"github.com/syssam/quill/schema"
)

// Entity is the contract an entity type implements to take part in the
// derived operations. The type parameter is the implementing type itself
// (F-bounded), which lets the operations return statements scanning into
// the concrete type.
//
// The contract's methods must be declared on value receivers and be
// callable on the zero value: the derived operations obtain the table
// name and layout from a zero E without any instance at hand.
type Entity[E any] interface {
	// TableName returns the table the entity maps to. DefaultTableName
	// derives the conventional name from the type name.
	TableName() string

	// TableLayout returns the table's columns in declaration order.
	TableLayout() []schema.Column

	// TableConstraints returns the table-level constraints. Embedding
	// Base supplies the empty default.
	TableConstraints() []schema.Constraint

	// ColumnValue returns the value the entity carries for the given
	// layout column. A nil value omits the column from inserts and
	// updates.
	ColumnValue(column schema.Column) sql.Value

	// FromRow reads one result row into a new entity value.
	FromRow(r *sql.Row) (E, error)
}

// Base is an embeddable default for the optional members of the Entity
// contract. Embedding it gives an entity an empty constraint set.
type Base struct{}

// TableConstraints implements Entity with no table-level constraints.
func (Base) TableConstraints() []schema.Constraint { return nil }

// zero returns the zero value of E, the receiver the derived operations
// call the contract on.
func zero[E Entity[E]]() E {
	var e E
	return e
}

func tableOf[E Entity[E]]() string {
	return zero[E]().TableName()
}

// Select returns a select statement over E's table reading the given
// columns, or the full table layout when none are given. Rows are decoded
// with E's FromRow.
func Select[E Entity[E]](columns ...schema.Column) sql.Statement[E] {
	e := zero[E]()
	if len(columns) == 0 {
		columns = e.TableLayout()
	}
	return sql.Select[E](e.TableName(), e.FromRow, columns...)
}

// Insert returns an insert statement writing e's non-nil column values in
// table-layout order.
func Insert[E Entity[E]](e E) sql.Statement[E] {
	return sql.Insert[E](e.TableName(), assignments(e)...)
}

// Update returns an update statement writing e's non-nil column values,
// filtered on the primary-key column equaling e's primary-key value. It
// panics when the table layout has no primary-key column or e carries no
// value for it.
func Update[E Entity[E]](e E) sql.Statement[E] {
	column, v := mustPrimary(e)
	return sql.Update[E](e.TableName(), assignments(e)...).Where(sql.EQ(column, v))
}

// Delete returns a delete statement filtered on the primary-key column
// equaling e's primary-key value, with the same preconditions as Update.
func Delete[E Entity[E]](e E) sql.Statement[E] {
	column, v := mustPrimary(e)
	return sql.Delete[E](e.TableName()).Where(sql.EQ(column, v))
}

// DeleteWhere returns a delete statement over E's table filtered by the
// given expression.
func DeleteWhere[E Entity[E]](filter sql.Expression) sql.Statement[E] {
	return sql.Delete[E](tableOf[E]()).Where(filter)
}

// Count returns a row-count statement over E's table.
func Count[E Entity[E]]() sql.Statement[E] {
	return sql.Count[E](tableOf[E]())
}

// ByID returns a single-result select of the full table layout filtered
// on the primary-key column equaling id. It panics when the table layout
// has no primary-key column.
func ByID[E Entity[E]](id sql.Value) sql.Statement[E] {
	column, ok := PrimaryColumn[E]()
	if !ok {
		panic("quill: " + tableOf[E]() + " has no primary-key column")
	}
	return Select[E]().Where(sql.EQ(column, id)).Limit(1).Single()
}

// Find runs ByID and unwraps the result, reporting a missing row as a
// NotFoundError carrying the table name and the id.
func Find[E Entity[E]](ctx context.Context, drv dialect.Driver, id sql.Value) (E, error) {
	single, err := ByID[E](id).One(ctx, drv)
	if err != nil {
		return zero[E](), err
	}
	e, ok := single.Value()
	if !ok {
		return e, NewNotFoundErrorWithID(tableOf[E](), id)
	}
	return e, nil
}

// PrimaryColumn returns the first primary-key column of E's table layout.
func PrimaryColumn[E Entity[E]]() (schema.Column, bool) {
	for _, column := range zero[E]().TableLayout() {
		if _, ok := column.Primary(); ok {
			return column, true
		}
	}
	return schema.Column{}, false
}

// CreateTable returns the create-table DDL for E: the table layout's
// column definitions followed by the table constraints.
func CreateTable[E Entity[E]]() string {
	e := zero[E]()
	return sql.CreateTable(e.TableName(), e.TableLayout(), e.TableConstraints()...)
}

// EnsureTable executes E's create-table DDL. The statement is a no-op
// when the table already exists.
func EnsureTable[E Entity[E]](ctx context.Context, drv dialect.Driver) error {
	return sql.Exec(ctx, drv, CreateTable[E]())
}

// References returns a foreign-key option pointing at Owner's table and
// the given column, usually Owner's primary key.
func References[Owner Entity[Owner]](column schema.Column) schema.ForeignKeyOption {
	return schema.References(tableOf[Owner](), column)
}

// assignments returns e's non-nil column values in table-layout order.
func assignments[E Entity[E]](e E) []sql.Assignment {
	layout := e.TableLayout()
	assigns := make([]sql.Assignment, 0, len(layout))
	for _, column := range layout {
		if v := e.ColumnValue(column); v != nil {
			assigns = append(assigns, sql.Assign(column, v))
		}
	}
	return assigns
}

// mustPrimary returns e's primary-key column and value, panicking when
// either is missing.
func mustPrimary[E Entity[E]](e E) (schema.Column, sql.Value) {
	column, ok := PrimaryColumn[E]()
	if !ok {
		panic("quill: " + e.TableName() + " has no primary-key column")
	}
	v := e.ColumnValue(column)
	if v == nil {
		panic("quill: " + e.TableName() + " has no primary-key value")
	}
	return column, v
}
