package sql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/quill/dialect"
	"github.com/syssam/quill/schema"
)

// Op identifies the operation a statement performs.
type Op uint8

// Statement operations.
const (
	OpSelect Op = iota + 1
	OpInsert
	OpUpdate
	OpDelete
	OpCount
)

var opNames = [...]string{
	OpSelect: "select",
	OpInsert: "insert",
	OpUpdate: "update",
	OpDelete: "delete",
	OpCount:  "count",
}

// String returns the operation name.
func (o Op) String() string {
	if int(o) < len(opNames) && opNames[o] != "" {
		return opNames[o]
	}
	return "invalid"
}

// Conflict is the on-constraint-violation policy for inserts and
// updates. Select, count and delete statements ignore it entirely.
type Conflict uint8

// Conflict policies. Abort is the default.
const (
	Abort Conflict = iota
	Ignore
	Replace
)

var conflictNames = [...]string{
	Abort:   "abort",
	Ignore:  "ignore",
	Replace: "replace",
}

// String returns the SQL spelling of the policy.
func (c Conflict) String() string {
	if int(c) < len(conflictNames) {
		return conflictNames[c]
	}
	return "invalid"
}

// Assignment pairs a column with the value written to it by an insert or
// update. Assignment order is preserved through rendering, so the n-th
// assignment feeds the n-th placeholder.
type Assignment struct {
	Column schema.Column
	Value  Value
}

// Assign returns an assignment of v to column.
func Assign(column schema.Column, v Value) Assignment {
	return Assignment{Column: column, Value: v}
}

// Ordering pairs a column with a sort direction.
type Ordering struct {
	Column schema.Column
	Desc   bool
}

// Asc orders ascending by column. Ascending is the default direction and
// renders no suffix.
func Asc(column schema.Column) Ordering {
	return Ordering{Column: column}
}

// Desc orders descending by column.
func Desc(column schema.Column) Ordering {
	return Ordering{Column: column, Desc: true}
}

// RowScanner decodes the current result row into a value of type E.
type RowScanner[E any] func(r *Row) (E, error)

// Statement is an immutable description of one database operation plus
// its modifiers: an optional filter, orderings, a limit, the
// single-result flag and the conflict policy. Every builder method
// returns a new Statement and leaves the receiver untouched, so partial
// statements can be shared and extended independently.
//
// A statement renders to deterministic SQL text (SQL) and an ordered
// bind-value list (Values), and runs through exactly one run method
// matching its operation: All or One for select, InsertID or Exec for
// insert, Exec for update and delete, Scalar for count. Calling a run
// method that does not match the operation is a programming error and
// panics.
type Statement[E any] struct {
	op        Op
	table     string
	columns   []schema.Column
	assigns   []Assignment
	scan      RowScanner[E]
	filter    Expression
	filtered  bool
	orderings []Ordering
	limit     int
	limited   bool
	single    bool
	conflict  Conflict
}

// Select returns a select statement over the given result columns,
// decoding each row with scan. With no columns it selects "*".
func Select[E any](table string, scan RowScanner[E], columns ...schema.Column) Statement[E] {
	cols := make([]schema.Column, len(columns))
	copy(cols, columns)
	return Statement[E]{op: OpSelect, table: table, columns: cols, scan: scan}
}

// Insert returns an insert statement writing the given assignments, in
// order.
func Insert[E any](table string, assignments ...Assignment) Statement[E] {
	as := make([]Assignment, len(assignments))
	copy(as, assignments)
	return Statement[E]{op: OpInsert, table: table, assigns: as}
}

// Update returns an update statement writing the given assignments, in
// order. Callers almost always attach a filter; an unfiltered update
// touches every row of the table.
func Update[E any](table string, assignments ...Assignment) Statement[E] {
	as := make([]Assignment, len(assignments))
	copy(as, assignments)
	return Statement[E]{op: OpUpdate, table: table, assigns: as}
}

// Delete returns a delete statement. Callers almost always attach a
// filter; an unfiltered delete empties the table.
func Delete[E any](table string) Statement[E] {
	return Statement[E]{op: OpDelete, table: table}
}

// Count returns a count statement, "select count(*)".
func Count[E any](table string) Statement[E] {
	return Statement[E]{op: OpCount, table: table}
}

// Op returns the statement's operation.
func (s Statement[E]) Op() Op { return s.op }

// Table returns the statement's target table.
func (s Statement[E]) Table() string { return s.table }

// Where returns a new statement with the filter attached. A statement
// carries at most one filter; attaching a second is a programming error
// and panics. Composite conditions are built with And, Or and Not before
// attaching.
//
// Filters compose with every operation, including insert: an insert
// statement renders its where clause after the values list even though
// standard SQL grammar has no such form. Attaching a filter to an insert
// is a misuse that fails at prepare time; it is preserved for rendering
// compatibility, not fixed here.
func (s Statement[E]) Where(e Expression) Statement[E] {
	if e.empty() {
		panic("quill: empty filter expression")
	}
	if s.filtered {
		panic("quill: statement already has a filter; combine filters with sql.And or sql.Or")
	}
	s.filter = e
	s.filtered = true
	return s
}

// OrderBy returns a new statement with the given orderings appended to
// any already present. Modified columns order by their expression name,
// so Uppercase columns sort case-insensitively.
func (s Statement[E]) OrderBy(orderings ...Ordering) Statement[E] {
	appended := make([]Ordering, 0, len(s.orderings)+len(orderings))
	appended = append(appended, s.orderings...)
	appended = append(appended, orderings...)
	s.orderings = appended
	return s
}

// Limit returns a new statement returning at most n rows.
func (s Statement[E]) Limit(n int) Statement[E] {
	s.limit = n
	s.limited = true
	return s
}

// Single returns a new statement in single-result mode: it runs through
// One instead of All and yields at most one decoded row.
func (s Statement[E]) Single() Statement[E] {
	s.single = true
	return s
}

// IgnoreOnConflict returns a new statement that skips conflicting rows
// instead of failing. Only insert and update rendering consult the
// policy.
func (s Statement[E]) IgnoreOnConflict() Statement[E] {
	s.conflict = Ignore
	return s
}

// ReplaceOnConflict returns a new statement that replaces conflicting
// rows instead of failing. Only insert and update rendering consult the
// policy.
func (s Statement[E]) ReplaceOnConflict() Statement[E] {
	s.conflict = Replace
	return s
}

// SQL renders the statement to its final SQL text.
func (s Statement[E]) SQL() string {
	b := &Builder{}
	s.append(b)
	return b.String()
}

// Values returns the bind values in placeholder order: the operation's
// own values first (insert and update assignments, in declared order),
// then the filter's values.
func (s Statement[E]) Values() []Value {
	b := &Builder{}
	s.append(b)
	return b.Args()
}

// append renders the statement into b. Rendering and value collection
// are the same walk, so placeholder order and value order cannot
// diverge.
func (s Statement[E]) append(b *Builder) {
	switch s.op {
	case OpSelect:
		b.WriteString("select ")
		if len(s.columns) == 0 {
			b.WriteString("*")
		} else {
			b.WriteString(strings.Join(schema.Names(s.columns), ", "))
		}
		b.WriteString(" from ")
		b.WriteString(s.table)
	case OpCount:
		b.WriteString("select count(*) from ")
		b.WriteString(s.table)
	case OpInsert:
		b.WriteString("insert or ")
		b.WriteString(s.conflict.String())
		b.WriteString(" into ")
		b.WriteString(s.table)
		b.WriteString(" (")
		for i, a := range s.assigns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.Column.Name())
		}
		b.WriteString(") values (")
		for i, a := range s.assigns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Arg(a.Value)
		}
		b.WriteString(")")
	case OpUpdate:
		b.WriteString("update or ")
		b.WriteString(s.conflict.String())
		b.WriteString(" ")
		b.WriteString(s.table)
		b.WriteString(" set ")
		for i, a := range s.assigns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.Column.Name())
			b.WriteString(" = ")
			b.Arg(a.Value)
		}
	case OpDelete:
		b.WriteString("delete from ")
		b.WriteString(s.table)
	default:
		panic("quill: statement has no operation")
	}
	if s.filtered {
		b.WriteString(" where ")
		s.filter.build(b)
	}
	if len(s.orderings) > 0 {
		b.WriteString(" order by ")
		for i, o := range s.orderings {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(o.Column.ExpressionName())
			if o.Desc {
				b.WriteString(" desc")
			}
		}
	}
	if s.limited {
		b.WriteString(" limit ")
		b.WriteInt(s.limit)
	}
}

// All executes a multi-row select and returns the decoded entities in
// result order. The slice is empty when no rows matched.
func (s Statement[E]) All(ctx context.Context, drv dialect.Driver) (_ []E, rerr error) {
	s.mustBe(OpSelect, "All")
	if s.single {
		panic("quill: All on a single-result statement; use One")
	}
	query := s.SQL()
	stmt, err := drv.Prepare(ctx, query)
	if err != nil {
		return nil, NewPrepareError(query, err)
	}
	defer func() { rerr = errors.Join(rerr, stmt.Finalize()) }()
	if err := bindValues(stmt, s.Values()); err != nil {
		return nil, err
	}
	out := []E{}
	row := newRow(s.table, stmt)
	for {
		ok, err := stmt.Step()
		if err != nil {
			return nil, NewExecError(query, err)
		}
		if !ok {
			return out, nil
		}
		e, err := s.scan(row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

// One executes a single-result select. It returns an empty Single when
// no row matched and the first decoded row otherwise; any further rows
// are ignored.
func (s Statement[E]) One(ctx context.Context, drv dialect.Driver) (_ Single[E], rerr error) {
	s.mustBe(OpSelect, "One")
	if !s.single {
		panic("quill: One on a multi-result statement; use All")
	}
	query := s.SQL()
	stmt, err := drv.Prepare(ctx, query)
	if err != nil {
		return Single[E]{}, NewPrepareError(query, err)
	}
	defer func() { rerr = errors.Join(rerr, stmt.Finalize()) }()
	if err := bindValues(stmt, s.Values()); err != nil {
		return Single[E]{}, err
	}
	ok, err := stmt.Step()
	if err != nil {
		return Single[E]{}, NewExecError(query, err)
	}
	if !ok {
		return Single[E]{}, nil
	}
	e, err := s.scan(newRow(s.table, stmt))
	if err != nil {
		return Single[E]{}, err
	}
	return NewSingle(e), nil
}

// InsertID executes an insert and returns the database-generated row id.
// It fails with ErrNoInsertID when the insert completed without yielding
// one.
func (s Statement[E]) InsertID(ctx context.Context, drv dialect.Driver) (_ int64, rerr error) {
	s.mustBe(OpInsert, "InsertID")
	query := s.SQL()
	stmt, err := drv.Prepare(ctx, query)
	if err != nil {
		return 0, NewPrepareError(query, err)
	}
	defer func() { rerr = errors.Join(rerr, stmt.Finalize()) }()
	if err := bindValues(stmt, s.Values()); err != nil {
		return 0, err
	}
	res, err := stmt.Exec()
	if err != nil {
		return 0, NewExecError(query, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoInsertID, err)
	}
	return id, nil
}

// Exec executes an insert, update or delete for its side effect alone.
func (s Statement[E]) Exec(ctx context.Context, drv dialect.Driver) (rerr error) {
	if s.op != OpInsert && s.op != OpUpdate && s.op != OpDelete {
		panic(fmt.Sprintf("quill: Exec called on %s statement", s.op))
	}
	query := s.SQL()
	stmt, err := drv.Prepare(ctx, query)
	if err != nil {
		return NewPrepareError(query, err)
	}
	defer func() { rerr = errors.Join(rerr, stmt.Finalize()) }()
	if err := bindValues(stmt, s.Values()); err != nil {
		return err
	}
	if _, err := stmt.Exec(); err != nil {
		return NewExecError(query, err)
	}
	return nil
}

// Scalar executes a count and returns its value, decoded from the first
// result column of the single returned row.
func (s Statement[E]) Scalar(ctx context.Context, drv dialect.Driver) (_ int64, rerr error) {
	s.mustBe(OpCount, "Scalar")
	query := s.SQL()
	stmt, err := drv.Prepare(ctx, query)
	if err != nil {
		return 0, NewPrepareError(query, err)
	}
	defer func() { rerr = errors.Join(rerr, stmt.Finalize()) }()
	if err := bindValues(stmt, s.Values()); err != nil {
		return 0, err
	}
	ok, err := stmt.Step()
	if err != nil {
		return 0, NewExecError(query, err)
	}
	if !ok {
		return 0, NewExecError(query, errors.New("count returned no row"))
	}
	return stmt.ColumnInt64(0), nil
}

func (s Statement[E]) mustBe(op Op, verb string) {
	if s.op != op {
		panic(fmt.Sprintf("quill: %s called on %s statement", verb, s.op))
	}
}

// bindValues binds vs at 1-based placeholder positions.
func bindValues(stmt dialect.Stmt, vs []Value) error {
	for i, v := range vs {
		if err := v.Bind(stmt, i+1); err != nil {
			return err
		}
	}
	return nil
}

// Exec prepares, binds and executes a raw SQL statement with the same
// scoped-handle discipline the statement run methods use. It exists for
// statements outside the algebra, DDL in particular.
func Exec(ctx context.Context, drv dialect.Driver, query string, vs ...Value) (rerr error) {
	stmt, err := drv.Prepare(ctx, query)
	if err != nil {
		return NewPrepareError(query, err)
	}
	defer func() { rerr = errors.Join(rerr, stmt.Finalize()) }()
	if err := bindValues(stmt, vs); err != nil {
		return err
	}
	if _, err := stmt.Exec(); err != nil {
		return NewExecError(query, err)
	}
	return nil
}

// CreateTable renders the create-table DDL for a table layout:
// column definitions in declaration order, then table-level constraints.
func CreateTable(table string, columns []schema.Column, constraints ...schema.Constraint) string {
	var sb strings.Builder
	sb.WriteString("create table if not exists ")
	sb.WriteString(table)
	sb.WriteString(" (")
	for i, c := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.SQLDescription())
	}
	for _, c := range constraints {
		sb.WriteString(", ")
		sb.WriteString(c.SQLDescription())
	}
	sb.WriteString(")")
	return sb.String()
}
