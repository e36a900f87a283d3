// Package sql provides the typed query-construction algebra and its
// database/sql-backed executor.
//
// Queries are never written as strings. They are assembled from three
// kinds of immutable values and rendered at the last moment:
//
//   - Value: a typed SQL scalar (Integer, Real, Text, Boolean,
//     Timestamp, Blob, NullValue) that knows how to bind itself to a
//     statement placeholder.
//   - Expression: a filter tree built from column comparisons and the
//     And, Or and Not combinators.
//   - Statement: one database operation (select, insert, update,
//     delete, count) plus its modifiers, rendered to final SQL text and
//     an ordered bind-value list.
//
// # Building Statements
//
// Statements are value types; every builder method returns a new
// statement, so partial statements can be shared and extended
// independently:
//
//	base := sql.Select(table, decode, name, age)
//	adults := base.Where(sql.GTE(age, sql.Int(18)))
//	teens := base.Where(sql.And(sql.GTE(age, sql.Int(13)), sql.LT(age, sql.Int(20))))
//
// Rendering is deterministic: the same statement value always yields the
// same SQL text and the same value order, because text and values are
// produced by a single tree walk.
//
// # Expressions
//
//	sql.EQ(name, sql.Text("john"))        // name == ?
//	sql.EQ(name, sql.Null())              // name is null
//	sql.GT(age, sql.Int(18))              // age > ?
//	sql.In(status, sql.Text("a"), sql.Text("b"))  // status in (?, ?)
//	sql.And(p, q)                         // (p and q)
//	sql.Not(p)                            // not (p)
//
// # Execution
//
// A statement runs against a dialect.Driver through the one run method
// matching its operation: All or One for select, InsertID or Exec for
// insert, Exec for update and delete, Scalar for count. Run methods keep
// the statement handle scoped to the call: prepare, bind, step, and
// always finalize, joining finalize errors into the returned error.
//
//	users, err := sql.Select(table, decode, name, age).
//	    Where(sql.GT(age, sql.Int(18))).
//	    OrderBy(sql.Asc(name)).
//	    All(ctx, drv)
//
// # Drivers
//
// Open and OpenDB adapt a database/sql pool to the dialect.Driver
// boundary, with a bounded prepared-statement cache. NewStatsDriver and
// NewDebugDriver decorate any driver with timing statistics and
// statement logging.
package sql
