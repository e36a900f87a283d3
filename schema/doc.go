// Package schema provides the column and constraint descriptors used to
// declare table layouts in code.
//
// A table layout is an ordered list of columns. Each column carries a name,
// a storage type, and an ordered set of options (primary key, foreign-key
// references). Table-level constraints (unique) complete the definition.
//
// # Declaring columns
//
//	id   := schema.NewColumn("id", schema.TypeInteger, schema.PrimaryKeyAutoincrement())
//	name := schema.NewColumn("name", schema.TypeText)
//	fk   := schema.NewColumn("author_id", schema.TypeInteger,
//		schema.References("table_user", id).OnDelete(schema.Cascade))
//
// Columns are immutable value objects: methods like Uppercase return a new
// Column and never modify the receiver, so a column declared once can be
// shared freely across statements and goroutines.
//
// # Rendering
//
// SQLDescription renders the column-definition fragment used inside a
// create-table statement ("id integer primary key autoincrement").
// ExpressionName renders the name as it appears inside filter expressions,
// wrapped by any modifiers appended with Uppercase or Lowercase
// ("upper(name)").
//
// # Equality
//
// Two columns are equal when both name and type match. Equivalent compares
// by name only; it reconciles a modified column (for example uppercased in
// a filter) with its base declaration in the table layout.
package schema
