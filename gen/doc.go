// Package gen generates entity declarations from YAML table
// definitions.
//
// A definition file declares a package and its tables:
//
//	package: model
//	tables:
//	  - name: User
//	    columns:
//	      - {name: id, type: integer, primary_key: true, autoincrement: true}
//	      - {name: name, type: text}
//	      - {name: age, type: integer, nullable: true}
//	  - name: Post
//	    columns:
//	      - {name: id, type: integer, primary_key: true, autoincrement: true}
//	      - name: author_id
//	        type: integer
//	        references: {entity: User, column: id, on_delete: cascade}
//	      - {name: title, type: text}
//	    unique:
//	      - [author_id, title]
//
// For every table the generator emits one Go file implementing the
// quill.Entity contract: the typed column variables, the entity struct,
// TableName, TableLayout, TableConstraints (when unique sets are
// declared), ColumnValue and FromRow. A package-level tables.go carries
// EnsureTables, creating every generated table in declaration order.
//
// Generated files are formatted and import-pruned before they are
// written, and never edited by hand: regenerate instead. The quillgen
// command wraps this package and adds a watch mode that regenerates on
// every change to the definition file.
package gen
