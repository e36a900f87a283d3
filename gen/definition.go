package gen

import (
	"errors"
	"fmt"
	"os"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Definition is the root of a YAML table-definition file: the package
// the generated code belongs to and the tables it declares.
type Definition struct {
	Package string  `yaml:"package"`
	Tables  []Table `yaml:"tables"`
}

// Table declares one entity type and the table it maps to.
type Table struct {
	// Name is the generated Go type name, an exported identifier.
	Name string `yaml:"name"`
	// Table is the SQL table name. When empty it defaults to the
	// conventional name, "table_" followed by the underscored type name.
	Table string `yaml:"table,omitempty"`
	// Columns lists the table layout in declaration order.
	Columns []Column `yaml:"columns"`
	// Unique lists table-level unique constraints, each a set of
	// declared column names.
	Unique [][]string `yaml:"unique,omitempty"`
}

// Column declares one column of a table.
type Column struct {
	// Name is the SQL column name in lower snake case.
	Name string `yaml:"name"`
	// Type is one of integer, real, text, blob, boolean, timestamp.
	Type string `yaml:"type"`
	// PrimaryKey marks the table's primary-key column.
	PrimaryKey bool `yaml:"primary_key,omitempty"`
	// Autoincrement lets the database assign ascending ids; requires
	// PrimaryKey and an integer type. The generated ColumnValue omits
	// the column while its struct field is zero.
	Autoincrement bool `yaml:"autoincrement,omitempty"`
	// Nullable generates a pointer struct field, a NULL bind when it is
	// nil, and a nullable row accessor.
	Nullable bool `yaml:"nullable,omitempty"`
	// References declares a foreign key to another table in the same
	// definition.
	References *Reference `yaml:"references,omitempty"`
}

// Reference declares a foreign key target. The entity is another
// table's Name in the same definition, so the generated option reuses
// that table's column declaration and stays type-correct.
type Reference struct {
	Entity   string `yaml:"entity"`
	Column   string `yaml:"column"`
	OnDelete string `yaml:"on_delete,omitempty"`
	OnUpdate string `yaml:"on_update,omitempty"`
}

// columnType maps a definition's type name to the identifiers the
// generated code calls: the typed-column constructor and the shared
// name of the value constructor and row accessor.
type columnType struct {
	constructor string // typed-column constructor in the quill package
	valueFn     string // sql value constructor and Row accessor name
}

var columnTypes = map[string]columnType{
	"integer":   {constructor: "Int", valueFn: "Int"},
	"real":      {constructor: "Real", valueFn: "Float"},
	"text":      {constructor: "Text", valueFn: "Text"},
	"blob":      {constructor: "Blob", valueFn: "Bytes"},
	"boolean":   {constructor: "Bool", valueFn: "Bool"},
	"timestamp": {constructor: "Time", valueFn: "Time"},
}

// referenceRules maps a reference's rule spellings to the schema
// package's Rule identifiers. The empty string and "no action" emit no
// rule call at all, matching the no-clause default.
var referenceRules = map[string]string{
	"":            "",
	"no action":   "",
	"no_action":   "",
	"cascade":     "Cascade",
	"set null":    "SetNull",
	"set_null":    "SetNull",
	"set default": "SetDefault",
	"set_default": "SetDefault",
}

// Load reads and parses the definition file at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quill: read definition: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML definition and validates it. The returned
// definition is ready to generate from.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("quill: parse definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the whole definition and reports every violation it
// finds, joined into one error.
func (d *Definition) Validate() error {
	var errs []error
	if !isPackageName(d.Package) {
		errs = append(errs, NewDefinitionError("", "", fmt.Sprintf("package %q is not a valid package name", d.Package)))
	}
	if len(d.Tables) == 0 {
		errs = append(errs, NewDefinitionError("", "", "definition declares no tables"))
	}
	seen := make(map[string]bool, len(d.Tables))
	for i := range d.Tables {
		t := &d.Tables[i]
		if seen[t.Name] {
			errs = append(errs, NewDefinitionError(t.Name, "", "table declared twice"))
			continue
		}
		seen[t.Name] = true
		errs = append(errs, d.validateTable(t)...)
	}
	return errors.Join(errs...)
}

func (d *Definition) validateTable(t *Table) []error {
	var errs []error
	if !isExportedIdent(t.Name) {
		errs = append(errs, NewDefinitionError(t.Name, "", "table name must be an exported Go identifier"))
	}
	if len(t.Columns) == 0 {
		errs = append(errs, NewDefinitionError(t.Name, "", "table declares no columns"))
	}
	var primary int
	seen := make(map[string]bool, len(t.Columns))
	for i := range t.Columns {
		c := &t.Columns[i]
		if seen[c.Name] {
			errs = append(errs, NewDefinitionError(t.Name, c.Name, "column declared twice"))
			continue
		}
		seen[c.Name] = true
		if c.PrimaryKey {
			primary++
		}
		errs = append(errs, d.validateColumn(t, c)...)
	}
	if primary > 1 {
		errs = append(errs, NewDefinitionError(t.Name, "", "table declares more than one primary-key column"))
	}
	for _, set := range t.Unique {
		if len(set) == 0 {
			errs = append(errs, NewDefinitionError(t.Name, "", "unique constraint declares no columns"))
		}
		for _, name := range set {
			if !seen[name] {
				errs = append(errs, NewDefinitionError(t.Name, name, "unique constraint names an undeclared column"))
			}
		}
	}
	return errs
}

func (d *Definition) validateColumn(t *Table, c *Column) []error {
	var errs []error
	if !isColumnName(c.Name) {
		errs = append(errs, NewDefinitionError(t.Name, c.Name, "column name must be lower snake case"))
	}
	if _, ok := columnTypes[c.Type]; !ok {
		errs = append(errs, NewDefinitionError(t.Name, c.Name, fmt.Sprintf("unknown type %q; use integer, real, text, blob, boolean or timestamp", c.Type)))
	}
	if c.Autoincrement && !c.PrimaryKey {
		errs = append(errs, NewDefinitionError(t.Name, c.Name, "autoincrement requires primary_key"))
	}
	if c.Autoincrement && c.Type != "integer" {
		errs = append(errs, NewDefinitionError(t.Name, c.Name, "autoincrement requires an integer column"))
	}
	if c.PrimaryKey && c.Nullable {
		errs = append(errs, NewDefinitionError(t.Name, c.Name, "a primary-key column cannot be nullable"))
	}
	if ref := c.References; ref != nil {
		target, ok := d.table(ref.Entity)
		if !ok {
			errs = append(errs, NewDefinitionError(t.Name, c.Name, fmt.Sprintf("references undeclared entity %q", ref.Entity)))
		} else if _, ok := target.column(ref.Column); !ok {
			errs = append(errs, NewDefinitionError(t.Name, c.Name, fmt.Sprintf("references undeclared column %q of %s", ref.Column, ref.Entity)))
		}
		if _, ok := referenceRules[ref.OnDelete]; !ok {
			errs = append(errs, NewDefinitionError(t.Name, c.Name, fmt.Sprintf("unknown on_delete rule %q", ref.OnDelete)))
		}
		if _, ok := referenceRules[ref.OnUpdate]; !ok {
			errs = append(errs, NewDefinitionError(t.Name, c.Name, fmt.Sprintf("unknown on_update rule %q", ref.OnUpdate)))
		}
	}
	return errs
}

// table returns the declared table with the given type name.
func (d *Definition) table(name string) (*Table, bool) {
	for i := range d.Tables {
		if d.Tables[i].Name == name {
			return &d.Tables[i], true
		}
	}
	return nil, false
}

// column returns the declared column with the given name.
func (t *Table) column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// tableName returns the SQL table name, applying the conventional
// default when the definition does not override it.
func (t *Table) tableName() string {
	if t.Table != "" {
		return t.Table
	}
	return defaultTableName(t.Name)
}

func isPackageName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLower(r), r == '_':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func isExportedIdent(s string) bool {
	for i, r := range s {
		switch {
		case i == 0 && !unicode.IsUpper(r):
			return false
		case unicode.IsLetter(r), r == '_':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return s != ""
}

func isColumnName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r == '_' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}
