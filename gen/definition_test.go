package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDefinition = `
package: model
tables:
  - name: User
    columns:
      - {name: id, type: integer, primary_key: true, autoincrement: true}
      - {name: name, type: text}
      - {name: age, type: integer, nullable: true}
  - name: Post
    table: posts
    columns:
      - {name: id, type: integer, primary_key: true, autoincrement: true}
      - name: author_id
        type: integer
        references: {entity: User, column: id, on_delete: cascade}
      - {name: title, type: text}
    unique:
      - [author_id, title]
`

func TestParse(t *testing.T) {
	t.Parallel()
	def, err := Parse([]byte(validDefinition))
	require.NoError(t, err)

	assert.Equal(t, "model", def.Package)
	require.Len(t, def.Tables, 2)

	user := def.Tables[0]
	assert.Equal(t, "User", user.Name)
	assert.Equal(t, "table_user", user.tableName())
	require.Len(t, user.Columns, 3)
	assert.True(t, user.Columns[0].PrimaryKey)
	assert.True(t, user.Columns[0].Autoincrement)
	assert.True(t, user.Columns[2].Nullable)

	post := def.Tables[1]
	assert.Equal(t, "posts", post.tableName())
	require.NotNil(t, post.Columns[1].References)
	assert.Equal(t, "User", post.Columns[1].References.Entity)
	assert.Equal(t, "cascade", post.Columns[1].References.OnDelete)
	assert.Equal(t, [][]string{{"author_id", "title"}}, post.Unique)
}

func TestParseInvalidYAML(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte("package: [broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse definition")
	assert.False(t, IsDefinitionError(err))
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		definition string
		want       string
	}{
		{
			name:       "missing package",
			definition: "tables:\n  - name: User\n    columns:\n      - {name: id, type: integer}\n",
			want:       "not a valid package name",
		},
		{
			name:       "upper-case package",
			definition: "package: Model\ntables:\n  - name: User\n    columns:\n      - {name: id, type: integer}\n",
			want:       "not a valid package name",
		},
		{
			name:       "no tables",
			definition: "package: model\n",
			want:       "declares no tables",
		},
		{
			name: "duplicate table",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: integer}
  - name: User
    columns:
      - {name: id, type: integer}
`,
			want: "table declared twice",
		},
		{
			name: "unexported table name",
			definition: `package: model
tables:
  - name: user
    columns:
      - {name: id, type: integer}
`,
			want: "exported Go identifier",
		},
		{
			name: "no columns",
			definition: `package: model
tables:
  - name: User
    columns: []
`,
			want: "declares no columns",
		},
		{
			name: "duplicate column",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: integer}
      - {name: id, type: text}
`,
			want: "column declared twice",
		},
		{
			name: "camel-case column name",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: authorID, type: integer}
`,
			want: "lower snake case",
		},
		{
			name: "unknown column type",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: varchar}
`,
			want: `unknown type "varchar"`,
		},
		{
			name: "two primary keys",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: integer, primary_key: true}
      - {name: email, type: text, primary_key: true}
`,
			want: "more than one primary-key column",
		},
		{
			name: "autoincrement without primary key",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: integer, autoincrement: true}
`,
			want: "autoincrement requires primary_key",
		},
		{
			name: "autoincrement on text column",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: text, primary_key: true, autoincrement: true}
`,
			want: "autoincrement requires an integer column",
		},
		{
			name: "nullable primary key",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: integer, primary_key: true, nullable: true}
`,
			want: "cannot be nullable",
		},
		{
			name: "reference to undeclared entity",
			definition: `package: model
tables:
  - name: Post
    columns:
      - {name: id, type: integer, primary_key: true}
      - name: author_id
        type: integer
        references: {entity: User, column: id}
`,
			want: `references undeclared entity "User"`,
		},
		{
			name: "reference to undeclared column",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: integer, primary_key: true}
  - name: Post
    columns:
      - {name: id, type: integer, primary_key: true}
      - name: author_id
        type: integer
        references: {entity: User, column: uid}
`,
			want: `references undeclared column "uid" of User`,
		},
		{
			name: "unknown delete rule",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: integer, primary_key: true}
  - name: Post
    columns:
      - {name: id, type: integer, primary_key: true}
      - name: author_id
        type: integer
        references: {entity: User, column: id, on_delete: restrict}
`,
			want: `unknown on_delete rule "restrict"`,
		},
		{
			name: "unique over undeclared column",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: integer, primary_key: true}
    unique:
      - [email]
`,
			want: "unique constraint names an undeclared column",
		},
		{
			name: "empty unique set",
			definition: `package: model
tables:
  - name: User
    columns:
      - {name: id, type: integer, primary_key: true}
    unique:
      - []
`,
			want: "unique constraint declares no columns",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.definition))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
			assert.True(t, IsDefinitionError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte(`package: model
tables:
  - name: user
    columns:
      - {name: id, type: varchar}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exported Go identifier")
	assert.Contains(t, err.Error(), `unknown type "varchar"`)
}

func TestReferenceRuleSpellings(t *testing.T) {
	t.Parallel()
	for _, rule := range []string{"cascade", "set null", "set_null", "set default", "set_default", "no action", "no_action", ""} {
		def := &Definition{
			Package: "model",
			Tables: []Table{
				{
					Name:    "User",
					Columns: []Column{{Name: "id", Type: "integer", PrimaryKey: true}},
				},
				{
					Name: "Post",
					Columns: []Column{
						{Name: "id", Type: "integer", PrimaryKey: true},
						{Name: "author_id", Type: "integer", References: &Reference{Entity: "User", Column: "id", OnDelete: rule}},
					},
				},
			},
		}
		assert.NoError(t, def.Validate(), "rule %q", rule)
	}
}

func TestDefinitionErrorText(t *testing.T) {
	t.Parallel()
	err := NewDefinitionError("User", "age", "bad things")
	assert.Equal(t, "quill: definition error on table User column age: bad things", err.Error())
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	top := NewDefinitionError("", "", "no tables")
	assert.Equal(t, "quill: definition error: no tables", top.Error())
}
