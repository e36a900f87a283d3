package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/quill/schema"
)

func TestColumnSQLDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		column schema.Column
		want   string
	}{
		{
			name:   "plain",
			column: schema.NewColumn("name", schema.TypeText),
			want:   "name text",
		},
		{
			name:   "primary_key",
			column: schema.NewColumn("id", schema.TypeInteger, schema.PrimaryKey()),
			want:   "id integer primary key",
		},
		{
			name:   "primary_key_autoincrement",
			column: schema.NewColumn("id", schema.TypeInteger, schema.PrimaryKeyAutoincrement()),
			want:   "id integer primary key autoincrement",
		},
		{
			name: "foreign_key",
			column: schema.NewColumn("author_id", schema.TypeInteger,
				schema.References("table_user", schema.NewColumn("id", schema.TypeInteger))),
			want: "author_id integer references table_user(id)",
		},
		{
			name: "foreign_key_with_rules",
			column: schema.NewColumn("author_id", schema.TypeInteger,
				schema.References("table_user", schema.NewColumn("id", schema.TypeInteger)).
					OnUpdate(schema.SetNull).
					OnDelete(schema.Cascade)),
			want: "author_id integer references table_user(id) on update set null on delete cascade",
		},
		{
			name: "no_action_rules_are_omitted",
			column: schema.NewColumn("author_id", schema.TypeInteger,
				schema.References("table_user", schema.NewColumn("id", schema.TypeInteger)).
					OnUpdate(schema.NoAction).
					OnDelete(schema.NoAction)),
			want: "author_id integer references table_user(id)",
		},
		{
			name:   "boolean",
			column: schema.NewColumn("active", schema.TypeBoolean),
			want:   "active boolean",
		},
		{
			name:   "timestamp",
			column: schema.NewColumn("created_at", schema.TypeTimestamp),
			want:   "created_at timestamp",
		},
		{
			name:   "blob",
			column: schema.NewColumn("payload", schema.TypeBlob),
			want:   "payload blob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.column.SQLDescription())
		})
	}
}

func TestUniqueConstraint(t *testing.T) {
	t.Parallel()

	name := schema.NewColumn("name", schema.TypeText)
	email := schema.NewColumn("email", schema.TypeText)

	c := schema.Unique(name, email)
	assert.Equal(t, "unique (name, email) on conflict abort", c.SQLDescription())
	assert.Len(t, c.Columns(), 2)
}

func TestColumnEquality(t *testing.T) {
	t.Parallel()

	t.Run("equal_requires_name_and_type", func(t *testing.T) {
		a := schema.NewColumn("name", schema.TypeText)
		b := schema.NewColumn("name", schema.TypeText)
		c := schema.NewColumn("name", schema.TypeInteger)
		d := schema.NewColumn("other", schema.TypeText)

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
		assert.False(t, a.Equal(d))
	})

	t.Run("equivalent_compares_name_only", func(t *testing.T) {
		a := schema.NewColumn("name", schema.TypeText)
		b := schema.NewColumn("name", schema.TypeInteger)

		assert.True(t, a.Equivalent(b))
		assert.True(t, a.Uppercase().Equivalent(a))
	})
}

func TestColumnModifiers(t *testing.T) {
	t.Parallel()

	base := schema.NewColumn("name", schema.TypeText)

	t.Run("uppercase_returns_new_column", func(t *testing.T) {
		upper := base.Uppercase()
		assert.Equal(t, "name", base.ExpressionName(), "original must be untouched")
		assert.Equal(t, "upper(name)", upper.ExpressionName())
	})

	t.Run("modifiers_wrap_inner_to_outer", func(t *testing.T) {
		assert.Equal(t, "upper(upper(name))", base.Uppercase().Uppercase().ExpressionName())
		assert.Equal(t, "lower(upper(name))", base.Uppercase().Lowercase().ExpressionName())
	})

	t.Run("derived_columns_do_not_share_state", func(t *testing.T) {
		upper := base.Uppercase()
		lower := upper.Lowercase()
		again := upper.Uppercase()

		require.Equal(t, "upper(name)", upper.ExpressionName())
		assert.Equal(t, "lower(upper(name))", lower.ExpressionName())
		assert.Equal(t, "upper(upper(name))", again.ExpressionName())
	})
}

func TestColumnPrimary(t *testing.T) {
	t.Parallel()

	id := schema.NewColumn("id", schema.TypeInteger, schema.PrimaryKeyAutoincrement())
	name := schema.NewColumn("name", schema.TypeText)

	pk, ok := id.Primary()
	require.True(t, ok)
	assert.True(t, pk.Autoincrement)

	_, ok = name.Primary()
	assert.False(t, ok)
}

func TestTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "integer", schema.TypeInteger.String())
	assert.Equal(t, "real", schema.TypeReal.String())
	assert.Equal(t, "text", schema.TypeText.String())
	assert.Equal(t, "blob", schema.TypeBlob.String())
	assert.Equal(t, "boolean", schema.TypeBoolean.String())
	assert.Equal(t, "timestamp", schema.TypeTimestamp.String())
	assert.Equal(t, "invalid", schema.Type(0).String())
	assert.False(t, schema.Type(0).Valid())
	assert.True(t, schema.TypeText.Valid())
}
