package quill_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/quill"
	"github.com/syssam/quill/dialect/sql"
	"github.com/syssam/quill/schema"
)

// The user entity exercises the full contract: an autoincrement primary
// key omitted while zero, a nullable text column, and the embedded Base
// default for constraints.
var (
	userID   = quill.Int("id", schema.PrimaryKeyAutoincrement())
	userName = quill.Text("name")
	userAge  = quill.Int("age")
	userBio  = quill.Text("bio")
)

type user struct {
	quill.Base
	ID   int64
	Name string
	Age  int64
	Bio  *string
}

func (user) TableName() string { return "table_user" }

func (user) TableLayout() []schema.Column {
	return []schema.Column{userID.Column, userName.Column, userAge.Column, userBio.Column}
}

func (u user) ColumnValue(c schema.Column) sql.Value {
	switch {
	case c.Equivalent(userID.Column):
		if u.ID == 0 {
			return nil // let the database assign the id
		}
		return sql.Int(u.ID)
	case c.Equivalent(userName.Column):
		return sql.Text(u.Name)
	case c.Equivalent(userAge.Column):
		return sql.Int(u.Age)
	case c.Equivalent(userBio.Column):
		if u.Bio == nil {
			return sql.Null()
		}
		return sql.Text(*u.Bio)
	}
	return nil
}

func (user) FromRow(r *sql.Row) (user, error) {
	var u user
	var err error
	if u.ID, err = r.Int(userID.Column); err != nil {
		return u, err
	}
	if u.Name, err = r.Text(userName.Column); err != nil {
		return u, err
	}
	if u.Age, err = r.Int(userAge.Column); err != nil {
		return u, err
	}
	u.Bio, err = r.NullableText(userBio.Column)
	return u, err
}

// note has no primary-key column; it exists to exercise the primary-key
// preconditions.
var noteBody = quill.Text("body")

type note struct {
	quill.Base
	Body string
}

func (note) TableName() string { return "table_note" }

func (note) TableLayout() []schema.Column {
	return []schema.Column{noteBody.Column}
}

func (n note) ColumnValue(c schema.Column) sql.Value {
	if c.Equivalent(noteBody.Column) {
		return sql.Text(n.Body)
	}
	return nil
}

func (note) FromRow(r *sql.Row) (note, error) {
	var n note
	var err error
	n.Body, err = r.Text(noteBody.Column)
	return n, err
}

// mockDriver returns a driver over a sqlmock connection matching queries
// byte for byte.
func mockDriver(t *testing.T) (*sql.Driver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sql.OpenDB(db), mock
}

// TestDerivedSQL tests the SQL and bound values of every derived
// operation.
func TestDerivedSQL(t *testing.T) {
	t.Parallel()

	bio := "writes docs"
	tests := []struct {
		name       string
		wantSQL    string
		wantValues []sql.Value
		statement  interface {
			SQL() string
			Values() []sql.Value
		}
	}{
		{
			name:      "select_full_layout",
			statement: quill.Select[user](),
			wantSQL:   "select id, name, age, bio from table_user",
		},
		{
			name:      "select_columns",
			statement: quill.Select[user](userName.Column, userAge.Column),
			wantSQL:   "select name, age from table_user",
		},
		{
			name:       "select_filtered_ordered",
			statement:  quill.Select[user]().Where(userAge.GTE(18)).OrderBy(userName.Asc(), userAge.Desc()),
			wantSQL:    "select id, name, age, bio from table_user where age >= ? order by name, age desc",
			wantValues: []sql.Value{sql.Int(18)},
		},
		{
			name:       "insert_omits_zero_id",
			statement:  quill.Insert(user{Name: "ann", Age: 30, Bio: &bio}),
			wantSQL:    "insert or abort into table_user (name, age, bio) values (?, ?, ?)",
			wantValues: []sql.Value{sql.Text("ann"), sql.Int(30), sql.Text("writes docs")},
		},
		{
			name:       "insert_null_bio",
			statement:  quill.Insert(user{Name: "bob", Age: 17}),
			wantSQL:    "insert or abort into table_user (name, age, bio) values (?, ?, ?)",
			wantValues: []sql.Value{sql.Text("bob"), sql.Int(17), sql.Null()},
		},
		{
			name:       "update_filters_on_primary",
			statement:  quill.Update(user{ID: 7, Name: "ann", Age: 31}),
			wantSQL:    "update or abort table_user set id = ?, name = ?, age = ?, bio = ? where id == ?",
			wantValues: []sql.Value{sql.Int(7), sql.Text("ann"), sql.Int(31), sql.Null(), sql.Int(7)},
		},
		{
			name:       "delete_filters_on_primary",
			statement:  quill.Delete(user{ID: 7, Name: "ann", Age: 31}),
			wantSQL:    "delete from table_user where id == ?",
			wantValues: []sql.Value{sql.Int(7)},
		},
		{
			name:       "delete_where",
			statement:  quill.DeleteWhere[user](userAge.LT(0)),
			wantSQL:    "delete from table_user where age < ?",
			wantValues: []sql.Value{sql.Int(0)},
		},
		{
			name:      "count",
			statement: quill.Count[user](),
			wantSQL:   "select count(*) from table_user",
		},
		{
			name:      "count_filtered",
			statement: quill.Count[user]().Where(userBio.IsNull()),
			wantSQL:   "select count(*) from table_user where bio is null",
		},
		{
			name:       "by_id",
			statement:  quill.ByID[user](sql.Int(7)),
			wantSQL:    "select id, name, age, bio from table_user where id == ? limit 1",
			wantValues: []sql.Value{sql.Int(7)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantSQL, tt.statement.SQL())
			if tt.wantValues == nil {
				assert.Empty(t, tt.statement.Values())
			} else {
				assert.Equal(t, tt.wantValues, tt.statement.Values())
			}
		})
	}
}

// TestPrimaryPreconditions tests the panics guarding operations that
// need a primary key.
func TestPrimaryPreconditions(t *testing.T) {
	t.Parallel()

	t.Run("update_without_primary_column", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t, "quill: table_note has no primary-key column", func() {
			quill.Update(note{Body: "x"})
		})
	})
	t.Run("update_without_primary_value", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t, "quill: table_user has no primary-key value", func() {
			quill.Update(user{Name: "ann"})
		})
	})
	t.Run("delete_without_primary_column", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t, "quill: table_note has no primary-key column", func() {
			quill.Delete(note{Body: "x"})
		})
	})
	t.Run("delete_without_primary_value", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t, "quill: table_user has no primary-key value", func() {
			quill.Delete(user{Name: "ann"})
		})
	})
	t.Run("by_id_without_primary_column", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t, "quill: table_note has no primary-key column", func() {
			quill.ByID[note](sql.Int(1))
		})
	})
}

// TestPrimaryColumn tests primary-key column lookup.
func TestPrimaryColumn(t *testing.T) {
	t.Parallel()

	column, ok := quill.PrimaryColumn[user]()
	require.True(t, ok)
	assert.Equal(t, "id", column.Name())

	_, ok = quill.PrimaryColumn[note]()
	assert.False(t, ok)
}

// TestCreateTable tests the derived DDL.
func TestCreateTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"create table if not exists table_user (id integer primary key autoincrement, name text, age integer, bio text)",
		quill.CreateTable[user]())
	assert.Equal(t,
		"create table if not exists table_note (body text)",
		quill.CreateTable[note]())
}

// TestEnsureTable tests that EnsureTable executes the derived DDL.
func TestEnsureTable(t *testing.T) {
	t.Parallel()

	drv, mock := mockDriver(t)
	ep := mock.ExpectPrepare("create table if not exists table_note (body text)")
	ep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, quill.EnsureTable[note](context.Background(), drv))
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestReferences tests the foreign-key helper.
func TestReferences(t *testing.T) {
	t.Parallel()

	fk := quill.References[user](userID.Column)
	assert.Equal(t, "references table_user(id)", fk.SQLDescription())
	assert.Equal(t,
		"references table_user(id) on delete cascade",
		fk.OnDelete(schema.Cascade).SQLDescription())
}

// TestBase tests the embeddable defaults.
func TestBase(t *testing.T) {
	t.Parallel()
	assert.Nil(t, user{}.TableConstraints())
}

// TestFind tests the single-row lookup and its not-found error.
func TestFind(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		drv, mock := mockDriver(t)
		ep := mock.ExpectPrepare("select id, name, age, bio from table_user where id == ? limit 1")
		ep.ExpectQuery().
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "bio"}).
				AddRow(int64(7), "ann", int64(30), nil))

		u, err := quill.Find[user](ctx, drv, sql.Int(7))
		require.NoError(t, err)
		assert.Equal(t, user{ID: 7, Name: "ann", Age: 30}, u)
	})

	t.Run("not_found", func(t *testing.T) {
		drv, mock := mockDriver(t)
		ep := mock.ExpectPrepare("select id, name, age, bio from table_user where id == ? limit 1")
		ep.ExpectQuery().
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "bio"}))

		_, err := quill.Find[user](ctx, drv, sql.Int(99))
		require.Error(t, err)
		assert.True(t, quill.IsNotFound(err))
		assert.ErrorIs(t, err, quill.ErrNotFound)

		var nfe *quill.NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.Equal(t, "table_user", nfe.Table())
		assert.Equal(t, sql.Int(99), nfe.ID())
		assert.Equal(t, "quill: table_user not found (id=99)", err.Error())
	})
}

// TestOneOrErr tests the single-result wrapper surfacing ErrNotFound.
func TestOneOrErr(t *testing.T) {
	ctx := context.Background()
	drv, mock := mockDriver(t)
	ep := mock.ExpectPrepare("select id, name, age, bio from table_user where id == ? limit 1")
	ep.ExpectQuery().
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "bio"}))

	single, err := quill.ByID[user](sql.Int(99)).One(ctx, drv)
	require.NoError(t, err)
	assert.False(t, single.Found())

	_, err = single.OrErr()
	assert.True(t, errors.Is(err, quill.ErrNotFound))
}
