package quill_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/quill"
	"github.com/syssam/quill/dialect/sql"
)

// memCache is a map-backed Cache for tests.
type memCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{m: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m[key], nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
	return nil
}

func (c *memCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.m {
		if strings.HasPrefix(k, prefix) {
			delete(c.m, k)
		}
	}
	return nil
}

func (c *memCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string][]byte)
	return nil
}

func (c *memCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

var _ quill.Cache = (*memCache)(nil)

// TestStatementKey tests the key derived from a rendered statement.
func TestStatementKey(t *testing.T) {
	t.Parallel()

	stmt := quill.Select[user]().Where(userAge.GTE(18))
	key := quill.StatementKey(stmt)
	assert.Equal(t, "table_user", key.Table)
	assert.Equal(t, "select", key.Op)
	assert.Equal(t, "select id, name, age, bio from table_user where age >= ?", key.SQL)
	assert.Equal(t, "[18]", key.Args)
	assert.Equal(t,
		"table_user:select:select id, name, age, bio from table_user where age >= ?:[18]",
		key.String())

	// Statements that render identically share a key.
	again := quill.Select[user]().Where(userAge.GTE(18))
	assert.Equal(t, key, quill.StatementKey(again))

	other := quill.Select[user]().Where(userAge.GTE(21))
	assert.NotEqual(t, key, quill.StatementKey(other))
}

// TestCachedAll tests the read-through path: one database round trip,
// then hits until the table is invalidated.
func TestCachedAll(t *testing.T) {
	ctx := context.Background()
	drv, mock := mockDriver(t)
	cache := newMemCache()

	stmt := quill.Select[user]().Where(userAge.GTE(18))

	ep := mock.ExpectPrepare("select id, name, age, bio from table_user where age >= ?")
	ep.ExpectQuery().
		WithArgs(int64(18)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "bio"}).
			AddRow(int64(1), "ann", int64(30), "writes docs").
			AddRow(int64(2), "carol", int64(41), nil))

	first, err := quill.CachedAll(ctx, drv, cache, stmt, time.Minute)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "ann", first[0].Name)
	require.NotNil(t, first[0].Bio)
	assert.Equal(t, "writes docs", *first[0].Bio)
	assert.Nil(t, first[1].Bio)
	assert.Equal(t, 1, cache.len())

	// No further expectations: the second read must not reach the
	// database.
	second, err := quill.CachedAll(ctx, drv, cache, stmt, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.NoError(t, mock.ExpectationsWereMet())

	require.NoError(t, quill.InvalidateTable[user](ctx, cache))
	assert.Equal(t, 0, cache.len())

	// The driver's statement cache still holds the prepared handle, so
	// the refill is another query on the same prepare.
	ep.ExpectQuery().
		WithArgs(int64(18)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "bio"}).
			AddRow(int64(1), "ann", int64(30), "writes docs"))

	third, err := quill.CachedAll(ctx, drv, cache, stmt, time.Minute)
	require.NoError(t, err)
	assert.Len(t, third, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestCachedAllQueryError tests that database failures pass through and
// leave nothing cached.
func TestCachedAllQueryError(t *testing.T) {
	ctx := context.Background()
	drv, mock := mockDriver(t)
	cache := newMemCache()

	mock.ExpectPrepare("select id, name, age, bio from table_user").
		WillReturnError(assert.AnError)

	_, err := quill.CachedAll(ctx, drv, cache, quill.Select[user](), time.Minute)
	require.Error(t, err)
	assert.True(t, sql.IsPrepareError(err))
	assert.Equal(t, 0, cache.len())
}

// TestCachedAllUndecodableEntry tests that a stale entry is dropped and
// the read falls through to the database.
func TestCachedAllUndecodableEntry(t *testing.T) {
	ctx := context.Background()
	drv, mock := mockDriver(t)
	cache := newMemCache()

	stmt := quill.Select[user]()
	key := quill.StatementKey(stmt).String()
	require.NoError(t, cache.Set(ctx, key, []byte("not msgpack"), 0))

	ep := mock.ExpectPrepare("select id, name, age, bio from table_user")
	ep.ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "bio"}).
			AddRow(int64(1), "ann", int64(30), nil))

	users, err := quill.CachedAll(ctx, drv, cache, stmt, time.Minute)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
