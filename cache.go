package quill

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/quill/dialect"
	"github.com/syssam/quill/dialect/sql"
)

// Cache is the byte store backing cached statement results.
// Users should implement this interface with their preferred caching
// solution (e.g., Redis, Memcached, in-memory).
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes all values with the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// CacheKey identifies one rendered statement result. Statements render
// deterministically, so statements that build the same SQL with the same
// bound values share a key.
type CacheKey struct {
	Table string
	Op    string
	SQL   string
	Args  string
}

// String returns the string representation of the cache key. It starts
// with "<table>:", the prefix InvalidateTable removes.
func (k CacheKey) String() string {
	return k.Table + ":" + k.Op + ":" + k.SQL + ":" + k.Args
}

// StatementKey returns the cache key of the given statement.
func StatementKey[E any](stmt sql.Statement[E]) CacheKey {
	return CacheKey{
		Table: stmt.Table(),
		Op:    stmt.Op().String(),
		SQL:   stmt.SQL(),
		Args:  fmt.Sprint(stmt.Values()),
	}
}

// CachedAll runs a multi-row select through the cache: a hit decodes the
// stored rows without touching the database, a miss runs the statement
// against drv and stores the encoded result under the statement's key for
// ttl. Results are encoded with msgpack, so E's exported fields must
// round-trip through it. Cache failures degrade to the database and are
// logged at debug level; they never fail the read.
func CachedAll[E Entity[E]](ctx context.Context, drv dialect.Driver, c Cache, stmt sql.Statement[E], ttl time.Duration) ([]E, error) {
	key := StatementKey(stmt).String()
	raw, err := c.Get(ctx, key)
	switch {
	case err != nil:
		slog.Debug("statement cache get failed", "key", key, "error", err)
	case raw != nil:
		var es []E
		if err := msgpack.Unmarshal(raw, &es); err == nil {
			return es, nil
		}
		// The stored bytes no longer decode into E; drop them and fall
		// through to the database.
		slog.Debug("statement cache entry discarded", "key", key)
		if err := c.Delete(ctx, key); err != nil {
			slog.Debug("statement cache delete failed", "key", key, "error", err)
		}
	}
	es, err := stmt.All(ctx, drv)
	if err != nil {
		return nil, err
	}
	encoded, err := msgpack.Marshal(es)
	if err != nil {
		slog.Debug("statement cache encode failed", "key", key, "error", err)
		return es, nil
	}
	if err := c.Set(ctx, key, encoded, ttl); err != nil {
		slog.Debug("statement cache set failed", "key", key, "error", err)
	}
	return es, nil
}

// InvalidateTable removes every cached result for E's table. Call it
// after mutating the table so later reads do not serve stale rows.
func InvalidateTable[E Entity[E]](ctx context.Context, c Cache) error {
	return c.DeletePrefix(ctx, tableOf[E]()+":")
}
