package sql

import (
	"container/list"
	"context"
	"database/sql"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// stmtCache is a bounded LRU of prepared statements keyed by query text.
// Concurrent first preparations of the same query collapse into a single
// database round trip.
type stmtCache struct {
	db  *sql.DB
	max int

	sf singleflight.Group

	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List // of *cacheEntry, most recent at the front
	closed  bool
}

type cacheEntry struct {
	query string
	stmt  *sql.Stmt
}

func newStmtCache(db *sql.DB, max int) *stmtCache {
	return &stmtCache{
		db:      db,
		max:     max,
		entries: make(map[string]*list.Element, max),
		lru:     list.New(),
	}
}

// get returns the prepared statement for query, preparing and caching it
// on first use. Evicted handles are closed at eviction; a handle
// borrowed before its eviction stays usable until its rows are closed.
func (c *stmtCache) get(ctx context.Context, query string) (*sql.Stmt, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, errors.New("statement cache is closed")
	}
	if el, ok := c.entries[query]; ok {
		c.lru.MoveToFront(el)
		ps := el.Value.(*cacheEntry).stmt
		c.mu.Unlock()
		return ps, nil
	}
	c.mu.Unlock()

	v, err, _ := c.sf.Do(query, func() (any, error) {
		// Recheck under the flight: a finished earlier flight may have
		// inserted the entry between the miss above and this call.
		c.mu.Lock()
		if el, ok := c.entries[query]; ok {
			c.lru.MoveToFront(el)
			ps := el.Value.(*cacheEntry).stmt
			c.mu.Unlock()
			return ps, nil
		}
		c.mu.Unlock()
		ps, err := c.db.PrepareContext(ctx, query)
		if err != nil {
			return nil, err
		}
		c.insert(query, ps)
		return ps, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.Stmt), nil
}

func (c *stmtCache) insert(query string, ps *sql.Stmt) {
	var evicted []*sql.Stmt
	c.mu.Lock()
	switch el, ok := c.entries[query]; {
	case c.closed:
		c.mu.Unlock()
		_ = ps.Close()
		return
	case ok:
		// Lost an insert race for the same query; keep the first handle.
		c.lru.MoveToFront(el)
		c.mu.Unlock()
		_ = ps.Close()
		return
	}
	c.entries[query] = c.lru.PushFront(&cacheEntry{query: query, stmt: ps})
	for c.lru.Len() > c.max {
		el := c.lru.Back()
		ent := el.Value.(*cacheEntry)
		c.lru.Remove(el)
		delete(c.entries, ent.query)
		evicted = append(evicted, ent.stmt)
	}
	c.mu.Unlock()
	for _, old := range evicted {
		_ = old.Close()
	}
}

// len reports the number of cached statements.
func (c *stmtCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Close closes every cached handle and rejects further use.
func (c *stmtCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	var errs []error
	for el := c.lru.Front(); el != nil; el = el.Next() {
		errs = append(errs, el.Value.(*cacheEntry).stmt.Close())
	}
	c.entries = nil
	c.lru.Init()
	c.mu.Unlock()
	return errors.Join(errs...)
}
