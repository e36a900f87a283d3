package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/syssam/quill/dialect"
)

// Driver adapts a database/sql pool to the dialect.Driver boundary. It
// prepares statements through a bounded cache shared by all goroutines;
// the handles returned by Prepare are single-goroutine scoped, the
// Driver itself is safe for concurrent use.
type Driver struct {
	db    *sql.DB
	cache *stmtCache
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// defaultCacheSize bounds the prepared-statement cache when no option
// overrides it.
const defaultCacheSize = 128

// WithStatementCache sets the capacity of the prepared-statement cache.
// A size of zero or less disables caching; every Prepare then compiles
// the query anew and Finalize closes the handle.
func WithStatementCache(size int) DriverOption {
	return func(d *Driver) {
		if size <= 0 {
			d.cache = nil
			return
		}
		d.cache = newStmtCache(d.db, size)
	}
}

// Open opens a database/sql pool for the given driver name and source
// and wraps it in a Driver.
func Open(driverName, source string, opts ...DriverOption) (*Driver, error) {
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, err
	}
	return OpenDB(db, opts...), nil
}

// OpenDB wraps an existing database/sql pool in a Driver. The pool's
// connection limits stay the caller's to configure.
func OpenDB(db *sql.DB, opts ...DriverOption) *Driver {
	d := &Driver{db: db, cache: newStmtCache(db, defaultCacheSize)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB returns the underlying *sql.DB instance.
func (d *Driver) DB() *sql.DB {
	return d.db
}

// Prepare implements dialect.Driver. The returned handle buffers binds
// and issues the query on the first Step (or on Exec); it must be
// finalized on every exit path.
func (d *Driver) Prepare(ctx context.Context, query string) (dialect.Stmt, error) {
	if d.cache == nil {
		ps, err := d.db.PrepareContext(ctx, query)
		if err != nil {
			return nil, err
		}
		return &stmt{ctx: ctx, query: query, std: ps}, nil
	}
	ps, err := d.cache.get(ctx, query)
	if err != nil {
		return nil, err
	}
	return &stmt{ctx: ctx, query: query, std: ps, cached: true}, nil
}

// Close closes the statement cache and the underlying pool.
func (d *Driver) Close() error {
	var errs []error
	if d.cache != nil {
		errs = append(errs, d.cache.Close())
	}
	errs = append(errs, d.db.Close())
	return errors.Join(errs...)
}

// stmt is the dialect.Stmt adapter: binds are buffered until the first
// Step or Exec issues the statement, result rows are scanned into
// dynamic cells and read back through the Column accessors.
type stmt struct {
	ctx    context.Context
	query  string
	std    *sql.Stmt
	cached bool

	binds     []any
	rows      *sql.Rows
	cols      []string
	cells     []any
	done      bool
	finalized bool
}

func (s *stmt) bind(index int, v any) error {
	if s.rows != nil || s.done {
		return errors.New("bind on a started statement")
	}
	if index < 1 {
		return fmt.Errorf("bind index %d out of range", index)
	}
	for len(s.binds) < index {
		s.binds = append(s.binds, nil)
	}
	s.binds[index-1] = v
	return nil
}

// BindInt64 implements dialect.Stmt.
func (s *stmt) BindInt64(index int, v int64) error { return s.bind(index, v) }

// BindFloat64 implements dialect.Stmt.
func (s *stmt) BindFloat64(index int, v float64) error { return s.bind(index, v) }

// BindText implements dialect.Stmt.
func (s *stmt) BindText(index int, v string) error { return s.bind(index, v) }

// BindBytes implements dialect.Stmt. The buffer is copied; the caller
// may reuse it after the call returns.
func (s *stmt) BindBytes(index int, v []byte) error {
	c := make([]byte, len(v))
	copy(c, v)
	return s.bind(index, c)
}

// BindNull implements dialect.Stmt.
func (s *stmt) BindNull(index int) error { return s.bind(index, nil) }

// Step implements dialect.Stmt. The first call issues the buffered
// query; each call reporting true leaves one result row readable through
// the Column accessors. After Step reports false the statement is done
// and further calls keep reporting false.
func (s *stmt) Step() (bool, error) {
	if s.done {
		return false, nil
	}
	if s.rows == nil {
		rows, err := s.std.QueryContext(s.ctx, s.binds...)
		if err != nil {
			s.done = true
			return false, err
		}
		cols, err := rows.Columns()
		if err != nil {
			s.done = true
			return false, errors.Join(err, rows.Close())
		}
		s.rows = rows
		s.cols = cols
		s.cells = make([]any, len(cols))
	}
	if !s.rows.Next() {
		s.done = true
		return false, s.rows.Err()
	}
	ptrs := make([]any, len(s.cells))
	for i := range s.cells {
		ptrs[i] = &s.cells[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		s.done = true
		return false, err
	}
	return true, nil
}

// Exec implements dialect.Stmt for non-row statements.
func (s *stmt) Exec() (dialect.Result, error) {
	if s.rows != nil {
		return nil, errors.New("exec on a stepped statement")
	}
	s.done = true
	return s.std.ExecContext(s.ctx, s.binds...)
}

// ColumnCount implements dialect.Stmt.
func (s *stmt) ColumnCount() int { return len(s.cols) }

// ColumnName implements dialect.Stmt.
func (s *stmt) ColumnName(i int) string {
	if i < 0 || i >= len(s.cols) {
		return ""
	}
	return s.cols[i]
}

func (s *stmt) cell(i int) any {
	if i < 0 || i >= len(s.cells) {
		return nil
	}
	return s.cells[i]
}

// ColumnType implements dialect.Stmt, classifying the current cell by
// the dynamic type the driver produced for it.
func (s *stmt) ColumnType(i int) dialect.StorageClass {
	switch s.cell(i).(type) {
	case nil:
		return dialect.StorageNull
	case int64, bool, time.Time:
		return dialect.StorageInteger
	case float64:
		return dialect.StorageReal
	case []byte:
		return dialect.StorageBlob
	default:
		return dialect.StorageText
	}
}

// ColumnInt64 implements dialect.Stmt. Cells of other storage classes
// are coerced, never rejected: reals truncate, text parses, NULL reads
// as zero.
func (s *stmt) ColumnInt64(i int) int64 {
	switch v := s.cell(i).(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case time.Time:
		return v.Unix()
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	default:
		return 0
	}
}

// ColumnFloat64 implements dialect.Stmt, with the same coercion rules as
// ColumnInt64.
func (s *stmt) ColumnFloat64(i int) float64 {
	switch v := s.cell(i).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case time.Time:
		return float64(v.Unix())
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	default:
		return 0
	}
}

// ColumnText implements dialect.Stmt, with the same coercion rules as
// ColumnInt64.
func (s *stmt) ColumnText(i int) string {
	switch v := s.cell(i).(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case time.Time:
		return strconv.FormatInt(v.Unix(), 10)
	default:
		return ""
	}
}

// ColumnBytes implements dialect.Stmt. The returned slice is the
// caller's to keep.
func (s *stmt) ColumnBytes(i int) []byte {
	switch v := s.cell(i).(type) {
	case []byte:
		c := make([]byte, len(v))
		copy(c, v)
		return c
	case string:
		return []byte(v)
	default:
		return nil
	}
}

// Finalize implements dialect.Stmt. It drains the open result cursor if
// one exists and releases the handle; cached handles stay compiled for
// reuse. Finalize is idempotent.
func (s *stmt) Finalize() error {
	if s.finalized {
		return nil
	}
	s.finalized = true
	s.done = true
	var errs []error
	if s.rows != nil {
		errs = append(errs, s.rows.Close())
		s.rows = nil
	}
	if !s.cached {
		errs = append(errs, s.std.Close())
	}
	return errors.Join(errs...)
}

var (
	_ dialect.Driver = (*Driver)(nil)
	_ dialect.Stmt   = (*stmt)(nil)
)
