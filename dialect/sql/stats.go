package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/syssam/quill/dialect"
)

// QueryStats holds statement execution statistics.
type QueryStats struct {
	// TotalQueries is the number of row-returning statements run.
	TotalQueries atomic.Int64
	// TotalExecs is the number of non-row statements run.
	TotalExecs atomic.Int64
	// TotalDuration is the total time statements spent running, measured
	// from the first step (or the exec call) to finalization.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowQueries is the count of statements exceeding the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the count of failed statements.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of query statistics.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgQueryDuration returns the average statement duration.
func (s StatsSnapshot) AvgQueryDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgQueryDuration(),
		s.SlowQueries, s.Errors,
	)
}

// SlowQueryHook is a function called when a slow statement is detected.
// args holds the bound values in placeholder order.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)

// StatsDriver wraps a driver with statement statistics collection. A
// statement is timed from its first Step (or its Exec call) to its
// Finalize, so a multi-row select is charged for the whole drain.
type StatsDriver struct {
	dialect.Driver
	stats         *QueryStats
	slowThreshold time.Duration
	slowHook      SlowQueryHook
	mu            sync.RWMutex
}

// StatsOption configures the StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the threshold for slow statement detection.
// Statements taking longer than this duration are counted as slow.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) {
		s.slowThreshold = d
	}
}

// WithSlowQueryHook sets a callback function for slow statements.
// The hook is called whenever a statement exceeds the slow threshold.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow statements to the default logger.
// This is a convenience wrapper around WithSlowQueryHook.
func WithSlowQueryLog() StatsOption {
	return WithSlowQueryHook(func(_ context.Context, query string, args []any, duration time.Duration) {
		slog.Warn("slow query detected", "duration", duration, "query", query, "args", args)
	})
}

// NewStatsDriver wraps a driver with statistics collection.
//
// Example:
//
//	drv, _ := sql.Open("sqlite", "file:app.db")
//	statsDriver := sql.NewStatsDriver(drv,
//	    sql.WithSlowThreshold(200*time.Millisecond),
//	    sql.WithSlowQueryLog(),
//	)
//
//	// Later, check statistics:
//	stats := statsDriver.QueryStats().Stats()
//	fmt.Println(stats)
func NewStatsDriver(drv dialect.Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{
		Driver:        drv,
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats returns the underlying QueryStats for reading statistics.
func (d *StatsDriver) QueryStats() *QueryStats {
	return d.stats
}

// SlowThreshold returns the current slow statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.slowThreshold
}

// SetSlowThreshold updates the slow statement threshold.
func (d *StatsDriver) SetSlowThreshold(threshold time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slowThreshold = threshold
}

// Prepare implements dialect.Driver; the returned handle records
// statistics on finalization.
func (d *StatsDriver) Prepare(ctx context.Context, query string) (dialect.Stmt, error) {
	stmt, err := d.Driver.Prepare(ctx, query)
	if err != nil {
		d.stats.Errors.Add(1)
		return nil, err
	}
	return &statsStmt{Stmt: stmt, ctx: ctx, query: query, driver: d}, nil
}

// statsStmt decorates a statement handle to time its run and capture its
// bound values for the slow hook.
type statsStmt struct {
	dialect.Stmt
	ctx    context.Context
	query  string
	driver *StatsDriver

	args     []any
	started  time.Time
	ran      bool
	isQuery  bool
	failed   bool
	recorded bool
}

// noteArg records v at the 1-based placeholder position.
func noteArg(args []any, index int, v any) []any {
	if index < 1 {
		return args
	}
	for len(args) < index {
		args = append(args, nil)
	}
	args[index-1] = v
	return args
}

func (s *statsStmt) BindInt64(index int, v int64) error {
	if err := s.Stmt.BindInt64(index, v); err != nil {
		return err
	}
	s.args = noteArg(s.args, index, v)
	return nil
}

func (s *statsStmt) BindFloat64(index int, v float64) error {
	if err := s.Stmt.BindFloat64(index, v); err != nil {
		return err
	}
	s.args = noteArg(s.args, index, v)
	return nil
}

func (s *statsStmt) BindText(index int, v string) error {
	if err := s.Stmt.BindText(index, v); err != nil {
		return err
	}
	s.args = noteArg(s.args, index, v)
	return nil
}

func (s *statsStmt) BindBytes(index int, v []byte) error {
	if err := s.Stmt.BindBytes(index, v); err != nil {
		return err
	}
	s.args = noteArg(s.args, index, v)
	return nil
}

func (s *statsStmt) BindNull(index int) error {
	if err := s.Stmt.BindNull(index); err != nil {
		return err
	}
	s.args = noteArg(s.args, index, nil)
	return nil
}

func (s *statsStmt) Step() (bool, error) {
	if !s.ran {
		s.ran, s.isQuery, s.started = true, true, time.Now()
	}
	ok, err := s.Stmt.Step()
	if err != nil {
		s.failed = true
	}
	return ok, err
}

func (s *statsStmt) Exec() (dialect.Result, error) {
	if !s.ran {
		s.ran, s.started = true, time.Now()
	}
	res, err := s.Stmt.Exec()
	if err != nil {
		s.failed = true
	}
	return res, err
}

func (s *statsStmt) Finalize() error {
	err := s.Stmt.Finalize()
	s.record(err != nil)
	return err
}

func (s *statsStmt) record(finalizeFailed bool) {
	if s.recorded {
		return
	}
	s.recorded = true
	failed := s.failed || finalizeFailed
	if !s.ran {
		if failed {
			s.driver.stats.Errors.Add(1)
		}
		return
	}
	duration := time.Since(s.started)
	if s.isQuery {
		s.driver.stats.TotalQueries.Add(1)
	} else {
		s.driver.stats.TotalExecs.Add(1)
	}
	s.driver.stats.TotalDuration.Add(int64(duration))
	if failed {
		s.driver.stats.Errors.Add(1)
	}

	s.driver.mu.RLock()
	threshold := s.driver.slowThreshold
	hook := s.driver.slowHook
	s.driver.mu.RUnlock()

	if duration > threshold {
		s.driver.stats.SlowQueries.Add(1)
		if hook != nil {
			hook(s.ctx, s.query, s.args, duration)
		}
	}
}

// DebugDriver wraps a driver with statement logging.
type DebugDriver struct {
	dialect.Driver
	log func(context.Context, ...any)
}

// DebugOption configures the DebugDriver.
type DebugOption func(*DebugDriver)

// DebugWithLog sets a custom log function.
func DebugWithLog(logFunc func(context.Context, ...any)) DebugOption {
	return func(d *DebugDriver) {
		d.log = logFunc
	}
}

// NewDebugDriver wraps a driver with debug logging.
//
// Example:
//
//	drv, _ := sql.Open("sqlite", "file:app.db")
//	debugDriver := sql.NewDebugDriver(drv, sql.DebugWithLog(func(ctx context.Context, v ...any) {
//	    log.Println(v...)
//	}))
func NewDebugDriver(drv dialect.Driver, opts ...DebugOption) *DebugDriver {
	d := &DebugDriver{
		Driver: drv,
		log: func(_ context.Context, v ...any) {
			slog.Info(fmt.Sprint(v...))
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Prepare implements dialect.Driver; the returned handle logs its query
// and bound values when it runs.
func (d *DebugDriver) Prepare(ctx context.Context, query string) (dialect.Stmt, error) {
	stmt, err := d.Driver.Prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	return &debugStmt{Stmt: stmt, ctx: ctx, query: query, log: d.log}, nil
}

type debugStmt struct {
	dialect.Stmt
	ctx   context.Context
	query string
	log   func(context.Context, ...any)

	args []any
	ran  bool
}

func (s *debugStmt) BindInt64(index int, v int64) error {
	if err := s.Stmt.BindInt64(index, v); err != nil {
		return err
	}
	s.args = noteArg(s.args, index, v)
	return nil
}

func (s *debugStmt) BindFloat64(index int, v float64) error {
	if err := s.Stmt.BindFloat64(index, v); err != nil {
		return err
	}
	s.args = noteArg(s.args, index, v)
	return nil
}

func (s *debugStmt) BindText(index int, v string) error {
	if err := s.Stmt.BindText(index, v); err != nil {
		return err
	}
	s.args = noteArg(s.args, index, v)
	return nil
}

func (s *debugStmt) BindBytes(index int, v []byte) error {
	if err := s.Stmt.BindBytes(index, v); err != nil {
		return err
	}
	s.args = noteArg(s.args, index, v)
	return nil
}

func (s *debugStmt) BindNull(index int) error {
	if err := s.Stmt.BindNull(index); err != nil {
		return err
	}
	s.args = noteArg(s.args, index, nil)
	return nil
}

func (s *debugStmt) Step() (bool, error) {
	if !s.ran {
		s.ran = true
		s.log(s.ctx, fmt.Sprintf("query: %s args: %v", s.query, s.args))
	}
	return s.Stmt.Step()
}

func (s *debugStmt) Exec() (dialect.Result, error) {
	if !s.ran {
		s.ran = true
		s.log(s.ctx, fmt.Sprintf("exec: %s args: %v", s.query, s.args))
	}
	return s.Stmt.Exec()
}

// Ensure interfaces are implemented.
var (
	_ dialect.Driver = (*StatsDriver)(nil)
	_ dialect.Stmt   = (*statsStmt)(nil)
	_ dialect.Driver = (*DebugDriver)(nil)
	_ dialect.Stmt   = (*debugStmt)(nil)
)

// OpenWithStats opens a database connection with statistics collection
// enabled.
//
// Example:
//
//	drv, stats, err := sql.OpenWithStats("sqlite", "file:app.db",
//	    sql.WithSlowThreshold(100*time.Millisecond),
//	    sql.WithSlowQueryLog(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Monitor statistics periodically
//	go func() {
//	    for range time.Tick(time.Minute) {
//	        s := stats.Stats()
//	        log.Printf("Query stats: %s", s)
//	    }
//	}()
func OpenWithStats(driverName, source string, opts ...StatsOption) (*StatsDriver, *QueryStats, error) {
	drv, err := Open(driverName, source)
	if err != nil {
		return nil, nil, err
	}
	statsDriver := NewStatsDriver(drv, opts...)
	return statsDriver, statsDriver.QueryStats(), nil
}
