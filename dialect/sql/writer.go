package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/turner-townsend/genyrator"
	"github.com/turner-townsend/genyrator/dialect"
)

// Write phases reported in *genyrator.MutationError.
const (
	OpCreate         = "create"
	OpDeferredUpdate = "deferred update"
)

// Writer inserts records in two phases. See the package documentation.
type Writer struct {
	db            ExecQuerier
	dialect       string
	logger        *slog.Logger
	stats         *QueryStats
	slowThreshold time.Duration
	slowHook      SlowQueryHook
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets the logger receiving executed statements at debug level.
func WithLogger(l *slog.Logger) WriterOption {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithStats collects statement statistics into s.
func WithStats(s *QueryStats) WriterOption {
	return func(w *Writer) {
		w.stats = s
	}
}

// WithSlowThreshold sets the threshold for slow statement detection.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) WriterOption {
	return func(w *Writer) {
		w.slowThreshold = d
	}
}

// WithSlowQueryHook sets a callback function for slow statements.
func WithSlowQueryHook(hook SlowQueryHook) WriterOption {
	return func(w *Writer) {
		w.slowHook = hook
	}
}

// NewWriter returns a Writer executing statements of the given dialect on db.
func NewWriter(name string, db ExecQuerier, opts ...WriterOption) (*Writer, error) {
	if err := dialect.Check(name); err != nil {
		return nil, err
	}
	if db == nil {
		return nil, fmt.Errorf("dialect/sql: nil ExecQuerier")
	}
	w := &Writer{
		db:            db,
		dialect:       name,
		logger:        slog.Default(),
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Stats returns the statistics collected by the writer.
func (w *Writer) Stats() *QueryStats { return w.stats }

// Create writes a single record. See CreateAll.
func (w *Writer) Create(ctx context.Context, p Plan, values map[string]any) error {
	return w.CreateAll(ctx, p, []map[string]any{values})
}

// CreateAll inserts every record without its deferred columns, then sets
// the deferred columns that hold a value. All inserts run before the first
// update, so records of one batch may reference each other.
//
// values are keyed by column. Columns missing from a record are left to
// the store defaults; columns unknown to the plan are rejected.
func (w *Writer) CreateAll(ctx context.Context, p Plan, rows []map[string]any) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for _, row := range rows {
		for c := range row {
			if !p.known(c) {
				return genyrator.NewMutationError(p.Entity, OpCreate, fmt.Errorf("unknown column %q", c))
			}
		}
	}
	for _, row := range rows {
		query, args := w.insert(p, row)
		if _, err := w.exec(ctx, query, args); err != nil {
			return genyrator.NewMutationError(p.Entity, OpCreate, err)
		}
	}
	for _, row := range rows {
		query, args, ok := w.update(p, row)
		if !ok {
			continue
		}
		key, exists := row[p.Key]
		if !exists || isNil(key) {
			return genyrator.NewMutationError(p.Entity, OpDeferredUpdate, fmt.Errorf("missing value of key column %q", p.Key))
		}
		res, err := w.exec(ctx, query, args)
		if err != nil {
			return genyrator.NewMutationError(p.Entity, OpDeferredUpdate, err)
		}
		// MySQL counts changed rows, not matched ones, unless the client sets
		// CLIENT_FOUND_ROWS. Rewriting a value the row already holds reports
		// zero, so a missing row cannot be told apart there.
		if w.dialect == dialect.MySQL {
			continue
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return genyrator.NewMutationError(p.Entity, OpDeferredUpdate, genyrator.NewNotFoundErrorWithID(p.Entity, key))
		}
	}
	return nil
}

// insert builds the first phase statement of row.
func (w *Writer) insert(p Plan, row map[string]any) (string, []any) {
	var (
		b    strings.Builder
		cols []string
		args []any
	)
	for _, c := range p.Columns {
		if v, ok := row[c]; ok {
			cols = append(cols, dialect.Quote(w.dialect, c))
			args = append(args, v)
		}
	}
	b.WriteString("INSERT INTO ")
	b.WriteString(dialect.Quote(w.dialect, p.Table))
	if len(cols) == 0 {
		if w.dialect == dialect.MySQL {
			b.WriteString(" () VALUES ()")
		} else {
			b.WriteString(" DEFAULT VALUES")
		}
		return b.String(), nil
	}
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES (")
	for i := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(dialect.Placeholder(w.dialect, i+1))
	}
	b.WriteString(")")
	return b.String(), args
}

// update builds the second phase statement of row. It reports false if
// row holds no deferred value.
func (w *Writer) update(p Plan, row map[string]any) (string, []any, bool) {
	var (
		b    strings.Builder
		args []any
	)
	for _, c := range p.Deferred {
		v, ok := row[c]
		if !ok || isNil(v) {
			continue
		}
		if len(args) == 0 {
			b.WriteString("UPDATE ")
			b.WriteString(dialect.Quote(w.dialect, p.Table))
			b.WriteString(" SET ")
		} else {
			b.WriteString(", ")
		}
		args = append(args, v)
		fmt.Fprintf(&b, "%s = %s", dialect.Quote(w.dialect, c), dialect.Placeholder(w.dialect, len(args)))
	}
	if len(args) == 0 {
		return "", nil, false
	}
	args = append(args, row[p.Key])
	fmt.Fprintf(&b, " WHERE %s = %s", dialect.Quote(w.dialect, p.Key), dialect.Placeholder(w.dialect, len(args)))
	return b.String(), args, true
}

func (w *Writer) exec(ctx context.Context, query string, args []any) (sql.Result, error) {
	start := time.Now()
	res, err := w.db.ExecContext(ctx, query, args...)
	duration := time.Since(start)
	slow := duration > w.slowThreshold
	w.stats.record(duration, err, slow)
	if slow && w.slowHook != nil {
		w.slowHook(ctx, query, args, duration)
	}
	w.logger.DebugContext(ctx, "exec", "query", query, "args", len(args), "duration", duration, "error", err)
	return res, err
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
