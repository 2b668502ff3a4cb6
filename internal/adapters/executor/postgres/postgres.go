// Package postgres runs statistics queries over database/sql with the lib/pq driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/vshulcz/pggmetric/internal/domain"
	"github.com/vshulcz/pggmetric/internal/ports"
)

// Executor renders the first row of each query in psql's unaligned format.
type Executor struct {
	db      *sql.DB
	timeout time.Duration
}

var _ ports.QueryExecutor = (*Executor)(nil)

var notApplicablePGCodes = map[string]struct{}{
	pgerrcode.UndefinedTable:        {},
	pgerrcode.UndefinedColumn:       {},
	pgerrcode.UndefinedFunction:     {},
	pgerrcode.UndefinedFile:         {},
	pgerrcode.InsufficientPrivilege: {},
}

// Option customizes an Executor.
type Option func(*Executor)

// WithTimeout bounds each query. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// Open returns a handle for dsn. It does not connect.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// New returns an Executor over db.
func New(db *sql.DB, opts ...Option) *Executor {
	e := &Executor{db: db}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Ping checks connectivity once.
func (e *Executor) Ping(ctx context.Context) error {
	if e.db == nil {
		return errors.New("db not configured")
	}
	return e.db.PingContext(ctx)
}

// Query runs q and returns the header plus the first row, or the header alone when no row came back.
func (e *Executor) Query(ctx context.Context, q string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	rows, err := e.db.QueryContext(ctx, q)
	if err != nil {
		return "", classify(err)
	}
	defer func() {
		_ = rows.Close()
	}()

	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", classify(err)
		}
		return strings.Join(cols, domain.Delimiter) + "\n", nil
	}

	raw := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return "", fmt.Errorf("scan: %w", err)
	}
	values := make([]string, len(raw))
	for i, v := range raw {
		values[i] = render(v)
	}
	return domain.FormatTabular(cols, values), nil
}

// render prints a driver value the way psql's unaligned mode does.
func render(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "t"
		}
		return "f"
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}

func classify(err error) error {
	if IsNotApplicable(err) {
		return fmt.Errorf("%w: %w", domain.ErrNotApplicable, err)
	}
	return err
}

// IsNotApplicable reports whether err means the query cannot work on this
// server at all, as opposed to a transient failure.
func IsNotApplicable(err error) bool {
	var pqe *pq.Error
	if !errors.As(err, &pqe) {
		return false
	}
	_, ok := notApplicablePGCodes[string(pqe.Code)]
	return ok
}
