// Package psql runs statistics queries through the psql command-line client.
package psql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vshulcz/pggmetric/internal/domain"
	"github.com/vshulcz/pggmetric/internal/ports"
)

// DefaultProgram is where psql is installed on the collector host.
const DefaultProgram = "/usr/local/pgsql/bin/psql"

// Options are the connection parameters handed to psql.
type Options struct {
	Program  string
	User     string
	Host     string
	Port     string
	Database string
}

// Executor implements ports.QueryExecutor on top of psql's unaligned output.
type Executor struct {
	runner ports.CommandRunner
	opts   Options
}

var _ ports.QueryExecutor = (*Executor)(nil)

// New returns an Executor that runs psql through runner.
func New(runner ports.CommandRunner, opts Options) *Executor {
	if opts.Program == "" {
		opts.Program = DefaultProgram
	}
	return &Executor{runner: runner, opts: opts}
}

// Args returns the psql argument vector for sql.
// Unaligned mode prints the header and rows separated by "|"; the footer is
// turned off so an empty result is a header line alone.
func (e *Executor) Args(sql string) []string {
	args := []string{"-X", "-U", e.opts.User}
	if e.opts.Host != "" {
		args = append(args, "-h", e.opts.Host)
	}
	if e.opts.Port != "" {
		args = append(args, "-p", e.opts.Port)
	}
	return append(args, "-A", "-P", "footer=off", "-c", sql, "-d", e.opts.Database)
}

// Query runs sql and returns psql's stdout.
func (e *Executor) Query(ctx context.Context, sql string) (string, error) {
	res, err := e.runner.Run(ctx, e.opts.Program, e.Args(sql)...)
	if err != nil {
		var ee *domain.ExitError
		if errors.As(err, &ee) && strings.Contains(ee.Result.Stderr, "does not exist") {
			return "", fmt.Errorf("%w: %w", domain.ErrNotApplicable, err)
		}
		return "", err
	}
	return res.Stdout, nil
}
