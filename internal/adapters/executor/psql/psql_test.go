package psql

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vshulcz/pggmetric/internal/domain"
)

type fakeRunner struct {
	name string
	args []string
	res  domain.CommandResult
	err  error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (domain.CommandResult, error) {
	f.name = name
	f.args = args
	return f.res, f.err
}

func TestExecutor_Args(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "user and database only",
			opts: Options{User: "postgres", Database: "app"},
			want: []string{"-X", "-U", "postgres", "-A", "-P", "footer=off", "-c", "SELECT 1", "-d", "app"},
		},
		{
			name: "host and port",
			opts: Options{User: "mon", Host: "db1", Port: "6432", Database: "app"},
			want: []string{"-X", "-U", "mon", "-h", "db1", "-p", "6432", "-A", "-P", "footer=off", "-c", "SELECT 1", "-d", "app"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(&fakeRunner{}, tt.opts)
			if diff := cmp.Diff(tt.want, e.Args("SELECT 1")); diff != "" {
				t.Fatalf("Args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExecutor_Query(t *testing.T) {
	fr := &fakeRunner{res: domain.CommandResult{Stdout: "locks\n7\n"}}
	e := New(fr, Options{User: "postgres", Database: "app"})

	out, err := e.Query(context.Background(), "SELECT (SELECT count(*) FROM pg_locks) as locks")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if out != "locks\n7\n" {
		t.Fatalf("out = %q", out)
	}
	if fr.name != DefaultProgram {
		t.Fatalf("program = %q, want %q", fr.name, DefaultProgram)
	}
}

func TestExecutor_Query_Errors(t *testing.T) {
	missing := &domain.ExitError{Program: "psql", Result: domain.CommandResult{
		ExitCode: 1,
		Stderr:   "ERROR:  relation \"delayed_jobs\" does not exist",
	}}
	e := New(&fakeRunner{err: missing}, Options{Program: "/bin/psql", User: "u", Database: "d"})
	_, err := e.Query(context.Background(), "SELECT COUNT(*) AS jobs FROM delayed_jobs")
	if !errors.Is(err, domain.ErrNotApplicable) {
		t.Fatalf("err = %v, want ErrNotApplicable", err)
	}

	refused := &domain.ExitError{Program: "psql", Result: domain.CommandResult{ExitCode: 2, Stderr: "could not connect to server"}}
	e = New(&fakeRunner{err: refused}, Options{User: "u", Database: "d"})
	_, err = e.Query(context.Background(), "SELECT 1")
	if err == nil || errors.Is(err, domain.ErrNotApplicable) {
		t.Fatalf("err = %v, want plain failure", err)
	}
}
