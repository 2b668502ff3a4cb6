// Package command runs external programs from argument vectors.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/vshulcz/pggmetric/internal/domain"
	"github.com/vshulcz/pggmetric/internal/ports"
)

// Exec runs programs with os/exec and captures their output.
type Exec struct {
	logger *zap.Logger
	env    []string
}

var _ ports.CommandRunner = (*Exec)(nil)

// Option customizes an Exec.
type Option func(*Exec)

// WithLogger logs every invocation at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exec) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEnv appends variables to the inherited environment of every child.
func WithEnv(kv ...string) Option {
	return func(e *Exec) {
		e.env = append(e.env, kv...)
	}
}

// New returns a runner that inherits the current environment.
func New(opts ...Option) *Exec {
	e := &Exec{logger: zap.NewNop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Run starts name with args, waits for it and returns what it printed.
// A non-zero exit is reported as *domain.ExitError alongside the captured result.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (domain.CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("exec", zap.String("program", name), zap.Strings("args", args))
	err := cmd.Run()
	res := domain.CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		res.ExitCode = ee.ExitCode()
		return res, &domain.ExitError{Program: name, Result: res}
	}
	res.ExitCode = -1
	return res, fmt.Errorf("run %s: %w", name, err)
}

// Resolve checks that program can be executed. Paths containing a slash are
// checked as-is, bare names are looked up in PATH.
func Resolve(program string) (string, error) {
	if strings.TrimSpace(program) == "" {
		return "", fmt.Errorf("%w: empty program name", domain.ErrBinaryNotFound)
	}
	if !strings.ContainsRune(program, os.PathSeparator) {
		p, err := exec.LookPath(program)
		if err != nil {
			return "", fmt.Errorf("%w: %s not in PATH", domain.ErrBinaryNotFound, program)
		}
		return p, nil
	}
	fi, err := os.Stat(program)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrBinaryNotFound, program)
	}
	if fi.IsDir() || fi.Mode().Perm()&0o111 == 0 {
		return "", fmt.Errorf("%w: %s is not executable", domain.ErrBinaryNotFound, program)
	}
	return program, nil
}
