package domain

import (
	"fmt"
	"strings"
)

// CommandResult is what an external program left behind.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExitError reports a program that ran but exited non-zero.
type ExitError struct {
	Program string
	Result  CommandResult
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Result.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s: exit status %d", e.Program, e.Result.ExitCode)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Program, e.Result.ExitCode, msg)
}
