// Package util provides build metadata for the collector binary.
package util

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// na returns "N/A" if the input string is empty, otherwise it returns the input string.
func na(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// BuildInfo is stamped into the binary with -ldflags "-X main.buildVersion=...".
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// Print writes the build version, date, and commit information to w.
func (b BuildInfo) Print(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", na(b.Version))
	fmt.Fprintf(w, "Build date: %s\n", na(b.Date))
	fmt.Fprintf(w, "Build commit: %s\n", na(b.Commit))
}

// Fields renders b for the startup log line.
func (b BuildInfo) Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", na(b.Version)),
		zap.String("commit", na(b.Commit)),
	}
}
