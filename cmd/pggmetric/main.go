// Command pggmetric runs one collection cycle of PostgreSQL statistics and
// publishes every value to Ganglia through gmetric.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vshulcz/pggmetric/pkg/util"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	d := defaultDeps(util.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit})
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, d)
	stop()
	exit(code)
}

func exit(code int) {
	if code != 0 {
		os.Exit(code)
	}
}
