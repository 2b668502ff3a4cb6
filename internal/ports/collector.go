package ports

import (
	"context"

	"github.com/vshulcz/pggmetric/internal/domain"
)

// QueryExecutor runs one statistics query and returns its unaligned two-line text output.
type QueryExecutor interface {
	Query(ctx context.Context, sql string) (string, error)
}

// Publisher delivers a single sample to the monitoring aggregator.
type Publisher interface {
	Publish(ctx context.Context, sample domain.MetricSample, target domain.DeliveryTarget) error
}

// CommandRunner executes an external program from an argument vector.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (domain.CommandResult, error)
}
