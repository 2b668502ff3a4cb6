// Package collector runs one collection cycle: query, parse, publish.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vshulcz/pggmetric/internal/domain"
	"github.com/vshulcz/pggmetric/internal/ports"
)

// Service turns catalog entries into published samples.
type Service struct {
	exec    ports.QueryExecutor
	pub     ports.Publisher
	logger  *zap.Logger
	verbose io.Writer
	target  domain.DeliveryTarget
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithVerbose echoes every collected "column = value" pair to w.
func WithVerbose(w io.Writer) Option {
	return func(s *Service) {
		s.verbose = w
	}
}

// New wires an executor and a publisher for one delivery target.
func New(exec ports.QueryExecutor, pub ports.Publisher, target domain.DeliveryTarget, opts ...Option) *Service {
	s := &Service{exec: exec, pub: pub, target: target, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

type cycleStats struct {
	samples         int
	emptyQueries    int
	failedQueries   int
	failedPublishes int
}

// RunCycle runs every definition in order and publishes each resulting
// column. Failures are logged and never stop the cycle. It returns the
// number of samples handed to the publisher.
func (s *Service) RunCycle(ctx context.Context, defs []domain.QueryDefinition) int {
	start := time.Now()
	var st cycleStats
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("cycle interrupted", zap.Error(err), zap.Int("samples", st.samples))
			break
		}
		s.runOne(ctx, def, &st)
	}

	s.logger.Info("cycle complete",
		zap.Int("queries", len(defs)),
		zap.Int("samples", st.samples),
		zap.Int("empty_queries", st.emptyQueries),
		zap.Int("query_failures", st.failedQueries),
		zap.Int("publish_failures", st.failedPublishes),
		zap.Stringer("delivery", s.target.Mode()),
		zap.Duration("duration", time.Since(start)),
	)
	return st.samples
}

func (s *Service) runOne(ctx context.Context, def domain.QueryDefinition, st *cycleStats) {
	text, err := s.exec.Query(ctx, def.SQL)
	if err != nil {
		st.failedQueries++
		lvl := zapcore.WarnLevel
		if errors.Is(err, domain.ErrNotApplicable) {
			lvl = zapcore.DebugLevel
		}
		s.logger.Log(lvl, "query failed", zap.String("query", label(def.SQL)), zap.Error(err))
		return
	}

	samples := s.Samples(def, text)
	if len(samples) == 0 {
		st.emptyQueries++
		s.logger.Debug("query returned no rows", zap.String("query", label(def.SQL)))
		return
	}

	for _, sample := range samples {
		if s.verbose != nil {
			fmt.Fprintf(s.verbose, "%s = %s\n", strings.TrimPrefix(sample.Name, domain.MetricPrefix), sample.Value)
		}
		st.samples++
		if err := s.pub.Publish(ctx, sample, s.target); err != nil {
			st.failedPublishes++
			s.logger.Warn("publish failed",
				zap.String("metric", sample.Name),
				zap.String("group", sample.Group),
				zap.Error(err),
			)
		}
	}
}

// Samples maps a query's text output to the samples it yields, in column order.
func (s *Service) Samples(def domain.QueryDefinition, text string) []domain.MetricSample {
	res := domain.ParseTabular(text)
	if res.Empty() {
		return nil
	}
	group := def.Group
	if group == "" {
		group = domain.DefaultGroup
	}
	out := make([]domain.MetricSample, 0, len(res.Columns))
	for i, col := range res.Columns {
		out = append(out, domain.NewSample(col, res.Values[i], group))
	}
	return out
}

const maxLabel = 80

func label(sql string) string {
	sql = strings.Join(strings.Fields(sql), " ")
	if len(sql) <= maxLabel {
		return sql
	}
	return sql[:maxLabel] + "..."
}
