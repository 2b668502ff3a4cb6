package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vshulcz/pggmetric/internal/adapters/command"
	"github.com/vshulcz/pggmetric/internal/adapters/executor/postgres"
	"github.com/vshulcz/pggmetric/internal/adapters/executor/psql"
	"github.com/vshulcz/pggmetric/internal/adapters/hostinfo"
	"github.com/vshulcz/pggmetric/internal/adapters/publisher/gmetric"
	"github.com/vshulcz/pggmetric/internal/catalog"
	"github.com/vshulcz/pggmetric/internal/config"
	"github.com/vshulcz/pggmetric/internal/ports"
	"github.com/vshulcz/pggmetric/internal/services/collector"
	"github.com/vshulcz/pggmetric/pkg/util"
)

// deps are the process-level collaborators run needs; tests swap them.
type deps struct {
	newLogger func(verbose bool) (*zap.Logger, error)
	newRunner func(*zap.Logger) ports.CommandRunner
	resolve   func(program string) (string, error)
	openDB    func(dsn string) (*sql.DB, error)
	hostInfo  func(ctx context.Context) (hostinfo.Info, error)
	build     util.BuildInfo
}

func defaultDeps(build util.BuildInfo) deps {
	return deps{
		newLogger: newLogger,
		newRunner: func(l *zap.Logger) ports.CommandRunner { return command.New(command.WithLogger(l)) },
		resolve:   command.Resolve,
		openDB:    postgres.Open,
		hostInfo:  hostinfo.Collect,
		build:     build,
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// run executes one collection cycle and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, d deps) int {
	cfg, err := config.LoadCollectorConfig(args, stdout)
	if err != nil {
		if config.IsHelp(err) {
			return 0
		}
		fmt.Fprintf(stderr, "pggmetric: %v\n", err)
		return 1
	}
	if cfg.ShowVersion {
		d.build.Print(stdout)
		return 0
	}

	logger, err := d.newLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "pggmetric: failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	target := cfg.Target()
	logger.Info("collector starting", append(d.build.Fields(),
		zap.Stringer("delivery", target.Mode()),
		zap.Bool("dsn", cfg.UseDSN()),
		zap.String("database", cfg.Database),
	)...)
	if info, err := d.hostInfo(ctx); err != nil {
		logger.Debug("host info unavailable", zap.Error(err))
	} else {
		logger.Info("collector host", info.Fields()...)
	}

	runner := d.newRunner(logger)

	exec, closeExec, err := buildExecutor(ctx, cfg, d, runner)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return 1
	}
	defer closeExec()

	pub, err := buildPublisher(cfg, d, runner, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return 1
	}

	opts := []collector.Option{collector.WithLogger(logger)}
	if cfg.Verbose {
		opts = append(opts, collector.WithVerbose(stdout))
	}
	collector.New(exec, pub, target, opts...).RunCycle(ctx, catalog.Entries())
	return 0
}

func buildExecutor(ctx context.Context, cfg config.CollectorConfig, d deps, runner ports.CommandRunner) (ports.QueryExecutor, func(), error) {
	if cfg.UseDSN() {
		db, err := d.openDB(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		ex := postgres.New(db, postgres.WithTimeout(cfg.QueryTimeout))
		if err := ex.Ping(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		return ex, func() { _ = db.Close() }, nil
	}

	program, err := d.resolve(cfg.PsqlPath)
	if err != nil {
		return nil, nil, err
	}
	ex := psql.New(runner, psql.Options{
		Program:  program,
		User:     cfg.User,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Database: cfg.Database,
	})
	return ex, func() {}, nil
}

func buildPublisher(cfg config.CollectorConfig, d deps, runner ports.CommandRunner, logger *zap.Logger) (ports.Publisher, error) {
	opts := []gmetric.Option{gmetric.WithLogger(logger), gmetric.WithRemoteProgram(cfg.RemoteGmetric)}
	if cfg.Target().Remote != nil {
		ssh, err := d.resolve(cfg.SSHPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gmetric.WithSSH(ssh))
	} else {
		program, err := d.resolve(cfg.GmetricPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gmetric.WithProgram(program))
	}
	return gmetric.New(runner, opts...), nil
}
