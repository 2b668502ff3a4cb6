// Package gmetric publishes samples by running Ganglia's gmetric, locally or over ssh.
package gmetric

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/vshulcz/pggmetric/internal/domain"
	"github.com/vshulcz/pggmetric/internal/ports"
)

const (
	// DefaultProgram is where gmetric is installed on the collector host.
	DefaultProgram = "/usr/local/bin/gmetric"
	// DefaultRemoteProgram is resolved through the remote user's PATH.
	DefaultRemoteProgram = "gmetric"
	// DefaultSSH is resolved through PATH.
	DefaultSSH = "ssh"
)

// Publisher runs one gmetric invocation per sample.
type Publisher struct {
	runner        ports.CommandRunner
	logger        *zap.Logger
	program       string
	remoteProgram string
	ssh           string
}

var _ ports.Publisher = (*Publisher)(nil)

// Option customizes a Publisher.
type Option func(*Publisher)

// WithProgram sets the local gmetric binary.
func WithProgram(path string) Option {
	return func(p *Publisher) {
		if path != "" {
			p.program = path
		}
	}
}

// WithRemoteProgram sets the gmetric command run on the remote host.
func WithRemoteProgram(name string) Option {
	return func(p *Publisher) {
		if name != "" {
			p.remoteProgram = name
		}
	}
}

// WithSSH sets the ssh client binary.
func WithSSH(path string) Option {
	return func(p *Publisher) {
		if path != "" {
			p.ssh = path
		}
	}
}

// WithLogger sets the logger used for publish output.
func WithLogger(l *zap.Logger) Option {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a Publisher that executes commands through runner.
func New(runner ports.CommandRunner, opts ...Option) *Publisher {
	p := &Publisher{
		runner:        runner,
		logger:        zap.NewNop(),
		program:       DefaultProgram,
		remoteProgram: DefaultRemoteProgram,
		ssh:           DefaultSSH,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Args builds the gmetric flags for a sample.
func Args(s domain.MetricSample, target domain.DeliveryTarget) []string {
	args := []string{
		"--name", s.Name,
		"--value", s.Value,
		"--type", domain.MetricType,
		"--dmax=" + strconv.Itoa(domain.DMaxSeconds),
		"--group", s.Group,
	}
	if target.Spoof != nil {
		args = append(args, "--spoof", target.Spoof.String())
	}
	return args
}

// Command returns the program and argument vector that delivers s to target.
// Remote delivery wraps the gmetric call in ssh; the remote half is quoted
// because sshd hands it to the login shell as one string.
func (p *Publisher) Command(s domain.MetricSample, target domain.DeliveryTarget) (string, []string) {
	args := Args(s, target)
	if target.Mode() == domain.Local {
		return p.program, args
	}

	r := target.Remote
	argv := make([]string, 0, len(args)+5)
	if r.Port != "" {
		argv = append(argv, "-p", r.Port)
	}
	argv = append(argv, "--", r.Destination(), Quote(p.remoteProgram))
	for _, a := range args {
		argv = append(argv, Quote(a))
	}
	return p.ssh, argv
}

// Publish runs gmetric for s. The error carries the exit status and stderr, if any.
func (p *Publisher) Publish(ctx context.Context, s domain.MetricSample, target domain.DeliveryTarget) error {
	name, argv := p.Command(s, target)
	res, err := p.runner.Run(ctx, name, argv...)
	if err != nil {
		return fmt.Errorf("publish %s via %s: %w", s.Name, target.Mode(), err)
	}
	if res.Stdout != "" || res.Stderr != "" {
		p.logger.Debug("gmetric output",
			zap.String("metric", s.Name),
			zap.String("stdout", res.Stdout),
			zap.String("stderr", res.Stderr),
		)
	}
	return nil
}
