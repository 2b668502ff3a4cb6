package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/vshulcz/pggmetric/internal/domain"
	"github.com/vshulcz/pggmetric/internal/misc"
)

const (
	defaultPsqlPath      = "/usr/local/pgsql/bin/psql"
	defaultGmetricPath   = "/usr/local/bin/gmetric"
	defaultRemoteGmetric = "gmetric"
	defaultSSHPath       = "ssh"
)

// ErrHelp is returned after usage was printed for -H/--help.
var ErrHelp = pflag.ErrHelp

// CollectorConfig is built once at startup and passed by value.
type CollectorConfig struct {
	User     string
	Host     string
	Port     string
	Database string
	DSN      string

	PsqlPath      string
	GmetricPath   string
	RemoteGmetric string
	SSHPath       string

	// Remote.Host is empty for local delivery.
	Remote domain.RemoteHost

	// Spoof.IP is empty when the origin is not spoofed.
	Spoof domain.SpoofIdentity

	QueryTimeout time.Duration
	Verbose      bool
	ShowVersion  bool
}

// UseDSN reports whether the driver executor replaces psql.
func (c CollectorConfig) UseDSN() bool { return c.DSN != "" }

// Target returns the delivery target for a cycle. The pointers refer to fresh copies.
func (c CollectorConfig) Target() domain.DeliveryTarget {
	var t domain.DeliveryTarget
	if c.Remote.Host != "" {
		r := c.Remote
		t.Remote = &r
	}
	if c.Spoof.IP != "" {
		s := c.Spoof
		t.Spoof = &s
	}
	return t
}

// CLI > ENV > defaults
func LoadCollectorConfig(args []string, out io.Writer) (CollectorConfig, error) {
	if out == nil {
		out = io.Discard
	}

	fs := pflag.NewFlagSet("pggmetric", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: pggmetric [options] <database>\n\n%s", fs.FlagUsages())
	}

	var userOpt, hostOpt, portOpt, dbOpt string
	var remoteOpt, spoofOpt, dsnOpt string
	var psqlOpt, gmetricOpt, remoteGmOpt, sshOpt string
	var verboseOpt, helpOpt, versionOpt bool
	var timeoutOpt time.Duration

	fs.BoolVarP(&verboseOpt, "verbose", "v", false, "print every metric as it is published")
	fs.StringVarP(&hostOpt, "host", "h", "", "database server host")
	fs.StringVarP(&remoteOpt, "remote-host", "r", "", "run gmetric on USER@HOST:PORT over ssh")
	fs.StringVarP(&spoofOpt, "spoof", "S", "", "spoof metrics as IP:HOSTNAME")
	fs.StringVarP(&portOpt, "port", "p", "", "database server port")
	fs.StringVarP(&userOpt, "user", "U", "", "database user name (default $LOGNAME)")
	fs.StringVarP(&dbOpt, "dbname", "d", "", "database name (or first argument)")
	fs.StringVar(&dsnOpt, "dsn", "", "query through a database/sql connection instead of psql")
	fs.DurationVar(&timeoutOpt, "query-timeout", 0, "per-query timeout for --dsn (0 means none)")
	fs.StringVar(&psqlOpt, "psql", "", fmt.Sprintf("psql binary, default: %s", defaultPsqlPath))
	fs.StringVar(&gmetricOpt, "gmetric", "", fmt.Sprintf("gmetric binary, default: %s", defaultGmetricPath))
	fs.StringVar(&remoteGmOpt, "remote-gmetric", "", fmt.Sprintf("gmetric on the remote host, default: %s", defaultRemoteGmetric))
	fs.StringVar(&sshOpt, "ssh", "", fmt.Sprintf("ssh binary, default: %s", defaultSSHPath))
	fs.BoolVar(&versionOpt, "version", false, "print build information and exit")
	fs.BoolVarP(&helpOpt, "help", "H", false, "show this message")

	if err := fs.Parse(args); err != nil {
		return CollectorConfig{}, err
	}
	if helpOpt {
		fs.Usage()
		return CollectorConfig{}, ErrHelp
	}
	if versionOpt {
		return CollectorConfig{ShowVersion: true}, nil
	}

	cfg := CollectorConfig{
		Host:          FromFlagOrEnv(hostOpt, "PGHOST", ""),
		Port:          FromFlagOrEnv(portOpt, "PGPORT", ""),
		DSN:           FromFlagOrEnv(dsnOpt, "DATABASE_DSN", ""),
		PsqlPath:      FromFlagOrEnv(psqlOpt, "PSQL_PATH", defaultPsqlPath),
		GmetricPath:   FromFlagOrEnv(gmetricOpt, "GMETRIC_PATH", defaultGmetricPath),
		RemoteGmetric: FromFlagOrEnv(remoteGmOpt, "REMOTE_GMETRIC", defaultRemoteGmetric),
		SSHPath:       FromFlagOrEnv(sshOpt, "SSH_PATH", defaultSSHPath),
		QueryTimeout:  FromFlagOrEnvDuration(timeoutOpt, "QUERY_TIMEOUT", 0),
		Verbose:       FromFlagOrEnvBool(verboseOpt, "VERBOSE", false),
	}

	cfg.User = FromFlagOrEnv(userOpt, "PGUSER", misc.Getenv("LOGNAME", misc.Getenv("USER", "")))
	cfg.User = strings.TrimSpace(cfg.User)

	positional := fs.Args()
	if len(positional) > 1 {
		return CollectorConfig{}, fmt.Errorf("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}
	var dbArg string
	if len(positional) == 1 {
		dbArg = positional[0]
	}
	cfg.Database = FromFlagOrEnv(dbOpt, "PGDATABASE", "")
	if strings.TrimSpace(dbOpt) == "" && strings.TrimSpace(dbArg) != "" {
		cfg.Database = strings.TrimSpace(dbArg)
	}

	if !cfg.UseDSN() {
		if cfg.Database == "" {
			return CollectorConfig{}, domain.ErrMissingDatabase
		}
		if cfg.User == "" {
			return CollectorConfig{}, domain.ErrMissingUser
		}
	}

	if spec := FromFlagOrEnv(remoteOpt, "REMOTE_HOST", ""); spec != "" {
		r, err := ParseRemoteHost(spec)
		if err != nil {
			return CollectorConfig{}, err
		}
		cfg.Remote = r
	}
	if spec := FromFlagOrEnv(spoofOpt, "SPOOF", ""); spec != "" {
		s, err := ParseSpoof(spec)
		if err != nil {
			return CollectorConfig{}, err
		}
		cfg.Spoof = s
	}

	return cfg, nil
}

// IsHelp reports whether err came from -H/--help.
func IsHelp(err error) bool { return errors.Is(err, ErrHelp) }
