package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/vshulcz/pggmetric/internal/domain"
)

// ParseRemoteHost splits "user@host:port". User and port are optional; only an empty host is rejected.
func ParseRemoteHost(spec string) (domain.RemoteHost, error) {
	spec = strings.TrimSpace(spec)
	var r domain.RemoteHost

	hostport := spec
	if i := strings.LastIndex(spec, "@"); i >= 0 {
		r.User = spec[:i]
		hostport = spec[i+1:]
	}

	switch {
	case strings.HasPrefix(hostport, "["):
		if h, p, err := net.SplitHostPort(hostport); err == nil {
			r.Host, r.Port = h, p
		} else {
			r.Host = strings.TrimSuffix(strings.TrimPrefix(hostport, "["), "]")
		}
	default:
		if i := strings.Index(hostport, ":"); i >= 0 {
			r.Host, r.Port = hostport[:i], hostport[i+1:]
		} else {
			r.Host = hostport
		}
	}

	if r.Host == "" {
		return domain.RemoteHost{}, fmt.Errorf("%w: %q", domain.ErrInvalidRemote, spec)
	}
	return r, nil
}

// ParseSpoof splits "ip:hostname" on the first colon. The hostname may be empty.
func ParseSpoof(spec string) (domain.SpoofIdentity, error) {
	spec = strings.TrimSpace(spec)
	ip, host, _ := strings.Cut(spec, ":")
	if ip == "" {
		return domain.SpoofIdentity{}, fmt.Errorf("%w: %q", domain.ErrInvalidSpoof, spec)
	}
	return domain.SpoofIdentity{IP: ip, Hostname: host}, nil
}
