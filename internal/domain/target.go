package domain

import "net"

// DeliveryMode says where gmetric runs.
type DeliveryMode int

const (
	// Local runs gmetric on this host.
	Local DeliveryMode = iota
	// Remote runs gmetric on another host over ssh.
	Remote
)

func (m DeliveryMode) String() string {
	if m == Remote {
		return "remote"
	}
	return "local"
}

// RemoteHost is the ssh destination gmetric is run on.
type RemoteHost struct {
	User string
	Host string
	Port string
}

// Destination returns user@host, or just host when no user is set.
func (r RemoteHost) Destination() string {
	if r.User == "" {
		return r.Host
	}
	return r.User + "@" + r.Host
}

func (r RemoteHost) String() string {
	if r.Port == "" {
		return r.Destination()
	}
	hp := net.JoinHostPort(r.Host, r.Port)
	if r.User == "" {
		return hp
	}
	return r.User + "@" + hp
}

// SpoofIdentity is the address and hostname a metric claims to come from.
type SpoofIdentity struct {
	IP       string
	Hostname string
}

func (s SpoofIdentity) String() string {
	if s.Hostname == "" {
		return s.IP
	}
	return s.IP + ":" + s.Hostname
}

// DeliveryTarget describes how every sample of a cycle is delivered.
type DeliveryTarget struct {
	Remote *RemoteHost
	Spoof  *SpoofIdentity
}

// Mode reports Remote when a remote host is configured.
func (t DeliveryTarget) Mode() DeliveryMode {
	if t.Remote != nil {
		return Remote
	}
	return Local
}
