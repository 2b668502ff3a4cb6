package config

import (
	"errors"
	"testing"

	"github.com/vshulcz/pggmetric/internal/domain"
)

func TestParseRemoteHost(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    domain.RemoteHost
		wantErr bool
	}{
		{name: "full", spec: "ops@ganglia.example.com:2222", want: domain.RemoteHost{User: "ops", Host: "ganglia.example.com", Port: "2222"}},
		{name: "no port", spec: "ops@ganglia", want: domain.RemoteHost{User: "ops", Host: "ganglia"}},
		{name: "no user", spec: "ganglia:22", want: domain.RemoteHost{Host: "ganglia", Port: "22"}},
		{name: "host only", spec: " ganglia ", want: domain.RemoteHost{Host: "ganglia"}},
		{name: "port kept verbatim", spec: "ops@ganglia:ssh", want: domain.RemoteHost{User: "ops", Host: "ganglia", Port: "ssh"}},
		{name: "bracketed ipv6 with port", spec: "ops@[fe80::1]:22", want: domain.RemoteHost{User: "ops", Host: "fe80::1", Port: "22"}},
		{name: "bracketed ipv6 without port", spec: "[fe80::1]", want: domain.RemoteHost{Host: "fe80::1"}},
		{name: "last at separates user", spec: "a@b@host", want: domain.RemoteHost{User: "a@b", Host: "host"}},
		{name: "empty", spec: "", wantErr: true},
		{name: "no host", spec: "ops@:22", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRemoteHost(tc.spec)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidRemote) {
					t.Fatalf("expected ErrInvalidRemote, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseSpoof(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    domain.SpoofIdentity
		wantErr bool
	}{
		{name: "ip and host", spec: "10.0.0.7:db7", want: domain.SpoofIdentity{IP: "10.0.0.7", Hostname: "db7"}},
		{name: "ip only", spec: "10.0.0.7", want: domain.SpoofIdentity{IP: "10.0.0.7"}},
		{name: "extra colons stay in hostname", spec: "10.0.0.7:db7:x", want: domain.SpoofIdentity{IP: "10.0.0.7", Hostname: "db7:x"}},
		{name: "empty ip", spec: ":db7", wantErr: true},
		{name: "empty", spec: "  ", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSpoof(tc.spec)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidSpoof) {
					t.Fatalf("expected ErrInvalidSpoof, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
			if got.String() != tc.spec {
				t.Fatalf("String() = %q, want round trip of %q", got.String(), tc.spec)
			}
		})
	}
}
