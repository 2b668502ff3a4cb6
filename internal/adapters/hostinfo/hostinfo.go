// Package hostinfo describes the host the collector runs on.
package hostinfo

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"
)

// Info is the identity gmond sees metrics arriving from when no spoof is set.
type Info struct {
	Hostname        string
	OS              string
	Platform        string
	PlatformVersion string
	KernelVersion   string
	Uptime          uint64
}

// Collect reads the local host description.
func Collect(ctx context.Context) (Info, error) {
	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("host info: %w", err)
	}
	return Info{
		Hostname:        hi.Hostname,
		OS:              hi.OS,
		Platform:        hi.Platform,
		PlatformVersion: hi.PlatformVersion,
		KernelVersion:   hi.KernelVersion,
		Uptime:          hi.Uptime,
	}, nil
}

// Fields renders i for structured logs.
func (i Info) Fields() []zap.Field {
	return []zap.Field{
		zap.String("hostname", i.Hostname),
		zap.String("os", i.OS),
		zap.String("platform", i.Platform+" "+i.PlatformVersion),
		zap.String("kernel", i.KernelVersion),
		zap.Uint64("uptime_s", i.Uptime),
	}
}
