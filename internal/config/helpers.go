package config

import (
	"strings"
	"time"

	"github.com/vshulcz/pggmetric/internal/misc"
)

// FromFlagOrEnv returns the flag value when set, otherwise the environment value, then def.
func FromFlagOrEnv(flagVal, envKey, def string) string {
	if v := strings.TrimSpace(flagVal); v != "" {
		return v
	}
	if v := strings.TrimSpace(misc.Getenv(envKey, "")); v != "" {
		return v
	}
	return def
}

// FromFlagOrEnvBool is true when the flag was given, otherwise it reads a boolean from the environment.
func FromFlagOrEnvBool(flagVal bool, envKey string, def bool) bool {
	if flagVal {
		return true
	}
	return misc.GetBool(envKey, def)
}

// FromFlagOrEnvDuration prefers a positive flag value, then the environment (seconds or Go syntax), then def.
func FromFlagOrEnvDuration(flagVal time.Duration, envKey string, def time.Duration) time.Duration {
	if flagVal > 0 {
		return flagVal
	}
	return misc.GetDuration(envKey, def)
}
