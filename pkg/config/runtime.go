package config

import (
	"time"

	sserr "github.com/kestrelrt/agentrt/pkg/errors"
)

// BackoffConfig tunes an agent.Backoff strategy via the layered loader
// instead of hardcoded constructor arguments. Zero fields fall back to
// the documented backoff defaults (10, 5, 1_000, 1_000_000) when passed
// to agent.NewBackoff, which treats a zero threshold the same way.
type BackoffConfig struct {
	MaxSpins     int64 `env:"AGENT_BACKOFF_MAX_SPINS" envDefault:"10" yaml:"max_spins"`
	MaxYields    int64 `env:"AGENT_BACKOFF_MAX_YIELDS" envDefault:"5" yaml:"max_yields"`
	MinParkNanos int64 `env:"AGENT_BACKOFF_MIN_PARK_NANOS" envDefault:"1000" yaml:"min_park_nanos"`
	MaxParkNanos int64 `env:"AGENT_BACKOFF_MAX_PARK_NANOS" envDefault:"1000000" yaml:"max_park_nanos"`
}

// Validate rejects a config where min exceeds max; all other combinations
// (including all-zero, meaning "use defaults") are accepted.
func (c *BackoffConfig) Validate() error {
	if c.MinParkNanos > 0 && c.MaxParkNanos > 0 && c.MinParkNanos > c.MaxParkNanos {
		return sserr.Newf(sserr.CodeValidation,
			"config: backoff min_park_nanos (%d) exceeds max_park_nanos (%d)",
			c.MinParkNanos, c.MaxParkNanos)
	}
	return nil
}

// RunnerConfig tunes an agent.Runner's close behavior via the layered
// loader.
type RunnerConfig struct {
	CloseTimeout time.Duration `env:"AGENT_RUNNER_CLOSE_TIMEOUT" envDefault:"5s" yaml:"close_timeout"`
}

// Validate rejects a non-positive close timeout.
func (c *RunnerConfig) Validate() error {
	if c.CloseTimeout <= 0 {
		return sserr.New(sserr.CodeValidation, "config: runner close_timeout must be positive")
	}
	return nil
}
