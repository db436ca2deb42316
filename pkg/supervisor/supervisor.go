// Package supervisor polls agent runners from outside their owning
// worker threads and can adjust a [agent.Controllable] strategy's shared
// mode indicator in response — e.g. dropping a low-priority agent to
// ModeYield under backpressure. It never touches a runner's agent or
// idle-strategy state directly; the indicator is the only externally
// writable surface (§4.2 of the runtime design).
package supervisor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kestrelrt/agentrt/pkg/agent"
	"github.com/kestrelrt/agentrt/pkg/telemetry"
)

// RunnerState is a point-in-time snapshot of one watched runner, passed
// to a [PolicyFunc] on every poll.
type RunnerState struct {
	Name      string
	IsRunning bool
	IsClosed  bool
}

// PolicyFunc inspects a [RunnerState] and returns the [agent.ControllableMode]
// the supervisor should apply to that target's indicator. Returning the
// state's current mode (read via [Target.Indicator]) leaves it unchanged.
type PolicyFunc func(state RunnerState) agent.ControllableMode

// Target couples a runner being watched with the indicator the
// supervisor is allowed to adjust for it. Indicator may be nil if the
// runner's strategy is not a [agent.Controllable] one — the supervisor
// then only observes and logs, never adjusts.
type Target struct {
	Name      string
	Runner    *agent.Runner
	Indicator *agent.ControllableIndicator
	Policy    PolicyFunc
}

// StateChangeHandler is called whenever a watched target's observed
// (running, closed) pair differs from the previous poll, mirroring the
// teacher's StateChangeHandler hook idiom. Handlers that panic are
// recovered and logged, never crashing the polling loop.
type StateChangeHandler func(name string, prev, next RunnerState)

// Supervisor periodically polls a fixed set of [Target]s on a ticker,
// applying each target's [PolicyFunc] (if any) to its indicator and
// reporting metrics and logs on every poll.
type Supervisor struct {
	targets  []Target
	interval time.Duration
	logger   *slog.Logger
	recorder *telemetry.Recorder

	mu       sync.Mutex
	handlers []StateChangeHandler
	last     map[string]RunnerState
}

// New builds a Supervisor polling targets every interval. A nil recorder
// disables metrics emission; a nil logger defaults to [slog.Default].
func New(interval time.Duration, recorder *telemetry.Recorder, logger *slog.Logger, targets ...Target) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{
		targets:  targets,
		interval: interval,
		logger:   logger,
		recorder: recorder,
		last:     make(map[string]RunnerState, len(targets)),
	}
}

// OnStateChange registers a handler invoked whenever a target's observed
// state changes between polls.
func (s *Supervisor) OnStateChange(h StateChangeHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// Run polls every target on [Supervisor]'s interval until ctx is
// canceled. It is intended to be run in its own goroutine.
func (s *Supervisor) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollOnce(ctx)
		}
	}
}

func (s *Supervisor) pollOnce(ctx context.Context) {
	for _, t := range s.targets {
		next := RunnerState{
			Name:      t.Name,
			IsRunning: t.Runner.IsRunning(),
			IsClosed:  t.Runner.IsClosed(),
		}

		s.mu.Lock()
		prev, seen := s.last[t.Name]
		s.last[t.Name] = next
		s.mu.Unlock()

		if !seen || prev != next {
			s.logger.InfoContext(ctx, "supervisor observed runner state",
				"runner", t.Name, "running", next.IsRunning, "closed", next.IsClosed)
			s.notifyHandlers(t.Name, prev, next)
		}

		if t.Policy != nil && t.Indicator != nil {
			mode := t.Policy(next)
			t.Indicator.Set(mode)
		}

		if s.recorder != nil {
			ar := s.recorder.ForAgent(t.Name, t.Name)
			state := telemetry.IdleStateHot
			if next.IsClosed {
				state = telemetry.IdleStatePark
			} else if !next.IsRunning {
				state = telemetry.IdleStateYield
			}
			ar.RecordIdleState(ctx, state)
		}
	}
}

func (s *Supervisor) notifyHandlers(name string, prev, next RunnerState) {
	s.mu.Lock()
	handlers := make([]StateChangeHandler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("supervisor: state change handler panicked", "panic", r, "runner", name)
				}
			}()
			h(name, prev, next)
		}()
	}
}
