package agent

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/kestrelrt/agentrt/pkg/errors"
	"github.com/kestrelrt/agentrt/pkg/telemetry"
)

// tracerName is the OpenTelemetry instrumentation scope name for this
// package.
const tracerName = "github.com/kestrelrt/agentrt/pkg/agent"

// defaultCloseTimeout is used by [Runner.Close] when a caller asks for
// timeout <= 0.
const defaultCloseTimeout = 100 * time.Millisecond

// RunnerOption configures a [Runner] built by [NewRunner].
type RunnerOption func(*Runner)

// WithRunnerID overrides the runner's instance ID, which otherwise
// defaults to a freshly generated UUID.
func WithRunnerID(id string) RunnerOption {
	return func(r *Runner) { r.id = id }
}

// WithRunnerErrorSink attaches an [ErrorSink] consulted before the
// agent's own [Agent.OnError] on every tick failure.
func WithRunnerErrorSink(sink *ErrorSink) RunnerOption {
	return func(r *Runner) { r.sink = sink }
}

// WithRunnerLogger overrides the runner's [*slog.Logger]. Defaults to
// [slog.Default].
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithRunnerRecorder attaches a [telemetry.Recorder] that the runner
// records work-count, error-count, and idle-state measurements into on
// every tick. A nil recorder (the default) disables metrics emission.
func WithRunnerRecorder(recorder *telemetry.Recorder) RunnerOption {
	return func(r *Runner) { r.metrics = recorder }
}

// Runner owns a dedicated, OS-thread-pinned goroutine that drives one
// [Agent] through its full lifecycle: OnStart once, repeated DoWork
// ticks consulting a [Strategy] between empty ticks, then OnClose once.
//
// A Runner is single-shot: [Runner.Start] may succeed at most once, and
// a closed Runner can never be restarted. Its three lifecycle flags —
// started, running, closed — are plain [atomic.Bool]s read and written
// with the language's built-in acquire/release semantics.
type Runner struct {
	id       string
	agent    Agent
	strategy Strategy
	sink     *ErrorSink
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *telemetry.Recorder
	ar       *telemetry.AgentRecorder

	isStarted atomic.Bool
	isRunning atomic.Bool
	isClosed  atomic.Bool

	done   chan struct{}
	cancel context.CancelFunc
}

// NewRunner builds a Runner over agent, idling between empty ticks
// according to strategy.
func NewRunner(agent Agent, strategy Strategy, opts ...RunnerOption) *Runner {
	r := &Runner{
		id:       uuid.NewString(),
		agent:    agent,
		strategy: strategy,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start spawns the worker goroutine, pinned to its own OS thread via
// [runtime.LockOSThread], and returns immediately — the worker runs
// OnStart, the duty cycle, and OnClose asynchronously. Start rejects a
// second call on the same Runner and rejects starting an already-closed
// Runner, both with a precondition error.
func (r *Runner) Start() error {
	if r.isClosed.Load() {
		return sserr.Precondition("agent: runner already closed")
	}
	if !r.isStarted.CompareAndSwap(false, true) {
		return sserr.Precondition("agent: runner already started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		r.run(ctx)
	}()
	return nil
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.done)

	ctx, span := r.tracer.Start(ctx, "agent.runner.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("agent.runner.id", r.id),
			attribute.String("agent.name", r.agent.Name()),
			attribute.String("agent.idle_strategy", r.strategy.Alias()),
		),
	)
	defer span.End()

	if r.metrics != nil {
		r.ar = r.metrics.ForAgent(r.id, r.agent.Name())
	}

	r.isRunning.Store(true)
	r.logger.InfoContext(ctx, "agent runner starting", "runner_id", r.id, "agent", r.agent.Name())

	if err := r.agent.OnStart(ctx); err != nil {
		r.isRunning.Store(false)
		if !IsTerminate(err) {
			if final := r.routeLifecycleError(ctx, err); final != nil {
				if r.ar != nil {
					r.ar.RecordError(ctx)
				}
				span.RecordError(final)
				span.SetStatus(codes.Error, final.Error())
				r.logger.ErrorContext(ctx, "agent OnStart failed", "runner_id", r.id, "error", final)
			}
		}
	} else {
		r.loop(ctx)
	}

	if err := r.agent.OnClose(ctx); err != nil {
		if final := r.routeLifecycleError(ctx, err); final != nil && !IsTerminate(final) {
			if r.ar != nil {
				r.ar.RecordError(ctx)
			}
			span.RecordError(final)
			r.logger.ErrorContext(ctx, "agent OnClose failed", "runner_id", r.id, "error", final)
		}
	}

	r.isRunning.Store(false)
	r.isClosed.Store(true)
	span.SetStatus(codes.Ok, "")
	r.logger.InfoContext(ctx, "agent runner closed", "runner_id", r.id, "agent", r.agent.Name())
}

// loop runs the inner duty cycle until running is cleared or the
// context is canceled by Close's timeout escalation.
func (r *Runner) loop(ctx context.Context) {
	for r.isRunning.Load() && !r.isClosed.Load() {
		n, err := r.agent.DoWork(ctx)
		if r.ar != nil {
			r.ar.RecordWork(ctx, normalizeWorkCount(n))
		}
		if err != nil {
			if IsTerminate(err) {
				r.isRunning.Store(false)
				break
			}
			if ctx.Err() != nil {
				r.isRunning.Store(false)
				r.logger.WarnContext(ctx, "agent runner interrupted", "runner_id", r.id, "error", err)
				break
			}
			if r.handleTickError(ctx, err) {
				break
			}
		}
		r.recordIdleState(ctx, n)
		IdleTick(r.strategy, n)
	}
}

// recordIdleState records the idle-state gauge for the tick just
// completed: hot if it was productive, otherwise a coarse bucket derived
// from the strategy's alias.
func (r *Runner) recordIdleState(ctx context.Context, n int) {
	if r.ar == nil {
		return
	}
	if normalizeWorkCount(n) > 0 {
		r.ar.RecordIdleState(ctx, telemetry.IdleStateHot)
		return
	}
	r.ar.RecordIdleState(ctx, idleStateForAlias(r.strategy.Alias()))
}

// handleTickError routes a DoWork failure through the error sink and
// then the agent's own OnError, reporting whether the worker loop
// should stop.
func (r *Runner) handleTickError(ctx context.Context, err error) (stop bool) {
	if r.ar != nil {
		r.ar.RecordError(ctx)
	}
	handled := r.sink.HandleError(ctx, err)
	if handled == nil {
		return false
	}
	if IsTerminate(handled) {
		r.isRunning.Store(false)
		return true
	}
	onErr := r.agent.OnError(ctx, handled)
	if onErr == nil {
		return false
	}
	if IsTerminate(onErr) {
		r.isRunning.Store(false)
		return true
	}
	r.logger.ErrorContext(ctx, "agent tick failed", "runner_id", r.id, "error", onErr)
	r.isRunning.Store(false)
	return true
}

// routeLifecycleError runs an OnStart/OnClose failure through the error
// sink and then the agent's own OnError, mirroring handleTickError's
// cascade. It returns nil if the failure was recovered or resolved into
// [Terminate] at either stage, or the final error otherwise.
func (r *Runner) routeLifecycleError(ctx context.Context, err error) error {
	handled := r.sink.HandleError(ctx, err)
	if handled == nil || IsTerminate(handled) {
		return nil
	}
	onErr := r.agent.OnError(ctx, handled)
	if onErr == nil || IsTerminate(onErr) {
		return nil
	}
	return onErr
}

// Close requests the worker stop, waiting up to timeout for OnClose to
// complete before canceling the worker's context. Cancellation reaches
// only a DoWork call that observes ctx; an idle strategy's sleep is not
// interrupted. After canceling, Close waits for the worker to finish.
// A timeout <= 0 uses [defaultCloseTimeout].
// Close is idempotent and safe to call from any goroutine; it returns a
// precondition error if the Runner was never started.
func (r *Runner) Close(timeout time.Duration) error {
	if !r.isStarted.Load() {
		return sserr.Precondition("agent: runner was never started")
	}
	if timeout <= 0 {
		timeout = defaultCloseTimeout
	}

	r.isRunning.Store(false)

	select {
	case <-r.done:
		return nil
	case <-time.After(timeout):
		if r.cancel != nil {
			r.cancel()
		}
		<-r.done
		return nil
	}
}

// Wait blocks until the worker has fully finished (OnClose has
// returned), or ctx is done, whichever happens first.
func (r *Runner) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the worker is currently between a
// successful OnStart and termination.
func (r *Runner) IsRunning() bool { return r.isRunning.Load() }

// IsClosed reports whether OnClose has completed.
func (r *Runner) IsClosed() bool { return r.isClosed.Load() }

// IsOpen reports !IsClosed.
func (r *Runner) IsOpen() bool { return !r.isClosed.Load() }

// ID returns the runner's instance identifier.
func (r *Runner) ID() string { return r.id }
