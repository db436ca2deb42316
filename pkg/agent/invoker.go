package agent

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/kestrelrt/agentrt/pkg/errors"
	"github.com/kestrelrt/agentrt/pkg/telemetry"
)

// InvokerOption configures an [Invoker] built by [NewInvoker].
type InvokerOption func(*Invoker)

// WithInvokerID overrides the invoker's instance ID, which otherwise
// defaults to a freshly generated UUID.
func WithInvokerID(id string) InvokerOption {
	return func(i *Invoker) { i.id = id }
}

// WithInvokerErrorSink attaches an [ErrorSink] consulted before the
// agent's own [Agent.OnError] on every failure surfaced to
// [Invoker.HandleError].
func WithInvokerErrorSink(sink *ErrorSink) InvokerOption {
	return func(i *Invoker) { i.sink = sink }
}

// WithInvokerLogger overrides the invoker's [*slog.Logger]. Defaults to
// [slog.Default].
func WithInvokerLogger(logger *slog.Logger) InvokerOption {
	return func(i *Invoker) { i.logger = logger }
}

// WithInvokerRecorder attaches a [telemetry.Recorder] that the invoker
// records work-count and error-count measurements into on every
// Invoke/HandleError call. A nil recorder (the default) disables metrics
// emission. An Invoker has no owned idle strategy, so unlike [Runner] it
// never records the idle-state gauge.
func WithInvokerRecorder(recorder *telemetry.Recorder) InvokerOption {
	return func(i *Invoker) { i.metrics = recorder }
}

// Invoker drives an [Agent] through the identical lifecycle semantics as
// a [Runner], but without an owned worker thread: the caller's own loop
// calls [Invoker.Invoke] on every tick, making an Invoker suitable for
// embedding inside an existing event loop instead of spawning one.
type Invoker struct {
	id      string
	agent   Agent
	sink    *ErrorSink
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *telemetry.Recorder
	ar      *telemetry.AgentRecorder

	isStarted atomic.Bool
	isRunning atomic.Bool
	isClosed  atomic.Bool
}

// NewInvoker builds an Invoker over agent.
func NewInvoker(agent Agent, opts ...InvokerOption) *Invoker {
	i := &Invoker{
		id:     uuid.NewString(),
		agent:  agent,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Start calls the agent's OnStart. On success, running is set true. On
// failure, the error is routed through the error sink and [Invoker.Close]
// is called before the error is returned. Start rejects a second call and
// rejects starting an already-closed Invoker.
func (i *Invoker) Start(ctx context.Context) error {
	if i.isClosed.Load() {
		return sserr.Precondition("agent: invoker already closed")
	}
	if !i.isStarted.CompareAndSwap(false, true) {
		return sserr.Precondition("agent: invoker already started")
	}

	ctx, span := i.tracer.Start(ctx, "agent.invoker.start",
		trace.WithAttributes(
			attribute.String("agent.invoker.id", i.id),
			attribute.String("agent.name", i.agent.Name()),
		),
	)
	defer span.End()

	if i.metrics != nil {
		i.ar = i.metrics.ForAgent(i.id, i.agent.Name())
	}

	if err := i.agent.OnStart(ctx); err != nil {
		final := i.routeLifecycleError(ctx, err)
		if final != nil && i.ar != nil {
			i.ar.RecordError(ctx)
		}
		_ = i.Close(ctx)
		return final
	}
	i.isRunning.Store(true)
	return nil
}

// routeLifecycleError runs an OnStart/OnClose failure through the error
// sink and then the agent's own OnError, mirroring HandleError's cascade
// for tick failures. It returns nil if the failure was recovered or
// resolved into [Terminate] at either stage, or the final error otherwise.
func (i *Invoker) routeLifecycleError(ctx context.Context, err error) error {
	handled := i.sink.HandleError(ctx, err)
	if handled == nil || IsTerminate(handled) {
		return nil
	}
	onErr := i.agent.OnError(ctx, handled)
	if onErr == nil || IsTerminate(onErr) {
		return nil
	}
	return onErr
}

// Invoke runs one DoWork tick and returns its work count, or 0 without
// calling DoWork if the Invoker is not currently running.
func (i *Invoker) Invoke(ctx context.Context) int {
	if !i.isRunning.Load() {
		return 0
	}
	n, err := i.agent.DoWork(ctx)
	normalized := normalizeWorkCount(n)
	if i.ar != nil {
		i.ar.RecordWork(ctx, normalized)
	}
	if err != nil {
		_ = i.HandleError(ctx, err)
	}
	return normalized
}

// HandleError is the caller's funnel for errors escaping [Invoker.Invoke]
// or surfaced by the caller's own surrounding loop. [Terminate] triggers
// [Invoker.Close]; context cancellation is treated as an external
// interrupt and also closes; any other error is routed through the error
// sink and then the agent's own OnError, closing if either raises
// [Terminate].
func (i *Invoker) HandleError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if IsTerminate(err) {
		return i.Close(ctx)
	}
	if i.ar != nil {
		i.ar.RecordError(ctx)
	}
	if ctx.Err() != nil {
		_ = i.Close(ctx)
		return err
	}

	handled := i.sink.HandleError(ctx, err)
	if handled == nil {
		return nil
	}
	if IsTerminate(handled) {
		return i.Close(ctx)
	}
	onErr := i.agent.OnError(ctx, handled)
	if onErr == nil {
		return nil
	}
	if IsTerminate(onErr) {
		return i.Close(ctx)
	}
	return onErr
}

// Close is idempotent: it clears running, latches closed, and calls the
// agent's OnClose exactly once across the Invoker's lifetime, routing any
// failure through the error sink.
func (i *Invoker) Close(ctx context.Context) error {
	if !i.isClosed.CompareAndSwap(false, true) {
		return nil
	}
	i.isRunning.Store(false)

	if err := i.agent.OnClose(ctx); err != nil {
		final := i.routeLifecycleError(ctx, err)
		if final != nil && i.ar != nil {
			i.ar.RecordError(ctx)
		}
		return final
	}
	return nil
}

// IsStarted reports whether Start has been called successfully.
func (i *Invoker) IsStarted() bool { return i.isStarted.Load() }

// IsRunning reports whether the invoker is between a successful Start
// and Close.
func (i *Invoker) IsRunning() bool { return i.isRunning.Load() }

// IsClosed reports whether Close has completed.
func (i *Invoker) IsClosed() bool { return i.isClosed.Load() }

// ID returns the invoker's instance identifier.
func (i *Invoker) ID() string { return i.id }
