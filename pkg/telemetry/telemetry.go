// Package telemetry records OpenTelemetry metrics for agent runners,
// invokers, and the supervisor: work-count throughput, idle-strategy
// state, and error volume. It is the metrics sibling of the tracing
// spans emitted directly by pkg/agent — same OTel dependency family,
// a separate concern.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// meterName is the OpenTelemetry instrumentation scope name for metrics
// recorded by this package.
const meterName = "github.com/kestrelrt/agentrt/pkg/telemetry"

var (
	attrRunnerID  = attribute.Key("agent.runner_id")
	attrAgentName = attribute.Key("agent.name")
)

// Recorder holds the OTel instruments used across a runtime instance's
// agents. Build one per [metric.MeterProvider] (typically once per
// process) and share it across runners/invokers/supervisors via
// [Recorder.ForAgent].
type Recorder struct {
	workCount  metric.Int64Counter
	errorCount metric.Int64Counter
	idleState  metric.Int64Gauge
}

// NewRecorder builds a Recorder backed by provider. If provider is nil,
// a bare [sdkmetric.MeterProvider] with no registered reader is used —
// it still validates and records instruments, it just has nowhere to
// export them — making Recorder safe to construct in tests or examples
// that do not wire a real exporter.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	if provider == nil {
		provider = sdkmetric.NewMeterProvider()
	}
	meter := provider.Meter(meterName)

	workCount, err := meter.Int64Counter("agent.work_count",
		metric.WithDescription("cumulative units of work processed by agent DoWork calls"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: build work_count counter: %w", err)
	}

	errorCount, err := meter.Int64Counter("agent.error_count",
		metric.WithDescription("cumulative tick/lifecycle failures observed by the error sink"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: build error_count counter: %w", err)
	}

	idleState, err := meter.Int64Gauge("agent.idle_state",
		metric.WithDescription("current idle-strategy state, 0=hot 1=spin 2=yield 3=park"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: build idle_state gauge: %w", err)
	}

	return &Recorder{workCount: workCount, errorCount: errorCount, idleState: idleState}, nil
}

// AgentRecorder is a Recorder bound to one agent's identifying
// attributes, so callers do not need to repeat them on every call.
type AgentRecorder struct {
	r    *Recorder
	opts metric.MeasurementOption
}

// ForAgent binds r to the given agent/runner identity, returning a
// handle that records pre-labeled measurements.
func (r *Recorder) ForAgent(runnerID, agentName string) *AgentRecorder {
	return &AgentRecorder{
		r: r,
		opts: metric.WithAttributes(
			attrRunnerID.String(runnerID),
			attrAgentName.String(agentName),
		),
	}
}

// RecordWork adds n to the work-count counter.
func (a *AgentRecorder) RecordWork(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	a.r.workCount.Add(ctx, int64(n), a.opts)
}

// RecordError increments the error counter by one.
func (a *AgentRecorder) RecordError(ctx context.Context) {
	a.r.errorCount.Add(ctx, 1, a.opts)
}

// IdleState enumerates the coarse idle-strategy states recorded by
// [AgentRecorder.RecordIdleState].
type IdleState int64

const (
	// IdleStateHot means the preceding tick was productive.
	IdleStateHot IdleState = iota
	// IdleStateSpin means the strategy is busy-spinning.
	IdleStateSpin
	// IdleStateYield means the strategy is yielding to the scheduler.
	IdleStateYield
	// IdleStatePark means the strategy is parked.
	IdleStatePark
)

// RecordIdleState sets the idle-state gauge to state.
func (a *AgentRecorder) RecordIdleState(ctx context.Context, state IdleState) {
	a.r.idleState.Record(ctx, int64(state), a.opts)
}
