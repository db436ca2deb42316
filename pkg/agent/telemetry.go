package agent

import "github.com/kestrelrt/agentrt/pkg/telemetry"

// idleStateForAlias maps a [Strategy.Alias] to the coarse idle-state
// bucket recorded on the idle-state gauge. Backoff's own internal
// spin/yield/park sub-states are not distinguished here; this is a
// runner-level approximation, not a readout of the strategy's exact
// state.
func idleStateForAlias(alias string) telemetry.IdleState {
	switch alias {
	case "spin", "noop":
		return telemetry.IdleStateSpin
	case "yield":
		return telemetry.IdleStateYield
	default:
		return telemetry.IdleStatePark
	}
}
