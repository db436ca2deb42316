package agent

import (
	"context"
	"fmt"
	"strings"

	sserr "github.com/kestrelrt/agentrt/pkg/errors"
)

// Composite runs a fixed, ordered set of sub-agents as a single [Agent] on
// one thread. Its own Name is a bracketed, comma-joined list of the
// sub-agents' names. Sub-agent order is fixed at construction and never
// changes; for runtime-mutable membership, use [DynamicComposite].
type Composite struct {
	agents []Agent
	name   string
}

// NewComposite builds a Composite over agents, in the given order.
// Constructing with zero agents is rejected: a composite with nothing to
// run is almost always a caller mistake, not a valid empty state.
func NewComposite(agents ...Agent) (*Composite, error) {
	if len(agents) == 0 {
		return nil, sserr.Precondition("agent: composite requires at least one sub-agent")
	}
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name()
	}
	cp := make([]Agent, len(agents))
	copy(cp, agents)
	return &Composite{
		agents: cp,
		name:   "[" + strings.Join(names, ",") + "]",
	}, nil
}

// Name returns the bracketed, comma-joined sub-agent names.
func (c *Composite) Name() string { return c.name }

// OnStart calls every sub-agent's OnStart in construction order,
// attempting all of them regardless of earlier failures, and reports any
// failures as a single [sserr.Aggregate] error.
func (c *Composite) OnStart(ctx context.Context) error {
	var failures []error
	for _, a := range c.agents {
		if err := a.OnStart(ctx); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", a.Name(), err))
		}
	}
	if agg := sserr.AggregateAttempted(len(c.agents), failures); agg != nil {
		return agg
	}
	return nil
}

// DoWork calls every sub-agent's DoWork in construction order and returns
// the sum of their work counts. A sub-agent failure propagates
// immediately to the caller's error sink rather than being aggregated
// here; subsequent sub-agents in the same tick are skipped.
func (c *Composite) DoWork(ctx context.Context) (int, error) {
	total := 0
	for _, a := range c.agents {
		n, err := a.DoWork(ctx)
		total += normalizeWorkCount(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// OnClose calls every sub-agent's OnClose in construction order, even if
// an earlier one failed, and reports any failures as a single
// [sserr.Aggregate] error.
func (c *Composite) OnClose(ctx context.Context) error {
	var failures []error
	for _, a := range c.agents {
		if err := a.OnClose(ctx); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", a.Name(), err))
		}
	}
	if agg := sserr.AggregateAttempted(len(c.agents), failures); agg != nil {
		return agg
	}
	return nil
}

// OnError rethrows err unchanged.
func (c *Composite) OnError(_ context.Context, err error) error { return err }
