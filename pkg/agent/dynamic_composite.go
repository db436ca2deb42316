package agent

import (
	"context"
	"fmt"
	"sync"

	sserr "github.com/kestrelrt/agentrt/pkg/errors"
)

// DynamicCompositeStatus is the lifecycle state of a [DynamicComposite].
type DynamicCompositeStatus int

const (
	// StatusInit is the initial state, before OnStart has run.
	StatusInit DynamicCompositeStatus = iota
	// StatusActive is entered on OnStart; TryAdd/TryRemove are only
	// legal in this state.
	StatusActive
	// StatusClosed is entered on OnClose and is terminal.
	StatusClosed
)

// DynamicComposite is a [Composite]-like agent whose membership can
// change at runtime. Unlike Composite, its sub-agent slice is mutated
// only from inside [DynamicComposite.DoWork], on the owning worker
// thread, so the slice itself needs no synchronization. External callers
// request membership changes through two single-slot queues — one
// pending add, one pending remove — guarded by a mutex; [TryAdd] and
// [TryRemove] return false rather than blocking when a slot is already
// occupied.
type DynamicComposite struct {
	name   string
	agents []Agent

	mu            sync.Mutex
	status        DynamicCompositeStatus
	pendingAdd    Agent
	pendingRemove Agent
}

// NewDynamicComposite builds a DynamicComposite named name, initially
// containing agents in the given order. Unlike [NewComposite], an empty
// initial membership is allowed: members may be added later via
// [DynamicComposite.TryAdd].
func NewDynamicComposite(name string, agents ...Agent) *DynamicComposite {
	cp := make([]Agent, len(agents))
	copy(cp, agents)
	return &DynamicComposite{name: name, agents: cp, status: StatusInit}
}

// Name returns the composite's configured name.
func (d *DynamicComposite) Name() string { return d.name }

// Status reports the current lifecycle status.
func (d *DynamicComposite) Status() DynamicCompositeStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// TryAdd queues a to be started and appended on the next DoWork call. It
// returns false without effect if the pending-add slot is already
// occupied, or if the composite is not ACTIVE.
func (d *DynamicComposite) TryAdd(a Agent) bool {
	if a == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != StatusActive || d.pendingAdd != nil {
		return false
	}
	d.pendingAdd = a
	return true
}

// TryRemove queues a to be closed and removed (matched by identity) on
// the next DoWork call. It returns false without effect if the
// pending-remove slot is already occupied, or if the composite is not
// ACTIVE.
func (d *DynamicComposite) TryRemove(a Agent) bool {
	if a == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != StatusActive || d.pendingRemove != nil {
		return false
	}
	d.pendingRemove = a
	return true
}

// HasAddCompleted reports whether the pending-add slot is empty, i.e.
// whether a previously queued TryAdd has been applied by DoWork.
func (d *DynamicComposite) HasAddCompleted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pendingAdd == nil
}

// HasRemoveCompleted reports whether the pending-remove slot is empty.
func (d *DynamicComposite) HasRemoveCompleted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pendingRemove == nil
}

// OnStart transitions INIT -> ACTIVE and starts every initial sub-agent
// in order, aggregating failures as [Composite.OnStart] does.
func (d *DynamicComposite) OnStart(ctx context.Context) error {
	d.mu.Lock()
	d.status = StatusActive
	d.mu.Unlock()

	var failures []error
	for _, a := range d.agents {
		if err := a.OnStart(ctx); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", a.Name(), err))
		}
	}
	if agg := sserr.AggregateAttempted(len(d.agents), failures); agg != nil {
		return agg
	}
	return nil
}

// DoWork first drains the pending-add and pending-remove slots under the
// mutex, applies them outside the lock (add: OnStart then append, closing
// the new sub-agent immediately if its OnStart fails; remove: OnClose
// then erase by identity), and finally runs every remaining sub-agent's
// DoWork in order, returning the sum.
func (d *DynamicComposite) DoWork(ctx context.Context) (int, error) {
	d.mu.Lock()
	toAdd := d.pendingAdd
	d.pendingAdd = nil
	toRemove := d.pendingRemove
	d.pendingRemove = nil
	d.mu.Unlock()

	if toAdd != nil {
		if err := d.applyAdd(ctx, toAdd); err != nil {
			return 0, err
		}
	}
	if toRemove != nil {
		if err := d.applyRemove(ctx, toRemove); err != nil {
			return 0, err
		}
	}

	total := 0
	for _, a := range d.agents {
		n, err := a.DoWork(ctx)
		total += normalizeWorkCount(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (d *DynamicComposite) applyAdd(ctx context.Context, a Agent) error {
	if err := a.OnStart(ctx); err != nil {
		closeErr := a.OnClose(ctx)
		if closeErr != nil {
			return sserr.AggregateAttempted(2, []error{
				fmt.Errorf("%s: start: %w", a.Name(), err),
				fmt.Errorf("%s: close: %w", a.Name(), closeErr),
			})
		}
		return fmt.Errorf("%s: start: %w", a.Name(), err)
	}
	d.agents = append(d.agents, a)
	return nil
}

func (d *DynamicComposite) applyRemove(ctx context.Context, target Agent) error {
	idx := -1
	for i, a := range d.agents {
		if a == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	err := target.OnClose(ctx)
	d.agents = append(d.agents[:idx], d.agents[idx+1:]...)
	if err != nil {
		return fmt.Errorf("%s: close: %w", target.Name(), err)
	}
	return nil
}

// OnClose transitions ACTIVE -> CLOSED, closes every remaining sub-agent
// in order (even if an earlier one failed), clears both pending slots so
// no stale TryAdd/TryRemove request survives the composite, and
// aggregates failures as [Composite.OnClose] does.
func (d *DynamicComposite) OnClose(ctx context.Context) error {
	d.mu.Lock()
	d.status = StatusClosed
	d.pendingAdd = nil
	d.pendingRemove = nil
	d.mu.Unlock()

	var failures []error
	for _, a := range d.agents {
		if err := a.OnClose(ctx); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", a.Name(), err))
		}
	}
	if agg := sserr.AggregateAttempted(len(d.agents), failures); agg != nil {
		return agg
	}
	return nil
}

// OnError rethrows err unchanged.
func (d *DynamicComposite) OnError(_ context.Context, err error) error { return err }
