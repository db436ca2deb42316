package supervisor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kestrelrt/agentrt/pkg/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowAgent struct {
	agent.Base
}

func (slowAgent) Name() string { return "slow" }

func (slowAgent) DoWork(context.Context) (int, error) {
	time.Sleep(time.Millisecond)
	return 1, nil
}

func TestSupervisor_PollsAndAppliesPolicy(t *testing.T) {
	t.Parallel()

	indicator := agent.NewControllableIndicator()
	strategy := agent.NewControllable(indicator)
	r := agent.NewRunner(&slowAgent{}, strategy)
	require.NoError(t, r.Start())
	t.Cleanup(func() { _ = r.Close(time.Second) })

	var transitions atomic.Int64
	sup := New(5*time.Millisecond, nil, nil, Target{
		Name:      "slow",
		Runner:    r,
		Indicator: indicator,
		Policy: func(state RunnerState) agent.ControllableMode {
			return agent.ModeYield
		},
	})
	sup.OnStateChange(func(name string, prev, next RunnerState) {
		transitions.Add(1)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	sup.Run(ctx)

	assert.Equal(t, agent.ModeYield, indicator.Get())
	assert.GreaterOrEqual(t, transitions.Load(), int64(1))
}

func TestSupervisor_NoPolicyLeavesIndicatorUnchanged(t *testing.T) {
	t.Parallel()

	indicator := agent.NewControllableIndicator()
	indicator.Set(agent.ModeBusySpin)
	strategy := agent.NewControllable(indicator)
	r := agent.NewRunner(&slowAgent{}, strategy)
	require.NoError(t, r.Start())
	t.Cleanup(func() { _ = r.Close(time.Second) })

	sup := New(5*time.Millisecond, nil, nil, Target{
		Name:   "slow",
		Runner: r,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	sup.Run(ctx)

	assert.Equal(t, agent.ModeBusySpin, indicator.Get())
}
