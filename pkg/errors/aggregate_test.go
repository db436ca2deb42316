package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Aggregate(nil))
	assert.Nil(t, Aggregate([]error{}))
}

func TestAggregate_BundlesCauses(t *testing.T) {
	t.Parallel()
	c1 := errors.New("sub-agent a: close failed")
	c2 := errors.New("sub-agent b: close failed")

	agg := Aggregate([]error{c1, c2})
	require.NotNil(t, agg)
	assert.Equal(t, CodeAggregate, agg.Code)
	assert.ErrorIs(t, agg, c1, "Unwrap should expose the first cause")

	causes, ok := AggregateOf(agg)
	require.True(t, ok)
	assert.Equal(t, []error{c1, c2}, causes)
}

func TestAggregateAttempted_RecordsTotal(t *testing.T) {
	t.Parallel()
	c1 := errors.New("boom")
	agg := AggregateAttempted(3, []error{c1})
	require.NotNil(t, agg)
	assert.Contains(t, agg.Message, "1 of 3 failed")
	assert.Equal(t, 1, agg.Details["failed"])
	assert.Equal(t, 3, agg.Details["attempted"])
}

func TestIsAggregate(t *testing.T) {
	t.Parallel()
	agg := Aggregate([]error{errors.New("x")})
	assert.True(t, IsAggregate(agg))
	assert.False(t, IsAggregate(errors.New("plain")))
	assert.False(t, IsAggregate(nil))
}

func TestAggregateOf_NonAggregate(t *testing.T) {
	t.Parallel()
	causes, ok := AggregateOf(New(CodeValidation, "not an aggregate"))
	assert.False(t, ok)
	assert.Nil(t, causes)
}

func TestPrecondition(t *testing.T) {
	t.Parallel()
	err := Precondition("runner: already started")
	assert.Equal(t, CodePrecondition, err.Code)
	assert.True(t, IsPrecondition(err))
}

func TestPreconditionf(t *testing.T) {
	t.Parallel()
	err := Preconditionf("dynamic composite: status is %s, want ACTIVE", "INIT")
	assert.Contains(t, err.Message, "INIT")
	assert.True(t, IsPrecondition(err))
}
