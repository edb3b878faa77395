package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeqClock_StartsAtZero(t *testing.T) {
	clock := NewSeqClock()
	assert.Equal(t, int64(0), clock.Current())
}

func TestSeqClock_NextIncrements(t *testing.T) {
	clock := NewSeqClock()

	assert.Equal(t, int64(1), clock.Next())
	assert.Equal(t, int64(2), clock.Next())
	assert.Equal(t, int64(2), clock.Current())
}

func TestSeqClock_Reset(t *testing.T) {
	clock := NewSeqClock()
	clock.Next()
	clock.Next()

	clock.Reset()
	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
}

func TestFixedRunID(t *testing.T) {
	gen := NewFixedRunID("run-123")
	assert.Equal(t, "run-123", gen.Generate())
	assert.Equal(t, "run-123", gen.Generate())

	assert.Equal(t, DefaultRunID, NewFixedRunID("").Generate())
}
