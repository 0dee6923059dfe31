package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadiness_ReadyOnFirstSymbols(t *testing.T) {
	clock := &fakeClock{}
	r := newReadiness(clock, 3, time.Second)

	assert.Equal(t, stateReady, r.observe(true))
	assert.Empty(t, clock.sleeps)
}

func TestReadiness_PendingThenReady(t *testing.T) {
	clock := &fakeClock{}
	r := newReadiness(clock, 3, time.Second)

	assert.Equal(t, statePending, r.observe(false))
	assert.Equal(t, statePending, r.observe(false))
	assert.Equal(t, stateReady, r.observe(true))
	assert.Equal(t, []time.Duration{time.Second, time.Second}, clock.sleeps)
}

func TestReadiness_Exhausted(t *testing.T) {
	clock := &fakeClock{}
	r := newReadiness(clock, 3, time.Second)

	assert.Equal(t, statePending, r.observe(false))
	assert.Equal(t, statePending, r.observe(false))
	assert.Equal(t, stateExhausted, r.observe(false))
	assert.Len(t, clock.sleeps, 2, "no delay after the final attempt")

	// Terminal states are sticky.
	assert.Equal(t, stateExhausted, r.observe(true))
}
