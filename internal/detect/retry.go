package detect

import "time"

// Clock abstracts the retry delay so readiness can be tested without real
// sleeps.
type Clock interface {
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// readyState is the state of the provider-readiness loop.
type readyState int

const (
	statePending readyState = iota
	stateReady
	stateExhausted
)

// readiness is a bounded-retry state machine waiting for the symbol provider
// to warm up: Pending until symbols appear, Ready on the first non-empty
// result, Exhausted after maxAttempts empty results.
type readiness struct {
	clock    Clock
	delay    time.Duration
	attempts int
	max      int
	state    readyState
}

func newReadiness(clock Clock, max int, delay time.Duration) *readiness {
	return &readiness{clock: clock, delay: delay, max: max}
}

// observe feeds one provider result into the machine and returns the new
// state. Sleeping happens only on a Pending transition that leaves retries.
func (r *readiness) observe(gotSymbols bool) readyState {
	if r.state != statePending {
		return r.state
	}
	if gotSymbols {
		r.state = stateReady
		return r.state
	}
	r.attempts++
	if r.attempts >= r.max {
		r.state = stateExhausted
		return r.state
	}
	r.clock.Sleep(r.delay)
	return statePending
}
