package list

import (
	"errors"
	"sync/atomic"
)

// ErrSubmitInFlight is returned when a submission starts while a previous
// one has not resolved yet.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// SubmitGuard serializes user-initiated write actions. The UI equivalent
// is disabling the submit control until the request resolves: a second
// trigger while one is in flight performs no network call at all.
type SubmitGuard struct {
	inFlight atomic.Bool
}

// Do runs fn unless a submission is already in flight.
func (g *SubmitGuard) Do(fn func() error) error {
	if !g.inFlight.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	defer g.inFlight.Store(false)
	return fn()
}

// Busy reports whether a submission is currently in flight.
func (g *SubmitGuard) Busy() bool { return g.inFlight.Load() }
