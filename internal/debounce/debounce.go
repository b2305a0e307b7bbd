// Package debounce provides last-write-wins delayed execution: a burst
// of triggers collapses into a single call carrying the final value.
// The UI uses it both for search-as-you-type (hold recomputation until
// input has been quiet) and for the one-shot timer that clears a search
// highlight unless a newer highlight supersedes it.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays invoking fn until no Trigger has arrived for the
// configured window. Each Trigger cancels and reschedules the pending
// call, so fn eventually runs exactly once per burst, with the value of
// the last Trigger. fn runs on a timer goroutine.
type Debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	fn    func(value string)
	timer *time.Timer
}

// New creates a debouncer with the given quiet window.
func New(d time.Duration, fn func(value string)) *Debouncer {
	return &Debouncer{d: d, fn: fn}
}

// Trigger schedules fn(value), superseding any pending call.
func (db *Debouncer) Trigger(value string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		db.timer.Stop()
	}
	db.timer = time.AfterFunc(db.d, func() { db.fn(value) })
}

// Stop cancels the pending call, if any. The debouncer stays usable.
func (db *Debouncer) Stop() {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}
