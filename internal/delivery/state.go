// Package delivery simulates message delivery for the demo: sent
// messages advance through a small status lifecycle on a timer, the way
// a real transport would acknowledge them, and each step is persisted
// as a per-message preference flag.
package delivery

import "fmt"

// Status is a message delivery state.
type Status string

const (
	Queued    Status = "queued"
	Sending   Status = "sending"
	Sent      Status = "sent"
	Delivered Status = "delivered"
	Read      Status = "read"
	Failed    Status = "failed"
)

// validTransitions defines the allowed status changes.
var validTransitions = map[Status][]Status{
	Queued:    {Sending, Failed},
	Sending:   {Sent, Failed},
	Sent:      {Delivered, Failed},
	Delivered: {Read},
	Read:      {},
	Failed:    {Queued}, // retry
}

// next is the automatic progression the tracker walks on its timer.
// Read is never reached automatically; it requires the recipient view.
// A failed message re-queues on the next tick (automatic retry).
var next = map[Status]Status{
	Queued:  Sending,
	Sending: Sent,
	Sent:    Delivered,
	Failed:  Queued,
}

// Valid reports whether a transition from one status to another is allowed.
func Valid(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Advance returns the automatic successor of a status. done is true
// when the status has no automatic successor.
func Advance(s Status) (to Status, done bool) {
	to, ok := next[s]
	return to, !ok
}

// Parse converts a persisted string into a Status.
func Parse(s string) (Status, error) {
	switch Status(s) {
	case Queued, Sending, Sent, Delivered, Read, Failed:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown delivery status %q", s)
}
