package bus

import "time"

// Event is a domain notification published on the bus.
//
// Kinds are dot-separated namespaces, e.g. "message.appended" or
// "presence.typing". Subscribers match on a namespace prefix.
type Event struct {
	Kind string
	At   time.Time
	Data any
}
