package delivery

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/plumechat/plume/internal/bus"
)

// StatusStore is the persistence capability the tracker needs, a subset
// of the prefs store.
type StatusStore interface {
	DeliveryStatus(msgID string) (string, bool, error)
	SetDeliveryStatus(msgID, status string) error
}

// Update is the payload of "delivery.updated" bus events.
type Update struct {
	MsgID  string
	Status Status
}

// FailFunc decides whether a message fails in transit on a given step.
// A nil func never fails.
type FailFunc func(msgID string, from Status) bool

// Tracker advances tracked messages through the delivery lifecycle on a
// ticker, persisting each step and publishing updates on the bus.
type Tracker struct {
	mu      sync.Mutex
	active  map[string]Status
	store   StatusStore
	b       *bus.Bus
	logger  *zap.Logger
	tick    time.Duration
	fail    FailFunc
	cancel  context.CancelFunc
}

// NewTracker creates a tracker. tick controls how fast the simulated
// acknowledgements arrive; zero selects the default 500ms.
func NewTracker(store StatusStore, b *bus.Bus, logger *zap.Logger, tick time.Duration) *Tracker {
	if tick <= 0 {
		tick = 500 * time.Millisecond
	}
	return &Tracker{
		active: make(map[string]Status),
		store:  store,
		b:      b,
		logger: logger,
		tick:   tick,
	}
}

// SetFailFunc installs the transit-failure decision. Call before Start.
func (t *Tracker) SetFailFunc(fn FailFunc) {
	t.fail = fn
}

// Track registers a freshly sent message as queued and persists that
// initial status.
func (t *Tracker) Track(msgID string) error {
	if err := t.store.SetDeliveryStatus(msgID, string(Queued)); err != nil {
		return err
	}
	t.mu.Lock()
	t.active[msgID] = Queued
	t.mu.Unlock()
	t.publish(msgID, Queued)
	return nil
}

// MarkRead transitions a delivered message to read (the recipient chat
// was opened). Messages in any earlier state are left alone: the
// transition table rejects the jump and the automatic progression will
// catch up first.
func (t *Tracker) MarkRead(msgID string) {
	raw, ok, err := t.store.DeliveryStatus(msgID)
	if err != nil || !ok {
		return
	}
	from, err := Parse(raw)
	if err != nil || !Valid(from, Read) {
		return
	}
	if err := t.store.SetDeliveryStatus(msgID, string(Read)); err != nil {
		if t.logger != nil {
			t.logger.Warn("persist read status", zap.Error(err), zap.String("msg_id", msgID))
		}
		return
	}
	t.mu.Lock()
	delete(t.active, msgID)
	t.mu.Unlock()
	t.publish(msgID, Read)
}

// Status returns the current status of a message, defaulting absent
// entries to Delivered (seeded history predates tracking).
func (t *Tracker) Status(msgID string) Status {
	raw, ok, err := t.store.DeliveryStatus(msgID)
	if err != nil || !ok {
		return Delivered
	}
	s, err := Parse(raw)
	if err != nil {
		return Delivered
	}
	return s
}

// Start begins the acknowledgement loop.
func (t *Tracker) Start(ctx context.Context) {
	ctx, t.cancel = context.WithCancel(ctx)
	go t.loop(ctx)
}

// Stop halts the loop.
func (t *Tracker) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
}

func (t *Tracker) loop(ctx context.Context) {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.step()
		case <-ctx.Done():
			return
		}
	}
}

// step advances every tracked message one status.
func (t *Tracker) step() {
	t.mu.Lock()
	pending := make(map[string]Status, len(t.active))
	for id, s := range t.active {
		pending[id] = s
	}
	t.mu.Unlock()

	for id, from := range pending {
		to, done := Advance(from)
		if done {
			t.mu.Lock()
			delete(t.active, id)
			t.mu.Unlock()
			continue
		}
		if t.fail != nil && Valid(from, Failed) && t.fail(id, from) {
			to = Failed
		}
		if !Valid(from, to) {
			continue
		}
		if err := t.store.SetDeliveryStatus(id, string(to)); err != nil {
			if t.logger != nil {
				t.logger.Error("persist delivery status", zap.Error(err), zap.String("msg_id", id))
			}
			continue
		}
		t.mu.Lock()
		t.active[id] = to
		t.mu.Unlock()
		t.publish(id, to)
	}
}

func (t *Tracker) publish(msgID string, s Status) {
	if t.b != nil {
		t.b.Emit("delivery.updated", Update{MsgID: msgID, Status: s})
	}
}
