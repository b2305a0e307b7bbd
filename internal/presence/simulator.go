// Package presence fakes the "X is typing" signal a real backend would
// push. The decision of who is typing sits behind a strategy interface
// so the production randomness can be swapped for a fixed script in
// tests.
package presence

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/plumechat/plume/internal/bus"
	"github.com/plumechat/plume/internal/chat"
)

// Strategy decides which participants of a chat appear to be typing.
type Strategy interface {
	Typing(c chat.Chat, users []chat.User) []string
}

// Update is the payload of "presence.typing" bus events.
type Update struct {
	ChatID string
	Names  []string
}

// RandomStrategy picks zero to two participants at random. A seeded
// source makes runs reproducible when needed.
type RandomStrategy struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomStrategy creates a strategy around the given source.
func NewRandomStrategy(src rand.Source) *RandomStrategy {
	return &RandomStrategy{rnd: rand.New(src)}
}

// Typing implements Strategy. Most ticks nobody types; occasionally one
// or two participants do.
func (r *RandomStrategy) Typing(c chat.Chat, users []chat.User) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(users) == 0 || r.rnd.Intn(4) != 0 {
		return nil
	}
	n := 1
	if len(users) > 1 && r.rnd.Intn(5) == 0 {
		n = 2
	}
	perm := r.rnd.Perm(len(users))
	names := make([]string, 0, n)
	for _, i := range perm[:n] {
		names = append(names, users[i].Name)
	}
	return names
}

// Simulator publishes typing updates for the active chat on a ticker.
type Simulator struct {
	mu       sync.Mutex
	active   chat.Chat
	users    []chat.User
	hasChat  bool
	strategy Strategy
	b        *bus.Bus
	logger   *zap.Logger
	interval time.Duration
	cancel   context.CancelFunc
}

// NewSimulator creates a simulator. interval controls how often the
// strategy is consulted; zero selects the default 4s.
func NewSimulator(strategy Strategy, b *bus.Bus, logger *zap.Logger, interval time.Duration) *Simulator {
	if interval <= 0 {
		interval = 4 * time.Second
	}
	return &Simulator{
		strategy: strategy,
		b:        b,
		logger:   logger,
		interval: interval,
	}
}

// SetActive points the simulator at the chat currently on screen.
// Typing is only ever simulated for the chat the user is looking at.
func (s *Simulator) SetActive(c chat.Chat, users []chat.User) {
	s.mu.Lock()
	s.active = c
	s.users = append([]chat.User(nil), users...)
	s.hasChat = true
	s.mu.Unlock()
}

// ClearActive stops simulating (no chat on screen). An immediate empty
// update is published so any indicator clears right away.
func (s *Simulator) ClearActive() {
	s.mu.Lock()
	chatID := s.active.ID
	had := s.hasChat
	s.hasChat = false
	s.mu.Unlock()

	if had && s.b != nil {
		s.b.Emit("presence.typing", Update{ChatID: chatID})
	}
}

// Start begins the simulation loop.
func (s *Simulator) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.loop(ctx)
}

// Stop halts the loop.
func (s *Simulator) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Simulator) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Simulator) tick() {
	s.mu.Lock()
	if !s.hasChat {
		s.mu.Unlock()
		return
	}
	c := s.active
	users := append([]chat.User(nil), s.users...)
	s.mu.Unlock()

	names := s.strategy.Typing(c, users)
	if s.b != nil {
		s.b.Emit("presence.typing", Update{ChatID: c.ID, Names: names})
	}
	if len(names) > 0 && s.logger != nil {
		s.logger.Debug("typing simulated",
			zap.String("chat_id", c.ID),
			zap.Strings("names", names))
	}
}
