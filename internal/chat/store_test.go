package chat

import (
	"testing"
	"time"

	"github.com/plumechat/plume/internal/bus"
)

func seededStore(b *bus.Bus) *Store {
	s := NewStore(b)
	s.Seed(
		[]Chat{
			{ID: "c1", Name: "Frontend Team", Kind: KindGroup, LastMessageAt: 1000, LastMessageText: "old", UnreadCount: 2},
			{ID: "c2", Name: "Sarah", Kind: KindDirect, LastMessageAt: 2000},
		},
		[]Message{
			{ID: "m1", ChatID: "c1", SenderID: "u2", SenderName: "Alex", Text: "hello there", Timestamp: 1000},
			{ID: "m2", ChatID: "c2", SenderID: "u3", SenderName: "Sarah", Text: "see you Friday", Timestamp: 2000},
		},
		[]User{{ID: "u2", Name: "Alex"}},
	)
	return s
}

func TestAppendUpdatesChatSummary(t *testing.T) {
	s := seededStore(nil)

	m := s.Append(Message{ChatID: "c1", SenderID: "u1", SenderName: "You", Text: "newest"})
	if m.ID == "" {
		t.Error("Append should assign an ID")
	}
	if m.Timestamp == 0 {
		t.Error("Append should assign a timestamp")
	}

	c, ok := s.Chat("c1")
	if !ok {
		t.Fatal("chat c1 missing")
	}
	if c.LastMessageText != "newest" {
		t.Errorf("LastMessageText = %q, want newest", c.LastMessageText)
	}
	if c.LastMessageAt != m.Timestamp {
		t.Errorf("LastMessageAt = %d, want %d", c.LastMessageAt, m.Timestamp)
	}
}

func TestAppendOlderMessageKeepsSummary(t *testing.T) {
	s := seededStore(nil)

	// A backfilled message older than the current summary must not
	// regress LastMessageAt.
	s.Append(Message{ChatID: "c2", Text: "from the past", Timestamp: 500})

	c, _ := s.Chat("c2")
	if c.LastMessageAt != 2000 {
		t.Errorf("LastMessageAt = %d, want 2000 (unchanged)", c.LastMessageAt)
	}
}

func TestAppendPublishesEvent(t *testing.T) {
	b := bus.New()
	s := seededStore(b)

	ch, unsub := b.Subscribe("message.", 10)
	defer unsub()

	s.Append(Message{ChatID: "c1", Text: "hi"})

	select {
	case evt := <-ch:
		if evt.Kind != "message.appended" {
			t.Errorf("kind = %q, want message.appended", evt.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message.appended")
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := seededStore(nil)

	chats := s.Chats()
	chats[0].Name = "mutated"

	c, _ := s.Chat("c1")
	if c.Name != "Frontend Team" {
		t.Errorf("store chat mutated through snapshot: %q", c.Name)
	}

	msgs := s.Messages()
	msgs[0].Text = "mutated"
	m, _ := s.Message("m1")
	if m.Text != "hello there" {
		t.Errorf("store message mutated through snapshot: %q", m.Text)
	}
}

func TestToggleSaved(t *testing.T) {
	s := seededStore(nil)

	saved, ok := s.ToggleSaved("m1")
	if !ok || !saved {
		t.Fatalf("first toggle = (%v, %v), want (true, true)", saved, ok)
	}
	saved, ok = s.ToggleSaved("m1")
	if !ok || saved {
		t.Fatalf("second toggle = (%v, %v), want (false, true)", saved, ok)
	}

	if _, ok := s.ToggleSaved("missing"); ok {
		t.Error("toggling an unknown message should report ok=false")
	}
}

func TestMarkDeletedKeepsText(t *testing.T) {
	s := seededStore(nil)

	if !s.MarkDeleted("m1") {
		t.Fatal("MarkDeleted(m1) = false")
	}
	m, _ := s.Message("m1")
	if !m.Deleted {
		t.Error("Deleted flag not set")
	}
	if m.Text != "hello there" {
		t.Errorf("text erased on delete: %q", m.Text)
	}

	if s.MarkDeleted("missing") {
		t.Error("deleting an unknown message should report false")
	}
}

func TestToggleReaction(t *testing.T) {
	s := seededStore(nil)

	s.ToggleReaction("m1", "u1", "👍")
	m, _ := s.Message("m1")
	if len(m.Reactions) != 1 {
		t.Fatalf("got %d reactions, want 1", len(m.Reactions))
	}

	// Same user, same emoji removes it.
	s.ToggleReaction("m1", "u1", "👍")
	m, _ = s.Message("m1")
	if len(m.Reactions) != 0 {
		t.Fatalf("got %d reactions after toggle off, want 0", len(m.Reactions))
	}

	// Different users stack.
	s.ToggleReaction("m1", "u1", "❤️")
	s.ToggleReaction("m1", "u2", "❤️")
	m, _ = s.Message("m1")
	if len(m.Reactions) != 2 {
		t.Fatalf("got %d reactions, want 2", len(m.Reactions))
	}
}

func TestMarkRead(t *testing.T) {
	s := seededStore(nil)

	s.MarkRead("c1")

	c, _ := s.Chat("c1")
	if c.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", c.UnreadCount)
	}
	for _, m := range s.MessagesIn("c1") {
		if !m.Read {
			t.Errorf("message %s not marked read", m.ID)
		}
	}
}

func TestForward(t *testing.T) {
	s := seededStore(nil)

	created := s.Forward("m2", []string{"c1", "nope"}, "u1", "You")
	if len(created) != 1 {
		t.Fatalf("got %d forwarded messages, want 1 (unknown target skipped)", len(created))
	}
	fwd := created[0]
	if fwd.ChatID != "c1" || fwd.Text != "see you Friday" {
		t.Errorf("forwarded = %+v", fwd)
	}
	if fwd.Forwarded == nil || fwd.Forwarded.SenderName != "Sarah" || fwd.Forwarded.ChatName != "Sarah" {
		t.Errorf("forward origin = %+v", fwd.Forwarded)
	}

	if got := s.Forward("missing", []string{"c1"}, "u1", "You"); got != nil {
		t.Errorf("forwarding an unknown message should return nil, got %v", got)
	}
}

func TestSetMuted(t *testing.T) {
	s := seededStore(nil)

	if !s.SetMuted("c2", true) {
		t.Fatal("SetMuted(c2) = false")
	}
	c, _ := s.Chat("c2")
	if !c.Muted {
		t.Error("Muted flag not set")
	}
	if s.SetMuted("missing", true) {
		t.Error("muting an unknown chat should report false")
	}
}
