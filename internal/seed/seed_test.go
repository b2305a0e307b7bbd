package seed

import (
	"testing"
	"time"

	"github.com/plumechat/plume/internal/chat"
)

func TestBuildConsistency(t *testing.T) {
	now := time.Now()
	f := Build(now)

	if len(f.Chats) == 0 || len(f.Messages) == 0 || len(f.Users) == 0 {
		t.Fatal("fixture should not be empty")
	}

	chatIDs := make(map[string]chat.Chat, len(f.Chats))
	for _, c := range f.Chats {
		if _, dup := chatIDs[c.ID]; dup {
			t.Fatalf("duplicate chat ID %q", c.ID)
		}
		chatIDs[c.ID] = c
	}
	userIDs := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		userIDs[u.ID] = true
	}

	seen := make(map[string]bool, len(f.Messages))
	for _, m := range f.Messages {
		if m.ID == "" {
			t.Fatal("message with empty ID")
		}
		if seen[m.ID] {
			t.Fatalf("duplicate message ID %q", m.ID)
		}
		seen[m.ID] = true
		if _, ok := chatIDs[m.ChatID]; !ok {
			t.Fatalf("message %q references unknown chat %q", m.ID, m.ChatID)
		}
		if !userIDs[m.SenderID] {
			t.Fatalf("message %q has unknown sender %q", m.ID, m.SenderID)
		}
		if m.Timestamp > now.UnixMilli() {
			t.Fatalf("message %q timestamped in the future", m.ID)
		}
		if m.Deleted {
			t.Fatalf("fixture message %q should not start deleted", m.ID)
		}
	}
}

func TestBuildSummariesMatchNewestMessage(t *testing.T) {
	f := Build(time.Now())

	latest := make(map[string]chat.Message)
	for _, m := range f.Messages {
		if prev, ok := latest[m.ChatID]; !ok || m.Timestamp > prev.Timestamp {
			latest[m.ChatID] = m
		}
	}

	for _, c := range f.Chats {
		m, ok := latest[c.ID]
		if !ok {
			t.Fatalf("chat %q has no messages", c.Name)
		}
		if c.LastMessageText != m.Text {
			t.Fatalf("chat %q summary %q does not match newest message %q", c.Name, c.LastMessageText, m.Text)
		}
		if c.LastMessageAt != m.Timestamp {
			t.Fatalf("chat %q summary time %d does not match newest message %d", c.Name, c.LastMessageAt, m.Timestamp)
		}
	}
}

func TestApply(t *testing.T) {
	s := chat.NewStore(nil)
	f := Build(time.Now())
	Apply(s, f)

	if got := len(s.Chats()); got != len(f.Chats) {
		t.Fatalf("store has %d chats, want %d", got, len(f.Chats))
	}
	if got := len(s.Messages()); got != len(f.Messages) {
		t.Fatalf("store has %d messages, want %d", got, len(f.Messages))
	}
}

func TestBuildIDsStableAcrossRuns(t *testing.T) {
	a := Build(time.Now())
	b := Build(time.Now().Add(time.Hour))

	if len(a.Messages) != len(b.Messages) {
		t.Fatalf("message counts differ: %d vs %d", len(a.Messages), len(b.Messages))
	}
	for i := range a.Messages {
		if a.Messages[i].ID != b.Messages[i].ID {
			t.Fatalf("message %d ID not stable: %q vs %q", i, a.Messages[i].ID, b.Messages[i].ID)
		}
	}
	for i := range a.Chats {
		if a.Chats[i].ID != b.Chats[i].ID {
			t.Fatalf("chat %d ID not stable: %q vs %q", i, a.Chats[i].ID, b.Chats[i].ID)
		}
	}
}

func TestSelfParticipatesEverywhere(t *testing.T) {
	f := Build(time.Now())
	for _, c := range f.Chats {
		found := false
		for _, p := range c.Participants {
			if p == SelfID {
				found = true
			}
		}
		if !found {
			t.Fatalf("chat %q does not include the local user", c.Name)
		}
	}
}
