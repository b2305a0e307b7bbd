package model

import (
	"testing"
	"time"

	"github.com/plumechat/plume/internal/chat"
	"github.com/plumechat/plume/internal/presence"
)

func testStore(t *testing.T) *chat.Store {
	t.Helper()
	s := chat.NewStore(nil)
	s.Seed(
		[]chat.Chat{
			{ID: "c1", Name: "Frontend Team", Kind: chat.KindGroup, LastMessageAt: 200},
			{ID: "c2", Name: "Sarah", Kind: chat.KindDirect, LastMessageAt: 100},
		},
		[]chat.Message{
			{ID: "m1", ChatID: "c1", SenderName: "Alex", Text: "Friday works", Timestamp: 100},
			{ID: "m2", ChatID: "c1", SenderName: "Taylor", Text: "Monday then", Timestamp: 200},
		},
		nil,
	)
	return s
}

func newTestVM(t *testing.T, s *chat.Store) *ViewModel {
	t.Helper()
	vm := NewViewModel(s, nil, 10*time.Millisecond, 100*time.Millisecond)
	t.Cleanup(vm.Close)
	return vm
}

func waitRefresh(t *testing.T, vm *ViewModel) {
	t.Helper()
	select {
	case <-vm.RefreshCh():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for refresh signal")
	}
}

func TestQueryChangedDebounces(t *testing.T) {
	vm := newTestVM(t, testStore(t))

	vm.QueryChanged("f")
	vm.QueryChanged("fr")
	vm.QueryChanged("friday")
	waitRefresh(t, vm)

	if vm.Query() != "friday" {
		t.Fatalf("query = %q, want %q", vm.Query(), "friday")
	}
	r := vm.Results()
	if r.Total != 1 {
		t.Fatalf("total = %d, want 1", r.Total)
	}
	if r.Groups[0].Matches[0].Message.ID != "m1" {
		t.Fatalf("matched %q, want m1", r.Groups[0].Matches[0].Message.ID)
	}
}

func TestSearchNowBypassesDebounce(t *testing.T) {
	vm := newTestVM(t, testStore(t))

	vm.SearchNow("monday")
	if vm.Query() != "monday" {
		t.Fatalf("query = %q, want %q", vm.Query(), "monday")
	}
	if vm.Results().Total != 1 {
		t.Fatalf("total = %d, want 1", vm.Results().Total)
	}
}

func TestJumpToHighlightExpires(t *testing.T) {
	vm := newTestVM(t, testStore(t))

	vm.JumpTo("c1", "m1")
	if vm.ActiveChatID() != "c1" {
		t.Fatalf("active chat = %q, want c1", vm.ActiveChatID())
	}
	if vm.HighlightedMsgID() != "m1" {
		t.Fatalf("highlight = %q, want m1", vm.HighlightedMsgID())
	}

	deadline := time.Now().Add(time.Second)
	for vm.HighlightedMsgID() != "" {
		if time.Now().After(deadline) {
			t.Fatal("highlight never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestJumpToSupersedesPendingClear(t *testing.T) {
	vm := newTestVM(t, testStore(t))

	vm.JumpTo("c1", "m1")
	time.Sleep(50 * time.Millisecond)
	vm.JumpTo("c1", "m2")

	// Wait past the point the first clear would have fired; the second
	// jump must have superseded it.
	time.Sleep(70 * time.Millisecond)
	if got := vm.HighlightedMsgID(); got != "m2" {
		t.Fatalf("highlight = %q, want m2 still held", got)
	}
}

func TestActiveMessagesOldestFirst(t *testing.T) {
	vm := newTestVM(t, testStore(t))
	vm.OpenChat("c1")

	msgs := vm.ActiveMessages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].ID != "m1" || msgs[1].ID != "m2" {
		t.Fatalf("order = [%s %s], want [m1 m2]", msgs[0].ID, msgs[1].ID)
	}
}

func TestTypingUpdates(t *testing.T) {
	vm := newTestVM(t, testStore(t))

	vm.HandleTyping(presence.Update{ChatID: "c1", Names: []string{"Alex"}})
	if got := vm.TypingNames("c1"); len(got) != 1 || got[0] != "Alex" {
		t.Fatalf("typing = %v, want [Alex]", got)
	}

	vm.HandleTyping(presence.Update{ChatID: "c1"})
	if got := vm.TypingNames("c1"); len(got) != 0 {
		t.Fatalf("typing = %v, want empty after clear", got)
	}
}
