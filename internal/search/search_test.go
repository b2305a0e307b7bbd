package search

import (
	"testing"

	"github.com/plumechat/plume/internal/chat"
)

func fixtureChats() []chat.Chat {
	return []chat.Chat{
		{ID: "c1", Name: "Frontend Team", LastMessageText: "ship it", LastMessageAt: 300},
		{ID: "c2", Name: "Sarah", LastMessageText: "see you Friday", LastMessageAt: 200},
		{ID: "c3", Name: "Design Crit", LastMessageText: "new mockups", LastMessageAt: 100},
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	msgs := []chat.Message{{ID: "m1", ChatID: "c1", Text: "anything", Timestamp: 1}}

	for _, q := range []string{"", "   ", "\t"} {
		res := Search(q, msgs, fixtureChats())
		if res.Total != 0 || len(res.Groups) != 0 {
			t.Errorf("Search(%q) = %d results, want 0 (blank query is empty, not match-all)", q, res.Total)
		}
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	msgs := []chat.Message{
		{ID: "m1", ChatID: "c1", Text: "Deploy on FRIDAY morning", Timestamp: 10},
	}

	res := Search("friday", msgs, fixtureChats())
	if res.Total != 1 {
		t.Fatalf("got %d results, want 1", res.Total)
	}
}

func TestSearchTrimsQuery(t *testing.T) {
	msgs := []chat.Message{{ID: "m1", ChatID: "c1", Text: "hello world", Timestamp: 10}}

	res := Search("  hello  ", msgs, fixtureChats())
	if res.Total != 1 {
		t.Errorf("got %d results, want 1 (query should be trimmed)", res.Total)
	}
}

func TestSearchDropsDanglingReferences(t *testing.T) {
	msgs := []chat.Message{
		{ID: "m1", ChatID: "c1", Text: "release notes", Timestamp: 10},
		{ID: "m2", ChatID: "ghost", Text: "release party", Timestamp: 20},
	}

	res := Search("release", msgs, fixtureChats())
	if res.Total != 1 {
		t.Fatalf("got %d results, want 1 (dangling ChatID must be dropped silently)", res.Total)
	}
	for _, g := range res.Groups {
		if g.ChatID == "ghost" {
			t.Error("dangling chat appeared in groups")
		}
	}
}

func TestSearchOrdersNewestFirst(t *testing.T) {
	msgs := []chat.Message{
		{ID: "m1", ChatID: "c1", Text: "standup notes", Timestamp: 100},
		{ID: "m2", ChatID: "c2", Text: "standup moved", Timestamp: 300},
		{ID: "m3", ChatID: "c1", Text: "standup recording", Timestamp: 200},
	}

	res := Search("standup", msgs, fixtureChats())
	if res.Total != 3 {
		t.Fatalf("got %d results, want 3", res.Total)
	}

	// Flattened order is [300, 200, 100]; groups keep first-seen order
	// of that scan: c2 (holding ts 300) before c1.
	if res.Groups[0].ChatID != "c2" || res.Groups[1].ChatID != "c1" {
		t.Errorf("group order = [%s %s], want [c2 c1]", res.Groups[0].ChatID, res.Groups[1].ChatID)
	}
	c1 := res.Groups[1].Matches
	if c1[0].Message.Timestamp != 200 || c1[1].Message.Timestamp != 100 {
		t.Errorf("c1 match order = [%d %d], want [200 100]", c1[0].Message.Timestamp, c1[1].Message.Timestamp)
	}
}

func TestSearchGroupsByChat(t *testing.T) {
	msgs := []chat.Message{
		{ID: "m1", ChatID: "c2", Text: "Let's meet Friday", Timestamp: 10},
		{ID: "m2", ChatID: "c2", Text: "Friday works", Timestamp: 20},
	}

	res := Search("friday", msgs, fixtureChats())
	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2", res.Total)
	}
	if len(res.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(res.Groups))
	}
	g := res.Groups[0]
	if g.ChatID != "c2" {
		t.Errorf("group chat = %s, want c2", g.ChatID)
	}
	if g.Matches[0].Message.Text != "Friday works" || g.Matches[1].Message.Text != "Let's meet Friday" {
		t.Errorf("within-group order wrong: %q then %q", g.Matches[0].Message.Text, g.Matches[1].Message.Text)
	}
}

func TestSortChatsByRecency(t *testing.T) {
	chats := []chat.Chat{
		{ID: "a", Name: "A", LastMessageAt: 100},
		{ID: "b", Name: "B", LastMessageAt: 300},
		{ID: "c", Name: "C", LastMessageAt: 200},
	}

	sorted := SortChats(chats, "")
	want := []string{"b", "c", "a"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("sorted[%d] = %s, want %s", i, sorted[i].ID, id)
		}
	}

	// Input must be untouched.
	if chats[0].ID != "a" {
		t.Error("SortChats mutated its input")
	}
}

func TestSortChatsStableOnTies(t *testing.T) {
	chats := []chat.Chat{
		{ID: "x", LastMessageAt: 100},
		{ID: "y", LastMessageAt: 100},
		{ID: "z", LastMessageAt: 100},
	}

	sorted := SortChats(chats, "")
	for i, id := range []string{"x", "y", "z"} {
		if sorted[i].ID != id {
			t.Errorf("tie order changed: sorted[%d] = %s, want %s", i, sorted[i].ID, id)
		}
	}
}

func TestSortChatsFiltersByQuery(t *testing.T) {
	sorted := SortChats(fixtureChats(), "friday")
	if len(sorted) != 1 || sorted[0].ID != "c2" {
		t.Fatalf("got %v, want only c2 (matched on last message)", ids(sorted))
	}

	sorted = SortChats(fixtureChats(), "TEAM")
	if len(sorted) != 1 || sorted[0].ID != "c1" {
		t.Fatalf("got %v, want only c1 (matched on name, case-insensitive)", ids(sorted))
	}
}

func ids(chats []chat.Chat) []string {
	out := make([]string, len(chats))
	for i, c := range chats {
		out[i] = c.ID
	}
	return out
}
