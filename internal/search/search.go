// Package search implements the message search, match highlighting and
// chat ordering used by the UI. Everything here is a pure function over
// store snapshots: no indexes are built and no state is kept, so every
// call is a full O(n) scan. That is acceptable for a seeded demo
// fixture of tens of messages; a real corpus would need an inverted
// index instead.
package search

import (
	"sort"
	"strings"

	"github.com/plumechat/plume/internal/chat"
)

// Result pairs a matching message with its resolved chat.
type Result struct {
	Message chat.Message
	Chat    chat.Chat
}

// Group collects the matches belonging to one chat.
type Group struct {
	ChatID  string
	Chat    chat.Chat
	Matches []Result
}

// Results is the outcome of a search: matches grouped by chat, with
// groups ordered by first appearance in the recency-sorted match list.
type Results struct {
	Total  int
	Groups []Group
}

// Search scans messages for case-insensitive substring matches of query
// and groups the matches by chat.
//
// A blank (all-whitespace) query yields zero results, not all messages.
// Matches are sorted newest-first before grouping, so the first group
// is the chat holding the most recent match. Messages whose ChatID does
// not resolve to a known chat are dropped silently.
func Search(query string, messages []chat.Message, chats []chat.Chat) Results {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Results{}
	}

	byID := make(map[string]chat.Chat, len(chats))
	for _, c := range chats {
		byID[c.ID] = c
	}

	var flat []Result
	for _, m := range messages {
		if !strings.Contains(strings.ToLower(m.Text), q) {
			continue
		}
		c, ok := byID[m.ChatID]
		if !ok {
			// Dangling reference; drop rather than error.
			continue
		}
		flat = append(flat, Result{Message: m, Chat: c})
	}

	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].Message.Timestamp > flat[j].Message.Timestamp
	})

	groupIdx := make(map[string]int)
	var groups []Group
	for _, r := range flat {
		gi, ok := groupIdx[r.Chat.ID]
		if !ok {
			gi = len(groups)
			groupIdx[r.Chat.ID] = gi
			groups = append(groups, Group{ChatID: r.Chat.ID, Chat: r.Chat})
		}
		groups[gi].Matches = append(groups[gi].Matches, r)
	}

	return Results{Total: len(flat), Groups: groups}
}

// SortChats returns the chats ordered most-recent-activity-first.
//
// A non-empty query first narrows the set to chats whose name or last
// message contains it, case-insensitively. The sort is stable: chats
// with equal LastMessageAt keep their relative input order. The input
// slice is never modified.
func SortChats(chats []chat.Chat, query string) []chat.Chat {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]chat.Chat, 0, len(chats))
	for _, c := range chats {
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.LastMessageText), q) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt > out[j].LastMessageAt
	})
	return out
}
