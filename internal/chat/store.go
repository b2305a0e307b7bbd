package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plumechat/plume/internal/bus"
)

const previewLen = 100

// Store is the in-memory conversation store backing the UI.
//
// All accessors return snapshots and all mutators replace records
// wholesale; callers must treat returned slices as values and never
// mutate them in place. Mutations that reference an unknown chat or
// message are silently ignored (the UI tolerates inconsistent data
// rather than surfacing errors for it).
type Store struct {
	mu       sync.RWMutex
	b        *bus.Bus
	chats    []Chat
	messages []Message
	users    []User
}

// NewStore creates an empty store. The bus may be nil (events are then
// simply not published), which keeps the store usable in isolation.
func NewStore(b *bus.Bus) *Store {
	return &Store{b: b}
}

// Seed replaces the entire store contents with the given fixture.
func (s *Store) Seed(chats []Chat, messages []Message, users []User) {
	s.mu.Lock()
	s.chats = append([]Chat(nil), chats...)
	s.messages = append([]Message(nil), messages...)
	s.users = append([]User(nil), users...)
	s.mu.Unlock()
	s.emit("store.seeded", nil)
}

// Chats returns a snapshot of all chats in insertion order.
func (s *Store) Chats() []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Chat(nil), s.chats...)
}

// Messages returns a snapshot of all messages in insertion order.
func (s *Store) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.messages...)
}

// Users returns a snapshot of the user directory.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]User(nil), s.users...)
}

// Chat returns the chat with the given ID.
func (s *Store) Chat(id string) (Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.chats {
		if c.ID == id {
			return c, true
		}
	}
	return Chat{}, false
}

// Message returns the message with the given ID.
func (s *Store) Message(id string) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// User returns the directory entry with the given ID.
func (s *Store) User(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// MessagesIn returns the messages belonging to a chat, in insertion order.
func (s *Store) MessagesIn(chatID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Message
	for _, m := range s.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

// Append adds a message and updates its chat's latest-message summary.
// A missing ID or timestamp is filled in. The stored message is returned;
// a message referencing an unknown chat is still stored (dangling
// references are dropped at read time, not rejected at write time).
func (s *Store) Append(m Message) Message {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Timestamp == 0 {
		m.Timestamp = time.Now().UnixMilli()
	}

	s.mu.Lock()
	s.messages = append(append([]Message(nil), s.messages...), m)
	chats := append([]Chat(nil), s.chats...)
	for i := range chats {
		if chats[i].ID != m.ChatID {
			continue
		}
		if m.Timestamp >= chats[i].LastMessageAt {
			chats[i].LastMessageAt = m.Timestamp
			chats[i].LastMessageText = preview(m.Text)
		}
		break
	}
	s.chats = chats
	s.mu.Unlock()

	s.emit("message.appended", m)
	return m
}

// Forward copies a message into each target chat as a new message from
// the given sender. Unknown source messages and unknown targets are
// skipped silently. The created messages are returned.
func (s *Store) Forward(srcID string, targetChatIDs []string, senderID, senderName string) []Message {
	src, ok := s.Message(srcID)
	if !ok {
		return nil
	}
	origin := &ForwardInfo{SenderName: src.SenderName}
	if c, ok := s.Chat(src.ChatID); ok {
		origin.ChatID = c.ID
		origin.ChatName = c.Name
	}

	var created []Message
	for _, target := range targetChatIDs {
		if _, ok := s.Chat(target); !ok {
			continue
		}
		fwd := Message{
			ChatID:     target,
			SenderID:   senderID,
			SenderName: senderName,
			Text:       src.Text,
			Media:      src.Media,
			Forwarded:  origin,
		}
		created = append(created, s.Append(fwd))
	}
	return created
}

// ToggleSaved flips the saved flag on a message. Reports whether the
// message exists and returns the new flag value.
func (s *Store) ToggleSaved(msgID string) (saved, ok bool) {
	s.updateMessage(msgID, func(m *Message) {
		m.Saved = !m.Saved
		saved = m.Saved
		ok = true
	})
	if ok {
		s.emit("message.flagged", msgID)
	}
	return saved, ok
}

// MarkDeleted flags a message as deleted. The text is retained; only
// the flag changes ("delete for everyone" is a tombstone, not erasure).
func (s *Store) MarkDeleted(msgID string) bool {
	var ok bool
	s.updateMessage(msgID, func(m *Message) {
		m.Deleted = true
		ok = true
	})
	if ok {
		s.emit("message.flagged", msgID)
	}
	return ok
}

// ToggleReaction adds the user's emoji reaction to a message, or removes
// it if the identical reaction is already present.
func (s *Store) ToggleReaction(msgID, userID, emoji string) bool {
	var ok bool
	s.updateMessage(msgID, func(m *Message) {
		ok = true
		for i, r := range m.Reactions {
			if r.UserID == userID && r.Emoji == emoji {
				m.Reactions = append(append([]Reaction(nil), m.Reactions[:i]...), m.Reactions[i+1:]...)
				return
			}
		}
		m.Reactions = append(append([]Reaction(nil), m.Reactions...), Reaction{Emoji: emoji, UserID: userID})
	})
	if ok {
		s.emit("message.flagged", msgID)
	}
	return ok
}

// MarkRead marks every message in a chat as read and clears the chat's
// unread counter. Unknown chats are a no-op.
func (s *Store) MarkRead(chatID string) {
	s.mu.Lock()
	msgs := append([]Message(nil), s.messages...)
	for i := range msgs {
		if msgs[i].ChatID == chatID {
			msgs[i].Read = true
		}
	}
	s.messages = msgs

	chats := append([]Chat(nil), s.chats...)
	changed := false
	for i := range chats {
		if chats[i].ID == chatID && chats[i].UnreadCount != 0 {
			chats[i].UnreadCount = 0
			changed = true
		}
	}
	s.chats = chats
	s.mu.Unlock()

	if changed {
		s.emit("chat.updated", chatID)
	}
}

// SetMuted sets the mute flag on a chat.
func (s *Store) SetMuted(chatID string, muted bool) bool {
	s.mu.Lock()
	chats := append([]Chat(nil), s.chats...)
	ok := false
	for i := range chats {
		if chats[i].ID == chatID {
			chats[i].Muted = muted
			ok = true
			break
		}
	}
	s.chats = chats
	s.mu.Unlock()

	if ok {
		s.emit("chat.updated", chatID)
	}
	return ok
}

// updateMessage applies fn to a copy of the message with the given ID
// and swaps the new message list in. Unknown IDs leave fn uncalled.
func (s *Store) updateMessage(msgID string, fn func(*Message)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := append([]Message(nil), s.messages...)
	for i := range msgs {
		if msgs[i].ID == msgID {
			fn(&msgs[i])
			break
		}
	}
	s.messages = msgs
}

func (s *Store) emit(kind string, data any) {
	if s.b != nil {
		s.b.Emit(kind, data)
	}
}

func preview(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= previewLen {
		return text
	}
	return string(runes[:previewLen])
}
