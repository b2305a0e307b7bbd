package prefs

import (
	"encoding/json"
	"fmt"
)

// Well-known keys. Per-item flags are namespaced by ID so a single
// table serves every chat and message.
const (
	keyThemeMode   = "themeMode"
	keyDisplayName = "userName"
	keyMutedChats  = "mutedChats"

	keyPinnedFmt    = "pinned:%s"   // per chat
	keyDeliveryFmt  = "delivery:%s" // per message
	keyReactionsFmt = "reactions:%s"
)

// ThemeMode returns the persisted theme mode ("dark" or "light"), or
// empty when none was saved yet.
func (s *Store) ThemeMode() (string, error) {
	v, _, err := s.Get(keyThemeMode)
	return v, err
}

// SetThemeMode persists the theme mode.
func (s *Store) SetThemeMode(mode string) error {
	return s.Set(keyThemeMode, mode)
}

// DisplayName returns the persisted profile display name.
func (s *Store) DisplayName() (string, error) {
	v, _, err := s.Get(keyDisplayName)
	return v, err
}

// SetDisplayName persists the profile display name.
func (s *Store) SetDisplayName(name string) error {
	return s.Set(keyDisplayName, name)
}

// MutedChats returns the set of muted chat IDs.
func (s *Store) MutedChats() (map[string]bool, error) {
	v, ok, err := s.Get(keyMutedChats)
	if err != nil || !ok {
		return map[string]bool{}, err
	}
	var ids []string
	if err := json.Unmarshal([]byte(v), &ids); err != nil {
		// A corrupt entry is treated as unset; it will be rewritten on
		// the next mute toggle.
		return map[string]bool{}, nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// SetChatMuted adds or removes a chat from the muted set.
func (s *Store) SetChatMuted(chatID string, muted bool) error {
	set, err := s.MutedChats()
	if err != nil {
		return err
	}
	if muted {
		set[chatID] = true
	} else {
		delete(set, chatID)
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.Set(keyMutedChats, string(data))
}

// PinnedMessage returns the pinned message ID for a chat, if any.
func (s *Store) PinnedMessage(chatID string) (string, bool, error) {
	return s.Get(fmt.Sprintf(keyPinnedFmt, chatID))
}

// SetPinnedMessage pins a message in a chat; an empty msgID unpins.
func (s *Store) SetPinnedMessage(chatID, msgID string) error {
	if msgID == "" {
		return s.Delete(fmt.Sprintf(keyPinnedFmt, chatID))
	}
	return s.Set(fmt.Sprintf(keyPinnedFmt, chatID), msgID)
}

// DeliveryStatus returns the persisted delivery status for a message.
func (s *Store) DeliveryStatus(msgID string) (string, bool, error) {
	return s.Get(fmt.Sprintf(keyDeliveryFmt, msgID))
}

// SetDeliveryStatus persists a message's delivery status.
func (s *Store) SetDeliveryStatus(msgID, status string) error {
	return s.Set(fmt.Sprintf(keyDeliveryFmt, msgID), status)
}

// Reactions returns the cached reaction list for a message as
// emoji strings keyed by user ID.
func (s *Store) Reactions(msgID string) (map[string]string, error) {
	v, ok, err := s.Get(fmt.Sprintf(keyReactionsFmt, msgID))
	if err != nil || !ok {
		return map[string]string{}, err
	}
	var byUser map[string]string
	if err := json.Unmarshal([]byte(v), &byUser); err != nil {
		return map[string]string{}, nil
	}
	return byUser, nil
}

// SetReactions replaces the cached reaction list for a message.
func (s *Store) SetReactions(msgID string, byUser map[string]string) error {
	key := fmt.Sprintf(keyReactionsFmt, msgID)
	if len(byUser) == 0 {
		return s.Delete(key)
	}
	data, err := json.Marshal(byUser)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}
