package tui

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plumechat/plume/internal/chat"
	"github.com/plumechat/plume/internal/seed"
	"github.com/plumechat/plume/internal/tui/ui"
)

// runCommand dispatches a parsed ':' command.
func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "search":
		a.showSearch()
		if cmd.Args != "" {
			a.searchV.Input().SetText(cmd.Args)
			a.vm.SearchNow(cmd.Args)
		}
	case "theme":
		a.setTheme(cmd.Args)
	case "name":
		a.setDisplayName(cmd.Args)
	case "mute":
		a.toggleMute(a.currentChatID())
	case "pin":
		a.togglePin(a.thread.SelectedMessage())
	case "save":
		a.toggleSaved(a.thread.SelectedMessage())
	case "delete":
		a.deleteMessage(a.thread.SelectedMessage())
	case "forward":
		a.forwardSelected(cmd.Args)
	case "send":
		a.sendMessage(cmd.Args)
	case "help", "h":
		a.showPage(pageHelp)
	case "quit", "q":
		a.app.Stop()
	default:
		a.vm.Flash.Warn("Unknown command: " + cmd.Name)
	}
	a.refresh()
}

// currentChatID resolves the chat a chat-scoped command applies to:
// the open thread, or the selection in the conversation list.
func (a *App) currentChatID() string {
	if a.pages.Current() == pageThread {
		return a.thread.ChatID()
	}
	return a.chatList.SelectedChat()
}

func (a *App) setTheme(mode string) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode != "dark" && mode != "light" {
		a.vm.Flash.Warn("Usage: :theme dark|light")
		return
	}
	if err := a.prefs.SetThemeMode(mode); err != nil {
		a.vm.Flash.Err(err)
		return
	}
	// Shared theme pointer: views pick up new colors on re-render,
	// widget chrome set at construction follows on restart.
	*a.theme = *ui.ThemeByName(mode)
	a.statusBar.SetTheme(mode)
	a.vm.Flash.Info("Theme set to " + mode)
	a.logger.Info("theme changed", zap.String("mode", mode))
}

func (a *App) setDisplayName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		a.vm.Flash.Warn("Usage: :name <display name>")
		return
	}
	if err := a.prefs.SetDisplayName(name); err != nil {
		a.vm.Flash.Err(err)
		return
	}
	a.statusBar.SetUser(name)
	a.vm.Flash.Info("Display name set to " + name)
}

func (a *App) toggleMute(chatID string) {
	if chatID == "" {
		return
	}
	c, ok := a.store.Chat(chatID)
	if !ok {
		return
	}
	muted := !c.Muted
	a.store.SetMuted(chatID, muted)
	if err := a.prefs.SetChatMuted(chatID, muted); err != nil {
		a.logger.Warn("persist mute failed", zap.Error(err))
	}
	if muted {
		a.vm.Flash.Info("Muted " + c.Name)
	} else {
		a.vm.Flash.Info("Unmuted " + c.Name)
	}
	a.refresh()
}

func (a *App) toggleSaved(msgID string) {
	if msgID == "" {
		return
	}
	if saved, ok := a.store.ToggleSaved(msgID); ok {
		if saved {
			a.vm.Flash.Info("Message saved")
		} else {
			a.vm.Flash.Info("Message unsaved")
		}
	}
	a.refresh()
}

func (a *App) deleteMessage(msgID string) {
	if msgID == "" {
		return
	}
	if a.store.MarkDeleted(msgID) {
		a.vm.Flash.Info("Message deleted")
	}
	a.refresh()
}

func (a *App) react(msgID, emoji string) {
	if msgID == "" {
		return
	}
	if !a.store.ToggleReaction(msgID, seed.SelfID, emoji) {
		return
	}
	// Mirror the in-memory reactions into the per-message pref.
	if m, ok := a.store.Message(msgID); ok {
		byUser := make(map[string]string, len(m.Reactions))
		for _, r := range m.Reactions {
			byUser[r.UserID] = r.Emoji
		}
		if err := a.prefs.SetReactions(msgID, byUser); err != nil {
			a.logger.Warn("persist reactions failed", zap.Error(err))
		}
	}
	a.refresh()
}

func (a *App) togglePin(msgID string) {
	if msgID == "" {
		return
	}
	m, ok := a.store.Message(msgID)
	if !ok {
		return
	}
	pinned, _, err := a.prefs.PinnedMessage(m.ChatID)
	if err != nil {
		a.vm.Flash.Err(err)
		return
	}
	if pinned == msgID {
		err = a.prefs.SetPinnedMessage(m.ChatID, "")
		a.vm.Flash.Info("Message unpinned")
	} else {
		err = a.prefs.SetPinnedMessage(m.ChatID, msgID)
		a.vm.Flash.Info("Message pinned")
	}
	if err != nil {
		a.vm.Flash.Err(err)
	}
	a.refresh()
}

// forwardSelected forwards the selected thread message to the chat
// whose name matches the argument (case-insensitive substring).
func (a *App) forwardSelected(target string) {
	msgID := a.thread.SelectedMessage()
	if msgID == "" {
		a.vm.Flash.Warn("No message selected")
		return
	}
	target = strings.TrimSpace(target)
	if target == "" {
		a.vm.Flash.Warn("Usage: :forward <chat name>")
		return
	}

	var dest *chat.Chat
	for _, c := range a.store.Chats() {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(target)) {
			dest = &c
			break
		}
	}
	if dest == nil {
		a.vm.Flash.Warn("No chat matches " + target)
		return
	}

	sent := a.store.Forward(msgID, []string{dest.ID}, seed.SelfID, a.displayName())
	if len(sent) == 0 {
		a.vm.Flash.Warn("Forward failed")
		return
	}
	for _, m := range sent {
		a.trackOutgoing(m.ID)
	}
	a.vm.Flash.Info("Forwarded to " + dest.Name)
	a.refresh()
}

// sendMessage appends a new message from the local user to the open chat.
func (a *App) sendMessage(text string) {
	chatID := a.currentChatID()
	text = strings.TrimSpace(text)
	if chatID == "" || text == "" {
		return
	}
	m := a.store.Append(chat.Message{
		ID:         uuid.NewString(),
		ChatID:     chatID,
		SenderID:   seed.SelfID,
		SenderName: a.displayName(),
		Text:       text,
		Timestamp:  time.Now().UnixMilli(),
	})
	a.trackOutgoing(m.ID)
	a.refresh()
}

func (a *App) trackOutgoing(msgID string) {
	if err := a.tracker.Track(msgID); err != nil {
		a.logger.Warn("delivery tracking failed", zap.String("msg_id", msgID), zap.Error(err))
	}
}

func (a *App) displayName() string {
	if name, err := a.prefs.DisplayName(); err == nil && name != "" {
		return name
	}
	return "You"
}
