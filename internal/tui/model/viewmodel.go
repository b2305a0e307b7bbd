package model

import (
	"sort"
	"sync"
	"time"

	"github.com/plumechat/plume/internal/chat"
	"github.com/plumechat/plume/internal/debounce"
	"github.com/plumechat/plume/internal/delivery"
	"github.com/plumechat/plume/internal/presence"
	"github.com/plumechat/plume/internal/search"
	"github.com/plumechat/plume/internal/tui/ui"
)

// ViewModel caches UI state derived from the chat store and signals
// refreshes. Search input is debounced; the executed query and its
// results always correspond to the last keystroke burst.
type ViewModel struct {
	mu sync.RWMutex

	store   *chat.Store
	tracker *delivery.Tracker
	Flash   *ui.FlashModel

	query        string
	results      search.Results
	activeChatID string
	highlightID  string
	typing       map[string][]string

	searchDebounce *debounce.Debouncer
	highlightClear *debounce.Debouncer

	refreshCh chan struct{}
}

// NewViewModel creates a view model over the chat store. searchDelay is
// the keystroke debounce interval; highlightTTL is how long a jumped-to
// message stays highlighted.
func NewViewModel(store *chat.Store, tracker *delivery.Tracker, searchDelay, highlightTTL time.Duration) *ViewModel {
	vm := &ViewModel{
		store:     store,
		tracker:   tracker,
		Flash:     ui.NewFlashModel(),
		typing:    make(map[string][]string),
		refreshCh: make(chan struct{}, 1),
	}
	vm.searchDebounce = debounce.New(searchDelay, vm.runSearch)
	vm.highlightClear = debounce.New(highlightTTL, func(string) {
		vm.mu.Lock()
		vm.highlightID = ""
		vm.mu.Unlock()
		vm.signalRefresh()
	})
	return vm
}

// RefreshCh returns the channel that signals UI refresh.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

func (vm *ViewModel) signalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// Close stops all pending timers.
func (vm *ViewModel) Close() {
	vm.searchDebounce.Stop()
	vm.highlightClear.Stop()
}

// QueryChanged schedules a debounced search for the given input.
func (vm *ViewModel) QueryChanged(text string) {
	vm.searchDebounce.Trigger(text)
}

// SearchNow runs a search immediately, bypassing the debounce.
func (vm *ViewModel) SearchNow(text string) {
	vm.searchDebounce.Stop()
	vm.runSearch(text)
}

func (vm *ViewModel) runSearch(query string) {
	results := search.Search(query, vm.store.Messages(), vm.store.Chats())
	vm.mu.Lock()
	vm.query = query
	vm.results = results
	vm.mu.Unlock()
	vm.signalRefresh()
}

// Query returns the last executed search query.
func (vm *ViewModel) Query() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.query
}

// Results returns the last search results.
func (vm *ViewModel) Results() search.Results {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.results
}

// SortedChats returns all chats ordered by recent activity.
func (vm *ViewModel) SortedChats() []chat.Chat {
	return search.SortChats(vm.store.Chats(), "")
}

// OpenChat makes the given chat active.
func (vm *ViewModel) OpenChat(chatID string) {
	vm.mu.Lock()
	vm.activeChatID = chatID
	vm.mu.Unlock()
	vm.signalRefresh()
}

// ActiveChatID returns the currently open chat, or empty.
func (vm *ViewModel) ActiveChatID() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.activeChatID
}

// ActiveMessages returns the active chat's messages oldest-first.
func (vm *ViewModel) ActiveMessages() []chat.Message {
	vm.mu.RLock()
	id := vm.activeChatID
	vm.mu.RUnlock()
	if id == "" {
		return nil
	}
	msgs := vm.store.MessagesIn(id)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp < msgs[j].Timestamp
	})
	return msgs
}

// JumpTo opens the chat containing the message and highlights it for
// the configured TTL. A later jump supersedes the pending clear.
func (vm *ViewModel) JumpTo(chatID, msgID string) {
	vm.mu.Lock()
	vm.activeChatID = chatID
	vm.highlightID = msgID
	vm.mu.Unlock()
	vm.highlightClear.Trigger(msgID)
	vm.signalRefresh()
}

// HighlightedMsgID returns the message to render highlighted, or empty.
func (vm *ViewModel) HighlightedMsgID() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.highlightID
}

// HandleTyping records a typing indicator update from the simulator.
func (vm *ViewModel) HandleTyping(u presence.Update) {
	vm.mu.Lock()
	if len(u.Names) == 0 {
		delete(vm.typing, u.ChatID)
	} else {
		vm.typing[u.ChatID] = u.Names
	}
	vm.mu.Unlock()
	vm.signalRefresh()
}

// TypingNames returns who is currently typing in the given chat.
func (vm *ViewModel) TypingNames(chatID string) []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	names := vm.typing[chatID]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// DeliveryStatus returns the delivery state for a message.
func (vm *ViewModel) DeliveryStatus(msgID string) delivery.Status {
	return vm.tracker.Status(msgID)
}
