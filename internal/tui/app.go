package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/plumechat/plume/internal/bus"
	"github.com/plumechat/plume/internal/chat"
	"github.com/plumechat/plume/internal/config"
	"github.com/plumechat/plume/internal/delivery"
	"github.com/plumechat/plume/internal/prefs"
	"github.com/plumechat/plume/internal/presence"
	"github.com/plumechat/plume/internal/seed"
	"github.com/plumechat/plume/internal/tui/keys"
	"github.com/plumechat/plume/internal/tui/model"
	"github.com/plumechat/plume/internal/tui/ui"
	"github.com/plumechat/plume/internal/tui/views"
)

const (
	pageChats  = "conversations"
	pageThread = "thread"
	pageSearch = "search"
	pageHelp   = "help"
)

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	pages    *ui.Pages
	theme    *ui.Theme
	registry *keys.Registry

	store   *chat.Store
	prefs   *prefs.Store
	tracker *delivery.Tracker
	sim     *presence.Simulator
	bus     *bus.Bus
	vm      *model.ViewModel
	logger  *zap.Logger

	chatList  *views.ConversationList
	thread    *views.MessageThread
	searchV   *views.SearchView
	helpV     *views.HelpView
	statusBar *views.StatusBar
	menu      *ui.Menu
	crumbs    *ui.Crumbs
	flashBar  *ui.FlashBar
	prompt    *ui.Prompt

	root    *tview.Flex
	profile string

	ctx    context.Context
	cancel context.CancelFunc
}

// Params bundles the app's dependencies.
type Params struct {
	Store   *chat.Store
	Prefs   *prefs.Store
	Tracker *delivery.Tracker
	Sim     *presence.Simulator
	Bus     *bus.Bus
	Config  *config.Config
	Logger  *zap.Logger
	Profile string
}

// NewApp creates the TUI application.
func NewApp(p Params) *App {
	ctx, cancel := context.WithCancel(context.Background())

	mode, err := p.Prefs.ThemeMode()
	if err != nil || mode == "" {
		mode = p.Config.Theme
	}
	theme := ui.ThemeByName(mode)

	vm := model.NewViewModel(p.Store, p.Tracker, p.Config.Debounce(), p.Config.HighlightTTL())

	a := &App{
		app:      tview.NewApplication(),
		pages:    ui.NewPages(),
		theme:    theme,
		registry: keys.NewRegistry(),

		store:   p.Store,
		prefs:   p.Prefs,
		tracker: p.Tracker,
		sim:     p.Sim,
		bus:     p.Bus,
		vm:      vm,
		logger:  p.Logger,

		chatList:  views.NewConversationList(theme),
		thread:    views.NewMessageThread(theme),
		searchV:   views.NewSearchView(theme),
		helpV:     views.NewHelpView(theme),
		statusBar: views.NewStatusBar(),
		menu:      ui.NewMenu(theme),
		crumbs:    ui.NewCrumbs(theme),
		flashBar:  ui.NewFlashBar(theme),
		prompt:    ui.NewPrompt(theme),

		profile: p.Profile,

		ctx:    ctx,
		cancel: cancel,
	}

	a.statusBar.SetProfile(p.Profile)
	a.statusBar.SetTheme(theme.Name)
	if name, err := p.Prefs.DisplayName(); err == nil && name != "" {
		a.statusBar.SetUser(name)
	} else {
		a.statusBar.SetUser("You")
	}

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("quit", &keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "q:quit", Visible: true,
		Handler: func() { a.app.Stop() },
	})
	a.registry.AddGlobal("search", &keys.Action{
		Rune: 's', Key: tcell.KeyRune,
		Description: "s:search", Visible: true,
		Handler: func() { a.showSearch() },
	})
	a.registry.AddGlobal("help", &keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Description: "?:help", Visible: true,
		Handler: func() { a.showPage(pageHelp) },
	})
	a.registry.AddGlobal("command", &keys.Action{
		Rune: ':', Key: tcell.KeyRune,
		Handler: func() { a.showPrompt(ui.PromptCommand) },
	})

	a.registry.AddView(pageChats, "filter", &keys.Action{
		Rune: '/', Key: tcell.KeyRune,
		Handler: func() { a.showPrompt(ui.PromptFilter) },
	})
	a.registry.AddView(pageChats, "mute", &keys.Action{
		Rune: 'm', Key: tcell.KeyRune,
		Handler: func() { a.toggleMute(a.chatList.SelectedChat()) },
	})
	for i := 1; i <= 9; i++ {
		n := i
		a.registry.AddView(pageChats, fmt.Sprintf("jump%d", n), &keys.Action{
			Rune: rune('0' + n), Key: tcell.KeyRune,
			Handler: func() {
				if id := a.chatList.ChatByIndex(n); id != "" {
					a.openChat(id)
				}
			},
		})
	}
	a.registry.AddView(pageChats, "clearfilter", &keys.Action{
		Rune: '0', Key: tcell.KeyRune,
		Handler: func() { a.chatList.ClearFilter() },
	})

	a.registry.AddView(pageThread, "save", &keys.Action{
		Rune: 'v', Key: tcell.KeyRune,
		Handler: func() { a.toggleSaved(a.thread.SelectedMessage()) },
	})
	a.registry.AddView(pageThread, "delete", &keys.Action{
		Rune: 'x', Key: tcell.KeyRune,
		Handler: func() { a.deleteMessage(a.thread.SelectedMessage()) },
	})
	a.registry.AddView(pageThread, "react", &keys.Action{
		Rune: 'r', Key: tcell.KeyRune,
		Handler: func() { a.react(a.thread.SelectedMessage(), "👍") },
	})
	a.registry.AddView(pageThread, "pin", &keys.Action{
		Rune: 'p', Key: tcell.KeyRune,
		Handler: func() { a.togglePin(a.thread.SelectedMessage()) },
	})
}

func (a *App) setupCallbacks() {
	a.chatList.SetSelectedFunc(func(row, col int) {
		if id := a.chatList.SelectedChat(); id != "" {
			a.openChat(id)
		}
	})

	a.searchV.SetOnChange(func(query string) {
		a.vm.QueryChanged(query)
	})
	a.searchV.SetOnSubmit(func(query string) {
		a.vm.SearchNow(query)
		a.app.SetFocus(a.searchV.Results())
	})
	a.searchV.Results().SetSelectedFunc(func(row, col int) {
		chatID, msgID := a.searchV.SelectedResult()
		if chatID == "" {
			return
		}
		a.vm.JumpTo(chatID, msgID)
		a.showThread(chatID)
	})

	a.prompt.SetOnChange(func(mode ui.PromptMode, text string) {
		// Filter-as-you-type; the chat list narrows on every keystroke.
		if mode == ui.PromptFilter {
			a.chatList.SetFilter(text)
		}
	})
	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		case ui.PromptFilter:
			a.chatList.SetFilter(text)
		}
	})
	a.prompt.SetOnCancel(func() {
		a.hidePrompt()
	})

	a.pages.SetOnChange(func(stack []string) {
		a.crumbs.Update(stack)
		a.updateMenu()
	})
}

func (a *App) setupLayout() {
	a.pages.AddPage(pageChats, a.chatList, true, false)
	a.pages.AddPage(pageThread, a.thread, true, false)
	a.pages.AddPage(pageSearch, a.searchV, true, false)
	a.pages.AddPage(pageHelp, a.helpV, true, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.menu, 5, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.flashBar, 1, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.pages.Reset(pageChats)
	a.app.SetRoot(a.root, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Text inputs get every key except a few navigation ones.
		focused := a.app.GetFocus()
		if _, ok := focused.(*tview.InputField); ok {
			if event.Key() == tcell.KeyTab && a.pages.Current() == pageSearch {
				a.app.SetFocus(a.searchV.Results())
				return nil
			}
			return event
		}

		if event.Key() == tcell.KeyEscape {
			a.goBack()
			return nil
		}
		if event.Key() == tcell.KeyTab && a.pages.Current() == pageSearch {
			a.app.SetFocus(a.searchV.Input())
			return nil
		}

		if a.registry.HandleEvent(a.pages.Current(), event) {
			return nil
		}
		return event
	})
}

func (a *App) goBack() {
	if a.pages.Depth() <= 1 {
		return
	}
	popped := a.pages.Pop()
	if popped == pageThread {
		a.sim.ClearActive()
	}
	a.focusCurrent()
	a.refresh()
}

func (a *App) focusCurrent() {
	switch a.pages.Current() {
	case pageChats:
		a.app.SetFocus(a.chatList)
	case pageThread:
		a.app.SetFocus(a.thread.Table())
	case pageSearch:
		a.app.SetFocus(a.searchV.Input())
	case pageHelp:
		a.app.SetFocus(a.helpV)
	}
}

func (a *App) showPage(name string) {
	if a.pages.Current() != name {
		a.pages.Push(name)
	}
	a.focusCurrent()
	a.refresh()
}

func (a *App) showSearch() {
	a.showPage(pageSearch)
}

func (a *App) openChat(chatID string) {
	a.store.MarkRead(chatID)
	// Simulated read receipts: revisiting a conversation is when the
	// counterpart's reads for your delivered messages come in.
	for _, m := range a.store.MessagesIn(chatID) {
		if m.SenderID == seed.SelfID {
			a.tracker.MarkRead(m.ID)
		}
	}
	a.vm.OpenChat(chatID)
	a.showThread(chatID)
}

func (a *App) showThread(chatID string) {
	c, ok := a.store.Chat(chatID)
	if !ok {
		return
	}
	a.thread.SetChatID(chatID)
	a.sim.SetActive(c, a.participantUsers(c))
	a.showPage(pageThread)
}

// participantUsers resolves a chat's participants to directory users,
// excluding the local user (you never see yourself typing).
func (a *App) participantUsers(c chat.Chat) []chat.User {
	var out []chat.User
	for _, id := range c.Participants {
		if id == seed.SelfID {
			continue
		}
		if u, ok := a.store.User(id); ok {
			out = append(out, u)
		}
	}
	return out
}

func (a *App) showPrompt(mode ui.PromptMode) {
	a.prompt.Activate(mode)
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.root.ResizeItem(a.prompt, 0, 0)
	a.focusCurrent()
}

func (a *App) updateMenu() {
	var c ui.Component
	switch a.pages.Current() {
	case pageChats:
		c = a.chatList
	case pageThread:
		c = a.thread
	case pageSearch:
		c = a.searchV
	case pageHelp:
		c = a.helpV
	}
	if c != nil {
		a.menu.Update(c.Hints())
	}
}

// refresh re-renders the visible page from current state.
func (a *App) refresh() {
	switch a.pages.Current() {
	case pageChats:
		a.chatList.Update(a.vm.SortedChats())
	case pageThread:
		chatID := a.thread.ChatID()
		c, _ := a.store.Chat(chatID)
		pinned, _, _ := a.prefs.PinnedMessage(chatID)
		a.thread.Update(a.vm.ActiveMessages(), views.ThreadState{
			ChatName:    c.Name,
			SelfID:      seed.SelfID,
			PinnedID:    pinned,
			HighlightID: a.vm.HighlightedMsgID(),
			Typing:      a.vm.TypingNames(chatID),
			StatusFor:   a.vm.DeliveryStatus,
		})
	case pageSearch:
		a.searchV.Update(a.vm.Query(), a.vm.Results())
	}
	a.flashBar.Update(a.vm.Flash.GetMessage())
	a.statusBar.SetFlash(a.vm.Flash.Get())
}

// Run starts the TUI event loop and blocks until quit.
func (a *App) Run() error {
	go a.watchEvents()

	a.chatList.Update(a.vm.SortedChats())
	a.updateMenu()
	a.crumbs.Update(a.pages.Stack())

	return a.app.Run()
}

// watchEvents refreshes the UI on store, delivery and presence events.
func (a *App) watchEvents() {
	events, cancel := a.bus.Subscribe("", 64)
	defer cancel()

	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return
			}
			if strings.HasPrefix(evt.Kind, "presence.") {
				if u, ok := evt.Data.(presence.Update); ok {
					a.vm.HandleTyping(u)
				}
			}
			a.app.QueueUpdateDraw(a.refresh)
		case <-a.vm.RefreshCh():
			a.app.QueueUpdateDraw(a.refresh)
		case <-a.vm.Flash.Watch():
			// Flash messages render immediately, not on the next event.
			a.app.QueueUpdateDraw(a.refresh)
		case <-a.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.vm.Close()
	a.app.Stop()
}
