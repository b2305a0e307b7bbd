package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/plumechat/plume/internal/chat"
	"github.com/plumechat/plume/internal/delivery"
	"github.com/plumechat/plume/internal/tui/ui"
)

// ThreadState carries everything the thread needs to render besides the
// messages themselves.
type ThreadState struct {
	ChatName    string
	SelfID      string
	PinnedID    string
	HighlightID string
	Typing      []string
	StatusFor   func(msgID string) delivery.Status
}

// MessageThread displays the messages of a single chat as a selectable
// table with a typing indicator underneath.
type MessageThread struct {
	*tview.Flex
	theme  *ui.Theme
	table  *tview.Table
	footer *tview.TextView
	msgs     []chat.Message
	chatID   string
	rendered string // chat the table currently shows
}

// NewMessageThread creates a new message thread view.
func NewMessageThread(theme *ui.Theme) *MessageThread {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitle(" Messages ")
	table.SetTitleColor(theme.TitleColor)

	footer := tview.NewTextView().
		SetDynamicColors(true)
	footer.SetBackgroundColor(theme.BgColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(table, 0, 1, true).
		AddItem(footer, 1, 0, false)

	return &MessageThread{
		Flex:   flex,
		theme:  theme,
		table:  table,
		footer: footer,
	}
}

// Name implements Component.
func (mt *MessageThread) Name() string { return "Messages" }

// Init implements Component.
func (mt *MessageThread) Init() {}

// Start implements Component.
func (mt *MessageThread) Start() {}

// Stop implements Component.
func (mt *MessageThread) Stop() {}

// Hints implements Component.
func (mt *MessageThread) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "v", Description: "Save/Unsave"},
		{Key: "x", Description: "Delete"},
		{Key: "r", Description: "React 👍"},
		{Key: "p", Description: "Pin/Unpin"},
		{Key: "Esc", Description: "Back"},
		{Key: ":", Description: "Command"},
	}
}

// SetChatID stores the chat currently shown.
func (mt *MessageThread) SetChatID(id string) {
	mt.chatID = id
}

// ChatID returns the chat currently shown.
func (mt *MessageThread) ChatID() string {
	return mt.chatID
}

// SelectedMessage returns the ID of the selected message, or empty.
func (mt *MessageThread) SelectedMessage() string {
	row, _ := mt.table.GetSelection()
	if row < 0 || row >= len(mt.msgs) {
		return ""
	}
	return mt.msgs[row].ID
}

// Table returns the message table (for focus management).
func (mt *MessageThread) Table() *tview.Table {
	return mt.table
}

// Update re-renders the thread. Messages are expected oldest-first.
//
// Selection rules: a highlighted message (search navigation) wins;
// otherwise the cursor follows the newest message only when it already
// sat on the last row or the message set changed. Background refreshes
// (typing ticks, delivery updates) must not move it off an older row
// the user navigated to.
func (mt *MessageThread) Update(msgs []chat.Message, st ThreadState) {
	prevRow, _ := mt.table.GetSelection()
	atEnd := len(mt.msgs) == 0 || prevRow >= len(mt.msgs)-1
	changed := mt.rendered != mt.chatID || len(msgs) != len(mt.msgs)
	mt.rendered = mt.chatID
	mt.msgs = msgs
	mt.table.Clear()
	mt.table.SetTitle(fmt.Sprintf(" %s ", st.ChatName))

	highlightRow := -1
	for row, m := range msgs {
		sender := m.SenderName
		if m.SenderID == st.SelfID {
			sender = "You"
		}

		body := mt.renderBody(m, st)
		meta := mt.renderMeta(m, st)

		senderCell := tview.NewTableCell(" " + tview.Escape(sanitizeForTerminal(sender))).
			SetTextColor(mt.theme.TitleColor).
			SetAttributes(tcell.AttrBold)
		bodyCell := tview.NewTableCell(body).
			SetExpansion(1).
			SetTextColor(mt.theme.FgColor)
		metaCell := tview.NewTableCell(meta).
			SetAlign(tview.AlignRight).
			SetTextColor(mt.theme.CounterColor)

		if m.ID == st.HighlightID {
			highlightRow = row
			bg := mt.theme.HighlightBg
			senderCell.SetBackgroundColor(bg)
			bodyCell.SetBackgroundColor(bg)
			metaCell.SetBackgroundColor(bg)
		}

		mt.table.SetCell(row, 0, senderCell)
		mt.table.SetCell(row, 1, bodyCell)
		mt.table.SetCell(row, 2, metaCell)
	}

	if len(msgs) > 0 {
		switch {
		case highlightRow >= 0:
			mt.table.Select(highlightRow, 0)
		case changed || atEnd:
			mt.table.Select(len(msgs)-1, 0)
			mt.table.ScrollToEnd()
		default:
			if prevRow >= len(msgs) {
				prevRow = len(msgs) - 1
			}
			mt.table.Select(prevRow, 0)
		}
	}

	mt.footer.Clear()
	if line := formatTyping(st.Typing); line != "" {
		_, _ = fmt.Fprintf(mt.footer, " [%s::d]%s...[-:-:-]", ui.ColorName(mt.theme.TypingColor), line)
	}
}

func (mt *MessageThread) renderBody(m chat.Message, st ThreadState) string {
	if m.Deleted {
		return fmt.Sprintf(" [%s::di]message deleted[-:-:-]", ui.ColorName(mt.theme.DeletedColor))
	}

	var b strings.Builder
	b.WriteString(" ")

	if m.Forwarded != nil {
		b.WriteString(fmt.Sprintf("[%s::d]forwarded from %s[-:-:-] ",
			ui.ColorName(mt.theme.MutedColor), tview.Escape(m.Forwarded.ChatName)))
	}
	if m.ReplyToID != "" {
		b.WriteString("↩ ")
	}

	b.WriteString(tview.Escape(sanitizeForTerminal(m.Text)))

	if m.Media != nil {
		b.WriteString(fmt.Sprintf(" [%s]⌞%s⌟[-]",
			ui.ColorName(mt.theme.MenuKeyColor), tview.Escape(m.Media.Name)))
	}
	if len(m.Reactions) > 0 {
		b.WriteString("  " + renderReactions(m.Reactions))
	}
	return b.String()
}

func (mt *MessageThread) renderMeta(m chat.Message, st ThreadState) string {
	var parts []string
	if m.ID == st.PinnedID {
		parts = append(parts, "📌")
	}
	if m.Saved {
		parts = append(parts, fmt.Sprintf("[%s]★[-]", ui.ColorName(mt.theme.SavedColor)))
	}
	if m.SenderID == st.SelfID && st.StatusFor != nil {
		parts = append(parts, statusGlyph(st.StatusFor(m.ID)))
	}
	parts = append(parts, formatTimestamp(m.Timestamp))
	return strings.Join(parts, " ") + " "
}

// renderReactions collapses duplicate emoji into counts, preserving
// first-seen order.
func renderReactions(reactions []chat.Reaction) string {
	counts := make(map[string]int)
	var order []string
	for _, r := range reactions {
		if counts[r.Emoji] == 0 {
			order = append(order, r.Emoji)
		}
		counts[r.Emoji]++
	}
	var parts []string
	for _, emoji := range order {
		if n := counts[emoji]; n > 1 {
			parts = append(parts, fmt.Sprintf("%s%d", sanitizeForTerminal(emoji), n))
		} else {
			parts = append(parts, sanitizeForTerminal(emoji))
		}
	}
	return strings.Join(parts, " ")
}

func statusGlyph(s delivery.Status) string {
	switch s {
	case delivery.Queued:
		return "🕓"
	case delivery.Sending:
		return "…"
	case delivery.Sent:
		return "✓"
	case delivery.Delivered:
		return "✓✓"
	case delivery.Read:
		return "[blue]✓✓[-]"
	case delivery.Failed:
		return "[red]![-]"
	default:
		return ""
	}
}
