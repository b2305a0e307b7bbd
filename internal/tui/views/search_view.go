package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/plumechat/plume/internal/chat"
	"github.com/plumechat/plume/internal/search"
	"github.com/plumechat/plume/internal/tui/ui"
)

// searchRow maps a selectable table row back to its message.
type searchRow struct {
	chatID string
	msgID  string
}

// SearchView provides live message search with grouped results.
type SearchView struct {
	*tview.Flex
	theme    *ui.Theme
	input    *tview.InputField
	results  *tview.Table
	rows     map[int]searchRow
	onChange func(query string)
	onSubmit func(query string)
}

// NewSearchView creates a new search view.
func NewSearchView(theme *ui.Theme) *SearchView {
	input := tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldWidth(0)
	input.SetBorderColor(theme.BorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	results := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	results.SetBorder(true)
	results.SetBorderColor(theme.BorderColor)
	results.SetBackgroundColor(theme.BgColor)
	results.SetTitle(" Results ")
	results.SetTitleColor(theme.TitleColor)
	results.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(input, 1, 0, true).
		AddItem(results, 0, 1, false)

	sv := &SearchView{
		Flex:    flex,
		theme:   theme,
		input:   input,
		results: results,
		rows:    make(map[int]searchRow),
	}

	input.SetChangedFunc(func(text string) {
		if sv.onChange != nil {
			sv.onChange(text)
		}
	})
	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && sv.onSubmit != nil {
			sv.onSubmit(input.GetText())
		}
	})

	return sv
}

// Name implements Component.
func (sv *SearchView) Name() string { return "Search" }

// Init implements Component.
func (sv *SearchView) Init() {}

// Start implements Component.
func (sv *SearchView) Start() {}

// Stop implements Component.
func (sv *SearchView) Stop() {}

// Hints implements Component.
func (sv *SearchView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Jump to message"},
		{Key: "Tab", Description: "Switch focus"},
		{Key: "Esc", Description: "Back"},
	}
}

// SetOnChange sets the per-keystroke callback (drives the debounce).
func (sv *SearchView) SetOnChange(fn func(query string)) {
	sv.onChange = fn
}

// SetOnSubmit sets the Enter callback for an immediate search.
func (sv *SearchView) SetOnSubmit(fn func(query string)) {
	sv.onSubmit = fn
}

// Update renders grouped results. Match substrings inside each message
// are emphasized using the executed query, not the live input text.
func (sv *SearchView) Update(query string, res search.Results) {
	sv.results.Clear()
	sv.rows = make(map[int]searchRow)

	sv.results.SetTitle(fmt.Sprintf(" Results (%d) ", res.Total))

	row := 0
	for _, g := range res.Groups {
		kind := "DM"
		if g.Chat.Kind == chat.KindGroup {
			kind = "GROUP"
		}
		header := tview.NewTableCell(fmt.Sprintf(" %s [%s::d](%s, %d)[-:-:-]",
			tview.Escape(sanitizeForTerminal(g.Chat.Name)), ui.ColorName(sv.theme.MutedColor), kind, len(g.Matches))).
			SetSelectable(false).
			SetTextColor(sv.theme.TableHeaderFg).
			SetAttributes(tcell.AttrBold)
		sv.results.SetCell(row, 0, header)
		sv.results.SetCell(row, 1, tview.NewTableCell("").SetSelectable(false))
		row++

		for _, m := range g.Matches {
			sv.rows[row] = searchRow{chatID: m.Message.ChatID, msgID: m.Message.ID}
			sv.results.SetCell(row, 0, tview.NewTableCell("   "+sv.emphasize(m.Message.Text, query)).
				SetExpansion(1).
				SetTextColor(sv.theme.FgColor))
			sv.results.SetCell(row, 1, tview.NewTableCell(formatTimestamp(m.Message.Timestamp)+" ").
				SetAlign(tview.AlignRight).
				SetTextColor(sv.theme.CounterColor))
			row++
		}
	}
}

// emphasize wraps matched substrings in the theme's match colors.
func (sv *SearchView) emphasize(text, query string) string {
	segments := search.Highlight(text, query)
	matchFg := ui.ColorName(sv.theme.MatchFg)
	matchBg := ui.ColorName(sv.theme.MatchBg)

	var b strings.Builder
	for _, seg := range segments {
		escaped := tview.Escape(sanitizeForTerminal(seg.Text))
		if seg.Match {
			b.WriteString(fmt.Sprintf("[%s:%s:b]%s[-:-:-]", matchFg, matchBg, escaped))
		} else {
			b.WriteString(escaped)
		}
	}
	return b.String()
}

// SelectedResult returns the chat ID and message ID of the selection.
func (sv *SearchView) SelectedResult() (string, string) {
	row, _ := sv.results.GetSelection()
	if r, ok := sv.rows[row]; ok {
		return r.chatID, r.msgID
	}
	return "", ""
}

// Input returns the search input field.
func (sv *SearchView) Input() *tview.InputField {
	return sv.input
}

// Results returns the results table.
func (sv *SearchView) Results() *tview.Table {
	return sv.results
}
