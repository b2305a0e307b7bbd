package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/plumechat/plume/internal/tui/ui"
)

// HelpView displays key binding and command reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.render()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Init implements Component.
func (hv *HelpView) Init() {}

// Start implements Component.
func (hv *HelpView) Start() {}

// Stop implements Component.
func (hv *HelpView) Stop() {}

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (hv *HelpView) render() {
	kc := fmt.Sprintf("#%06x", hv.theme.MenuKeyColor.Hex())

	help := fmt.Sprintf(`
  [::b]Global Keys[-:-:-]

  [%s]:[-:-:-]    Command mode        [%s]Esc[-:-:-]   Cancel / Go back
  [%s]/[-:-:-]    Filter mode         [%s]?[-:-:-]     Help
  [%s]s[-:-:-]    Search messages     [%s]q[-:-:-]     Quit

  [::b]Conversation List[-:-:-]

  [%s]Enter[-:-:-]  Open conversation  [%s]m[-:-:-]     Mute/unmute chat
  [%s]1-9[-:-:-]    Jump to Nth chat   [%s]0[-:-:-]     Clear filter
  [%s]j/Down[-:-:-] Move down          [%s]k/Up[-:-:-]  Move up

  [::b]Message Thread[-:-:-]

  [%s]v[-:-:-]    Save/Unsave message [%s]x[-:-:-]     Delete message
  [%s]r[-:-:-]    React with 👍       [%s]p[-:-:-]     Pin/Unpin message

  [::b]Search[-:-:-]

  Results update as you type. [%s]Enter[-:-:-] on a result jumps to the
  message and highlights it briefly in its conversation.

  [::b]Commands (: mode)[-:-:-]

  [%s]:search <query>[-:-:-]    Search messages
  [%s]:theme dark|light[-:-:-]  Switch theme (persisted)
  [%s]:name <display>[-:-:-]    Set your display name
  [%s]:mute[-:-:-]              Mute/unmute the open chat
  [%s]:forward <chat>[-:-:-]    Forward selected message
  [%s]:help[-:-:-] / [%s]:h[-:-:-]       Show this help
  [%s]:quit[-:-:-] / [%s]:q[-:-:-]       Quit application
`,
		kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc,
		kc,
		kc, kc, kc, kc, kc, kc, kc, kc, kc,
	)

	_, _ = fmt.Fprint(hv, help)
}
