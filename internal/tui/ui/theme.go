package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Theme holds color constants for the TUI.
type Theme struct {
	Name              string
	BgColor           tcell.Color
	FgColor           tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	TableHeaderFg     tcell.Color
	TableHeaderBg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	CrumbActiveFg     tcell.Color
	CrumbActiveBg     tcell.Color
	CrumbInactiveFg   tcell.Color
	CrumbInactiveBg   tcell.Color
	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	MutedColor        tcell.Color
	UnreadColor       tcell.Color
	MatchFg           tcell.Color
	MatchBg           tcell.Color
	HighlightBg       tcell.Color
	TypingColor       tcell.Color
	SavedColor        tcell.Color
	DeletedColor      tcell.Color
	FlashInfoColor    tcell.Color
	FlashWarnColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color
}

// DarkTheme returns the default dark theme.
func DarkTheme() *Theme {
	return &Theme{
		Name:              "dark",
		BgColor:           tcell.ColorBlack,
		FgColor:           tcell.ColorCadetBlue,
		BorderColor:       tcell.ColorDodgerBlue,
		BorderFocusColor:  tcell.ColorLightSkyBlue,
		TableHeaderFg:     tcell.ColorWhite,
		TableHeaderBg:     tcell.ColorBlack,
		TableCursorFg:     tcell.ColorBlack,
		TableCursorBg:     tcell.ColorAqua,
		CrumbActiveFg:     tcell.ColorBlack,
		CrumbActiveBg:     tcell.ColorOrange,
		CrumbInactiveFg:   tcell.ColorBlack,
		CrumbInactiveBg:   tcell.ColorAqua,
		MenuKeyColor:      tcell.ColorDodgerBlue,
		NumericKeyColor:   tcell.ColorFuchsia,
		TitleColor:        tcell.ColorFuchsia,
		CounterColor:      tcell.ColorPapayaWhip,
		MutedColor:        tcell.ColorGray,
		UnreadColor:       tcell.ColorOrange,
		MatchFg:           tcell.ColorBlack,
		MatchBg:           tcell.ColorYellow,
		HighlightBg:       tcell.ColorDarkSlateGray,
		TypingColor:       tcell.ColorMediumSpringGreen,
		SavedColor:        tcell.ColorGold,
		DeletedColor:      tcell.ColorGray,
		FlashInfoColor:    tcell.ColorNavajoWhite,
		FlashWarnColor:    tcell.ColorOrange,
		FlashErrColor:     tcell.ColorOrangeRed,
		PromptBorderColor: tcell.ColorDodgerBlue,
	}
}

// LightTheme returns a light theme for bright terminals.
func LightTheme() *Theme {
	return &Theme{
		Name:              "light",
		BgColor:           tcell.ColorWhite,
		FgColor:           tcell.ColorDarkSlateGray,
		BorderColor:       tcell.ColorSteelBlue,
		BorderFocusColor:  tcell.ColorRoyalBlue,
		TableHeaderFg:     tcell.ColorBlack,
		TableHeaderBg:     tcell.ColorWhite,
		TableCursorFg:     tcell.ColorWhite,
		TableCursorBg:     tcell.ColorSteelBlue,
		CrumbActiveFg:     tcell.ColorWhite,
		CrumbActiveBg:     tcell.ColorDarkOrange,
		CrumbInactiveFg:   tcell.ColorWhite,
		CrumbInactiveBg:   tcell.ColorSteelBlue,
		MenuKeyColor:      tcell.ColorMediumBlue,
		NumericKeyColor:   tcell.ColorPurple,
		TitleColor:        tcell.ColorPurple,
		CounterColor:      tcell.ColorSaddleBrown,
		MutedColor:        tcell.ColorDarkGray,
		UnreadColor:       tcell.ColorDarkOrange,
		MatchFg:           tcell.ColorBlack,
		MatchBg:           tcell.ColorYellow,
		HighlightBg:       tcell.ColorLightSteelBlue,
		TypingColor:       tcell.ColorSeaGreen,
		SavedColor:        tcell.ColorDarkGoldenrod,
		DeletedColor:      tcell.ColorDarkGray,
		FlashInfoColor:    tcell.ColorDarkBlue,
		FlashWarnColor:    tcell.ColorDarkOrange,
		FlashErrColor:     tcell.ColorRed,
		PromptBorderColor: tcell.ColorSteelBlue,
	}
}

// ThemeByName looks up a theme by its mode name, defaulting to dark.
func ThemeByName(name string) *Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// ColorName returns a tview-compatible color name string.
func ColorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
