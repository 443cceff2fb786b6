package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The editor must stay readable on both light and dark terminal backgrounds,
// so semantic colors use lipgloss.AdaptiveColor and "faint" styling is only
// applied on dark backgrounds (faint on light terminals often turns illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// hasColorTerminal gates decorative chrome when the terminal reports no
// color support (e.g. dumb terminals, some CI logs).
func hasColorTerminal() bool {
	return termenv.ColorProfile() != termenv.Ascii
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	// Selection highlight: full-row background, high contrast in both themes.
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	// Multi-selection: softer than single selection so the canonical block
	// still stands out.
	colorMultiBg lipgloss.TerminalColor = ac("#f2f2f2", "#1f1f1f")

	colorHoverFg  lipgloss.TerminalColor = ac("238", "250")
	colorAccent   lipgloss.TerminalColor = ac("27", "62") // blue
	colorWarnFg   lipgloss.TerminalColor = ac("130", "214")
	colorDangerFg lipgloss.TerminalColor = ac("124", "203")
)

var (
	selectedRowStyle = lipgloss.NewStyle().
				Foreground(colorSelectedFg).
				Background(colorSelectedBg).
				Bold(true)

	multiRowStyle = lipgloss.NewStyle().
			Background(colorMultiBg)

	hoverBadgeStyle = lipgloss.NewStyle().
			Foreground(colorHoverFg).
			Italic(true)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarnFg).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(colorDangerFg).
			Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
)
