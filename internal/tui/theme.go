package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so everything routes through lipgloss.AdaptiveColor. Swipe feedback blends
// toward the accent (edit) or warning (delete) ramps as the drag progresses.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorCardBorder lipgloss.TerminalColor = ac("250", "243")
	// Selected card borders: very dark on light terminals, very bright on dark.
	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
	colorSelectedBg     lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg     lipgloss.TerminalColor = ac("235", "255")
	colorControlBg      lipgloss.TerminalColor = ac("252", "235")

	colorAccent     lipgloss.TerminalColor = ac("27", "62") // blue
	colorCardMetaFg lipgloss.TerminalColor = ac("238", "250")

	colorWarn lipgloss.TerminalColor = ac("160", "196") // red
)

// Swipe feedback ramps, dimmest first. The blend factor picks the step, so
// the border brightens continuously as the card approaches the commit
// threshold and dims again when dragged back.
var (
	editRamp   = []lipgloss.TerminalColor{ac("111", "25"), ac("69", "33"), ac("27", "39")}
	deleteRamp = []lipgloss.TerminalColor{ac("217", "95"), ac("203", "167"), ac("160", "196")}
)

// rampColor maps a 0..1 blend factor onto a color ramp.
func rampColor(ramp []lipgloss.TerminalColor, blend float64) lipgloss.TerminalColor {
	if len(ramp) == 0 {
		return colorCardBorder
	}
	if blend < 0 {
		blend = 0
	}
	if blend > 1 {
		blend = 1
	}
	i := int(blend * float64(len(ramp)))
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	return ramp[i]
}

func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorMuted)
	if lipgloss.HasDarkBackground() {
		st = st.Faint(true)
	}
	return st
}

// applyColorProfile pins the lipgloss color profile at startup.
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which matters
// when the TUI is spawned from scripts.
func applyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}
