package tui

import (
	"github.com/charmbracelet/lipgloss"

	"backlog-cli/internal/model"
)

// Theme/palette helpers.
//
// Pages must stay readable on both light and dark terminal backgrounds, so
// colors are lipgloss.AdaptiveColor throughout.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted  = ac("240", "243")
	colorAccent = ac("27", "62")

	styleBanner     = lipgloss.NewStyle().Bold(true)
	styleColumnHead = lipgloss.NewStyle().Foreground(colorMuted)
	styleHints      = lipgloss.NewStyle().Foreground(colorAccent)

	statusStyles = map[model.Status]lipgloss.Style{
		model.StatusOpen:       lipgloss.NewStyle().Foreground(ac("27", "75")),
		model.StatusInProgress: lipgloss.NewStyle().Foreground(ac("130", "214")),
		model.StatusResolved:   lipgloss.NewStyle().Foreground(ac("28", "78")),
		model.StatusClosed:     lipgloss.NewStyle().Foreground(colorMuted),
	}
)

// statusLabel renders the canonical label padded inside its column before
// styling, so ANSI sequences never skew the column width.
func statusLabel(s model.Status, width int) string {
	cell := columnCell(s.Label(), width)
	if st, ok := statusStyles[s]; ok {
		return st.Render(cell)
	}
	return cell
}
