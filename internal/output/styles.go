package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	successColor = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

type styles struct {
	Service      lipgloss.Style
	ID           lipgloss.Style
	URL          lipgloss.Style
	Unrecognized lipgloss.Style
	Header       lipgloss.Style
	Border       lipgloss.Style
	Cell         lipgloss.Style
}

// newStyles binds styles to w so colors are dropped when w is not a terminal
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Service:      r.NewStyle().Bold(true).Foreground(primaryColor),
		ID:           r.NewStyle().Foreground(successColor),
		URL:          r.NewStyle().Foreground(mutedColor),
		Unrecognized: r.NewStyle().Foreground(mutedColor).Italic(true),
		Header:       r.NewStyle().Bold(true).Foreground(primaryColor),
		Border:       r.NewStyle().Foreground(mutedColor),
		Cell:         r.NewStyle().Padding(0, 1),
	}
}
