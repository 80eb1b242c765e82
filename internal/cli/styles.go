package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/techboard/techboard/internal/theme"
)

// Styles is the themed style set the console renders with. Swapping it is the
// observable side effect of a theme toggle, the document-class analog.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Item    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Notice  lipgloss.Style
}

func lightStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1a1a8c")),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#005f87")),
		Item:    lipgloss.NewStyle().Foreground(lipgloss.Color("#222222")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#af0000")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#008700")),
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("#875f00")),
	}
}

func darkStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8787ff")),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5fd7ff")),
		Item:    lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d0d0")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#5fff87")),
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f")),
	}
}

// StylesFor returns the style set matching a theme.
func StylesFor(t theme.Theme) *Styles {
	if t == theme.Dark {
		return darkStyles()
	}
	return lightStyles()
}
