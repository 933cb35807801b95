package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/folio/pkg/editor"
	"github.com/aretw0/folio/pkg/render"
)

var (
	colorText   = lipgloss.Color(render.ColorTextPrimary)
	colorMuted  = lipgloss.Color(render.ColorTextSecondary)
	colorAccent = lipgloss.Color(render.ColorAccentGreen)
	colorBorder = lipgloss.Color(render.ColorBorderMuted)
	colorWarn   = lipgloss.Color("#D97706")
	colorError  = lipgloss.Color("#DC2626")
)

// Styles groups every lipgloss style the model renders with.
type Styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Pane      lipgloss.Style
	Focused   lipgloss.Style
	Label     lipgloss.Style
	Dirty     lipgloss.Style
	Help      lipgloss.Style
	Notice    map[editor.Level]lipgloss.Style
}

// DefaultStyles uses the palette of the published site.
func DefaultStyles() Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return Styles{
		Tab:       lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Underline(true).Padding(0, 2),
		Pane:      pane,
		Focused:   pane.BorderForeground(colorAccent),
		Label:     lipgloss.NewStyle().Foreground(colorMuted).Bold(true),
		Dirty:     lipgloss.NewStyle().Foreground(colorWarn),
		Help:      lipgloss.NewStyle().Foreground(colorMuted),
		Notice: map[editor.Level]lipgloss.Style{
			editor.LevelInfo:    lipgloss.NewStyle().Foreground(colorAccent),
			editor.LevelWarning: lipgloss.NewStyle().Foreground(colorWarn).Bold(true),
			editor.LevelError:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		},
	}
}

// noticeStyle falls back to plain text for unknown levels.
func (s Styles) noticeStyle(l editor.Level) lipgloss.Style {
	if st, ok := s.Notice[l]; ok {
		return st
	}
	return lipgloss.NewStyle().Foreground(colorText)
}
