// Package ui renders the terminal screens and adapts them to the view
// interfaces the presenters drive. All widget state lives here; the
// presenters only see the narrow view surface.
package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette colors adapt to the terminal background.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34d399"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	colorError   = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
)

// Styles holds the styled components shared by every screen.
type Styles struct {
	Header    lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Footer    lipgloss.Style
	Help      lipgloss.Style

	Title      lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
	Spinner    lipgloss.Style
	Box        lipgloss.Style
	Label      lipgloss.Style
	LabelFocus lipgloss.Style
	FieldError lipgloss.Style
	Picker     lipgloss.Style
	Dialog     lipgloss.Style
}

// DefaultStyles builds the standard look.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Underline(true).
			Padding(0, 2),

		Footer: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(colorMuted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1),

		Status: lipgloss.NewStyle().
			Foreground(colorAccent),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),

		Spinner: lipgloss.NewStyle().
			Foreground(colorAccent),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),

		Label: lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(10),

		LabelFocus: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Width(10),

		FieldError: lipgloss.NewStyle().
			Foreground(colorError).
			PaddingLeft(10),

		Picker: lipgloss.NewStyle().
			Foreground(colorPrimary),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(1, 3),
	}
}

// tableStyles restyles the bubbles table to match the palette.
func (s Styles) tableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#111827"}).
		Background(colorAccent).
		Bold(false)
	return ts
}
