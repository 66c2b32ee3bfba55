// Package ui renders the terminal views of contractlens with lipgloss.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles contains the lipgloss styles shared by the components.
type Styles struct {
	Brand    lipgloss.Style
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Badge    lipgloss.Style
	Muted    lipgloss.Style
	Hint     lipgloss.Style
	Card     lipgloss.Style
	Section  lipgloss.Style
	Content  lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
	Username lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Brand: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33")), // Blue
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("17")).
			Background(lipgloss.Color("153")).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Section: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		Content: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")),
		Info: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Username: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
	}
}

var styles = DefaultStyles()
