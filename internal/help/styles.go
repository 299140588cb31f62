// Package help renders usage listings and parse diagnostics.
// All terminal styling lives here; PlainStyles turns it off.
package help

import "github.com/charmbracelet/lipgloss"

// Styles holds all the lipgloss styles used for usage and diagnostic rendering.
type Styles struct {
	// Header is the style for section headers (bold).
	Header lipgloss.Style

	// Subsection is the style for group headers like "Group build:" (bold).
	Subsection lipgloss.Style

	// Flag is the style for option keys (cyan).
	Flag lipgloss.Style

	// Placeholder is the style for value placeholders (yellow).
	Placeholder lipgloss.Style

	// Error is the style for diagnostic prefixes (red).
	Error lipgloss.Style

	// Desc is the style for option descriptions (faint).
	Desc lipgloss.Style
}

// DefaultStyles returns the standard styles for help output.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true),
		Subsection:  lipgloss.NewStyle().Bold(true),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")), // Cyan
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // Yellow
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")), // Red
		Desc:        lipgloss.NewStyle().Faint(true),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()

	return Styles{
		Header:      plain,
		Subsection:  plain,
		Flag:        plain,
		Placeholder: plain,
		Error:       plain,
		Desc:        plain,
	}
}
