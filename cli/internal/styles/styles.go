// ABOUTME: Shared lipgloss styles for consistent CLI report appearance
// ABOUTME: Defines colors, badges, and text styles used by every command

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Info      = lipgloss.Color("#3B82F6") // Blue

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	Label = lipgloss.NewStyle().
		Foreground(Muted).
		Width(24)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	StatusInfo = lipgloss.NewStyle().
			Foreground(Info)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)

// Level is the severity of a status line.
type Level int

const (
	LevelOK Level = iota
	LevelWarning
	LevelCritical
	LevelInfo
)

// ForLevel returns the text style for a level.
func ForLevel(l Level) lipgloss.Style {
	switch l {
	case LevelOK:
		return StatusOK
	case LevelWarning:
		return StatusWarning
	case LevelCritical:
		return StatusCritical
	default:
		return StatusInfo
	}
}

// Icon returns the status glyph for a level.
func Icon(l Level) string {
	switch l {
	case LevelOK:
		return "✓"
	case LevelWarning:
		return "⚠"
	case LevelCritical:
		return "✗"
	default:
		return "•"
	}
}

// StatusText renders an icon and message in the level's color.
func StatusText(text string, l Level) string {
	s := ForLevel(l)
	return fmt.Sprintf("%s %s", s.Render(Icon(l)), s.Render(text))
}

// Signed styles a signed amount green when positive and red when negative.
func Signed(v float64, text string) string {
	switch {
	case v > 0:
		return StatusOK.Render(text)
	case v < 0:
		return StatusCritical.Render(text)
	default:
		return Subtitle.Render(text)
	}
}

// RateBar returns a bar for a 0-100 rate where higher is better.
func RateBar(percent float64, width int) string {
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	color := Secondary
	if percent < 60 {
		color = Warning
	}
	if percent < 40 {
		color = Danger
	}

	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
