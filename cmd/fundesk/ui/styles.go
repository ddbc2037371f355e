// Package ui provides the visual styling and page components for the
// fundesk interactive dashboard.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors, same in both modes.
var (
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#43A047")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#f4f5f6"),
		Foreground: lipgloss.Color("#1b2a4a"),
		Primary:    lipgloss.Color("#1b2a4a"),
		Accent:     lipgloss.Color("#315efb"),
		Secondary:  lipgloss.Color("#e1e4e8"),
		Muted:      lipgloss.Color("#8a94a6"),
		Border:     lipgloss.Color("#dce0e5"),
		Card:       lipgloss.Color("#ffffff"),
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#141d2b"),
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#6e8efb"),
		Accent:     lipgloss.Color("#315efb"),
		Secondary:  lipgloss.Color("#1e2a3d"),
		Muted:      lipgloss.Color("#5a6b8c"),
		Border:     lipgloss.Color("#2a3850"),
		Card:       lipgloss.Color("#1a2536"),
		IsDark:     true,
	}
}

// DetectTheme auto-detects based on terminal hints, defaulting to light.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is "foreground;background"; low background indexes
		// indicate a dark terminal.
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}
	if os.Getenv("FUNDESK_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Badge    lipgloss.Style
	TabSet   lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Selected lipgloss.Style
	Divider  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		TabSet: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		TabOn: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(theme.Secondary).
			Foreground(theme.Foreground).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles with the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
