package cli

import (
	"github.com/charmbracelet/lipgloss"

	"moneybook/internal/prefs"
)

// Palette is the set of colors one theme renders with.
type Palette struct {
	Primary  lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Warning  lipgloss.Color
	Subtle   lipgloss.Color
}

var (
	// LightPalette uses darker tones that read on a light background.
	LightPalette = Palette{
		Primary:  lipgloss.Color("#1F4E79"),
		Positive: lipgloss.Color("#1B7F3B"),
		Negative: lipgloss.Color("#B3261E"),
		Warning:  lipgloss.Color("#8A5A00"),
		Subtle:   lipgloss.Color("#6B6B6B"),
	}

	// DarkPalette uses brighter tones for dark terminals.
	DarkPalette = Palette{
		Primary:  lipgloss.Color("#7FB3E6"),
		Positive: lipgloss.Color("#4ECDC4"),
		Negative: lipgloss.Color("#FF6B6B"),
		Warning:  lipgloss.Color("#FFE66D"),
		Subtle:   lipgloss.Color("#9A9A9A"),
	}
)

// Styles formats terminal output for one theme.
type Styles struct {
	Theme    prefs.Theme
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Warning  lipgloss.Style
	Subtle   lipgloss.Style
	Bold     lipgloss.Style
}

// NewStyles returns the styles for theme t.
func NewStyles(t prefs.Theme) Styles {
	p := LightPalette
	if t == prefs.Dark {
		p = DarkPalette
	}
	return Styles{
		Theme: t,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Subtle).
			Italic(true),
		Positive: lipgloss.NewStyle().Foreground(p.Positive),
		Negative: lipgloss.NewStyle().Foreground(p.Negative),
		Warning:  lipgloss.NewStyle().Foreground(p.Warning),
		Subtle:   lipgloss.NewStyle().Foreground(p.Subtle),
		Bold:     lipgloss.NewStyle().Bold(true),
	}
}

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
)

func (s Styles) FormatSuccess(message string) string {
	return s.Positive.Render(SuccessIcon + " " + message)
}

func (s Styles) FormatError(message string) string {
	return s.Negative.Render(ErrorIcon + " " + message)
}

func (s Styles) FormatWarning(message string) string {
	return s.Warning.Render(WarningIcon + " " + message)
}

func (s Styles) FormatTitle(title string) string {
	return s.Title.Render(title)
}
