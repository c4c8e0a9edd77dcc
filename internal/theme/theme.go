package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItem          *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	Detail                *lipgloss.Style
	Border                *lipgloss.Style
	Empty                 *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
}

// Colors holds user overrides for the default palette. Empty values keep
// the default colour. Values are anything lipgloss.Color accepts (ANSI
// index or hex).
type Colors struct {
	Foreground         string `toml:"foreground"`
	SelectedForeground string `toml:"selected_foreground"`
	SelectedBackground string `toml:"selected_background"`
	Accent             string `toml:"accent"`
	Border             string `toml:"border"`
	Muted              string `toml:"muted"`
	Error              string `toml:"error"`
}

// DefaultColors is the palette the default styles are built from.
var DefaultColors = Colors{
	Foreground:         "249",
	SelectedForeground: "255",
	SelectedBackground: "238",
	Accent:             "33",
	Border:             "240",
	Muted:              "241",
	Error:              "196",
}

var defaultStyles = Build(DefaultColors)

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return defaultStyles
}

// Build constructs a style set from the supplied palette, filling blanks from
// DefaultColors.
func Build(c Colors) *Styles {
	c = c.merged()
	return &Styles{
		Item: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Foreground)),
		),
		ItemIndicator: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.SelectedBackground)),
		),
		SelectedItem: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.SelectedForeground)).Background(lipgloss.Color(c.SelectedBackground)).Bold(true),
		),
		SelectedItemIndicator: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Accent)).Background(lipgloss.Color(c.SelectedBackground)),
		),
		Detail: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Muted)),
		),
		Border: ptr(
			lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(c.Border)),
		),
		Empty: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Muted)).Italic(true),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Error)).Bold(true),
		),
		Info: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Foreground)),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Muted)),
		),
		Filter: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Foreground)),
		),
		FilterPrompt: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Accent)).Bold(true),
		),
		FilterPlaceholder: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(c.Muted)),
		),
		Cursor: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color(c.Accent)),
		),
	}
}

func (c Colors) merged() Colors {
	fill := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return Colors{
		Foreground:         fill(c.Foreground, DefaultColors.Foreground),
		SelectedForeground: fill(c.SelectedForeground, DefaultColors.SelectedForeground),
		SelectedBackground: fill(c.SelectedBackground, DefaultColors.SelectedBackground),
		Accent:             fill(c.Accent, DefaultColors.Accent),
		Border:             fill(c.Border, DefaultColors.Border),
		Muted:              fill(c.Muted, DefaultColors.Muted),
		Error:              fill(c.Error, DefaultColors.Error),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
