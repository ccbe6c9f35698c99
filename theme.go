package datatable

import "github.com/charmbracelet/lipgloss"

// Theme is the set of styles the terminal view draws with.
type Theme struct {
	Base    lipgloss.Style // default text
	Muted   lipgloss.Style // labels, placeholders, disabled fields
	Accent  lipgloss.Style // focused field or button
	Error   lipgloss.Style // error messages
	Border  lipgloss.Style // grid lines
	Header  lipgloss.Style // header cells
	Invalid lipgloss.Style // cells with at least one error
	Button  lipgloss.Style
}

// Pre-defined themes

// ThemeDark is light text on a dark terminal.
var ThemeDark = Theme{
	Base:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	Border:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	Invalid: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	Button:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Padding(0, 1),
}

// ThemeLight is dark text on a light terminal.
var ThemeLight = Theme{
	Base:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
	Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Border:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Bold(true),
	Invalid: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Button:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Padding(0, 1),
}

// ThemeMonochrome uses attributes only.
var ThemeMonochrome = Theme{
	Base:    lipgloss.NewStyle(),
	Muted:   lipgloss.NewStyle().Faint(true),
	Accent:  lipgloss.NewStyle().Bold(true).Reverse(true),
	Error:   lipgloss.NewStyle().Bold(true).Underline(true),
	Border:  lipgloss.NewStyle().Faint(true),
	Header:  lipgloss.NewStyle().Bold(true),
	Invalid: lipgloss.NewStyle().Underline(true),
	Button:  lipgloss.NewStyle().Padding(0, 1),
}

// ThemeByName maps "dark", "light" and "mono" to a theme; anything else
// is dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return ThemeLight
	case "mono", "monochrome":
		return ThemeMonochrome
	}
	return ThemeDark
}
