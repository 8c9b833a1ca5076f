package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/copyproblem/pkg/diagnostic"
)

// Theme defines colors and icons for terminal rendering.
type Theme struct {
	Name     string
	Primary  lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Weak     lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Selected lipgloss.Style
	Icons    ThemeIcons
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Error   string
	Warning string
	Weak    string
	Info    string
	Server  string
	Copied  string
	File    string
	Cursor  string
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:     "default",
		Primary:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Weak:     lipgloss.NewStyle().Foreground(lipgloss.Color("180")), // tan
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:     lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Reverse(true),
		Icons: ThemeIcons{
			Error:   "✗",
			Warning: "⚠",
			Weak:    "~",
			Info:    "●",
			Server:  "⇅",
			Copied:  "✓",
			File:    "▸",
			Cursor:  "›",
		},
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:     "orca",
		Primary:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")),  // pale blue
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Weak:     lipgloss.NewStyle().Foreground(lipgloss.Color("144")), // khaki
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("167")), // muted red
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // lighter gray
		Bold:     lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Icons: ThemeIcons{
			Error:   "✗",
			Warning: "!",
			Weak:    "~",
			Info:    "·",
			Server:  "⇅",
			Copied:  "✓",
			File:    "▸",
			Cursor:  "›",
		},
	}
}

// MonoTheme returns a monochrome theme (no colors).
func MonoTheme() Theme {
	return Theme{
		Name:     "mono",
		Primary:  lipgloss.NewStyle(),
		Success:  lipgloss.NewStyle(),
		Warning:  lipgloss.NewStyle(),
		Weak:     lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle(),
		Bold:     lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Reverse(true),
		Icons: ThemeIcons{
			Error:   "x",
			Warning: "!",
			Weak:    "~",
			Info:    "*",
			Server:  "s",
			Copied:  "+",
			File:    ">",
			Cursor:  ">",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// Severity returns the icon and style for sev.
func (t Theme) Severity(sev diagnostic.Severity) (string, lipgloss.Style) {
	switch sev {
	case diagnostic.Error:
		return t.Icons.Error, t.Error
	case diagnostic.Warning:
		return t.Icons.Warning, t.Warning
	case diagnostic.WeakWarning:
		return t.Icons.Weak, t.Weak
	case diagnostic.ServerProblem:
		return t.Icons.Server, t.Error
	default:
		return t.Icons.Info, t.Primary
	}
}
