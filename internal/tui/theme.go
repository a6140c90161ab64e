package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of the UI.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Accent  string
	Success string
	Danger  string
	Border  string

	SelectionBg   string // today's row
	SelectionText string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Title   lipgloss.Style
	Success lipgloss.Style
	Danger  lipgloss.Style
	Panel   lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// TableStyles returns bubbles table styles. The selected row is only
// highlighted when highlight is true, since the cursor parks on row 0 when
// today is not visible.
func (t Theme) TableStyles(highlight bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(t.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(t.Accent)).
		Bold(true)
	s.Cell = s.Cell.Foreground(lipgloss.Color(t.Text))
	if highlight {
		s.Selected = lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SelectionText)).
			Background(lipgloss.Color(t.SelectionBg)).
			Bold(true)
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	return s
}

var themes = map[string]Theme{
	"Malam": malamTheme(),
	"Siang": siangTheme(),
	"Senja": senjaTheme(),
}

var themeOrder = []string{"Malam", "Siang", "Senja"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return malamTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func malamTheme() Theme {
	return Theme{
		Name:          "Malam",
		Text:          "#cdcecf",
		Muted:         "#71839b",
		Accent:        "#63cdcf",
		Success:       "#81b29a",
		Danger:        "#c94f6d",
		Border:        "#39506d",
		SelectionBg:   "#2b3b51",
		SelectionText: "#dbc074",
	}
}

func siangTheme() Theme {
	return Theme{
		Name:          "Siang",
		Text:          "#3d2b5a",
		Muted:         "#8e8c99",
		Accent:        "#287980",
		Success:       "#396847",
		Danger:        "#a5222f",
		Border:        "#b8b3a5",
		SelectionBg:   "#e7d2be",
		SelectionText: "#352c24",
	}
}

func senjaTheme() Theme {
	return Theme{
		Name:          "Senja",
		Text:          "#e0def4",
		Muted:         "#908caa",
		Accent:        "#f6c177",
		Success:       "#9ccfd8",
		Danger:        "#eb6f92",
		Border:        "#524f67",
		SelectionBg:   "#393552",
		SelectionText: "#ea9a97",
	}
}
