package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings.
type keyMap struct {
	Quit       key.Binding
	PrevMonth  key.Binding
	NextMonth  key.Binding
	Today      key.Binding
	Search     key.Binding
	Zone       key.Binding
	CycleTheme key.Binding

	// Input prompts
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "keluar"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "bulan lepas"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "bulan depan"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "hari ini"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "cari"),
		),
		Zone: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zon"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "tema"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sahkan"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "batal"),
		),
	}
}

// shortHelp lists the bindings shown in the footer while browsing.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.Today, k.Search, k.Zone, k.CycleTheme, k.Quit}
}
