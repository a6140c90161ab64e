package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/smokyabdulrahman/waktu-solat/internal/clock"
	"github.com/smokyabdulrahman/waktu-solat/internal/loader"
	"github.com/smokyabdulrahman/waktu-solat/internal/zones"
)

// View implements tea.Model.
func (m Model) View() string {
	styles := m.theme.Styles()

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(styles),
		"",
		m.renderBody(styles),
		"",
		m.renderBanner(styles),
	)
	right := m.renderSide(styles)
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	var b strings.Builder
	b.WriteString(main)
	b.WriteString("\n")
	if m.mode != modeBrowse {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp(styles))
	return b.String()
}

func (m Model) renderHeader(s Styles) string {
	zone := m.session.Zone
	if zone == "" {
		zone = "tiada zon"
	} else if z, ok := zones.Lookup(zone); ok {
		zone = fmt.Sprintf("%s · %s", z.Code, z.State)
	}

	parts := []string{
		s.Title.Render("Waktu Solat"),
		s.Accent.Render(zone),
		s.Text.Render(fmt.Sprintf("‹ %s ›", m.session.Cursor.Label())),
	}
	if m.session.Search != "" {
		parts = append(parts, s.Muted.Render(fmt.Sprintf("carian: %q", m.session.Search)))
	}
	if m.loading {
		parts = append(parts, s.Muted.Render("memuatkan…"))
	}
	return strings.Join(parts, "  ")
}

// renderBody shows the table, or a single line explaining why there is none.
func (m Model) renderBody(s Styles) string {
	switch {
	case m.snapshot.LastError != nil:
		return s.Danger.Render(loader.PlaceholderText)
	case m.session.Zone == "":
		return s.Muted.Render("Tekan z untuk memilih zon.")
	case !m.snapshot.Loaded():
		return s.Muted.Render("Memuatkan jadual…")
	case len(m.lines) == 0:
		return m.table.View() + "\n" + s.Muted.Render("Tiada padanan.")
	default:
		return m.table.View()
	}
}

func (m Model) renderBanner(s Styles) string {
	if !m.hasFrame {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Success.Render(m.frame.Next),
		s.Text.Render(m.frame.Active),
	)
}

func (m Model) renderSide(s Styles) string {
	face := clock.Analog(m.analogAt, m.prefs.ClockRadius)
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Accent.Render(face),
		s.Title.Render(clock.Digital(m.digitalAt)),
		"",
		s.Muted.Width(lipgloss.Width(face)).Align(lipgloss.Center).Render(m.slides.Current()),
	)
	return s.Panel.Render(content)
}

func (m Model) renderHelp(s Styles) string {
	bindings := m.keys.shortHelp()
	if m.mode != modeBrowse {
		bindings = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, s.Accent.Render(h.Key)+" "+s.Muted.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
