// Package display renders coloured terminal text and aligned tables for the
// one-shot commands.
//
// It respects the NO_COLOR environment variable (https://no-color.org/) and
// detects whether stdout is a terminal. Colors are automatically disabled when
// output is piped or redirected, or when NO_COLOR is set.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// enabled reports whether color output is active.
// It is set once at init time.
var enabled bool

// renderer always emits basic ANSI; enabled decides whether it is used.
var renderer = newRenderer()

func newRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(termenv.ANSI)
	return r
}

func init() {
	enabled = shouldEnable()
}

// shouldEnable determines whether to use color output.
func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// SetEnabled overrides the auto-detected color state.
// Useful for testing or when --json forces plain output.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

var (
	boldStyle   = renderer.NewStyle().Bold(true)
	dimStyle    = renderer.NewStyle().Faint(true)
	greenStyle  = renderer.NewStyle().Foreground(lipgloss.Color("2"))
	yellowStyle = renderer.NewStyle().Foreground(lipgloss.Color("3"))
	redStyle    = renderer.NewStyle().Foreground(lipgloss.Color("1"))
	cyanStyle   = renderer.NewStyle().Foreground(lipgloss.Color("6"))
	grayStyle   = renderer.NewStyle().Foreground(lipgloss.Color("8"))
	accentStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// wrap renders text with style, only when colors are enabled.
func wrap(style lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return style.Render(text)
}

// Bold returns text rendered in bold.
func Bold(text string) string {
	return wrap(boldStyle, text)
}

// Dim returns text rendered in dim/faint.
func Dim(text string) string {
	return wrap(dimStyle, text)
}

// Green returns text rendered in green.
func Green(text string) string {
	return wrap(greenStyle, text)
}

// Yellow returns text rendered in yellow.
func Yellow(text string) string {
	return wrap(yellowStyle, text)
}

// Red returns text rendered in red. Used for load failures.
func Red(text string) string {
	return wrap(redStyle, text)
}

// Cyan returns text rendered in cyan.
func Cyan(text string) string {
	return wrap(cyanStyle, text)
}

// Gray returns text rendered in gray (bright black).
func Gray(text string) string {
	return wrap(grayStyle, text)
}

// Accent returns text rendered in the accent color (cyan + bold).
// Used for today's row and the next prayer.
func Accent(text string) string {
	return wrap(accentStyle, text)
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...interface{}) string {
	return Bold(fmt.Sprintf(format, a...))
}
