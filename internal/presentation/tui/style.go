package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Style colors CLI output when it goes to a terminal and stays plain otherwise.
type Style struct {
	profile termenv.Profile
}

// NewStyle inspects w: colors are used only when w is a terminal.
func NewStyle(w io.Writer) Style {
	if !IsTerminal(w) {
		return Style{profile: termenv.Ascii}
	}
	return Style{profile: termenv.ColorProfile()}
}

// Plain returns a Style that never emits escape codes.
func Plain() Style {
	return Style{profile: termenv.Ascii}
}

// Heading renders s in the accent color, bold.
func (s Style) Heading(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#a78bfa")).Bold().String()
}

// Value renders a result value.
func (s Style) Value(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#f472b6")).String()
}

// Faint renders secondary text.
func (s Style) Faint(text string) string {
	return s.profile.String(text).Faint().String()
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
