package shell

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/tartampluch/go-phonebook/internal/config"
)

// styler decorates shell output. With colour disabled every method is the identity.
type styler struct {
	color bool
	err   lipgloss.Style
	head  lipgloss.Style
}

func newStyler(w io.Writer, mode string) styler {
	color := false
	switch mode {
	case config.ColorAlways:
		color = true
	case config.ColorAuto:
		color = isTTY(w)
	}

	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return styler{
		color: color,
		err:   r.NewStyle().Foreground(lipgloss.Color("1")),
		head:  r.NewStyle().Bold(true),
	}
}

func (s styler) Error(msg string) string {
	if !s.color {
		return msg
	}
	return s.err.Render(msg)
}

func (s styler) Header(msg string) string {
	if !s.color {
		return msg
	}
	return s.head.Render(msg)
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
