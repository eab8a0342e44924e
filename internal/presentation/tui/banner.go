package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`        _`, "#22d3ee"},
	{`  _ __ | | __ _ _ __  _ __   ___ _ __`, "#38bdf8"},
	{` | '_ \| |/ _' | '_ \| '_ \ / _ \ '__|`, "#60a5fa"},
	{` | |_) | | (_| | | | | | | |  __/ |`, "#818cf8"},
	{` | .__/|_|\__,_|_| |_|_| |_|\___|_|`, "#a78bfa"},
	{` |_|`, "#c084fc"},
}

// PrintBanner writes the planner banner to w, coloured for the detected terminal profile.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Printer writes styled status lines. Colour is only emitted when the profile supports it.
type Printer struct {
	w       io.Writer
	profile termenv.Profile
}

// NewPrinter creates a Printer for w. Use termenv.Ascii to disable styling.
func NewPrinter(w io.Writer, profile termenv.Profile) *Printer {
	return &Printer{w: w, profile: profile}
}

// Info prints a plain italic line, such as the context acknowledgement.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, p.profile.String(fmt.Sprintf(format, args...)).Italic())
}

// Success prints a green line.
func (p *Printer) Success(format string, args ...any) {
	p.colored("#22c55e", format, args...)
}

// Warn prints a yellow line.
func (p *Printer) Warn(format string, args ...any) {
	p.colored("#eab308", format, args...)
}

// Error prints a red bold line.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, p.profile.String(fmt.Sprintf(format, args...)).Foreground(p.profile.Color("#ef4444")).Bold())
}

func (p *Printer) colored(hex, format string, args ...any) {
	fmt.Fprintln(p.w, p.profile.String(fmt.Sprintf(format, args...)).Foreground(p.profile.Color(hex)))
}
