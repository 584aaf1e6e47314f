package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner outputs the themer banner with its version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	s1 := termenv.String(" _   _").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("| |_| |__   ___ _ __ ___   ___ _ __").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String("| __| '_ \\ / _ \\ '_ ` _ \\ / _ \\ '__|").Foreground(p.Color("#c084fc"))
	s4 := termenv.String("| |_| | | |  __/ | | | | |  __/ |").Foreground(p.Color("#e879f9"))
	s5 := termenv.String(" \\__|_| |_|\\___|_| |_| |_|\\___|_|").Foreground(p.Color("#f472b6"))
	v := termenv.String("v" + strings.TrimSpace(version)).Faint()

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, s4)
	fmt.Fprintln(w, s5, v)
	fmt.Fprintln(w)
}

// Status returns a one line summary of the report, colored for terminals.
func Status(r *domain.Report, colored bool) string {
	failed := len(r.Failed())
	var (
		text  string
		color string
	)
	switch {
	case r.Skipped:
		text, color = "skipped: sources and themes unchanged", "#a3a3a3"
	case failed > 0:
		text = fmt.Sprintf("partial: %d of %d themes failed", failed, len(r.Themes))
		color = "#fb7185"
	default:
		text = fmt.Sprintf("built %d themes", len(r.Themes))
		color = "#4ade80"
	}
	if !colored {
		return text
	}
	p := termenv.ColorProfile()
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
