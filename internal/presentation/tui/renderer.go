package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintMarkdown writes markdown to w, styled when w is a terminal.
func PrintMarkdown(w io.Writer, markdown string) error {
	if IsTerminal(w) {
		out, err := NewRenderer()(markdown)
		if err == nil {
			markdown = out
		}
	}
	_, err := io.WriteString(w, markdown)
	return err
}

// ReportMarkdown formats a build report as a markdown document.
func ReportMarkdown(r *domain.Report) string {
	var b strings.Builder

	b.WriteString("# Build report\n\n")
	fmt.Fprintf(&b, "- aggregate: `%s` (%s)\n", r.Aggregate.Short(), changed(r.AggregateUnchanged))
	fmt.Fprintf(&b, "- themes: %s\n", changed(r.SpecsUnchanged))
	fmt.Fprintf(&b, "- duration: %s\n", r.Duration.Round(time.Millisecond))

	if r.Skipped {
		b.WriteString("\nNothing changed, build skipped.\n")
		return b.String()
	}
	if r.Resolution != nil {
		fmt.Fprintf(&b, "\n> variable resolution fell back to verbatim sources: %v\n", r.Resolution)
	}

	if len(r.Layers) > 0 {
		b.WriteString("\n## Layers\n\n| layer | source |\n|---|---|\n")
		for _, l := range r.Layers {
			src := "kit"
			if l.Passthrough {
				src = "passthrough"
			}
			fmt.Fprintf(&b, "| %s | %s |\n", l.Layer, src)
		}
	}

	if len(r.Themes) > 0 {
		b.WriteString("\n## Themes\n\n| # | theme | file | result |\n|---|---|---|---|\n")
		for _, t := range r.Themes {
			result := fmt.Sprintf("%d bytes", t.Bytes)
			if !t.Written {
				result = "failed: " + escape(errString(t.Err))
			}
			fmt.Fprintf(&b, "| %d | %s | `%s` | %s |\n", t.Index, t.Theme, t.FileName, result)
		}
	}
	return b.String()
}

func changed(unchanged bool) string {
	if unchanged {
		return "unchanged"
	}
	return "changed"
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// escape keeps an error message inside one table cell.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
