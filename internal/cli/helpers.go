package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/themer/internal/logging"
	"github.com/aretw0/themer/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger. Logs go to stderr so the
// report on stdout stays clean.
func createLogger(level, format string) *slog.Logger {
	if level == "" {
		return logging.NewNop()
	}
	return logging.NewWithWriter(logging.ParseLevel(level), format, os.Stderr)
}

// parseThemes turns "name=file" flags into specs. A bare file means light.
func parseThemes(flags []string) ([]domain.ThemeSpec, error) {
	specs := make([]domain.ThemeSpec, 0, len(flags))
	for _, f := range flags {
		name, file, ok := strings.Cut(f, "=")
		if !ok {
			name, file = domain.ThemeLight, f
		}
		if strings.TrimSpace(file) == "" {
			return nil, fmt.Errorf("invalid --theme %q: missing output file", f)
		}
		specs = append(specs, domain.ThemeSpec{Theme: name, FileName: file, ModifyVars: map[string]string{}})
	}
	return specs, nil
}

// mergeThemes appends flag specs to file specs. A flag spec with the same
// theme name and output file replaces the file one.
func mergeThemes(file, flags []domain.ThemeSpec) []domain.ThemeSpec {
	out := append([]domain.ThemeSpec(nil), file...)
	for _, f := range flags {
		replaced := false
		for i, s := range out {
			if s.ThemeName() == f.ThemeName() && s.FileName == f.FileName {
				out[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, f)
		}
	}
	return out
}

// applyVars applies "theme.key=value" flags to every spec of that theme.
// Without a theme prefix the override applies to all specs.
func applyVars(specs []domain.ThemeSpec, flags []string) error {
	for _, f := range flags {
		lhs, value, ok := strings.Cut(f, "=")
		if !ok || lhs == "" {
			return fmt.Errorf("invalid --var %q: expected theme.key=value", f)
		}
		theme, key, scoped := strings.Cut(lhs, ".")
		if !scoped {
			theme, key = "", lhs
		}
		key = strings.TrimPrefix(key, "@")

		matched := false
		for i := range specs {
			if theme != "" && specs[i].ThemeName() != theme {
				continue
			}
			if specs[i].ModifyVars == nil {
				specs[i].ModifyVars = map[string]string{}
			}
			specs[i].ModifyVars[key] = value
			matched = true
		}
		if !matched {
			return fmt.Errorf("invalid --var %q: no theme named %q", f, theme)
		}
	}
	return nil
}

func themeNames(specs []domain.ThemeSpec) []string {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.ThemeName())
	}
	sort.Strings(names)
	return names
}
