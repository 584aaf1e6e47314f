// Package source collects a project's LESS files into one document.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aretw0/themer/internal/less"
	"github.com/aretw0/themer/internal/logging"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/ports"
	"github.com/bmatcuk/doublestar/v4"
)

// Pattern selects the aggregated files, relative to the root.
const Pattern = "**/*" + domain.StyleExt

// DefaultIgnore lists the trees never aggregated.
var DefaultIgnore = []string{"**/node_modules/**", "**/.*/**"}

var importStmt = regexp.MustCompile(`(?m)^[ \t]*@import\s*(\([^)]*\)\s*)?(['"])([^'"]+)['"]\s*;[ \t]*\r?\n?`)

// Aggregator implements ports.SourceAggregator over the local filesystem.
type Aggregator struct {
	ignore []string
	logger *slog.Logger
}

var _ ports.SourceAggregator = (*Aggregator)(nil)

// Option configures the aggregator.
type Option func(*Aggregator)

// WithIgnore adds doublestar patterns, relative to the root, to skip.
func WithIgnore(patterns ...string) Option {
	return func(a *Aggregator) {
		a.ignore = append(a.ignore, patterns...)
	}
}

// WithLogger sets the logger used for non-fatal module scoping failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an aggregator with the default ignore list.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		ignore: append([]string{}, DefaultIgnore...),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate concatenates every style file under root in lexical path order.
// Each file is preceded by a "/* relpath */" marker.
func (a *Aggregator) Aggregate(ctx context.Context, root string, isModule bool) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return "", fmt.Errorf("%w: read source root: %v", domain.ErrIO, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: source root %s is not a directory", domain.ErrIO, root)
	}

	files, err := a.collect(ctx, absRoot)
	if err != nil {
		return "", err
	}
	members := make(map[string]bool, len(files))
	for _, f := range files {
		members[f] = true
	}

	var b strings.Builder
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(rel)))
		if err != nil {
			return "", fmt.Errorf("%w: read %s: %v", domain.ErrIO, rel, err)
		}

		content := a.rewriteImports(absRoot, rel, string(data), members)
		if isModule {
			content = a.localize(rel, content)
		}

		b.WriteString("/* " + rel + " */\n")
		b.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// collect walks root in lexical order, which fs.WalkDir guarantees.
func (a *Aggregator) collect(ctx context.Context, absRoot string) ([]string, error) {
	var files []string
	err := fs.WalkDir(os.DirFS(absRoot), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if p == "." {
			return nil
		}
		if d.IsDir() {
			// match a child path so "**/x/**" patterns prune whole trees
			if a.ignored(p + "/_") {
				return fs.SkipDir
			}
			return nil
		}
		if a.ignored(p) {
			return nil
		}
		if ok, _ := doublestar.Match(Pattern, p); ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: walk %s: %v", domain.ErrIO, absRoot, err)
	}
	return files, nil
}

func (a *Aggregator) ignored(p string) bool {
	for _, pattern := range a.ignore {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

// rewriteImports drops imports of aggregated files and turns other relative
// imports into absolute paths, since the document is compiled from scratch.
func (a *Aggregator) rewriteImports(absRoot, rel, content string, members map[string]bool) string {
	dir := path.Dir(rel)
	return importStmt.ReplaceAllStringFunc(content, func(stmt string) string {
		m := importStmt.FindStringSubmatch(stmt)
		target := m[3]
		if !isRelative(target) {
			return stmt
		}

		joined := path.Join(dir, target)
		candidate := joined
		if path.Ext(candidate) == "" {
			candidate += domain.StyleExt
		}
		if !strings.HasPrefix(candidate, "../") && members[candidate] {
			return ""
		}

		abs := filepath.ToSlash(filepath.Join(absRoot, filepath.FromSlash(joined)))
		return strings.Replace(stmt, m[2]+target+m[2], m[2]+abs+m[2], 1)
	})
}

func isRelative(target string) bool {
	switch {
	case strings.HasPrefix(target, "~"), strings.HasPrefix(target, "/"):
		return false
	case strings.Contains(target, "://"), strings.HasPrefix(target, "@{"):
		return false
	}
	return true
}

func (a *Aggregator) localize(rel, content string) string {
	prefix, ok := LocalIdentName(rel)
	if !ok {
		return content
	}
	out, err := less.LocalizeClasses(rel, content, prefix)
	if err != nil {
		a.logger.Warn("Module scoping skipped", "file", rel, "error", err)
		return content
	}
	return out
}
