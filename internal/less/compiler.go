package less

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/themer/pkg/ports"
)

// Compiler is the builtin ports.Compiler.
type Compiler struct {
	includePaths []string
}

// Option configures the Compiler.
type Option func(*Compiler)

// WithIncludePaths adds directories searched for "~pkg" and unresolved relative imports.
func WithIncludePaths(paths ...string) Option {
	return func(c *Compiler) {
		c.includePaths = append(c.includePaths, paths...)
	}
}

// NewCompiler creates a builtin compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile evaluates req.Source with req.ModifyVars appended as root variables.
func (c *Compiler) Compile(ctx context.Context, req ports.CompileRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	stmts, err := parse(req.Filename, req.Source)
	if err != nil {
		return "", err
	}
	// Sorted so equal override maps always compile identically.
	for i, name := range slices.Sorted(maps.Keys(req.ModifyVars)) {
		toks, err := tokenize("modifyVars", req.ModifyVars[name])
		if err != nil {
			return "", err
		}
		stmts = append(stmts, &varDecl{
			at:    pos{"modifyVars", i + 1, 1},
			name:  strings.TrimPrefix(name, "@"),
			value: trimSpace(toks),
		})
	}

	e := newEvaluator(c.includePaths)
	if abs, err := filepath.Abs(req.Filename); err == nil {
		e.imported[abs] = true
	}
	var out []outItem
	if err := e.body(stmts, frame{scope: newScope(nil), sink: &out}); err != nil {
		return "", err
	}
	return printCSS(e.hoisted, out), nil
}

var _ ports.Compiler = (*Compiler)(nil)
