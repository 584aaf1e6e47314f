package build

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/ports"
)

// Renderer compiles the final layered document for one ThemeSpec.
type Renderer struct {
	compiler ports.Compiler
	minifier ports.Minifier
	palette  ports.Palette
	logger   *slog.Logger
}

// NewRenderer creates a renderer. A nil palette means no dark base table.
func NewRenderer(compiler ports.Compiler, minifier ports.Minifier, palette ports.Palette, logger *slog.Logger) *Renderer {
	return &Renderer{compiler: compiler, minifier: minifier, palette: palette, logger: logger}
}

// MergeVars resolves the effective overrides of spec. The dark theme starts
// from the palette table unless extension is disabled; spec overrides win.
func MergeVars(spec domain.ThemeSpec, opts domain.BuildOptions, palette ports.Palette) map[string]string {
	vars := make(map[string]string)
	if spec.ThemeName() == domain.ThemeDark && !spec.DisableExtendsDark && !opts.DisableExtendsDark && palette != nil {
		maps.Copy(vars, palette.Vars())
	}
	maps.Copy(vars, spec.ModifyVars)
	return vars
}

// Render compiles document for spec. Failures are reported in the result.
func (r *Renderer) Render(ctx context.Context, spec domain.ThemeSpec, document string, opts domain.BuildOptions) domain.RenderResult {
	source, err := os.ReadFile(document)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.RenderResult{Spec: spec, Err: fmt.Errorf("%w: %s", domain.ErrDocumentMissing, document)}
		}
		return domain.RenderResult{Spec: spec, Err: fmt.Errorf("%w: read %s: %v", domain.ErrIO, document, err)}
	}

	vars := MergeVars(spec, opts, r.palette)
	r.logger.Debug("Compiling theme", "theme", spec.ThemeName(), "vars", len(vars))

	css, err := r.compiler.Compile(ctx, ports.CompileRequest{
		Filename:          document,
		Source:            string(source),
		ModifyVars:        vars,
		JavascriptEnabled: true,
	})
	if err != nil {
		return domain.RenderResult{Spec: spec, Err: err}
	}

	if opts.Min && r.minifier != nil {
		css, err = r.minifier.Minify(css)
		if err != nil {
			return domain.RenderResult{Spec: spec, Err: err}
		}
	}
	return domain.RenderResult{Spec: spec, CSS: css}
}
