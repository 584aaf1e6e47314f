package build

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aretw0/themer/internal/fsutil"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/ports"
)

//go:embed color/*.less color-js/*.less
var colorFS embed.FS

const (
	// ColorDir holds the static base palette modules for compilers without
	// inline JavaScript.
	ColorDir = "color"
	// ScriptColorDir holds the modules defining the inline JavaScript
	// colorPalette() helper kits call through ~`colorPalette(...)`.
	ScriptColorDir = "color-js"
)

// Injector writes the kit layers of the cascade: ygd, then layout, then pro.
type Injector struct {
	cache    *Cache
	theme    ports.KitProvider
	layout   ports.KitProvider
	inlineJS bool
	logger   *slog.Logger
}

// NewInjector creates an injector writing through cache. Nil providers
// behave like absent kits. inlineJS selects the scripted base modules.
func NewInjector(cache *Cache, theme, layout ports.KitProvider, inlineJS bool, logger *slog.Logger) *Injector {
	return &Injector{cache: cache, theme: theme, layout: layout, inlineJS: inlineJS, logger: logger}
}

// BaseDir returns the base module set this injector writes.
func (i *Injector) BaseDir() string {
	if i.inlineJS {
		return ScriptColorDir
	}
	return ColorDir
}

func (i *Injector) otherBaseDir() string {
	if i.inlineJS {
		return ColorDir
	}
	return ScriptColorDir
}

// BaseMaterialized reports whether the scratch directory holds this
// injector's base set and not the other one, e.g. after a compiler switch.
func (i *Injector) BaseMaterialized() bool {
	if _, err := os.Stat(filepath.Join(i.cache.Scratch(), i.otherBaseDir())); err == nil {
		return false
	}
	info, err := os.Stat(filepath.Join(i.cache.Scratch(), i.BaseDir()))
	return err == nil && info.IsDir()
}

// baseImports lists the palette modules every ygd layer starts with.
func (i *Injector) baseImports() ([]string, error) {
	entries, err := fs.ReadDir(colorFS, i.BaseDir())
	if err != nil {
		return nil, err
	}
	var imports []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), domain.StyleExt)
		imports = append(imports, fmt.Sprintf("@import './%s/%s';", i.BaseDir(), name))
	}
	return imports, nil
}

// MaterializeBase copies the embedded palette modules into the scratch
// directory and removes the other set.
func (i *Injector) MaterializeBase() error {
	base := i.BaseDir()
	dir := filepath.Join(i.cache.Scratch(), base)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %v", domain.ErrIO, dir, err)
	}
	entries, err := fs.ReadDir(colorFS, base)
	if err != nil {
		return err
	}
	for _, e := range entries {
		data, err := colorFS.ReadFile(path.Join(base, e.Name()))
		if err != nil {
			return err
		}
		if err := fsutil.WriteFileAtomic(filepath.Join(dir, e.Name()), data, 0644); err != nil {
			return fmt.Errorf("%w: write %s: %v", domain.ErrIO, e.Name(), err)
		}
	}
	if err := os.RemoveAll(filepath.Join(i.cache.Scratch(), i.otherBaseDir())); err != nil {
		return fmt.Errorf("%w: remove %s: %v", domain.ErrIO, i.otherBaseDir(), err)
	}
	return nil
}

// Inject writes the ygd and layout layers. Kit failures never propagate;
// only scratch write failures do.
func (i *Injector) Inject(ctx context.Context, opts domain.BuildOptions) ([]domain.LayerReport, error) {
	if err := i.MaterializeBase(); err != nil {
		return nil, err
	}
	imports, err := i.baseImports()
	if err != nil {
		return nil, err
	}

	ygd := layerOf(ctx, i.theme, domain.DefaultThemeKit, opts.IgnoreYgd)
	if err := i.cache.WriteLayer(domain.LayerYgd, compose(imports, ygd.Content)); err != nil {
		return nil, err
	}

	layout := layerOf(ctx, i.layout, domain.DefaultLayoutKit, opts.IgnoreProLayout)
	if err := i.cache.WriteLayer(domain.LayerLayout, compose([]string{importOf(domain.LayerYgd)}, layout.Content)); err != nil {
		return nil, err
	}

	reports := []domain.LayerReport{
		{Layer: domain.LayerYgd, Passthrough: ygd.Passthrough, Reason: ygd.Reason},
		{Layer: domain.LayerLayout, Passthrough: layout.Passthrough, Reason: layout.Reason},
	}
	for _, r := range reports {
		i.logger.Debug("Layer written", "layer", r.Layer, "passthrough", r.Passthrough)
	}
	return reports, nil
}

// WritePro writes the final document: the layout import plus the project source.
func (i *Injector) WritePro(content string) error {
	return i.cache.WriteLayer(domain.LayerPro, compose([]string{importOf(domain.LayerLayout)}, content))
}

func layerOf(ctx context.Context, kit ports.KitProvider, name string, ignore bool) domain.KitLayer {
	switch {
	case ignore:
		return domain.PassthroughLayer(name, &domain.ResolutionError{Subject: name, Err: domain.ErrKitDisabled})
	case kit == nil:
		return domain.PassthroughLayer(name, &domain.ResolutionError{Subject: name, Err: fs.ErrNotExist})
	}
	return kit.ThemeLayer(ctx)
}

func importOf(layer domain.Layer) string {
	return fmt.Sprintf("@import './%s';", layer)
}

func compose(imports []string, content string) string {
	var b strings.Builder
	for _, imp := range imports {
		b.WriteString(imp + "\n")
	}
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}
