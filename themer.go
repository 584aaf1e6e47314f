package themer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/themer/internal/build"
	"github.com/aretw0/themer/internal/less"
	"github.com/aretw0/themer/internal/logging"
	"github.com/aretw0/themer/pkg/adapters/file"
	"github.com/aretw0/themer/pkg/adapters/minify"
	"github.com/aretw0/themer/pkg/adapters/node"
	"github.com/aretw0/themer/pkg/adapters/source"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/palette"
	"github.com/aretw0/themer/pkg/ports"
)

// DefaultScratchDir holds the intermediate artifacts and the cache state.
var DefaultScratchDir = filepath.Join(".themer", "temp")

// Builder is the high-level entry point for the themer library.
// It wires the default adapters and runs builds through the pipeline.
type Builder struct {
	scratch    string
	aggregator ports.SourceAggregator
	resolver   ports.VariableResolver
	compiler   ports.Compiler
	minifier   ports.Minifier
	store      ports.StateStore
	locker     ports.DistributedLocker
	palette    ports.Palette
	themeKit   ports.KitProvider
	layoutKit  ports.KitProvider
	ignore     []string
	hooks      domain.BuildHooks
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Builder.
type Option func(*Builder)

// WithScratchDir sets the directory of intermediate artifacts.
func WithScratchDir(dir string) Option {
	return func(b *Builder) {
		b.scratch = dir
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithCompiler replaces the builtin LESS compiler, e.g. with the lessc adapter.
func WithCompiler(c ports.Compiler) Option {
	return func(b *Builder) {
		b.compiler = c
	}
}

// WithMinifier replaces the CSS minifier used when BuildOptions.Min is set.
func WithMinifier(m ports.Minifier) Option {
	return func(b *Builder) {
		b.minifier = m
	}
}

// WithStore persists the cache state somewhere other than the scratch directory.
func WithStore(s ports.StateStore) Option {
	return func(b *Builder) {
		b.store = s
	}
}

// WithLocker serializes builds that share a store across processes.
func WithLocker(l ports.DistributedLocker) Option {
	return func(b *Builder) {
		b.locker = l
	}
}

// WithPalette replaces the dark base table.
func WithPalette(p ports.Palette) Option {
	return func(b *Builder) {
		b.palette = p
	}
}

// WithThemeKit replaces the node package lookup of the theme kit layer.
func WithThemeKit(k ports.KitProvider) Option {
	return func(b *Builder) {
		b.themeKit = k
	}
}

// WithLayoutKit replaces the node package lookup of the layout kit layer.
func WithLayoutKit(k ports.KitProvider) Option {
	return func(b *Builder) {
		b.layoutKit = k
	}
}

// WithAggregator replaces the filesystem source aggregator.
func WithAggregator(a ports.SourceAggregator) Option {
	return func(b *Builder) {
		b.aggregator = a
	}
}

// WithResolver replaces the variable resolver.
func WithResolver(r ports.VariableResolver) Option {
	return func(b *Builder) {
		b.resolver = r
	}
}

// WithIgnore adds source patterns skipped by the default aggregator.
func WithIgnore(patterns ...string) Option {
	return func(b *Builder) {
		b.ignore = append(b.ignore, patterns...)
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.BuildHooks) Option {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// New initializes a Builder. Unset collaborators get the defaults: builtin
// compiler, tdewolff minifier, file store in the scratch directory and the
// embedded dark palette.
func New(opts ...Option) (*Builder, error) {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}

	if b.scratch == "" {
		b.scratch = DefaultScratchDir
	}
	abs, err := filepath.Abs(b.scratch)
	if err != nil {
		return nil, fmt.Errorf("invalid scratch directory: %w", err)
	}
	b.scratch = abs

	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	b.logger = b.logger.With("scratch", b.scratch)

	if b.aggregator == nil {
		b.aggregator = source.New(source.WithIgnore(b.ignore...), source.WithLogger(b.logger))
	}
	if b.resolver == nil {
		b.resolver = less.NewResolver()
	}
	if b.minifier == nil {
		b.minifier = minify.New()
	}
	if b.store == nil {
		b.store = file.New(b.scratch)
	}
	if b.palette == nil {
		b.palette = palette.Dark()
	}
	return b, nil
}

// Scratch returns the absolute scratch directory.
func (b *Builder) Scratch() string {
	return b.scratch
}

// Build compiles one stylesheet per spec from the style sources under root.
// Start from domain.DefaultBuildOptions to get the usual defaults.
func (b *Builder) Build(ctx context.Context, root string, specs []domain.ThemeSpec, opts domain.BuildOptions) (*domain.Report, error) {
	return b.orchestrator(root).Build(ctx, root, specs, opts)
}

// Clean removes the scratch directory and the cache state.
func (b *Builder) Clean(ctx context.Context) error {
	return b.orchestrator("").Cache().Wipe(ctx)
}

// orchestrator binds the root dependent defaults: kits and "~pkg" imports
// are looked up from root upwards.
func (b *Builder) orchestrator(root string) *build.Orchestrator {
	resolver := node.NewResolver(root)

	compiler := b.compiler
	if compiler == nil {
		compiler = less.NewCompiler(less.WithIncludePaths(node.IncludePaths(root)...))
	}
	themeKit := b.themeKit
	if themeKit == nil {
		themeKit = node.NewKit(domain.DefaultThemeKit, resolver, source.New(), node.WithLogger(b.logger))
	}
	layoutKit := b.layoutKit
	if layoutKit == nil {
		layoutKit = node.NewKit(domain.DefaultLayoutKit, resolver, source.New(), node.WithLogger(b.logger))
	}

	return build.New(build.Deps{
		Scratch:    b.scratch,
		Aggregator: b.aggregator,
		Resolver:   b.resolver,
		Store:      b.store,
		Compiler:   compiler,
		Minifier:   b.minifier,
		Palette:    b.palette,
		ThemeKit:   themeKit,
		LayoutKit:  layoutKit,
		Locker:     b.locker,
		Hooks:      b.hooks,
		Logger:     b.logger,
	})
}
