package cli

import (
	"cmp"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/themer"
	"github.com/aretw0/themer/internal/config"
	"github.com/aretw0/themer/pkg/adapters/process"
	"github.com/aretw0/themer/pkg/adapters/redis"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/observability"
	"github.com/aretw0/themer/pkg/palette"
	"github.com/aretw0/themer/pkg/ports"
)

const (
	CompilerBuiltin = "builtin"
	CompilerLessc   = "lessc"
)

// Settings are the resolved collaborators of one command invocation.
type Settings struct {
	Root        string
	Scratch     string
	Compiler    string
	Lessc       process.Config
	Redis       *config.Redis
	Ignore      []string
	Palette     string
	MetricsFile string
}

// environment owns the builder and everything that must be released with it.
type environment struct {
	builder *themer.Builder
	metrics *observability.Metrics
	closers []func() error
}

func (e *environment) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// newEnvironment initializes a Builder with standard CLI conventions.
func newEnvironment(s Settings, logger *slog.Logger) (*environment, error) {
	env := &environment{metrics: observability.NewMetrics()}

	opts := []themer.Option{
		themer.WithLogger(logger),
		themer.WithScratchDir(s.Scratch),
		themer.WithIgnore(s.Ignore...),
		themer.WithHooks(observability.Combine(env.metrics.Hooks(), observability.LogHooks(logger))),
	}

	compiler, err := newCompiler(s.Compiler, s.Lessc, s.Root)
	if err != nil {
		return nil, err
	}
	if compiler != nil {
		opts = append(opts, themer.WithCompiler(compiler))
	}

	if s.Palette != "" {
		table, err := palette.Load(s.Palette)
		if err != nil {
			return nil, err
		}
		opts = append(opts, themer.WithPalette(table))
	}

	if s.Redis != nil && s.Redis.Addr != "" {
		store, locker, err := newRedis(*s.Redis)
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, store.Close)
		opts = append(opts, themer.WithStore(store), themer.WithLocker(locker))
		logger.Debug("Using redis cache state", "addr", s.Redis.Addr)
	}

	builder, err := themer.New(opts...)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("error initializing builder: %w", err)
	}
	env.builder = builder
	return env, nil
}

// newCompiler returns nil for the builtin compiler, which the builder wires itself.
func newCompiler(name string, lessc process.Config, root string) (ports.Compiler, error) {
	switch strings.ToLower(name) {
	case "", CompilerBuiltin:
		return nil, nil
	case CompilerLessc:
		return process.NewCompiler(process.WithConfig(lessc), process.WithBaseDir(root)), nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", domain.ErrUnknownCompiler, name, CompilerBuiltin, CompilerLessc)
	}
}

func newRedis(cfg config.Redis) (*redis.Store, *redis.Locker, error) {
	prefix := cmp.Or(cfg.Prefix, redis.DefaultPrefix)
	opts := []redis.Option{redis.WithPrefix(prefix)}
	if cfg.TTL != "" {
		ttl, err := time.ParseDuration(cfg.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis ttl %q: %w", cfg.TTL, err)
		}
		opts = append(opts, redis.WithTTL(ttl))
	}
	store := redis.New(cfg.Addr, cfg.Password, cfg.DB, opts...)
	return store, redis.NewLocker(store.Client(), prefix), nil
}

// defaultScratch keeps the scratch directory inside the project.
func defaultScratch(dir string) string {
	return filepath.Join(dir, themer.DefaultScratchDir)
}
