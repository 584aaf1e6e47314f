package cli

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/themer/internal/build"
	"github.com/aretw0/themer/internal/config"
	"github.com/aretw0/themer/internal/presentation/tui"
	"github.com/aretw0/themer/pkg/domain"
)

// ErrPartialBuild is returned when at least one theme could not be written.
var ErrPartialBuild = errors.New("partial build")

// BuildFlags contains the command line configuration of build and clean.
// Empty fields fall back to the build file, then to defaults.
type BuildFlags struct {
	ConfigPath  string
	Dir         string
	Scratch     string
	Themes      []string
	Vars        []string
	Options     map[string]any // only the option flags the user set
	Compiler    string
	RedisAddr   string
	MetricsFile string
	Ignore      []string
	LogLevel    string
	LogFormat   string
}

// plan is a fully resolved build invocation.
type plan struct {
	Settings
	Specs    []domain.ThemeSpec
	Options  domain.BuildOptions
	LogLevel string
}

// resolve layers defaults, the build file and flags.
func resolve(f BuildFlags) (*plan, error) {
	dir := cmp.Or(f.Dir, ".")

	cfg := &config.File{}
	path := f.ConfigPath
	if path == "" {
		path, _ = config.Find(dir)
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	p := &plan{
		Settings: Settings{
			Root:        cmp.Or(cfg.Root, dir),
			Scratch:     cmp.Or(f.Scratch, cfg.Scratch, defaultScratch(dir)),
			Compiler:    cmp.Or(f.Compiler, cfg.Compiler, CompilerBuiltin),
			Lessc:       cfg.Lessc,
			Redis:       cfg.Redis,
			Ignore:      append(append([]string(nil), cfg.Ignore...), f.Ignore...),
			Palette:     cfg.Palette,
			MetricsFile: cmp.Or(f.MetricsFile, cfg.MetricsFile),
		},
		LogLevel: cmp.Or(f.LogLevel, cfg.LogLevel),
	}
	if f.RedisAddr != "" {
		r := config.Redis{}
		if cfg.Redis != nil {
			r = *cfg.Redis
		}
		r.Addr = f.RedisAddr
		p.Redis = &r
	}

	flagSpecs, err := parseThemes(f.Themes)
	if err != nil {
		return nil, err
	}
	p.Specs = mergeThemes(cfg.Themes, flagSpecs)
	if err := applyVars(p.Specs, f.Vars); err != nil {
		return nil, err
	}

	p.Options, err = config.MergeOptions(cfg.Options, f.Options)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Build handles the 'build' command logic.
func Build(ctx context.Context, f BuildFlags, stdout io.Writer) error {
	p, err := resolve(f)
	if err != nil {
		return err
	}
	if len(p.Specs) == 0 {
		return fmt.Errorf("%w: pass --theme or list themes in the build file", domain.ErrNoThemes)
	}

	logger := createLogger(p.LogLevel, f.LogFormat)
	env, err := newEnvironment(p.Settings, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	logger.Info("Build started", "root", p.Root, "themes", themeNames(p.Specs), "compiler", p.Compiler)
	report, err := env.builder.Build(ctx, p.Root, p.Specs, p.Options)

	if p.MetricsFile != "" {
		if werr := env.metrics.WriteTextfile(p.MetricsFile); werr != nil {
			logger.Warn("Failed to write metrics", "path", p.MetricsFile, "err", werr)
		}
	}
	if err != nil {
		return err
	}

	if err := tui.PrintMarkdown(stdout, tui.ReportMarkdown(report)); err != nil {
		return err
	}
	fmt.Fprintln(stdout, tui.Status(report, tui.IsTerminal(stdout)))

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d themes failed", ErrPartialBuild, len(failed), len(report.Themes))
	}
	return nil
}

// Clean handles the 'clean' command logic.
func Clean(ctx context.Context, f BuildFlags, stdout io.Writer) error {
	p, err := resolve(f)
	if err != nil {
		return err
	}

	env, err := newEnvironment(p.Settings, createLogger(p.LogLevel, f.LogFormat))
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.builder.Clean(ctx); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "removed %s\n", env.builder.Scratch())
	return nil
}

// Fingerprint prints the content fingerprint of each file, "-" reading stdin.
func Fingerprint(paths []string, stdin io.Reader, stdout io.Writer) error {
	for _, path := range paths {
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrIO, err)
		}
		fmt.Fprintf(stdout, "%s  %s\n", build.Fingerprint(data), path)
	}
	return nil
}
