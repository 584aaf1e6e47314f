package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/themer/internal/fsutil"
	"github.com/aretw0/themer/internal/logging"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed build can hold the shared lock.
const DefaultLockTTL = 10 * time.Minute

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Scratch    string
	Aggregator ports.SourceAggregator
	Resolver   ports.VariableResolver
	Store      ports.StateStore
	Compiler   ports.Compiler
	Minifier   ports.Minifier
	Palette    ports.Palette
	ThemeKit   ports.KitProvider
	LayoutKit  ports.KitProvider
	// Locker is optional. Builds sharing a remote store should set it.
	Locker  ports.DistributedLocker
	LockTTL time.Duration
	Hooks   domain.BuildHooks
	Logger  *slog.Logger
}

// Orchestrator runs one build at a time: aggregate, short-circuit check,
// layering, then the sequential render loop.
type Orchestrator struct {
	aggregator ports.SourceAggregator
	resolver   ports.VariableResolver
	cache      *Cache
	injector   *Injector
	renderer   *Renderer
	locker     ports.DistributedLocker
	lockTTL    time.Duration
	hooks      domain.BuildHooks
	logger     *slog.Logger
}

// cacheCheck is the run-local outcome of both fingerprint comparisons.
type cacheCheck struct {
	aggregateUnchanged bool
	specsUnchanged     bool
}

func (c cacheCheck) skip() bool {
	return c.aggregateUnchanged && c.specsUnchanged
}

// New wires an orchestrator. Aggregator, Store and Compiler are required.
func New(d Deps) *Orchestrator {
	logger := d.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	ttl := d.LockTTL
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	cache := NewCache(d.Scratch, d.Store)
	scripted := false
	if s, ok := d.Compiler.(ports.InlineScripter); ok {
		scripted = s.EvaluatesInlineJavaScript()
	}
	return &Orchestrator{
		aggregator: d.Aggregator,
		resolver:   d.Resolver,
		cache:      cache,
		injector:   NewInjector(cache, d.ThemeKit, d.LayoutKit, scripted, logger),
		renderer:   NewRenderer(d.Compiler, d.Minifier, d.Palette, logger),
		locker:     d.Locker,
		lockTTL:    ttl,
		hooks:      d.Hooks,
		logger:     logger,
	}
}

// Cache exposes the scratch cache, e.g. for the clean command.
func (o *Orchestrator) Cache() *Cache {
	return o.cache
}

// Build compiles one stylesheet per spec. Per-theme failures are recorded in
// the report; aggregation and scratch failures abort the run.
//
// When neither the sources nor the spec sequence changed, nothing is written
// and the previous outputs are trusted to still exist. They are not re-verified.
func (o *Orchestrator) Build(ctx context.Context, root string, specs []domain.ThemeSpec, opts domain.BuildOptions) (*domain.Report, error) {
	start := time.Now()
	report := &domain.Report{}

	if o.locker != nil {
		unlock, err := o.locker.Lock(ctx, "build", o.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire build lock: %w", err)
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				o.logger.Warn("Failed to release build lock", "error", err)
			}
		}()
	}

	var check cacheCheck

	source, err := o.aggregator.Aggregate(ctx, root, opts.IsModule)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", root, err)
	}

	if !opts.Cache {
		o.logger.Debug("Cache disabled, wiping scratch", "scratch", o.cache.Scratch())
		if err := o.cache.Wipe(ctx); err != nil {
			return nil, err
		}
	}
	if err := o.cache.Ensure(); err != nil {
		return nil, err
	}

	unchanged, fp, err := o.cache.AggregateUnchanged(source)
	if err != nil {
		return nil, err
	}
	if unchanged && !o.injector.BaseMaterialized() {
		o.logger.Debug("Base palette set missing, layering again", "base", o.injector.BaseDir())
		unchanged = false
	}
	check.aggregateUnchanged = unchanged
	report.Aggregate = fp
	report.AggregateUnchanged = unchanged
	o.emitCache(ctx, "aggregate", unchanged)
	o.logger.Debug("Aggregate fingerprint", "fingerprint", fp.Short(), "unchanged", unchanged)

	if !unchanged {
		if err := o.layer(ctx, source, opts, report); err != nil {
			// temp may already match source while the later layers do not.
			if ferr := o.cache.ForgetAggregate(); ferr != nil {
				o.logger.Warn("Failed to discard partial layers", "error", ferr)
			}
			return report, err
		}
	}

	encoded, err := EncodeSpecs(specs)
	if err != nil {
		return report, fmt.Errorf("encode theme specs: %w", err)
	}
	check.specsUnchanged, err = o.cache.SpecsUnchanged(ctx, encoded)
	if err != nil {
		return report, err
	}
	report.SpecsUnchanged = check.specsUnchanged
	o.emitCache(ctx, "specs", check.specsUnchanged)

	if check.skip() {
		report.Skipped = true
		o.logger.Info("Sources and themes unchanged, skipping build")
		return o.finish(ctx, report, start), nil
	}

	if err := o.cache.SaveSpecs(ctx, encoded); err != nil {
		return report, err
	}

	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			if ferr := o.cache.ForgetSpecs(context.WithoutCancel(ctx)); ferr != nil {
				o.logger.Warn("Failed to discard spec sequence", "error", ferr)
			}
			return o.finish(ctx, report, start), err
		}
		report.Themes = append(report.Themes, o.render(ctx, i, spec, opts))
	}

	return o.finish(ctx, report, start), nil
}

// layer writes temp, pro, ygd and layout, in that order.
func (o *Orchestrator) layer(ctx context.Context, source string, opts domain.BuildOptions, report *domain.Report) error {
	if err := o.cache.WriteLayer(domain.LayerTemp, source); err != nil {
		return err
	}
	o.recordLayer(ctx, report, domain.LayerReport{Layer: domain.LayerTemp})

	content := source
	if !opts.LoadAny && o.resolver != nil {
		resolved, err := o.resolver.Resolve(ctx, o.cache.Path(domain.LayerTemp), source)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			report.Resolution = &domain.ResolutionError{Subject: "variables", Err: err}
			attrs := []any{"error", err}
			var cerr *domain.CompileError
			if errors.As(err, &cerr) {
				attrs = append(attrs, "name", cerr.Type, "file", cerr.File, "line", cerr.Line)
			}
			o.logger.Warn("Variable resolution failed, layering source verbatim", attrs...)
		default:
			content = resolved
		}
	}
	if err := o.injector.WritePro(content); err != nil {
		return err
	}
	o.recordLayer(ctx, report, domain.LayerReport{Layer: domain.LayerPro})

	layers, err := o.injector.Inject(ctx, opts)
	if err != nil {
		return err
	}
	for _, l := range layers {
		if l.Passthrough {
			o.logger.Info("Optional kit unavailable", "layer", l.Layer, "reason", l.Reason)
		}
		o.recordLayer(ctx, report, l)
	}
	return nil
}

func (o *Orchestrator) render(ctx context.Context, index int, spec domain.ThemeSpec, opts domain.BuildOptions) domain.ThemeReport {
	start := time.Now()
	tr := domain.ThemeReport{Index: index, Theme: spec.ThemeName(), FileName: spec.FileName}

	res := o.renderer.Render(ctx, spec, o.cache.Path(domain.LayerPro), opts)
	if res.OK() {
		if err := writeOutput(spec.FileName, res.CSS); err != nil {
			res.Err = err
		}
	}

	tr.Duration = time.Since(start)
	if res.Err != nil {
		tr.Err = res.Err
		attrs := []any{"index", index, "theme", tr.Theme, "file_name", spec.FileName, "error", res.Err}
		var cerr *domain.CompileError
		if errors.As(res.Err, &cerr) {
			attrs = append(attrs, "file", cerr.File, "line", cerr.Line)
		}
		o.logger.Error("Theme render failed", attrs...)
	} else {
		tr.Written = true
		tr.Bytes = len(res.CSS)
		o.logger.Info("Theme written", "theme", tr.Theme, "file_name", spec.FileName, "bytes", tr.Bytes)
		if err := o.cache.SaveOverrides(ctx, spec.ModifyVars); err != nil {
			o.logger.Warn("Failed to record overrides", "theme", tr.Theme, "error", err)
		}
	}

	if o.hooks.OnThemeRender != nil {
		o.hooks.OnThemeRender(ctx, &domain.ThemeEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventThemeRender},
			Theme:     tr.Theme,
			FileName:  tr.FileName,
			IsError:   tr.Err != nil,
			Duration:  tr.Duration,
		})
	}
	return tr
}

// writeOutput overwrites the output file, creating its parent directories.
func writeOutput(fileName, css string) error {
	if fileName == "" {
		return fmt.Errorf("%w: theme has no fileName", domain.ErrIO)
	}
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return fmt.Errorf("%w: create output directory: %v", domain.ErrIO, err)
	}
	if err := fsutil.WriteFileAtomic(fileName, []byte(css), 0644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return nil
}

func (o *Orchestrator) recordLayer(ctx context.Context, report *domain.Report, l domain.LayerReport) {
	report.Layers = append(report.Layers, l)
	if o.hooks.OnLayerWritten != nil {
		o.hooks.OnLayerWritten(ctx, &domain.LayerEvent{
			EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventLayerWritten},
			Layer:       l.Layer,
			Passthrough: l.Passthrough,
		})
	}
}

func (o *Orchestrator) emitCache(ctx context.Context, subject string, unchanged bool) {
	if o.hooks.OnCacheCheck != nil {
		o.hooks.OnCacheCheck(ctx, &domain.CacheEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCacheCheck},
			Subject:   subject,
			Unchanged: unchanged,
		})
	}
}

func (o *Orchestrator) finish(ctx context.Context, report *domain.Report, start time.Time) *domain.Report {
	report.Duration = time.Since(start)
	failed := len(report.Failed())
	if o.hooks.OnBuildDone != nil {
		o.hooks.OnBuildDone(ctx, &domain.BuildEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventBuildDone},
			Skipped:   report.Skipped,
			Failed:    failed,
			Duration:  report.Duration,
		})
	}
	o.logger.Info("Build finished", "themes", len(report.Themes), "failed", failed, "skipped", report.Skipped, "duration", report.Duration)
	return report
}
