package node

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/themer/internal/logging"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/ports"
)

// StyleDir is the package directory holding the kit's style sources.
const StyleDir = "es"

// ErrDisabled is the resolution failure reason of a kit the caller opted out of.
var ErrDisabled = domain.ErrKitDisabled

// Kit implements ports.KitProvider for one named package.
// Every failure yields the passthrough layer; nothing is propagated.
type Kit struct {
	name       string
	resolver   ports.ModuleResolver
	aggregator ports.SourceAggregator
	disabled   bool
	logger     *slog.Logger
}

var _ ports.KitProvider = (*Kit)(nil)

// KitOption configures a kit.
type KitOption func(*Kit)

// WithDisabled forces the passthrough layer.
func WithDisabled(disabled bool) KitOption {
	return func(k *Kit) {
		k.disabled = disabled
	}
}

// WithLogger sets the logger for resolution failures.
func WithLogger(logger *slog.Logger) KitOption {
	return func(k *Kit) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// NewKit creates the provider of the named package.
func NewKit(name string, resolver ports.ModuleResolver, aggregator ports.SourceAggregator, opts ...KitOption) *Kit {
	k := &Kit{
		name:       name,
		resolver:   resolver,
		aggregator: aggregator,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// ThemeLayer aggregates the package's style directory.
func (k *Kit) ThemeLayer(ctx context.Context) domain.KitLayer {
	if k.disabled {
		return k.passthrough(ErrDisabled)
	}
	dir, err := k.resolver.Resolve(k.name)
	if err != nil {
		return k.passthrough(err)
	}
	content, err := k.aggregator.Aggregate(ctx, filepath.Join(dir, StyleDir), false)
	if err != nil {
		return k.passthrough(err)
	}
	k.logger.Debug("Kit resolved", "kit", k.name, "dir", dir, "bytes", len(content))
	return domain.KitLayer{Kit: k.name, Content: content}
}

func (k *Kit) passthrough(err error) domain.KitLayer {
	reason := &domain.ResolutionError{Subject: k.name, Err: err}
	level := slog.LevelWarn
	if errors.Is(err, ErrDisabled) {
		level = slog.LevelDebug
	}
	k.logger.Log(context.Background(), level, "Kit unavailable, using passthrough layer", "kit", k.name, "error", err)
	return domain.PassthroughLayer(k.name, reason)
}
