package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/themer/pkg/domain"
)

// Combine fans every event out to each set of hooks, in order.
func Combine(all ...domain.BuildHooks) domain.BuildHooks {
	return domain.BuildHooks{
		OnCacheCheck: func(ctx context.Context, e *domain.CacheEvent) {
			for _, h := range all {
				if h.OnCacheCheck != nil {
					h.OnCacheCheck(ctx, e)
				}
			}
		},
		OnLayerWritten: func(ctx context.Context, e *domain.LayerEvent) {
			for _, h := range all {
				if h.OnLayerWritten != nil {
					h.OnLayerWritten(ctx, e)
				}
			}
		},
		OnThemeRender: func(ctx context.Context, e *domain.ThemeEvent) {
			for _, h := range all {
				if h.OnThemeRender != nil {
					h.OnThemeRender(ctx, e)
				}
			}
		},
		OnBuildDone: func(ctx context.Context, e *domain.BuildEvent) {
			for _, h := range all {
				if h.OnBuildDone != nil {
					h.OnBuildDone(ctx, e)
				}
			}
		},
	}
}

// LogHooks logs every event at debug level.
func LogHooks(logger *slog.Logger) domain.BuildHooks {
	return domain.BuildHooks{
		OnCacheCheck: func(ctx context.Context, e *domain.CacheEvent) {
			logger.DebugContext(ctx, string(e.Type), "subject", e.Subject, "unchanged", e.Unchanged)
		},
		OnLayerWritten: func(ctx context.Context, e *domain.LayerEvent) {
			logger.DebugContext(ctx, string(e.Type), "layer", e.Layer, "passthrough", e.Passthrough)
		},
		OnThemeRender: func(ctx context.Context, e *domain.ThemeEvent) {
			logger.DebugContext(ctx, string(e.Type), "theme", e.Theme, "file_name", e.FileName, "is_error", e.IsError, "duration", e.Duration)
		},
		OnBuildDone: func(ctx context.Context, e *domain.BuildEvent) {
			logger.DebugContext(ctx, string(e.Type), "skipped", e.Skipped, "failed", e.Failed, "duration", e.Duration)
		},
	}
}
