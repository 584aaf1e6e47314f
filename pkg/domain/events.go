package domain

import (
	"context"
	"time"
)

// EventType defines the category of a build event.
type EventType string

const (
	EventCacheCheck   EventType = "cache_check"
	EventLayerWritten EventType = "layer_written"
	EventThemeRender  EventType = "theme_render"
	EventBuildDone    EventType = "build_done"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// CacheEvent reports the outcome of a fingerprint comparison.
type CacheEvent struct {
	EventBase
	Subject   string `json:"subject"`
	Unchanged bool   `json:"unchanged"`
}

// LayerEvent reports an intermediate artifact write.
type LayerEvent struct {
	EventBase
	Layer       Layer `json:"layer"`
	Passthrough bool  `json:"passthrough"`
}

// ThemeEvent reports one theme render.
type ThemeEvent struct {
	EventBase
	Theme    string        `json:"theme"`
	FileName string        `json:"file_name"`
	IsError  bool          `json:"is_error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// BuildEvent reports the end of a build.
type BuildEvent struct {
	EventBase
	Skipped  bool          `json:"skipped"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// BuildHooks defines callbacks for build observability. Nil hooks are skipped.
type BuildHooks struct {
	OnCacheCheck   func(context.Context, *CacheEvent)
	OnLayerWritten func(context.Context, *LayerEvent)
	OnThemeRender  func(context.Context, *ThemeEvent)
	OnBuildDone    func(context.Context, *BuildEvent)
}
