package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSearch     EventType = "search"
	EventCacheError EventType = "cache_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SearchEvent describes one answered query.
type SearchEvent struct {
	EventBase
	Kind     ResultKind    `json:"kind"`
	Key      string        `json:"key"`
	CacheHit bool          `json:"cache_hit"`
	Duration time.Duration `json:"duration"`
	Stats    Stats         `json:"stats"`
	Found    int           `json:"found"` // solutions for solve, values for targets
}

// CacheEvent describes a failed cache operation. The query itself is still answered.
type CacheEvent struct {
	EventBase
	Op  string `json:"op"`
	Key string `json:"key"`
	Err error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnSearch     func(context.Context, *SearchEvent)
	OnCacheError func(context.Context, *CacheEvent)
}
