package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSchemaBuilt    EventType = "schema_built"
	EventSchemaSkipped  EventType = "schema_skipped"
	EventCrossPostBuilt EventType = "crosspost_built"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	PostID    int64     `json:"post_id"`
}

// SchemaEvent is fired after structured data was built, or skipped, for a post.
type SchemaEvent struct {
	EventBase
	CodeSamples int `json:"code_samples"`
	Steps       int `json:"steps"`
}

// CrossPostEvent is fired after a cross-post rendering was produced.
type CrossPostEvent struct {
	EventBase
	Platform string `json:"platform"`
	Length   int    `json:"length"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnSchema    func(context.Context, *SchemaEvent)
	OnCrossPost func(context.Context, *CrossPostEvent)
}
