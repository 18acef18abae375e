package telemetry

import "log/slog"

// ReplayEventType identifies replay audit events.
type ReplayEventType string

const (
	EventCheckpointPut     ReplayEventType = "checkpoint_put"
	EventCheckpointRestore ReplayEventType = "checkpoint_restore"
	EventCheckpointMiss    ReplayEventType = "checkpoint_miss"
	EventInvalidate        ReplayEventType = "invalidate"
)

// ReplayEvent is one row of the replay audit log.
type ReplayEvent struct {
	Type ReplayEventType `csv:"event"`
	// Frame the event concerns: checkpointed frame, restored frame,
	// or the start of an invalidated range.
	Frame int32 `csv:"frame"`
	// Target of the seek that caused the event, if any.
	Target int32 `csv:"target"`
	// Checkpoints dropped (invalidate) or frames replayed (restore).
	Count int `csv:"count"`
}

// Log emits the event through slog at debug level.
func (e ReplayEvent) Log() {
	slog.Debug("replay event",
		"type", string(e.Type),
		"frame", e.Frame,
		"target", e.Target,
		"count", e.Count,
	)
}
