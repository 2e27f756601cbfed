package events

import (
	"context"

	"github.com/frahmantamala/attendance-tracker/pkg/logger"
)

// RegisterAuditLog subscribes a structured audit line for every attendance
// transition. The logger comes from the request context so audit lines carry
// the trace ID of the swipe that caused them.
func RegisterAuditLog(bus *Bus) {
	log := func(ctx context.Context, event Event) error {
		logger.From(ctx).Info("attendance event",
			"event_id", event.ID,
			"event_type", event.Type,
			"data", event.Data)
		return nil
	}

	bus.Subscribe(EventAttendanceCheckedIn, log)
	bus.Subscribe(EventAttendanceCheckedOut, log)
}
