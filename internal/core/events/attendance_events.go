package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventAttendanceCheckedIn  = "attendance.checked_in"
	EventAttendanceCheckedOut = "attendance.checked_out"
)

func NewAttendanceCheckedIn(userID int64, employeeID, terminalID string, at time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventAttendanceCheckedIn,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id":     userID,
			"employee_id": employeeID,
			"terminal_id": terminalID,
			"checked_at":  at,
		},
	}
}

func NewAttendanceCheckedOut(userID int64, employeeID, terminalID string, at time.Time, totalHours float64) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventAttendanceCheckedOut,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id":     userID,
			"employee_id": employeeID,
			"terminal_id": terminalID,
			"checked_at":  at,
			"total_hours": totalHours,
		},
	}
}
