package attendance

import (
	"errors"
	"math"
	"time"
)

// Kiosk submission outcomes. AlreadyCompleted is informational, not a
// failure: the response carries the day's stored times and hours.
const (
	OutcomeCheckIn          = "check-in"
	OutcomeCheckOut         = "check-out"
	OutcomeAlreadyCompleted = "already-completed"
)

// Derived per-entry statuses for display and aggregation. Absent days are
// never stored; reporting synthesizes them from missing dates.
const (
	StatusPresent    = "present"
	StatusIncomplete = "incomplete"
)

// Today-status values for the kiosk display before a swipe.
const (
	TodayNotCheckedIn = "not-checked-in"
	TodayCheckedIn    = "checked-in"
	TodayCompleted    = "completed"
)

// Entry is the one-per-user-per-day ledger row. Check-out fields stay nil
// until the second swipe; TotalHours is computed once at check-out from
// server timestamps and never recomputed afterwards.
type Entry struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	UserID           int64      `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_attendance_user_date"`
	Date             time.Time  `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date"`
	CheckInTime      *time.Time `json:"check_in_time,omitempty" gorm:"column:check_in_time"`
	CheckInLocation  *string    `json:"check_in_location,omitempty" gorm:"column:check_in_location"`
	CheckOutTime     *time.Time `json:"check_out_time,omitempty" gorm:"column:check_out_time"`
	CheckOutLocation *string    `json:"check_out_location,omitempty" gorm:"column:check_out_location"`
	TotalHours       *float64   `json:"total_hours,omitempty" gorm:"column:total_hours"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Entry) TableName() string {
	return "attendance"
}

func (e *Entry) IsOpen() bool {
	return e.CheckInTime != nil && e.CheckOutTime == nil
}

func (e *Entry) IsCompleted() bool {
	return e.CheckInTime != nil && e.CheckOutTime != nil
}

func (e *Entry) Status() string {
	if e.IsCompleted() {
		return StatusPresent
	}
	return StatusIncomplete
}

// DateOf maps an instant to its calendar-day marker in the organizational
// timezone. The marker is stored as UTC midnight so comparisons are exact
// regardless of driver timezone handling.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// RoundHours keeps two decimal places, the precision the ledger stores.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// Statistics summarizes one user's calendar month.
type Statistics struct {
	// TotalDays counts calendar days already elapsed in the period: the
	// full month length for past months, days 1..today for the current
	// month, zero for future months. It is the denominator policy for
	// absence reporting, fixed here so reports are comparable.
	TotalDays          int     `json:"total_days"`
	PresentDays        int     `json:"present_days"`
	IncompleteDays     int     `json:"incomplete_days"`
	TotalHours         float64 `json:"total_hours"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
}

// Timesheet is the aggregator output: the month's entries date-ascending
// plus the derived statistics. Summing TotalHours over Records always equals
// Statistics.TotalHours, both come from the same stored values.
type Timesheet struct {
	Year       int        `json:"year"`
	Month      time.Month `json:"month"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Records    []*Entry   `json:"records"`
	Statistics Statistics `json:"statistics"`
}

var (
	ErrEmployeeNotFound  = errors.New("employee not found or inactive")
	ErrLocationNotFound  = errors.New("invalid or inactive location")
	ErrTOTPNotConfigured = errors.New("totp not enabled for this employee")
	ErrInvalidTOTPCode   = errors.New("invalid totp code")
	ErrEntryNotFound     = errors.New("attendance entry not found")
	ErrInvalidPeriod     = errors.New("invalid reporting period")
)
