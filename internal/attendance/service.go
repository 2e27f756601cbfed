package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/core/events"
	"github.com/frahmantamala/attendance-tracker/internal/location"
	"github.com/frahmantamala/attendance-tracker/internal/user"
)

// Repository persists the daily ledger. CreateCheckIn and SetCheckOut are
// conditional writes: both report whether this call performed the
// transition, so concurrent submissions collapse to exactly one winner.
type Repository interface {
	FindByUserAndDate(ctx context.Context, userID int64, date time.Time) (*Entry, error)
	CreateCheckIn(ctx context.Context, entry *Entry) (bool, error)
	SetCheckOut(ctx context.Context, entryID int64, at time.Time, locationName string, hours float64) (bool, error)
	ListRange(ctx context.Context, userID int64, from, to time.Time) ([]*Entry, error)
}

type UserDirectory interface {
	FindActiveByEmployeeID(employeeID string) (*user.User, error)
	GetByID(id int64) (*user.User, error)
}

type LocationDirectory interface {
	FindActiveByTerminalID(terminalID string) (*location.Location, error)
}

// VerifyFunc checks a submitted code against a shared secret.
type VerifyFunc func(secret, code string, windowSteps uint) bool

type Service struct {
	repo        Repository
	users       UserDirectory
	locations   LocationDirectory
	verify      VerifyFunc
	windowSteps uint
	tz          *time.Location
	clock       func() time.Time
	eventBus    *events.Bus
	logger      *slog.Logger
}

func NewService(
	repo Repository,
	users UserDirectory,
	locations LocationDirectory,
	verify VerifyFunc,
	windowSteps uint,
	tz *time.Location,
	eventBus *events.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		locations:   locations,
		verify:      verify,
		windowSteps: windowSteps,
		tz:          tz,
		clock:       time.Now,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// WithClock overrides the time source. Tests use it to pin the day.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Mark runs one kiosk submission through the gate and the state machine.
// Preconditions fail in a fixed order: employee, TOTP enrollment, code,
// terminal. Only after all pass does the day transition.
func (s *Service) Mark(ctx context.Context, dto MarkDTO) (*MarkResult, error) {
	u, err := s.users.FindActiveByEmployeeID(dto.EmployeeID)
	if err != nil {
		if err == user.ErrNotFound {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("lookup employee: %w", err)
	}

	if !u.HasTOTPConfigured() {
		return nil, ErrTOTPNotConfigured
	}

	if !s.verify(u.TOTPSecret, dto.TOTPCode, s.windowSteps) {
		s.logger.Warn("totp verification failed", "employee_id", dto.EmployeeID)
		return nil, ErrInvalidTOTPCode
	}

	loc, err := s.locations.FindActiveByTerminalID(dto.TerminalID)
	if err != nil {
		if err == location.ErrNotFound {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("lookup terminal: %w", err)
	}

	now := s.clock()
	date := DateOf(now, s.tz)

	candidate := &Entry{
		UserID:          u.ID,
		Date:            date,
		CheckInTime:     &now,
		CheckInLocation: &loc.Name,
	}
	created, err := s.repo.CreateCheckIn(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("create check-in: %w", err)
	}
	if created {
		s.eventBus.Publish(ctx, events.NewAttendanceCheckedIn(u.ID, u.EmployeeID, dto.TerminalID, now))
		return &MarkResult{
			Action:       OutcomeCheckIn,
			Message:      fmt.Sprintf("Welcome, %s. Checked in at %s.", u.Name, loc.Name),
			Employee:     MarkEmployee{Name: u.Name, EmployeeID: u.EmployeeID},
			Date:         date.Format("2006-01-02"),
			CheckInTime:  &now,
			Location:     loc.Name,
		}, nil
	}

	// Lost the insert: a row for today already exists.
	entry, err := s.repo.FindByUserAndDate(ctx, u.ID, date)
	if err != nil {
		return nil, fmt.Errorf("reload entry: %w", err)
	}

	if entry.IsOpen() {
		hours := RoundHours(now.Sub(*entry.CheckInTime).Hours())
		updated, err := s.repo.SetCheckOut(ctx, entry.ID, now, loc.Name, hours)
		if err != nil {
			return nil, fmt.Errorf("set check-out: %w", err)
		}
		if updated {
			s.eventBus.Publish(ctx, events.NewAttendanceCheckedOut(u.ID, u.EmployeeID, dto.TerminalID, now, hours))
			return &MarkResult{
				Action:       OutcomeCheckOut,
				Message:      fmt.Sprintf("Goodbye, %s. You worked %.2f hours today.", u.Name, hours),
				Employee:     MarkEmployee{Name: u.Name, EmployeeID: u.EmployeeID},
				Date:         date.Format("2006-01-02"),
				CheckInTime:  entry.CheckInTime,
				CheckOutTime: &now,
				TotalHours:   &hours,
				Location:     loc.Name,
			}, nil
		}
		// A concurrent swipe closed the day first; fall through to the
		// completed response with the stored values.
		entry, err = s.repo.FindByUserAndDate(ctx, u.ID, date)
		if err != nil {
			return nil, fmt.Errorf("reload entry: %w", err)
		}
	}

	return &MarkResult{
		Action:       OutcomeAlreadyCompleted,
		Message:      fmt.Sprintf("%s, your attendance for today is already complete.", u.Name),
		Employee:     MarkEmployee{Name: u.Name, EmployeeID: u.EmployeeID},
		Date:         date.Format("2006-01-02"),
		CheckInTime:  entry.CheckInTime,
		CheckOutTime: entry.CheckOutTime,
		TotalHours:   entry.TotalHours,
		Location:     loc.Name,
	}, nil
}

// TodayStatus reports where an employee stands today without mutating
// anything. The kiosk polls it between swipes.
func (s *Service) TodayStatus(ctx context.Context, employeeID string) (*StatusResult, error) {
	u, err := s.users.FindActiveByEmployeeID(employeeID)
	if err != nil {
		if err == user.ErrNotFound {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("lookup employee: %w", err)
	}

	date := DateOf(s.clock(), s.tz)
	result := &StatusResult{
		EmployeeID:   u.EmployeeID,
		EmployeeName: u.Name,
		Date:         date.Format("2006-01-02"),
		Status:       TodayNotCheckedIn,
	}

	entry, err := s.repo.FindByUserAndDate(ctx, u.ID, date)
	if err != nil {
		if err == ErrEntryNotFound {
			return result, nil
		}
		return nil, fmt.Errorf("load entry: %w", err)
	}

	result.CheckInTime = entry.CheckInTime
	result.CheckOutTime = entry.CheckOutTime
	result.TotalHours = entry.TotalHours
	if entry.IsCompleted() {
		result.Status = TodayCompleted
	} else {
		result.Status = TodayCheckedIn
	}
	return result, nil
}

// MonthlyTimesheet aggregates one user-month from stored entries. Hours are
// summed exactly as written at check-out time, never recomputed from the
// timestamps.
func (s *Service) MonthlyTimesheet(ctx context.Context, q TimesheetQuery) (*Timesheet, error) {
	if err := q.Validate(); err != nil {
		return nil, ErrInvalidPeriod
	}

	start := time.Date(q.Year, q.Month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	records, err := s.repo.ListRange(ctx, q.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	today := DateOf(s.clock(), s.tz)
	stats := Statistics{}
	switch {
	case end.Before(today):
		stats.TotalDays = end.Day()
	case start.After(today):
		stats.TotalDays = 0
	default:
		stats.TotalDays = today.Day()
	}

	for _, e := range records {
		if e.IsCompleted() {
			stats.PresentDays++
			if e.TotalHours != nil {
				stats.TotalHours += *e.TotalHours
			}
		} else {
			stats.IncompleteDays++
		}
	}
	if stats.PresentDays > 0 {
		stats.AverageHoursPerDay = stats.TotalHours / float64(stats.PresentDays)
	}

	return &Timesheet{
		Year:       q.Year,
		Month:      q.Month,
		StartDate:  start,
		EndDate:    end,
		Records:    records,
		Statistics: stats,
	}, nil
}

// CurrentPeriod gives the default timesheet period in the organizational
// timezone.
func (s *Service) CurrentPeriod() (int, time.Month) {
	now := s.clock().In(s.tz)
	return now.Year(), now.Month()
}
