package attendance

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var totpCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// MarkDTO is the kiosk submission. The terminal authenticates the place,
// the TOTP code authenticates the person.
type MarkDTO struct {
	EmployeeID string `json:"employee_id"`
	TOTPCode   string `json:"totp_code"`
	TerminalID string `json:"terminal_id"`
}

func (d *MarkDTO) Validate() error {
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
	d.TOTPCode = strings.TrimSpace(d.TOTPCode)
	d.TerminalID = strings.TrimSpace(d.TerminalID)

	if d.EmployeeID == "" {
		return fmt.Errorf("employee_id is required")
	}
	if d.TerminalID == "" {
		return fmt.Errorf("terminal_id is required")
	}
	if !totpCodePattern.MatchString(d.TOTPCode) {
		return fmt.Errorf("totp_code must be a 6 digit code")
	}
	return nil
}

// MarkEmployee identifies who the transition applied to.
type MarkEmployee struct {
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
}

// MarkResult reports which transition the submission caused.
type MarkResult struct {
	Action       string       `json:"action"`
	Message      string       `json:"message"`
	Employee     MarkEmployee `json:"employee"`
	Date         string       `json:"date"`
	CheckInTime  *time.Time   `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time   `json:"check_out_time,omitempty"`
	TotalHours   *float64     `json:"total_hours,omitempty"`
	Location     string       `json:"location"`
}

// StatusResult answers the kiosk's "where is this employee today" query.
type StatusResult struct {
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Date         string     `json:"date"`
	Status       string     `json:"status"`
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	TotalHours   *float64   `json:"total_hours,omitempty"`
}

// TimesheetQuery identifies one user-month. Year and Month default to the
// current period when the query string omits them.
type TimesheetQuery struct {
	UserID int64
	Year   int
	Month  time.Month
}

func (q *TimesheetQuery) Validate() error {
	if q.Year < 2000 || q.Year > 2100 {
		return fmt.Errorf("year must be between 2000 and 2100")
	}
	if q.Month < time.January || q.Month > time.December {
		return fmt.Errorf("month must be between 1 and 12")
	}
	return nil
}
