package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	"github.com/frahmantamala/attendance-tracker/internal/report"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/frahmantamala/attendance-tracker/internal/user"
)

type ServiceAPI interface {
	Mark(ctx context.Context, dto MarkDTO) (*MarkResult, error)
	TodayStatus(ctx context.Context, employeeID string) (*StatusResult, error)
	MonthlyTimesheet(ctx context.Context, q TimesheetQuery) (*Timesheet, error)
	CurrentPeriod() (int, time.Month)
}

type Handler struct {
	*transport.BaseHandler
	service ServiceAPI
	users   UserDirectory
}

func NewHandler(service ServiceAPI, users UserDirectory, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		service:     service,
		users:       users,
	}
}

// Mark handles the kiosk swipe. The endpoint is unauthenticated; the TOTP
// code is the credential.
func (h *Handler) Mark(w http.ResponseWriter, r *http.Request) {
	var dto MarkDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.service.Mark(ctx, dto)
	if err != nil {
		h.HandleServiceError(w, h.mapMarkError(err))
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) mapMarkError(err error) error {
	switch err {
	case ErrEmployeeNotFound:
		return internal.NewNotFoundError("employee not found or inactive", internal.ErrCodeEmployeeNotFound)
	case ErrTOTPNotConfigured:
		return internal.NewNotConfiguredError("authenticator app is not set up for this employee", internal.ErrCodeTOTPNotConfigured)
	case ErrInvalidTOTPCode:
		return internal.NewUnauthorizedError("invalid authentication code", internal.ErrCodeInvalidTOTPCode)
	case ErrLocationNotFound:
		return internal.NewNotFoundError("invalid or inactive terminal", internal.ErrCodeLocationNotFound)
	default:
		h.Logger.Error("mark attendance failed", "error", err)
		return internal.NewInternalError("could not record attendance", err)
	}
}

// Status reports today's state for one employee, for the kiosk display.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		h.WriteError(w, http.StatusBadRequest, "employee id is required")
		return
	}

	result, err := h.service.TodayStatus(r.Context(), employeeID)
	if err != nil {
		if err == ErrEmployeeNotFound {
			h.HandleServiceError(w, internal.NewNotFoundError("employee not found or inactive", internal.ErrCodeEmployeeNotFound))
			return
		}
		h.Logger.Error("attendance status failed", "error", err)
		h.HandleServiceError(w, internal.NewInternalError("could not load attendance status", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// Timesheet returns a monthly timesheet. Everyone may read their own;
// managers may read direct reports; admins may read anyone.
func (h *Handler) Timesheet(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTimesheetTarget(w, r)
	if err != nil {
		return
	}

	q, appErr := h.parsePeriod(r, target.ID)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	sheet, err := h.service.MonthlyTimesheet(r.Context(), q)
	if err != nil {
		if err == ErrInvalidPeriod {
			h.HandleServiceError(w, internal.NewValidationError("invalid year or month", internal.ErrCodeInvalidPeriod))
			return
		}
		h.Logger.Error("timesheet failed", "error", err, "user_id", target.ID)
		h.HandleServiceError(w, internal.NewInternalError("could not build timesheet", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employee_id":   target.EmployeeID,
		"employee_name": target.Name,
		"timesheet":     sheet,
	})
}

// ExportTimesheet streams the same month as an xlsx workbook.
func (h *Handler) ExportTimesheet(w http.ResponseWriter, r *http.Request) {
	target, err := h.resolveTimesheetTarget(w, r)
	if err != nil {
		return
	}

	q, appErr := h.parsePeriod(r, target.ID)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	sheet, err := h.service.MonthlyTimesheet(r.Context(), q)
	if err != nil {
		if err == ErrInvalidPeriod {
			h.HandleServiceError(w, internal.NewValidationError("invalid year or month", internal.ErrCodeInvalidPeriod))
			return
		}
		h.Logger.Error("timesheet export failed", "error", err, "user_id", target.ID)
		h.HandleServiceError(w, internal.NewInternalError("could not build timesheet", err))
		return
	}

	workbook, err := report.BuildTimesheetWorkbook(timesheetReport(sheet, target))
	if err != nil {
		h.Logger.Error("timesheet workbook failed", "error", err, "user_id", target.ID)
		h.HandleServiceError(w, internal.NewInternalError("could not render timesheet", err))
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("timesheet_%s_%04d-%02d.xlsx", target.EmployeeID, q.Year, q.Month)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := workbook.Write(w); err != nil {
		h.Logger.Error("timesheet write failed", "error", err, "user_id", target.ID)
	}
}

// timesheetReport flattens a timesheet into the renderer's display values.
func timesheetReport(sheet *Timesheet, target *user.User) *report.Timesheet {
	rows := make([]report.Row, 0, len(sheet.Records))
	for _, entry := range sheet.Records {
		row := report.Row{
			Date:   entry.Date.Format("2006-01-02"),
			Status: entry.Status(),
			Hours:  entry.TotalHours,
		}
		if entry.CheckInTime != nil {
			row.CheckIn = entry.CheckInTime.Format("15:04:05")
		}
		if entry.CheckOutTime != nil {
			row.CheckOut = entry.CheckOutTime.Format("15:04:05")
		}
		if entry.CheckInLocation != nil {
			row.Location = *entry.CheckInLocation
		}
		rows = append(rows, row)
	}

	return &report.Timesheet{
		EmployeeName: target.Name,
		EmployeeID:   target.EmployeeID,
		Year:         sheet.Year,
		Month:        sheet.Month,
		Rows:         rows,
		Summary: report.Summary{
			TotalDays:          sheet.Statistics.TotalDays,
			PresentDays:        sheet.Statistics.PresentDays,
			IncompleteDays:     sheet.Statistics.IncompleteDays,
			TotalHours:         sheet.Statistics.TotalHours,
			AverageHoursPerDay: sheet.Statistics.AverageHoursPerDay,
		},
	}
}

// resolveTimesheetTarget picks the user whose timesheet is requested and
// enforces the visibility rules. On failure it writes the response itself
// and returns a non-nil error as a signal to stop.
func (h *Handler) resolveTimesheetTarget(w http.ResponseWriter, r *http.Request) (*user.User, error) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, fmt.Errorf("no user in context")
	}

	targetID := actor.ID
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "user_id must be an integer")
			return nil, err
		}
		targetID = id
	}

	target, err := h.users.GetByID(targetID)
	if err != nil {
		if err == user.ErrNotFound {
			h.HandleServiceError(w, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound))
			return nil, err
		}
		h.Logger.Error("timesheet target lookup failed", "error", err, "user_id", targetID)
		h.HandleServiceError(w, internal.NewInternalError("could not load user", err))
		return nil, err
	}

	if target.ID == actor.ID || actor.IsAdmin() {
		return target, nil
	}
	if actor.IsManager() && target.ReportingManagerID != nil && *target.ReportingManagerID == actor.ID {
		return target, nil
	}

	h.HandleServiceError(w, internal.NewForbiddenError("you may not view this user's timesheet", internal.ErrCodeAccessDenied))
	return nil, fmt.Errorf("access denied")
}

func (h *Handler) parsePeriod(r *http.Request, userID int64) (TimesheetQuery, *internal.AppError) {
	year, month := h.service.CurrentPeriod()
	q := TimesheetQuery{UserID: userID, Year: year, Month: month}

	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return q, internal.NewValidationError("year must be an integer", internal.ErrCodeInvalidPeriod)
		}
		q.Year = y
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil {
			return q, internal.NewValidationError("month must be an integer", internal.ErrCodeInvalidPeriod)
		}
		q.Month = time.Month(m)
	}
	return q, nil
}
