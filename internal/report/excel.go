package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Timesheet"

// Timesheet is the renderer's input, one user-month already flattened into
// display values by the caller.
type Timesheet struct {
	EmployeeName string
	EmployeeID   string
	Year         int
	Month        time.Month
	Rows         []Row
	Summary      Summary
}

// Row is one day of the month. Time fields are pre-formatted strings so the
// renderer never touches timezone logic; empty means the event never happened.
type Row struct {
	Date     string
	CheckIn  string
	CheckOut string
	Location string
	Hours    *float64
	Status   string
}

type Summary struct {
	TotalDays          int
	PresentDays        int
	IncompleteDays     int
	TotalHours         float64
	AverageHoursPerDay float64
}

// BuildTimesheetWorkbook renders one user-month as an xlsx workbook. The
// caller owns the file and must Close it.
func BuildTimesheetWorkbook(data *Timesheet) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "Employee")
	f.SetCellValue(sheetName, "B1", fmt.Sprintf("%s (%s)", data.EmployeeName, data.EmployeeID))
	f.SetCellValue(sheetName, "A2", "Period")
	f.SetCellValue(sheetName, "B2", fmt.Sprintf("%s %d", data.Month.String(), data.Year))

	headers := []string{"Date", "Check In", "Check Out", "Location", "Hours", "Status"}
	for i, title := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 4)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, title)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 5
	for _, r := range data.Rows {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.CheckIn)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.CheckOut)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Location)
		if r.Hours != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), *r.Hours)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Status)
		row++
	}

	summary := data.Summary
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Working Days Elapsed")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), summary.TotalDays)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Present Days")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), summary.PresentDays)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Incomplete Days")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), summary.IncompleteDays)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Total Hours")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), summary.TotalHours)
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Average Hours / Day")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), summary.AverageHoursPerDay)

	if err := f.SetColWidth(sheetName, "A", "F", 18); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}

	return f, nil
}
