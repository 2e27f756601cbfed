package report_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-tracker/internal/report"
)

func TestReport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Suite")
}

var _ = Describe("BuildTimesheetWorkbook", func() {
	var data *report.Timesheet

	BeforeEach(func() {
		hours := 8.5
		data = &report.Timesheet{
			EmployeeName: "John Doe",
			EmployeeID:   "E001",
			Year:         2026,
			Month:        time.March,
			Rows: []report.Row{
				{
					Date:     "2026-03-02",
					CheckIn:  "09:00:00",
					CheckOut: "17:30:00",
					Location: "Main Lobby",
					Hours:    &hours,
					Status:   "present",
				},
				{
					Date:    "2026-03-03",
					CheckIn: "09:05:00",
					Status:  "incomplete",
				},
			},
			Summary: report.Summary{
				TotalDays:          10,
				PresentDays:        1,
				IncompleteDays:     1,
				TotalHours:         8.5,
				AverageHoursPerDay: 8.5,
			},
		}
	})

	It("writes the employee header and period", func() {
		f, err := report.BuildTimesheetWorkbook(data)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		v, err := f.GetCellValue("Timesheet", "B1")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("John Doe (E001)"))

		v, err = f.GetCellValue("Timesheet", "B2")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("March 2026"))
	})

	It("writes one row per day with the display values", func() {
		f, err := report.BuildTimesheetWorkbook(data)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		v, err := f.GetCellValue("Timesheet", "A5")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("2026-03-02"))

		v, err = f.GetCellValue("Timesheet", "E5")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("8.5"))

		v, err = f.GetCellValue("Timesheet", "C6")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeEmpty())

		v, err = f.GetCellValue("Timesheet", "F6")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("incomplete"))
	})

	It("drops the default sheet", func() {
		f, err := report.BuildTimesheetWorkbook(data)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		Expect(f.GetSheetList()).To(Equal([]string{"Timesheet"}))
	})

	It("writes the summary block below the rows", func() {
		f, err := report.BuildTimesheetWorkbook(data)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		v, err := f.GetCellValue("Timesheet", "A8")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("Working Days Elapsed"))

		v, err = f.GetCellValue("Timesheet", "B11")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("8.5"))
	})
})
