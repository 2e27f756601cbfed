package postgres

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
)

func TestAttendanceRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Repository Suite")
}

var _ = Describe("AttendanceRepository", func() {
	var (
		db   *gorm.DB
		repo *AttendanceRepository
		ctx  context.Context
		day  time.Time
	)

	checkIn := func(userID int64, at time.Time, locationName string) *attendance.Entry {
		entry := &attendance.Entry{
			UserID:          userID,
			Date:            day,
			CheckInTime:     &at,
			CheckInLocation: &locationName,
		}
		created, err := repo.CreateCheckIn(ctx, entry)
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(BeTrue())
		return entry
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&attendance.Entry{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewAttendanceRepository(db)
		ctx = context.Background()
		day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("CreateCheckIn", func() {
		It("should insert the first entry for a user and day", func() {
			at := day.Add(9 * time.Hour)
			entry := checkIn(1, at, "Main Lobby")

			Expect(entry.ID).To(BeNumerically(">", 0))
		})

		It("should refuse a second entry for the same user and day", func() {
			at := day.Add(9 * time.Hour)
			checkIn(1, at, "Main Lobby")

			later := day.Add(10 * time.Hour)
			duplicate := &attendance.Entry{
				UserID:      1,
				Date:        day,
				CheckInTime: &later,
			}
			created, err := repo.CreateCheckIn(ctx, duplicate)

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())
		})

		It("should allow entries for different users on the same day", func() {
			at := day.Add(9 * time.Hour)
			checkIn(1, at, "Main Lobby")
			checkIn(2, at, "Warehouse")
		})

		It("should allow entries for the same user on different days", func() {
			at := day.Add(9 * time.Hour)
			checkIn(1, at, "Main Lobby")

			day = day.AddDate(0, 0, 1)
			checkIn(1, day.Add(9*time.Hour), "Main Lobby")
		})
	})

	Describe("FindByUserAndDate", func() {
		It("should return the stored entry", func() {
			at := day.Add(9 * time.Hour)
			checkIn(1, at, "Main Lobby")

			entry, err := repo.FindByUserAndDate(ctx, 1, day)

			Expect(err).NotTo(HaveOccurred())
			Expect(entry.UserID).To(Equal(int64(1)))
			Expect(entry.CheckInTime.Equal(at)).To(BeTrue())
			Expect(*entry.CheckInLocation).To(Equal("Main Lobby"))
			Expect(entry.CheckOutTime).To(BeNil())
		})

		It("should return a not found error when no entry exists", func() {
			_, err := repo.FindByUserAndDate(ctx, 1, day)

			Expect(err).To(Equal(attendance.ErrEntryNotFound))
		})
	})

	Describe("SetCheckOut", func() {
		It("should close an open entry exactly once", func() {
			at := day.Add(9 * time.Hour)
			entry := checkIn(1, at, "Main Lobby")

			out := day.Add(17*time.Hour + 30*time.Minute)
			updated, err := repo.SetCheckOut(ctx, entry.ID, out, "Main Lobby", 8.5)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(BeTrue())

			stored, err := repo.FindByUserAndDate(ctx, 1, day)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.CheckOutTime.Equal(out)).To(BeTrue())
			Expect(*stored.TotalHours).To(Equal(8.5))
		})

		It("should refuse to close an already closed entry", func() {
			at := day.Add(9 * time.Hour)
			entry := checkIn(1, at, "Main Lobby")

			out := day.Add(17 * time.Hour)
			updated, err := repo.SetCheckOut(ctx, entry.ID, out, "Main Lobby", 8.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(BeTrue())

			updated, err = repo.SetCheckOut(ctx, entry.ID, out.Add(time.Hour), "Main Lobby", 9.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(BeFalse())

			stored, err := repo.FindByUserAndDate(ctx, 1, day)
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored.TotalHours).To(Equal(8.0))
		})
	})

	Describe("ListRange", func() {
		It("should return a user's entries date-ascending", func() {
			for _, d := range []int{12, 10, 11} {
				day = time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
				checkIn(1, day.Add(9*time.Hour), "Main Lobby")
			}

			from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
			entries, err := repo.ListRange(ctx, 1, from, to)

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(3))
			Expect(entries[0].Date.Day()).To(Equal(10))
			Expect(entries[1].Date.Day()).To(Equal(11))
			Expect(entries[2].Date.Day()).To(Equal(12))
		})

		It("should exclude other users and out-of-range days", func() {
			checkIn(1, day.Add(9*time.Hour), "Main Lobby")
			checkIn(2, day.Add(9*time.Hour), "Warehouse")

			day = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
			checkIn(1, day.Add(9*time.Hour), "Main Lobby")

			from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
			entries, err := repo.ListRange(ctx, 1, from, to)

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].UserID).To(Equal(int64(1)))
		})
	})
})
