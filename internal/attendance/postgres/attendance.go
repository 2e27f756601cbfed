package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) FindByUserAndDate(ctx context.Context, userID int64, date time.Time) (*attendance.Entry, error) {
	var entry attendance.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendance.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// CreateCheckIn inserts today's row if none exists. The unique index on
// (user_id, date) plus ON CONFLICT DO NOTHING makes concurrent first swipes
// race-safe: exactly one insert wins, the rest see zero rows affected.
func (r *AttendanceRepository) CreateCheckIn(ctx context.Context, entry *attendance.Entry) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetCheckOut closes an open entry. The check_out_time IS NULL guard makes
// the update conditional, so a second concurrent swipe affects zero rows.
func (r *AttendanceRepository) SetCheckOut(ctx context.Context, entryID int64, at time.Time, locationName string, hours float64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&attendance.Entry{}).
		Where("id = ? AND check_out_time IS NULL", entryID).
		Updates(map[string]interface{}{
			"check_out_time":     at,
			"check_out_location": locationName,
			"total_hours":        hours,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AttendanceRepository) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]*attendance.Entry, error) {
	var entries []*attendance.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
