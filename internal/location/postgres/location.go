package postgres

import (
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/location"
	"gorm.io/gorm"
)

// LocationRepository implements the location.Repository interface using GORM
type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) location.Repository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) GetByID(id int64) (*location.Location, error) {
	var loc location.Location
	err := r.db.Where("id = ?", id).First(&loc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, location.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) FindActiveByTerminalID(terminalID string) (*location.Location, error) {
	var loc location.Location
	err := r.db.Where("terminal_id = ? AND is_active = ?", terminalID, true).First(&loc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, location.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) List() ([]*location.Location, error) {
	var locations []*location.Location
	err := r.db.Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *LocationRepository) ListActive() ([]*location.Location, error) {
	var locations []*location.Location
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *LocationRepository) Create(loc *location.Location) error {
	return r.db.Create(loc).Error
}

func (r *LocationRepository) Update(loc *location.Location) error {
	loc.UpdatedAt = time.Now()
	return r.db.Save(loc).Error
}
