package location

import (
	"errors"
	"time"
)

// Location is a physical terminal kiosks submit attendance against. Its name
// is copied by value into ledger entries at write time, so renaming or
// deactivating a location never rewrites history.
type Location struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	TerminalID  string    `json:"terminal_id" gorm:"column:terminal_id;uniqueIndex;not null"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Location) TableName() string {
	return "locations"
}

var (
	ErrNotFound      = errors.New("location not found")
	ErrAlreadyExists = errors.New("location with this terminal ID already exists")
)
