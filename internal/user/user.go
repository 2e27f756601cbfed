package user

import (
	"errors"
	"time"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// User is an employee record. The TOTP secret lives here after setup; the
// enabled flag only flips once the user has verified a generated code, so a
// secret on file does not by itself authorize kiosk swipes.
type User struct {
	ID                 int64      `json:"id" gorm:"primaryKey"`
	EmployeeID         string     `json:"employee_id" gorm:"column:employee_id;uniqueIndex;not null"`
	Name               string     `json:"name" gorm:"not null"`
	Email              string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash       string     `json:"-" gorm:"column:password_hash;not null"`
	Role               string     `json:"role" gorm:"default:employee"`
	Department         string     `json:"department"`
	Position           string     `json:"position"`
	ReportingManagerID *int64     `json:"reporting_manager_id,omitempty" gorm:"column:reporting_manager_id"`
	Manager            *User      `json:"manager,omitempty" gorm:"foreignKey:ReportingManagerID"`
	TOTPSecret         string     `json:"-" gorm:"column:totp_secret"`
	TOTPEnabled        bool       `json:"totp_enabled" gorm:"column:totp_enabled;default:false"`
	IsActive           bool       `json:"is_active" gorm:"column:is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager reports manager-level access; admins pass manager checks.
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

func (u *User) HasTOTPConfigured() bool {
	return u.TOTPEnabled && u.TOTPSecret != ""
}

func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Summary is the trimmed shape embedded in other responses, e.g. the
// reporting manager on a user listing.
type Summary struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:         u.ID,
		EmployeeID: u.EmployeeID,
		Name:       u.Name,
		Email:      u.Email,
	}
}

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user with this email or employee ID already exists")
)
