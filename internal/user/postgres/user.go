package postgres

import (
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Preload("Manager").Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmployeeID looks an employee ID up regardless of lifecycle state.
// Uniqueness checks use it so deactivated users keep their ID reserved.
func (r *UserRepository) FindByEmployeeID(employeeID string) (*user.User, error) {
	var u user.User
	err := r.db.Where("employee_id = ?", employeeID).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindActiveByEmployeeID(employeeID string) (*user.User, error) {
	var u user.User
	err := r.db.Where("employee_id = ? AND is_active = ?", employeeID, true).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Preload("Manager").
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) ListManagers() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Where("role IN ? AND is_active = ?", []string{user.RoleAdmin, user.RoleManager}, true).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) ListTeam(managerID int64) ([]*user.User, error) {
	var users []*user.User
	err := r.db.Where("reporting_manager_id = ? AND is_active = ?", managerID, true).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Omit("Manager").Create(u).Error
}

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Omit("Manager").Save(u).Error
}

func (r *UserRepository) SetTOTPSecret(userID int64, secret string) error {
	return r.db.Model(&user.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"totp_secret": secret,
			"updated_at":  time.Now(),
		}).Error
}

func (r *UserRepository) EnableTOTP(userID int64) error {
	return r.db.Model(&user.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"totp_enabled": true,
			"updated_at":   time.Now(),
		}).Error
}
