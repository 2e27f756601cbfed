package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByEmail(email string) (int64, string, bool, error) {
	var userID int64
	var passwordHash string
	var isActive bool

	query := `SELECT id, password_hash, is_active FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash, &isActive); err != nil {
		if err == sql.ErrNoRows {
			return 0, "", false, fmt.Errorf("user not found")
		}
		return 0, "", false, err
	}
	return userID, passwordHash, isActive, nil
}

func (r *Repository) GetAuthUserByID(userID int64) (*auth.User, error) {
	var u auth.User

	query := `SELECT id, employee_id, name, email, role, COALESCE(totp_secret, ''), totp_enabled, is_active
	          FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&u.ID, &u.EmployeeID, &u.Name, &u.Email, &u.Role, &u.TOTPSecret, &u.TOTPEnabled, &u.IsActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) SetTOTPSecret(userID int64, secret string) error {
	return r.db.Exec(`UPDATE users SET totp_secret = ?, updated_at = ? WHERE id = ?`,
		secret, time.Now(), userID).Error
}

func (r *Repository) EnableTOTP(userID int64) error {
	return r.db.Exec(`UPDATE users SET totp_enabled = ?, updated_at = ? WHERE id = ?`,
		true, time.Now(), userID).Error
}
