package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Repository defines the data access methods for users
type Repository interface {
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	FindByEmployeeID(employeeID string) (*User, error)
	FindActiveByEmployeeID(employeeID string) (*User, error)
	List() ([]*User, error)
	ListManagers() ([]*User, error)
	ListTeam(managerID int64) ([]*User, error)
	Create(u *User) error
	Update(u *User) error
	SetTOTPSecret(userID int64, secret string) error
	EnableTOTP(userID int64) error
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) GetByID(id int64) (*User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) FindActiveByEmployeeID(employeeID string) (*User, error) {
	return s.repo.FindActiveByEmployeeID(employeeID)
}

func (s *Service) ListUsers() ([]*User, error) {
	return s.repo.List()
}

// ListManagers returns active admin/manager users for the reporting-manager
// dropdown in the admin UI.
func (s *Service) ListManagers() ([]*User, error) {
	return s.repo.ListManagers()
}

func (s *Service) ListTeam(managerID int64) ([]*User, error) {
	return s.repo.ListTeam(managerID)
}

func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("create user rejected: email taken", "email", dto.Email)
		return nil, ErrAlreadyExists
	}
	// Deactivated users keep their row, so the employee ID stays taken.
	if existing, err := s.repo.FindByEmployeeID(dto.EmployeeID); err == nil && existing != nil {
		s.logger.Warn("create user rejected: employee ID taken", "employee_id", dto.EmployeeID)
		return nil, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := dto.Role
	if role == "" {
		role = RoleEmployee
	}

	u := &User{
		EmployeeID:         dto.EmployeeID,
		Name:               dto.Name,
		Email:              dto.Email,
		PasswordHash:       string(hash),
		Role:               role,
		Department:         dto.Department,
		Position:           dto.Position,
		ReportingManagerID: dto.ReportingManagerID,
		IsActive:           true,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "employee_id", u.EmployeeID, "role", u.Role)
	return u, nil
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.ReportingManagerID != nil {
		u.ReportingManagerID = dto.ReportingManagerID
	}
	if dto.Department != nil {
		u.Department = *dto.Department
	}
	if dto.Position != nil {
		u.Position = *dto.Position
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", u.ID, "is_active", u.IsActive)
	return u, nil
}

// SetTOTPSecret persists a freshly generated secret without enabling it.
// Enrollment completes in EnableTOTP once the user proves they captured the
// secret by verifying one generated code.
func (s *Service) SetTOTPSecret(userID int64, secret string) error {
	return s.repo.SetTOTPSecret(userID, secret)
}

func (s *Service) EnableTOTP(userID int64) error {
	if err := s.repo.EnableTOTP(userID); err != nil {
		return err
	}
	s.logger.Info("totp enabled", "user_id", userID)
	return nil
}
