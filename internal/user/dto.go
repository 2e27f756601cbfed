package user

import "errors"

// CreateUserDTO is the admin payload for creating an employee.
type CreateUserDTO struct {
	EmployeeID         string `json:"employee_id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	Role               string `json:"role"`
	ReportingManagerID *int64 `json:"reporting_manager_id,omitempty"`
	Department         string `json:"department"`
	Position           string `json:"position"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.EmployeeID == "" {
		return errors.New("employee_id is required")
	}
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if dto.Role != "" && !ValidRole(dto.Role) {
		return errors.New("role must be one of employee, manager, admin")
	}
	return nil
}

// UpdateUserDTO carries partial admin updates; nil fields are left untouched.
type UpdateUserDTO struct {
	Name               *string `json:"name,omitempty"`
	Email              *string `json:"email,omitempty"`
	Role               *string `json:"role,omitempty"`
	ReportingManagerID *int64  `json:"reporting_manager_id,omitempty"`
	Department         *string `json:"department,omitempty"`
	Position           *string `json:"position,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	if dto.Email != nil && *dto.Email == "" {
		return errors.New("email cannot be empty")
	}
	if dto.Role != nil && !ValidRole(*dto.Role) {
		return errors.New("role must be one of employee, manager, admin")
	}
	return nil
}

// UserResponse is the admin-facing shape with the manager embedded as a
// summary instead of a full record.
type UserResponse struct {
	ID               int64    `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Role             string   `json:"role"`
	Department       string   `json:"department"`
	Position         string   `json:"position"`
	ReportingManager *Summary `json:"reporting_manager,omitempty"`
	TOTPEnabled      bool     `json:"totp_enabled"`
	IsActive         bool     `json:"is_active"`
}

func ToResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		EmployeeID:  u.EmployeeID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Department:  u.Department,
		Position:    u.Position,
		TOTPEnabled: u.TOTPEnabled,
		IsActive:    u.IsActive,
	}
	if u.Manager != nil {
		s := u.Manager.Summary()
		resp.ReportingManager = &s
	}
	return resp
}

func ToResponseSlice(users []*User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToResponse(u)
	}
	return out
}
