package location

import "errors"

type CreateLocationDTO struct {
	Name        string `json:"name"`
	TerminalID  string `json:"terminal_id"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

func (dto CreateLocationDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.TerminalID == "" {
		return errors.New("terminal_id is required")
	}
	return nil
}

// UpdateLocationDTO carries partial updates; nil fields are left untouched.
// The terminal ID is immutable, kiosks in the field are configured with it.
type UpdateLocationDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (dto UpdateLocationDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}
