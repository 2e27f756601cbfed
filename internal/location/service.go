package location

import "log/slog"

// Repository defines the data access methods for locations
type Repository interface {
	GetByID(id int64) (*Location, error)
	FindActiveByTerminalID(terminalID string) (*Location, error)
	List() ([]*Location, error)
	ListActive() ([]*Location, error)
	Create(loc *Location) error
	Update(loc *Location) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) FindActiveByTerminalID(terminalID string) (*Location, error) {
	return s.repo.FindActiveByTerminalID(terminalID)
}

func (s *Service) ListLocations() ([]*Location, error) {
	return s.repo.List()
}

// ListActive returns the locations the kiosk dropdown offers.
func (s *Service) ListActive() ([]*Location, error) {
	return s.repo.ListActive()
}

func (s *Service) CreateLocation(dto CreateLocationDTO) (*Location, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindActiveByTerminalID(dto.TerminalID); err == nil && existing != nil {
		s.logger.Warn("create location rejected: terminal ID taken", "terminal_id", dto.TerminalID)
		return nil, ErrAlreadyExists
	}

	loc := &Location{
		Name:        dto.Name,
		TerminalID:  dto.TerminalID,
		Description: dto.Description,
		Address:     dto.Address,
		IsActive:    true,
	}

	if err := s.repo.Create(loc); err != nil {
		s.logger.Error("failed to create location", "error", err, "terminal_id", dto.TerminalID)
		return nil, err
	}

	s.logger.Info("location created", "location_id", loc.ID, "terminal_id", loc.TerminalID)
	return loc, nil
}

func (s *Service) UpdateLocation(id int64, dto UpdateLocationDTO) (*Location, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	loc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		loc.Name = *dto.Name
	}
	if dto.Description != nil {
		loc.Description = *dto.Description
	}
	if dto.Address != nil {
		loc.Address = *dto.Address
	}
	if dto.IsActive != nil {
		loc.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(loc); err != nil {
		s.logger.Error("failed to update location", "error", err, "location_id", id)
		return nil, err
	}

	s.logger.Info("location updated", "location_id", loc.ID, "is_active", loc.IsActive)
	return loc, nil
}
