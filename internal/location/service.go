package location

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// CreateLocationRequest carries data to create a location.
type CreateLocationRequest struct {
	Name              string
	Address           string
	Description       string
	OpeningHoursStart string
	OpeningHoursEnd   string
	Opening           bool
}

// UpdateLocationRequest carries data for partial updates.
type UpdateLocationRequest struct {
	Name              *string
	Address           *string
	Description       *string
	OpeningHoursStart *string
	OpeningHoursEnd   *string
	Opening           *bool
}

type Service interface {
	Create(ctx context.Context, req CreateLocationRequest) (*Location, error)
	GetByID(ctx context.Context, id string) (*Location, error)
	List(ctx context.Context, filter LocationFilter) ([]*Location, int, error)
	Update(ctx context.Context, id string, req UpdateLocationRequest) (*Location, error)
	Delete(ctx context.Context, id string) error
}

// GridInvalidator drops the cached day grids of a location.
type GridInvalidator interface {
	Invalidate(ctx context.Context, locationID string) error
}

type service struct {
	repo  Repository
	grids GridInvalidator
	log   *zap.Logger
}

func NewService(repo Repository, grids GridInvalidator, log *zap.Logger) Service {
	return &service{repo: repo, grids: grids, log: log}
}

// validateLocation checks the logical rules for a Location struct.
func validateLocation(loc *Location) error {
	if strings.TrimSpace(loc.Name) == "" {
		return ErrNameRequired
	}

	start, err1 := ParseClock(loc.OpeningHoursStart)
	end, err2 := ParseClock(loc.OpeningHoursEnd)
	if err1 != nil || err2 != nil {
		return ErrInvalidOpeningHours
	}

	// Single-day operation hours only.
	if start >= end {
		return ErrInvalidOpeningHours
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	loc := &Location{
		Name:              strings.TrimSpace(req.Name),
		Address:           req.Address,
		Description:       req.Description,
		OpeningHoursStart: req.OpeningHoursStart,
		OpeningHoursEnd:   req.OpeningHoursEnd,
		Opening:           req.Opening,
	}

	if err := validateLocation(loc); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter LocationFilter) ([]*Location, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateLocationRequest) (*Location, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply non-nil fields
	if req.Name != nil {
		loc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.Description != nil {
		loc.Description = *req.Description
	}
	if req.OpeningHoursStart != nil {
		loc.OpeningHoursStart = *req.OpeningHoursStart
	}
	if req.OpeningHoursEnd != nil {
		loc.OpeningHoursEnd = *req.OpeningHoursEnd
	}
	if req.Opening != nil {
		loc.Opening = *req.Opening
	}

	if err := validateLocation(loc); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Delete removes the location; its rooms and bookings go with it, so its cached grids are dropped too.
func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.grids.Invalidate(ctx, id); err != nil {
		s.log.Warn("failed to invalidate grid cache", zap.String("location_id", id), zap.Error(err))
	}
	return nil
}
