package room

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/nekogravitycat/room-booking-backend/internal/location"
)

type CreateRequest struct {
	Name       string
	LocationID string
}

type UpdateRequest struct {
	Name *string
}

// GridInvalidator drops the cached day grids of a location.
type GridInvalidator interface {
	Invalidate(ctx context.Context, locationID string) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	ListByLocation(ctx context.Context, locationID string) ([]*Room, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	locService location.Service
	grids      GridInvalidator
	log        *zap.Logger
}

func NewService(repo Repository, locService location.Service, grids GridInvalidator, log *zap.Logger) Service {
	return &service{
		repo:       repo,
		locService: locService,
		grids:      grids,
		log:        log,
	}
}

// invalidate is best effort: a stale grid expires with its TTL anyway.
func (s *service) invalidate(ctx context.Context, locationID string) {
	if err := s.grids.Invalidate(ctx, locationID); err != nil {
		s.log.Warn("failed to invalidate grid cache",
			zap.String("location_id", locationID),
			zap.Error(err),
		)
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if req.LocationID == "" {
		return nil, ErrInvalidLocation
	}

	// Validation: Check if Location exists
	if _, err := s.locService.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, location.ErrNotFound) {
			return nil, ErrInvalidLocation
		}
		return nil, err
	}

	rm := &Room{
		Name:       name,
		LocationID: req.LocationID,
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	s.invalidate(ctx, rm.LocationID)
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListByLocation(ctx context.Context, locationID string) ([]*Room, error) {
	return s.repo.ListByLocation(ctx, locationID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		rm.Name = name
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	s.invalidate(ctx, rm.LocationID)
	return rm, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, rm.LocationID)
	return nil
}
