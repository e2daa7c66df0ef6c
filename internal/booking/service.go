package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/room-booking-backend/internal/location"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

type CreateRequest struct {
	UserID    string
	RoomID    string
	StartTime time.Time
	EndTime   time.Time
}

type UpdateRequest struct {
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
}

// GridInvalidator drops the cached day grids of a location.
type GridInvalidator interface {
	Invalidate(ctx context.Context, locationID string) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string, viewerUserID string, isSysAdmin bool) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string, isSysAdmin bool) (*Booking, error)
	Delete(ctx context.Context, id string, deleterUserID string, isSysAdmin bool) error

	// ListInRange returns the live bookings of a location intersecting [from, to).
	ListInRange(ctx context.Context, locationID string, from, to time.Time) ([]*Booking, error)
	// Availability returns the free slots of a room on the calendar day of date.
	Availability(ctx context.Context, roomID string, date time.Time) ([]TimeSlot, error)
}

type service struct {
	repo       Repository
	roomSvc    room.Service
	locService location.Service
	grids      GridInvalidator
	tz         *time.Location
	log        *zap.Logger
	now        func() time.Time
}

// NewService creates a booking Service. Day boundaries and opening hours are evaluated in tz.
func NewService(
	repo Repository,
	roomSvc room.Service,
	locService location.Service,
	grids GridInvalidator,
	tz *time.Location,
	log *zap.Logger,
) Service {
	return &service{
		repo:       repo,
		roomSvc:    roomSvc,
		locService: locService,
		grids:      grids,
		tz:         tz,
		log:        log,
		now:        time.Now,
	}
}

func (s *service) invalidate(ctx context.Context, locationID string) {
	if err := s.grids.Invalidate(ctx, locationID); err != nil {
		s.log.Warn("failed to invalidate grid cache",
			zap.String("location_id", locationID),
			zap.Error(err),
		)
	}
}

// aligned reports whether t sits on a slot boundary of its own wall clock.
func aligned(t time.Time) bool {
	sinceMidnight := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	return sinceMidnight%SlotDuration == 0
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// validateSlot checks the shape of [start, end) against the grid and the location's opening hours.
func (s *service) validateSlot(loc *location.Location, start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidTimeRange
	}

	localStart, localEnd := start.In(s.tz), end.In(s.tz)
	if !aligned(localStart) || !aligned(localEnd) {
		return ErrNotAligned
	}
	if !sameDay(localStart, localEnd) {
		return ErrSpansMultipleDays
	}

	open, closeAt, err := loc.OpenWindow(localStart)
	if err != nil {
		return err
	}
	if localStart.Before(open) || localEnd.After(closeAt) {
		return ErrOutsideOpeningHour
	}
	return nil
}

// roomLocation resolves the room and the location it belongs to.
func (s *service) roomLocation(ctx context.Context, roomID string) (*room.Room, *location.Location, error) {
	rm, err := s.roomSvc.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, nil, ErrRoomNotFound
		}
		return nil, nil, err
	}
	loc, err := s.locService.GetByID(ctx, rm.LocationID)
	if err != nil {
		return nil, nil, err
	}
	return rm, loc, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate Time Range
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	// Strict check: StartTime cannot be in the past
	if req.StartTime.Before(s.now()) {
		return nil, ErrStartTimePast
	}

	// 2. Validate Room and its Location
	rm, loc, err := s.roomLocation(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !loc.Opening {
		return nil, ErrLocationClosed
	}
	if err := s.validateSlot(loc, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	// 3. Check for Overlaps
	hasOverlap, err := s.repo.HasOverlap(ctx, req.RoomID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	// 4. Create Booking
	b := &Booking{
		RoomID:       rm.ID,
		RoomName:     rm.Name,
		UserID:       req.UserID,
		LocationID:   loc.ID,
		LocationName: loc.Name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       StatusPending, // Default status
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.invalidate(ctx, b.LocationID)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string, viewerUserID string, isSysAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && b.UserID != viewerUserID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string, isSysAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isBookingOwner := b.UserID == updaterUserID
	if !isSysAdmin && !isBookingOwner {
		return nil, ErrPermissionDenied
	}

	newStatus := b.Status
	if req.Status != nil {
		newStatus = Status(*req.Status)
		if !newStatus.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	timeChanged := req.StartTime != nil || req.EndTime != nil

	// A booking owner can only cancel.
	if !isSysAdmin {
		if timeChanged || newStatus != StatusCancelled {
			return nil, ErrPermissionDenied
		}
	}

	newStart, newEnd := b.StartTime, b.EndTime
	if req.StartTime != nil {
		newStart = *req.StartTime
	}
	if req.EndTime != nil {
		newEnd = *req.EndTime
	}

	if timeChanged {
		if !newEnd.After(newStart) {
			return nil, ErrInvalidTimeRange
		}
		if req.StartTime != nil && newStart.Before(s.now()) {
			return nil, ErrStartTimePast
		}
		_, loc, err := s.roomLocation(ctx, b.RoomID)
		if err != nil {
			return nil, err
		}
		if err := s.validateSlot(loc, newStart, newEnd); err != nil {
			return nil, err
		}
	}

	// Moving a live booking or reviving a cancelled one must not double-book the room.
	reactivated := b.Status == StatusCancelled && newStatus != StatusCancelled
	if newStatus != StatusCancelled && (timeChanged || reactivated) {
		hasOverlap, err := s.repo.HasOverlap(ctx, b.RoomID, newStart, newEnd, b.ID)
		if err != nil {
			return nil, err
		}
		if hasOverlap {
			return nil, ErrTimeConflict
		}
	}

	b.StartTime = newStart
	b.EndTime = newEnd
	b.Status = newStatus

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.invalidate(ctx, b.LocationID)
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterUserID string, isSysAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isSysAdmin && b.UserID != deleterUserID {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, b.LocationID)
	return nil
}

func (s *service) ListInRange(ctx context.Context, locationID string, from, to time.Time) ([]*Booking, error) {
	if !to.After(from) {
		return nil, ErrInvalidTimeRange
	}
	return s.repo.ListInRange(ctx, locationID, from, to)
}

func (s *service) Availability(ctx context.Context, roomID string, date time.Time) ([]TimeSlot, error) {
	_, loc, err := s.roomLocation(ctx, roomID)
	if err != nil {
		return nil, err
	}

	// Only the calendar date of date matters.
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.tz)
	open, closeAt, err := loc.OpenWindow(day)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListRoomInRange(ctx, roomID, open, closeAt)
	if err != nil {
		return nil, err
	}

	return CalculateAvailability(day, loc.OpeningHoursStart, loc.OpeningHoursEnd, bookings)
}
