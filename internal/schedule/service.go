package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	"github.com/nekogravitycat/room-booking-backend/internal/location"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/cache"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	"github.com/nekogravitycat/room-booking-backend/internal/timegrid"
)

// Viewer identifies who is looking at the grid.
type Viewer struct {
	UserID        string
	IsSystemAdmin bool
}

// Privileged viewers see booker names and booking IDs.
func (v Viewer) Privileged() bool {
	return v.IsSystemAdmin
}

type LocationSource interface {
	GetByID(ctx context.Context, id string) (*location.Location, error)
}

type RoomSource interface {
	ListByLocation(ctx context.Context, locationID string) ([]*room.Room, error)
}

type BookingSource interface {
	ListInRange(ctx context.Context, locationID string, from, to time.Time) ([]*booking.Booking, error)
}

// DayGrid is the grid of one location on one calendar day.
type DayGrid struct {
	Location *location.Location
	Date     string // YYYY-MM-DD
	Grid     timegrid.Grid
}

type Service interface {
	// DayGrid builds the grid of the location for the calendar day of date.
	DayGrid(ctx context.Context, locationID string, date time.Time, viewer Viewer) (*DayGrid, error)
}

type service struct {
	locations LocationSource
	rooms     RoomSource
	bookings  BookingSource
	cache     cache.GridCache
	tz        *time.Location
	log       *zap.Logger
}

func NewService(
	locations LocationSource,
	rooms RoomSource,
	bookings BookingSource,
	gridCache cache.GridCache,
	tz *time.Location,
	log *zap.Logger,
) Service {
	return &service{
		locations: locations,
		rooms:     rooms,
		bookings:  bookings,
		cache:     gridCache,
		tz:        tz,
		log:       log,
	}
}

// snapshot is the cached grid input; Build is cheap enough to rerun on every hit.
type snapshot struct {
	Rooms    []timegrid.Room    `json:"rooms"`
	Bookings []timegrid.Booking `json:"bookings"`
}

func cacheKey(date string, viewer Viewer) string {
	if viewer.Privileged() {
		return date + ":full"
	}
	return date + ":public"
}

func (s *service) DayGrid(ctx context.Context, locationID string, date time.Time, viewer Viewer) (*DayGrid, error) {
	loc, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	from, to := Window(date, s.tz)
	day := from.Format(time.DateOnly)
	key := cacheKey(day, viewer)

	cachedSnap, version, state := s.cached(ctx, locationID, key)
	if state == cacheHit {
		return &DayGrid{Location: loc, Date: day, Grid: timegrid.Build(cachedSnap.Rooms, cachedSnap.Bookings)}, nil
	}

	rooms, err := s.rooms.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	bookings, err := s.bookings.ListInRange(ctx, locationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}

	snap := snapshot{
		Rooms:    make([]timegrid.Room, len(rooms)),
		Bookings: make([]timegrid.Booking, 0, len(bookings)),
	}
	for i, r := range rooms {
		snap.Rooms[i] = timegrid.Room{ID: r.ID, Name: r.Name}
	}
	for _, b := range bookings {
		if pb, ok := Project(b, from, to, viewer); ok {
			snap.Bookings = append(snap.Bookings, pb)
		}
	}

	if state == cacheMiss {
		s.store(ctx, locationID, version, key, snap)
	}

	return &DayGrid{Location: loc, Date: day, Grid: timegrid.Build(snap.Rooms, snap.Bookings)}, nil
}

type cacheState int

const (
	cacheHit cacheState = iota
	cacheMiss
	// cacheDown means the version is unknown, so nothing may be written back.
	cacheDown
)

// cached reads a snapshot together with the cache version it was looked up at.
// Cache failures degrade to a rebuild.
func (s *service) cached(ctx context.Context, locationID, key string) (snapshot, int64, cacheState) {
	var snap snapshot
	raw, version, err := s.cache.Get(ctx, locationID, key)
	if errors.Is(err, cache.ErrMiss) {
		return snap, version, cacheMiss
	}
	if err != nil {
		s.log.Warn("grid cache read failed", zap.String("location_id", locationID), zap.Error(err))
		return snap, 0, cacheDown
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.log.Warn("discarding undecodable grid cache entry", zap.String("location_id", locationID), zap.Error(err))
		return snapshot{}, version, cacheMiss
	}
	return snap, version, cacheHit
}

// store writes under the version seen before loading, so a concurrent Invalidate wins.
func (s *service) store(ctx context.Context, locationID string, version int64, key string, snap snapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		s.log.Error("encode grid snapshot failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, locationID, version, key, raw); err != nil {
		s.log.Warn("grid cache write failed", zap.String("location_id", locationID), zap.Error(err))
	}
}
