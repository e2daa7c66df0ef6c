package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	"github.com/nekogravitycat/room-booking-backend/internal/location"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/cache"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	"github.com/nekogravitycat/room-booking-backend/internal/timegrid"
)

type fakeLocations struct{}

func (fakeLocations) GetByID(_ context.Context, id string) (*location.Location, error) {
	if id != "loc-1" {
		return nil, location.ErrNotFound
	}
	return &location.Location{ID: id, Name: "Main practice", OpeningHoursStart: "08:00:00", OpeningHoursEnd: "22:00:00"}, nil
}

type fakeRooms struct {
	calls int
}

func (f *fakeRooms) ListByLocation(context.Context, string) ([]*room.Room, error) {
	f.calls++
	return []*room.Room{
		{ID: "r1", LocationID: "loc-1", Name: "Room 1"},
		{ID: "r2", LocationID: "loc-1", Name: "Room 2"},
	}, nil
}

type fakeBookings struct {
	items    []*booking.Booking
	from, to time.Time
	// afterList runs once the result has been handed out, like a write landing mid-request.
	afterList func()
}

func (f *fakeBookings) ListInRange(_ context.Context, _ string, from, to time.Time) ([]*booking.Booking, error) {
	f.from, f.to = from, to
	items := append([]*booking.Booking(nil), f.items...)
	if f.afterList != nil {
		hook := f.afterList
		f.afterList = nil
		hook()
	}
	return items, nil
}

type memCache struct {
	entries  map[string][]byte
	versions map[string]int64
	getErr   error
	sets     int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}, versions: map[string]int64{}}
}

func memKey(locationID string, version int64, key string) string {
	return fmt.Sprintf("%s/%d/%s", locationID, version, key)
}

func (m *memCache) Get(_ context.Context, locationID, key string) ([]byte, int64, error) {
	if m.getErr != nil {
		return nil, 0, m.getErr
	}
	ver := m.versions[locationID]
	v, ok := m.entries[memKey(locationID, ver, key)]
	if !ok {
		return nil, ver, cache.ErrMiss
	}
	return v, ver, nil
}

func (m *memCache) Set(_ context.Context, locationID string, version int64, key string, value []byte) error {
	m.sets++
	m.entries[memKey(locationID, version, key)] = value
	return nil
}

func (m *memCache) Invalidate(_ context.Context, locationID string) error {
	m.versions[locationID]++
	return nil
}

func berlinAt(h, m int) time.Time {
	return time.Date(2026, 5, 4, h, m, 0, 0, berlin)
}

func newFixture(c cache.GridCache) (Service, *fakeRooms, *fakeBookings) {
	rooms := &fakeRooms{}
	bookings := &fakeBookings{items: []*booking.Booking{
		{ID: "b1", RoomID: "r1", UserName: "Dr. A", StartTime: berlinAt(9, 0), EndTime: berlinAt(10, 0)},
		{ID: "b2", RoomID: "r2", UserName: "Dr. B", StartTime: berlinAt(7, 0), EndTime: berlinAt(8, 30)},
	}}
	return NewService(fakeLocations{}, rooms, bookings, c, berlin, zap.NewNop()), rooms, bookings
}

func TestDayGrid(t *testing.T) {
	svc, _, bookings := newFixture(cache.Noop{})

	got, err := svc.DayGrid(context.Background(), "loc-1", time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), Viewer{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, "2026-05-04", got.Date)
	assert.Equal(t, berlinAt(8, 0), bookings.from)
	assert.Equal(t, berlinAt(22, 0), bookings.to)

	g := got.Grid
	require.Len(t, g.Rooms, 2)
	assert.Len(t, g.Rows, timegrid.RowCount)

	// 09:00-10:00 in room 1.
	start := g.At(0, 2)
	assert.Equal(t, timegrid.SpanStart, start.Kind)
	assert.Equal(t, 2, start.RowSpan)
	assert.Empty(t, start.Booking.BookerName)
	assert.Equal(t, timegrid.Covered, g.At(0, 3).Kind)
	assert.Equal(t, timegrid.Empty, g.At(0, 4).Kind)

	// 07:00-08:30 clamped to 08:00-08:30 in room 2.
	assert.Equal(t, timegrid.SpanStart, g.At(1, 0).Kind)
	assert.Equal(t, 1, g.At(1, 0).RowSpan)
	assert.Equal(t, "08:00", g.At(1, 0).Booking.StartTime)
}

func TestDayGridPrivilegedViewerSeesNames(t *testing.T) {
	svc, _, _ := newFixture(cache.Noop{})

	got, err := svc.DayGrid(context.Background(), "loc-1", berlinAt(0, 0), Viewer{UserID: "admin", IsSystemAdmin: true})
	require.NoError(t, err)

	b := got.Grid.At(0, 2).Booking
	require.NotNil(t, b)
	assert.Equal(t, "Dr. A", b.BookerName)
	assert.Equal(t, "b1", b.ID)
}

func TestDayGridCachesPerPrivilege(t *testing.T) {
	c := newMemCache()
	svc, rooms, _ := newFixture(c)
	ctx := context.Background()
	day := berlinAt(0, 0)

	first, err := svc.DayGrid(ctx, "loc-1", day, Viewer{})
	require.NoError(t, err)
	second, err := svc.DayGrid(ctx, "loc-1", day, Viewer{})
	require.NoError(t, err)
	assert.Equal(t, 1, rooms.calls)
	assert.Equal(t, first.Grid, second.Grid)

	// Admins get their own entry, never the stripped one.
	admin, err := svc.DayGrid(ctx, "loc-1", day, Viewer{IsSystemAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, 2, rooms.calls)
	assert.Equal(t, "Dr. A", admin.Grid.At(0, 2).Booking.BookerName)

	require.NoError(t, c.Invalidate(ctx, "loc-1"))
	_, err = svc.DayGrid(ctx, "loc-1", day, Viewer{})
	require.NoError(t, err)
	assert.Equal(t, 3, rooms.calls)
}

func TestDayGridSurvivesCacheFailure(t *testing.T) {
	c := newMemCache()
	c.getErr = errors.New("connection refused")
	svc, _, _ := newFixture(c)

	got, err := svc.DayGrid(context.Background(), "loc-1", berlinAt(0, 0), Viewer{})
	require.NoError(t, err)
	assert.Equal(t, timegrid.SpanStart, got.Grid.At(0, 2).Kind)
	assert.Zero(t, c.sets, "nothing is written back when the version is unknown")
}

func TestDayGridInvalidationDuringBuildIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	grids := cache.NewRedisGridCache(client, time.Minute)

	ctx := context.Background()
	svc, _, bookings := newFixture(grids)
	bookings.items = nil

	// A booking commits and invalidates after this request already read the old list.
	bookings.afterList = func() {
		bookings.items = append(bookings.items, &booking.Booking{
			ID: "b3", RoomID: "r1", StartTime: berlinAt(9, 0), EndTime: berlinAt(10, 0),
		})
		require.NoError(t, grids.Invalidate(ctx, "loc-1"))
	}

	first, err := svc.DayGrid(ctx, "loc-1", berlinAt(0, 0), Viewer{})
	require.NoError(t, err)
	assert.Equal(t, timegrid.Empty, first.Grid.At(0, 2).Kind)

	second, err := svc.DayGrid(ctx, "loc-1", berlinAt(0, 0), Viewer{})
	require.NoError(t, err)
	assert.Equal(t, timegrid.SpanStart, second.Grid.At(0, 2).Kind)
	assert.Equal(t, 2, second.Grid.At(0, 2).RowSpan)
}

func TestDayGridUnknownLocation(t *testing.T) {
	svc, _, _ := newFixture(cache.Noop{})

	_, err := svc.DayGrid(context.Background(), "loc-404", berlinAt(0, 0), Viewer{})
	assert.ErrorIs(t, err, location.ErrNotFound)
}
