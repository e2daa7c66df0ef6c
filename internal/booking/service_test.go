package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/room-booking-backend/internal/location"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

type memRepo struct {
	byID map[string]*Booking
	seq  int
	// writeErr is returned by Create and Update, as the database does for a racing writer.
	writeErr error
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]*Booking{}}
}

func (r *memRepo) Create(_ context.Context, b *Booking) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	cp := *b
	r.byID[b.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) List(context.Context, Filter) ([]*Booking, int, error) {
	return nil, 0, nil
}

func (r *memRepo) Update(_ context.Context, b *Booking) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	cp := *b
	r.byID[b.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *memRepo) HasOverlap(_ context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	for _, b := range r.byID {
		if b.RoomID != roomID || b.ID == excludeID || b.Status == StatusCancelled {
			continue
		}
		if start.Before(b.EndTime) && end.After(b.StartTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) ListInRange(context.Context, string, time.Time, time.Time) ([]*Booking, error) {
	return nil, nil
}

func (r *memRepo) ListRoomInRange(_ context.Context, roomID string, from, to time.Time) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.byID {
		if b.RoomID == roomID && b.Status != StatusCancelled && b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

type stubRooms struct {
	room.Service
}

func (stubRooms) GetByID(_ context.Context, id string) (*room.Room, error) {
	switch id {
	case "room-1":
		return &room.Room{ID: id, LocationID: "loc-1", Name: "Room 1"}, nil
	case "room-closed":
		return &room.Room{ID: id, LocationID: "loc-closed", Name: "Room X"}, nil
	}
	return nil, room.ErrNotFound
}

type stubLocations struct {
	location.Service
}

func (stubLocations) GetByID(_ context.Context, id string) (*location.Location, error) {
	return &location.Location{
		ID:                id,
		Name:              "Main practice",
		OpeningHoursStart: "08:00:00",
		OpeningHoursEnd:   "22:00:00",
		Opening:           id != "loc-closed",
	}, nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context, string) error {
	c.calls++
	return nil
}

var testTZ = time.FixedZone("UTC+1", 3600)

// local returns a wall-clock time on 2030-05-06 in the test zone.
func local(h, m int) time.Time {
	return time.Date(2030, 5, 6, h, m, 0, 0, testTZ)
}

func newTestService(t *testing.T) (*service, *memRepo, *countingInvalidator) {
	t.Helper()
	repo := newMemRepo()
	inv := &countingInvalidator{}
	svc := NewService(repo, stubRooms{}, stubLocations{}, inv, testTZ, zap.NewNop()).(*service)
	svc.now = func() time.Time { return time.Date(2030, 5, 6, 7, 0, 0, 0, testTZ) }
	return svc, repo, inv
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		roomID     string
		start, end time.Time
		wantErr    error
	}{
		{"valid", "room-1", local(9, 0), local(10, 30), nil},
		{"end before start", "room-1", local(10, 0), local(9, 0), ErrInvalidTimeRange},
		{"empty range", "room-1", local(10, 0), local(10, 0), ErrInvalidTimeRange},
		{"in the past", "room-1", local(6, 0), local(9, 0), ErrStartTimePast},
		{"not aligned", "room-1", local(9, 15), local(10, 0), ErrNotAligned},
		{"seconds not aligned", "room-1", local(9, 0), local(10, 0).Add(time.Second), ErrNotAligned},
		{"spans two days", "room-1", local(21, 0), local(21, 0).Add(24 * time.Hour), ErrSpansMultipleDays},
		{"before opening", "room-1", local(7, 30), local(9, 0), ErrOutsideOpeningHour},
		{"after closing", "room-1", local(21, 30), local(22, 30), ErrOutsideOpeningHour},
		{"unknown room", "room-404", local(9, 0), local(10, 0), ErrRoomNotFound},
		{"closed location", "room-closed", local(9, 0), local(10, 0), ErrLocationClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			b, err := svc.Create(ctx, CreateRequest{UserID: "u1", RoomID: tt.roomID, StartTime: tt.start, EndTime: tt.end})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusPending, b.Status)
			assert.Equal(t, "loc-1", b.LocationID)
		})
	}
}

func TestCreateAlignmentUsesDisplayZone(t *testing.T) {
	svc, _, _ := newTestService(t)

	// 08:00 UTC is 09:00 in the display zone.
	start := time.Date(2030, 5, 6, 8, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateRequest{
		UserID: "u1", RoomID: "room-1", StartTime: start, EndTime: start.Add(time.Hour),
	})
	require.NoError(t, err)
}

func TestCreateRejectsOverlap(t *testing.T) {
	svc, _, inv := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{UserID: "u1", RoomID: "room-1", StartTime: local(9, 0), EndTime: local(11, 0)})
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)

	_, err = svc.Create(ctx, CreateRequest{UserID: "u2", RoomID: "room-1", StartTime: local(10, 0), EndTime: local(12, 0)})
	assert.ErrorIs(t, err, ErrTimeConflict)

	// Touching intervals do not overlap.
	_, err = svc.Create(ctx, CreateRequest{UserID: "u2", RoomID: "room-1", StartTime: local(11, 0), EndTime: local(12, 0)})
	assert.NoError(t, err)
	assert.Equal(t, 2, inv.calls)
}

func TestWriteConflictFromStoreIsReported(t *testing.T) {
	svc, repo, inv := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{UserID: "u1", RoomID: "room-1", StartTime: local(9, 0), EndTime: local(10, 0)})
	require.NoError(t, err)
	require.Equal(t, 1, inv.calls)

	// Another request inserted the same slot after our overlap check passed.
	repo.writeErr = ErrTimeConflict

	_, err = svc.Create(ctx, CreateRequest{UserID: "u2", RoomID: "room-1", StartTime: local(12, 0), EndTime: local(13, 0)})
	assert.ErrorIs(t, err, ErrTimeConflict)

	newStart, newEnd := local(14, 0), local(15, 0)
	_, err = svc.Update(ctx, b.ID, UpdateRequest{StartTime: &newStart, EndTime: &newEnd}, "admin", true)
	assert.ErrorIs(t, err, ErrTimeConflict)

	assert.Equal(t, 1, inv.calls, "failed writes leave the cached grids alone")
}

func TestOwnerMayOnlyCancel(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{UserID: "owner", RoomID: "room-1", StartTime: local(9, 0), EndTime: local(10, 0)})
	require.NoError(t, err)

	confirmed := string(StatusConfirmed)
	_, err = svc.Update(ctx, b.ID, UpdateRequest{Status: &confirmed}, "owner", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	later := local(11, 0)
	_, err = svc.Update(ctx, b.ID, UpdateRequest{StartTime: &later}, "owner", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	cancelled := string(StatusCancelled)
	_, err = svc.Update(ctx, b.ID, UpdateRequest{Status: &cancelled}, "stranger", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(ctx, b.ID, UpdateRequest{Status: &cancelled}, "owner", false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, updated.Status)
}

func TestAdminUpdate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateRequest{UserID: "u1", RoomID: "room-1", StartTime: local(9, 0), EndTime: local(10, 0)})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateRequest{UserID: "u2", RoomID: "room-1", StartTime: local(10, 0), EndTime: local(11, 0)})
	require.NoError(t, err)

	// Moving onto another booking conflicts; the booking itself is excluded.
	end := local(10, 30)
	_, err = svc.Update(ctx, a.ID, UpdateRequest{EndTime: &end}, "admin", true)
	assert.ErrorIs(t, err, ErrTimeConflict)

	start := local(8, 30)
	moved, err := svc.Update(ctx, a.ID, UpdateRequest{StartTime: &start}, "admin", true)
	require.NoError(t, err)
	assert.Equal(t, local(8, 30), moved.StartTime)

	odd := local(8, 45)
	_, err = svc.Update(ctx, a.ID, UpdateRequest{StartTime: &odd}, "admin", true)
	assert.ErrorIs(t, err, ErrNotAligned)

	bogus := "archived"
	_, err = svc.Update(ctx, a.ID, UpdateRequest{Status: &bogus}, "admin", true)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	confirmed := string(StatusConfirmed)
	updated, err := svc.Update(ctx, b.ID, UpdateRequest{Status: &confirmed}, "admin", true)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)
}

func TestReactivatingCancelledBookingChecksOverlap(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateRequest{UserID: "u1", RoomID: "room-1", StartTime: local(9, 0), EndTime: local(10, 0)})
	require.NoError(t, err)

	cancelled := string(StatusCancelled)
	_, err = svc.Update(ctx, a.ID, UpdateRequest{Status: &cancelled}, "u1", false)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{UserID: "u2", RoomID: "room-1", StartTime: local(9, 0), EndTime: local(10, 0)})
	require.NoError(t, err)

	pending := string(StatusPending)
	_, err = svc.Update(ctx, a.ID, UpdateRequest{Status: &pending}, "admin", true)
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestGetAndDeletePermissions(t *testing.T) {
	svc, repo, inv := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{UserID: "owner", RoomID: "room-1", StartTime: local(9, 0), EndTime: local(10, 0)})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, b.ID, "stranger", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = svc.GetByID(ctx, b.ID, "owner", false)
	assert.NoError(t, err)
	_, err = svc.GetByID(ctx, b.ID, "admin", true)
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, b.ID, "stranger", false), ErrPermissionDenied)
	require.NoError(t, svc.Delete(ctx, b.ID, "owner", false))
	assert.Empty(t, repo.byID)
	assert.Equal(t, 2, inv.calls)

	assert.ErrorIs(t, svc.Delete(ctx, b.ID, "owner", false), ErrNotFound)
}

func TestAvailability(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{UserID: "u1", RoomID: "room-1", StartTime: local(9, 0), EndTime: local(10, 0)})
	require.NoError(t, err)

	// Only the calendar date of the argument counts.
	slots, err := svc.Availability(ctx, "room-1", time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []TimeSlot{
		{StartTime: local(8, 0), EndTime: local(9, 0)},
		{StartTime: local(10, 0), EndTime: local(22, 0)},
	}, slots)

	_, err = svc.Availability(ctx, "room-404", time.Now())
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestListInRangeRejectsEmptyRange(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.ListInRange(context.Background(), "loc-1", local(10, 0), local(10, 0))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestAligned(t *testing.T) {
	tests := []struct {
		t    time.Time
		want bool
	}{
		{local(9, 0), true},
		{local(9, 30), true},
		{local(0, 0), true},
		{local(9, 15), false},
		{local(9, 0).Add(time.Millisecond), false},
		{local(9, 30).Add(-time.Second), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, aligned(tt.t), tt.t.Format(time.RFC3339Nano))
	}
}
