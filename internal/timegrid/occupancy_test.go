package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartsAt(t *testing.T) {
	bookings := []Booking{
		{ID: "a", RoomID: "r1", StartTime: "09:00", EndTime: "10:00"},
		{ID: "b", RoomID: "r2", StartTime: "09:00", EndTime: "09:30"},
		{ID: "c", RoomID: "r1", StartTime: "14:00", EndTime: "15:00"},
	}

	b, ok := StartsAt(bookings, "r1", 2)
	require.True(t, ok)
	assert.Equal(t, "a", b.ID)

	b, ok = StartsAt(bookings, "r1", 12)
	require.True(t, ok)
	assert.Equal(t, "c", b.ID)

	b, ok = StartsAt(bookings, "r2", 2)
	require.True(t, ok)
	assert.Equal(t, "b", b.ID)

	_, ok = StartsAt(bookings, "r1", 3)
	assert.False(t, ok, "row inside a span is not a start")

	_, ok = StartsAt(bookings, "r3", 2)
	assert.False(t, ok, "unknown room has no bookings")
}

func TestStartsAt_FirstInInputOrderWins(t *testing.T) {
	bookings := []Booking{
		{ID: "first", RoomID: "r1", StartTime: "09:00", EndTime: "10:00"},
		{ID: "second", RoomID: "r1", StartTime: "09:00", EndTime: "11:00"},
	}

	b, ok := StartsAt(bookings, "r1", 2)
	require.True(t, ok)
	assert.Equal(t, "first", b.ID)
}

func TestIsCovered(t *testing.T) {
	bookings := []Booking{
		{RoomID: "r1", StartTime: "09:00", EndTime: "10:30"},
	}

	assert.False(t, IsCovered(bookings, "r1", 1), "before the span")
	assert.False(t, IsCovered(bookings, "r1", 2), "start row is not covered")
	assert.True(t, IsCovered(bookings, "r1", 3))
	assert.True(t, IsCovered(bookings, "r1", 4))
	assert.False(t, IsCovered(bookings, "r1", 5), "end row is free again")
	assert.False(t, IsCovered(bookings, "r2", 3), "other room")
}

func TestOccupancy_EmptyRoom(t *testing.T) {
	for row := 0; row < RowCount; row++ {
		_, ok := StartsAt(nil, "r1", row)
		assert.False(t, ok)
		assert.False(t, IsCovered(nil, "r1", row))
	}
}

func TestOccupancy_MalformedBookingIsInvisible(t *testing.T) {
	bookings := []Booking{{RoomID: "r1", StartTime: "nine", EndTime: "10:00"}}

	for row := 0; row < RowCount; row++ {
		_, ok := StartsAt(bookings, "r1", row)
		assert.False(t, ok, "row %d", row)
		assert.False(t, IsCovered(bookings, "r1", row), "row %d", row)
	}
}
