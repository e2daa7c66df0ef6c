package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowIndex_Window(t *testing.T) {
	assert.Equal(t, 0, RowIndex("08:00"))
	assert.Equal(t, 1, RowIndex("08:30"))
	assert.Equal(t, 2, RowIndex("09:00"))
	assert.Equal(t, 27, RowIndex("21:30"))
}

func TestRowIndex_StrictlyMonotonic(t *testing.T) {
	prev := -1
	for row := 0; row < RowCount; row++ {
		label := RowTime(row)
		got := RowIndex(label)
		require.Greater(t, got, prev, "row of %s should grow", label)
		require.Equal(t, row, got, "RowIndex(RowTime(%d))", row)
		prev = got
	}
}

func TestRowIndex_PermissiveInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"before window", "07:00", -2},
		{"end boundary", "22:00", 28},
		{"quarter past counts as whole hour", "09:15", 2},
		{"quarter to counts as whole hour", "09:45", 2},
		{"separator is not checked", "09h30", 3},
		{"trailing text ignored", "09:30:00", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RowIndex(tt.in))
		})
	}
}

func TestParseRow_Malformed(t *testing.T) {
	for _, in := range []string{"", "9:00", "ab:cd", "09:xx"} {
		_, err := ParseRow(in)
		assert.ErrorIs(t, err, ErrMalformedTime, "input %q", in)
		assert.Equal(t, NoRow, RowIndex(in), "input %q", in)
	}
}

func TestRowTime(t *testing.T) {
	assert.Equal(t, "08:00", RowTime(0))
	assert.Equal(t, "13:30", RowTime(11))
	assert.Equal(t, "21:30", RowTime(27))
	assert.Equal(t, "22:00", RowTime(RowCount))
}
