package leave_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumahr/leave-engine/leave"
)

func TestParseDate(t *testing.T) {
	d, err := leave.ParseDate("2023-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-10", d.String())

	for _, bad := range []string{"", "2023-13-01", "10/01/2023", "not a date", "2023-01-10T00:00:00Z"} {
		_, err := leave.ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2023-02-01", "2023-02-01", 1},
		{"2023-02-01", "2023-02-05", 5},
		{"2023-02-25", "2023-03-04", 8},  // crosses a month boundary
		{"2023-12-30", "2024-01-02", 4},  // crosses a year boundary
		{"2024-02-28", "2024-03-01", 3},  // leap day counted
	}

	for _, tc := range tests {
		start, err := leave.ParseDate(tc.start)
		require.NoError(t, err)
		end, err := leave.ParseDate(tc.end)
		require.NoError(t, err)
		assert.Equal(t, tc.want, leave.InclusiveDays(start, end), "%s..%s", tc.start, tc.end)
	}
}

func TestOverlaps(t *testing.T) {
	d := func(day int) leave.Date { return leave.NewDate(2023, time.February, day) }

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     int
		want                           bool
	}{
		{"disjoint before", 1, 3, 5, 7, false},
		{"disjoint after", 5, 7, 1, 3, false},
		{"adjacent no shared day", 1, 4, 5, 7, false},
		{"share one boundary day", 1, 5, 5, 7, true},
		{"partial overlap", 1, 6, 5, 9, true},
		{"containment", 1, 10, 4, 6, true},
		{"identical", 2, 4, 2, 4, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := leave.Overlaps(d(tc.aStart), d(tc.aEnd), d(tc.bStart), d(tc.bEnd))
			assert.Equal(t, tc.want, got)
			// Overlap is symmetric.
			assert.Equal(t, tc.want, leave.Overlaps(d(tc.bStart), d(tc.bEnd), d(tc.aStart), d(tc.aEnd)))
		})
	}
}

func TestDate_JSON(t *testing.T) {
	d := leave.NewDate(2023, time.January, 10)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-01-10"`, string(raw))

	var back leave.Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Equal(d))

	assert.Error(t, json.Unmarshal([]byte(`12345`), &back))
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &back))
}
