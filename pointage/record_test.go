package pointage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestComputeDurationClosedRecord(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected WorkDuration
	}{
		{
			name:     "Full day",
			record:   Record{ID: "PTG0001", EmployeID: "E1", Date: "2024-03-01", CheckIn: "08:00", CheckOut: "17:00"},
			expected: WorkDuration{Hours: 9, Minutes: 0},
		},
		{
			name:     "With minutes",
			record:   Record{Date: "2024-03-01", CheckIn: "08:00", CheckOut: "17:30"},
			expected: WorkDuration{Hours: 9, Minutes: 30},
		},
		{
			name:     "Seconds on the wire",
			record:   Record{Date: "2024-03-01", CheckIn: "08:00:00", CheckOut: "12:15:00"},
			expected: WorkDuration{Hours: 4, Minutes: 15},
		},
		{
			name:     "Short span",
			record:   Record{Date: "2024-03-01", CheckIn: "09:10", CheckOut: "09:55"},
			expected: WorkDuration{Hours: 0, Minutes: 45},
		},
	}

	now := fixedClock(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ComputeDuration(tt.record, now)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, d)
			assert.GreaterOrEqual(t, d.Minutes, 0)
			assert.Less(t, d.Minutes, 60)
		})
	}
}

func TestComputeDurationOpenRecord(t *testing.T) {
	rec := Record{ID: "PTG0002", EmployeID: "E1", Date: "2024-03-01", CheckIn: "08:00"}
	now := fixedClock(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC))

	d, ok := ComputeDuration(rec, now)
	assert.True(t, ok)
	assert.Equal(t, WorkDuration{Hours: 2, Minutes: 30}, d)

	// deterministic for a fixed clock
	again, ok := ComputeDuration(rec, now)
	assert.True(t, ok)
	assert.Equal(t, d, again)

	// monotonically non-decreasing as the clock advances
	prev := 0
	for _, at := range []time.Time{
		time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 16, 45, 0, 0, time.UTC),
	} {
		d, ok := ComputeDuration(rec, fixedClock(at))
		assert.True(t, ok)
		assert.GreaterOrEqual(t, d.TotalMinutes(), prev)
		prev = d.TotalMinutes()
	}
}

func TestComputeDurationSentinel(t *testing.T) {
	now := fixedClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name   string
		record Record
	}{
		{
			name:   "Unparseable check-in",
			record: Record{Date: "2024-03-01", CheckIn: "notatime", CheckOut: "17:00"},
		},
		{
			name:   "Empty check-in",
			record: Record{Date: "2024-03-01", CheckOut: "17:00"},
		},
		{
			name:   "Check-out before check-in",
			record: Record{Date: "2024-03-01", CheckIn: "09:00", CheckOut: "08:59"},
		},
		{
			name:   "Open record started after now",
			record: Record{Date: "2024-03-01", CheckIn: "13:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ComputeDuration(tt.record, now)
			assert.False(t, ok)
		})
	}
}

func TestComputeDurationNonUTCClock(t *testing.T) {
	rec := Record{ID: "PTG0002", EmployeID: "E1", Date: "2024-03-01", CheckIn: "08:00"}

	tests := []struct {
		name string
		loc  *time.Location
	}{
		{"East of UTC", time.FixedZone("UTC+9", 9*60*60)},
		{"West of UTC", time.FixedZone("UTC-5", -5*60*60)},
		{"UTC", time.UTC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := fixedClock(time.Date(2024, 3, 1, 10, 30, 0, 0, tt.loc))

			d, ok := ComputeDuration(rec, now)
			assert.True(t, ok)
			assert.Equal(t, WorkDuration{Hours: 2, Minutes: 30}, d,
				"elapsed time reads off the local wall clock regardless of zone")
		})
	}
}

func TestComputeDurationMissingDateFallsBackToToday(t *testing.T) {
	now := fixedClock(time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC))

	d, ok := ComputeDuration(Record{CheckIn: "08:00"}, now)
	assert.True(t, ok)
	assert.Equal(t, WorkDuration{Hours: 2, Minutes: 0}, d)
}

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, StatusOpen, DeriveStatus(Record{CheckIn: "08:00"}))
	assert.Equal(t, StatusClosed, DeriveStatus(Record{CheckIn: "08:00", CheckOut: "16:00"}))
}

func TestWorkDurationString(t *testing.T) {
	assert.Equal(t, "9h 00min", WorkDuration{Hours: 9}.String())
	assert.Equal(t, "2h 30min", WorkDuration{Hours: 2, Minutes: 30}.String())
	assert.Equal(t, "0h 05min", WorkDuration{Minutes: 5}.String())
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{ID: "PTG0001", CheckIn: "08:00", CheckOut: "16:00"},
		{ID: "PTG0002", CheckIn: "08:30"},
		{ID: "PTG0003", CheckIn: "09:00"},
	}

	s := Summarize(records)
	assert.Equal(t, Summary{Total: 3, Closed: 1, Open: 2}, s)
	assert.Equal(t, s.Total, s.Closed+s.Open)
}
