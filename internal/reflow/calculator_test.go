package reflow

import (
	"testing"
	"time"

	"github.com/naologic/reflow/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestAdvanceNoCalendarIsPlainAddition(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end, ok := Advance(start, 90, nil, nil)

	assert.True(t, ok)
	assert.Equal(t, start.Add(90*time.Minute), end)
}

func TestAdvanceZeroDurationReturnsStart(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end, ok := Advance(start, 0, nil, nil)

	assert.True(t, ok)
	assert.Equal(t, start, end)
}

func TestAdvancePausesAcrossShiftBoundary(t *testing.T) {
	// Monday 08:00-17:00, Tuesday 08:00-17:00. Starting Monday 16:00 for
	// 120 minutes: 60 minutes to close Monday, 60 remaining minutes pick
	// up Tuesday 08:00 -> Tuesday 09:00.
	shifts := []entity.Shift{
		{Day: entity.Monday, StartHour: 8, EndHour: 17},
		{Day: entity.Tuesday, StartHour: 8, EndHour: 17},
	}
	start := time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC) // Monday
	end, ok := Advance(start, 120, shifts, nil)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC), end)
}

func TestAdvanceMidnightSpanningShift(t *testing.T) {
	// Monday 22:00-06:00 (spans into Tuesday). Starting Monday 23:00 for
	// 180 minutes stays inside the same occurrence and lands Tuesday 02:00.
	shifts := []entity.Shift{
		{Day: entity.Monday, StartHour: 22, EndHour: 6},
	}
	start := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC) // Monday
	end, ok := Advance(start, 180, shifts, nil)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 16, 2, 0, 0, 0, time.UTC), end)
}

func TestAdvancePausesForMaintenanceWindow(t *testing.T) {
	// No shift calendar, but a maintenance window 12:00-13:00 blocks
	// progress. Starting 11:30 for 60 minutes: 30 minutes before the
	// window, resume at 13:00 for the remaining 30 -> 13:30.
	maintenance := []entity.MaintenanceWindow{
		{
			Start: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC),
		},
	}
	start := time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC)
	end, ok := Advance(start, 60, nil, maintenance)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 13, 30, 0, 0, time.UTC), end)
}

func TestAdvanceMaintenanceInsideShiftTakesPrecedence(t *testing.T) {
	// Monday 08:00-17:00 shift, with a maintenance window 10:00-11:00.
	// Starting at 09:30 for 90 minutes: 30 minutes to 10:00, then the
	// window forces a jump to 11:00, then 60 more minutes -> 12:00.
	shifts := []entity.Shift{
		{Day: entity.Monday, StartHour: 8, EndHour: 17},
	}
	maintenance := []entity.MaintenanceWindow{
		{
			Start: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC),
		},
	}
	start := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	end, ok := Advance(start, 90, shifts, maintenance)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), end)
}

func TestAdvanceStartingInsideMaintenanceJumpsToEnd(t *testing.T) {
	maintenance := []entity.MaintenanceWindow{
		{
			Start: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
	}
	start := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	end, ok := Advance(start, 30, nil, maintenance)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), end)
}

func TestAdvanceUnreachableShiftReturnsNotOk(t *testing.T) {
	// The work center's only shift is zero-length, so the calculator skips
	// it: a start outside any shift with no future shift at all must fail.
	shifts := []entity.Shift{
		{Day: entity.Monday, StartHour: 8, EndHour: 8},
	}
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) // Monday, outside any shift
	_, ok := Advance(start, 60, shifts, nil)

	assert.False(t, ok)
}

func TestAdvanceMonotoneWithEmptyCalendar(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	shortEnd, ok := Advance(start, 30, nil, nil)
	assert.True(t, ok)
	longEnd, ok := Advance(start, 60, nil, nil)
	assert.True(t, ok)

	assert.True(t, shortEnd.Before(longEnd))
}

func TestActiveShiftConsidersPreviousDayMidnightSpan(t *testing.T) {
	shifts := []entity.Shift{
		{Day: entity.Sunday, StartHour: 22, EndHour: 6},
	}
	// Monday 01:00 is still inside Sunday's midnight-spanning occurrence.
	end, active := activeShift(time.Date(2024, 1, 15, 1, 0, 0, 0, time.UTC), shifts)

	assert.True(t, active)
	assert.Equal(t, time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC), end)
}
