package reflow

import (
	"time"

	"github.com/naologic/reflow/internal/entity"
)

// maxIterations bounds the calculator's boundary-advancement loop so that
// every call terminates, even against a pathological calendar.
const maxIterations = 1000

// lookaheadDays bounds how far past the current day the calculator will
// search for the next open shift before giving up.
const lookaheadDays = 7

// Advance computes the instant at which durationMinutes of working time
// elapses starting at start, given a weekly shift calendar and a set of
// absolute maintenance windows. It returns ok = false ("cannot place") if
// no such instant is reachable within the iteration cap or the lookahead
// window.
//
// Work progresses only when an instant falls inside a shift and outside
// every maintenance window; maintenance always takes precedence over an
// open shift. An empty shift calendar means every instant outside
// maintenance is working time; an empty calendar and no maintenance
// windows means the result is simply start + durationMinutes.
func Advance(start time.Time, durationMinutes int, shifts []entity.Shift, maintenance []entity.MaintenanceWindow) (time.Time, bool) {
	remaining := time.Duration(durationMinutes) * time.Minute
	if remaining <= 0 {
		return start, true
	}

	if len(shifts) == 0 && len(maintenance) == 0 {
		return start.Add(remaining), true
	}

	t := start
	for i := 0; i < maxIterations; i++ {
		if w, ok := activeMaintenance(t, maintenance); ok {
			t = w.End
			continue
		}

		if len(shifts) == 0 {
			nextStart, hasNext := nextMaintenanceStart(t, maintenance)
			if !hasNext {
				return t.Add(remaining), true
			}
			available := nextStart.Sub(t)
			if available >= remaining {
				return t.Add(remaining), true
			}
			remaining -= available
			t = nextStart
			continue
		}

		shiftEnd, active := activeShift(t, shifts)
		if !active {
			nextStart, hasNext := nextShiftStart(t, shifts)
			if !hasNext {
				return time.Time{}, false
			}
			if mStart, hasM := nextMaintenanceStart(t, maintenance); hasM && mStart.Before(nextStart) {
				t = mStart
			} else {
				t = nextStart
			}
			continue
		}

		boundary := shiftEnd
		if mStart, hasM := nextMaintenanceStart(t, maintenance); hasM && mStart.Before(boundary) {
			boundary = mStart
		}

		available := boundary.Sub(t)
		if available >= remaining {
			return t.Add(remaining), true
		}
		remaining -= available
		t = boundary
	}

	return time.Time{}, false
}

// activeMaintenance returns the first maintenance window containing t, if any.
func activeMaintenance(t time.Time, windows []entity.MaintenanceWindow) (entity.MaintenanceWindow, bool) {
	for _, w := range windows {
		if w.Contains(t) {
			return w, true
		}
	}
	return entity.MaintenanceWindow{}, false
}

// nextMaintenanceStart returns the earliest maintenance window start
// strictly after t.
func nextMaintenanceStart(t time.Time, windows []entity.MaintenanceWindow) (time.Time, bool) {
	var best time.Time
	found := false
	for _, w := range windows {
		if w.Start.After(t) && (!found || w.Start.Before(best)) {
			best = w.Start
			found = true
		}
	}
	return best, found
}

// activeShift returns the end instant of the shift occurrence containing
// t, considering both same-day shifts and midnight-spanning shifts that
// began the previous day.
func activeShift(t time.Time, shifts []entity.Shift) (time.Time, bool) {
	day := truncateToDay(t)
	for _, offset := range [2]int{-1, 0} {
		occurrenceDay := day.AddDate(0, 0, offset)
		wd := entity.WeekdayFromTime(occurrenceDay)
		for _, s := range shifts {
			if s.Day != wd || s.Empty() {
				continue
			}
			start := occurrenceDay.Add(time.Duration(s.StartHour) * time.Hour)
			end := shiftEndInstant(occurrenceDay, s)
			if !t.Before(start) && t.Before(end) {
				return end, true
			}
		}
	}
	return time.Time{}, false
}

// nextShiftStart returns the earliest shift start strictly after t,
// searching at most lookaheadDays days ahead.
func nextShiftStart(t time.Time, shifts []entity.Shift) (time.Time, bool) {
	base := truncateToDay(t)
	for offset := 0; offset <= lookaheadDays; offset++ {
		occurrenceDay := base.AddDate(0, 0, offset)
		wd := entity.WeekdayFromTime(occurrenceDay)
		var best time.Time
		found := false
		for _, s := range shifts {
			if s.Day != wd || s.Empty() {
				continue
			}
			start := occurrenceDay.Add(time.Duration(s.StartHour) * time.Hour)
			if start.After(t) && (!found || start.Before(best)) {
				best = start
				found = true
			}
		}
		if found {
			return best, true
		}
	}
	return time.Time{}, false
}

// shiftEndInstant returns the absolute end instant of a shift occurrence
// that started on occurrenceDay, accounting for midnight-spanning shifts.
func shiftEndInstant(occurrenceDay time.Time, s entity.Shift) time.Time {
	if s.SpansMidnight() {
		return occurrenceDay.AddDate(0, 0, 1).Add(time.Duration(s.EndHour) * time.Hour)
	}
	return occurrenceDay.Add(time.Duration(s.EndHour) * time.Hour)
}

// truncateToDay returns the UTC midnight that starts t's calendar day.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
