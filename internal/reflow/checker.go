package reflow

import (
	"fmt"
	"sort"
	"time"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/validation"
)

// Diagnostic codes emitted by the constraint checker's sub-checks.
const (
	CodeInvalidTimestamps  = "INVALID_TIMESTAMPS"
	CodeDueDateViolation   = "DUE_DATE_VIOLATION"
	CodeOverlap            = "OVERLAP"
	CodeUnknownWorkCenter  = "UNKNOWN_WORK_CENTER"
	CodeDependencyViolated = "DEPENDENCY_VIOLATED"
	CodeCalendarMismatch   = "CALENDAR_MISMATCH"
)

// calendarTolerance is the slack allowed between a stored end timestamp and
// the calculator's recomputation of it.
const calendarTolerance = time.Minute

// CheckAll runs the seven independent sub-checks against the given
// collections and returns the composite verdict and its diagnostics.
// workCenters and manufacturingOrders are keyed by id; neither check throws
// on a missing parent or center, it reports a diagnostic instead.
func CheckAll(workOrders []*entity.WorkOrder, workCenters map[string]*entity.WorkCenter, manufacturingOrders map[string]*entity.ManufacturingOrder) (bool, []string) {
	result := validation.NewResult()

	checkValidTimestamps(result, workOrders)
	checkDueDates(result, workOrders, manufacturingOrders)
	checkNoOverlaps(result, workOrders)
	checkWorkCenterExistence(result, workOrders, workCenters)
	checkDependencies(result, workOrders)
	checkCalendarCorrectness(result, workOrders, workCenters)

	messages := make([]string, len(result.Messages))
	for i, m := range result.Messages {
		messages[i] = m.Text
	}
	return result.IsValid(), messages
}

// checkValidTimestamps is sub-check 1: every work order must have start < end.
func checkValidTimestamps(result *validation.Result, workOrders []*entity.WorkOrder) {
	for _, wo := range workOrders {
		if !wo.Start.Before(wo.End) {
			result.AddError(CodeInvalidTimestamps, fmt.Sprintf(
				"work order %s: start %s is not before end %s", wo.ID, wo.Start, wo.End))
		}
	}
}

// checkDueDates is sub-check 2: every non-maintenance work order whose
// manufacturing order is known must end at or before its parent's due date,
// and start at or before the due date.
func checkDueDates(result *validation.Result, workOrders []*entity.WorkOrder, manufacturingOrders map[string]*entity.ManufacturingOrder) {
	for _, wo := range workOrders {
		if wo.IsMaintenance {
			continue
		}
		mo, ok := manufacturingOrders[wo.ManufacturingOrderID]
		if !ok {
			continue
		}
		if wo.Start.After(mo.DueDate) || wo.End.After(mo.DueDate) {
			result.AddError(CodeDueDateViolation, fmt.Sprintf(
				"work order %s: window %s-%s exceeds due date %s", wo.ID, wo.Start, wo.End, mo.DueDate))
		}
	}
}

// checkNoOverlaps is sub-check 3: no two work orders sharing a center may
// have intersecting half-open [start, end) intervals.
func checkNoOverlaps(result *validation.Result, workOrders []*entity.WorkOrder) {
	byCenter := make(map[string][]*entity.WorkOrder)
	for _, wo := range workOrders {
		byCenter[wo.WorkCenterID] = append(byCenter[wo.WorkCenterID], wo)
	}

	for center, orders := range byCenter {
		sorted := append([]*entity.WorkOrder(nil), orders...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Start.Before(sorted[j].Start)
		})
		for i := 1; i < len(sorted); i++ {
			prev, cur := sorted[i-1], sorted[i]
			if cur.Start.Before(prev.End) {
				result.AddError(CodeOverlap, fmt.Sprintf(
					"center %s: work order %s (%s-%s) overlaps %s (%s-%s)",
					center, cur.ID, cur.Start, cur.End, prev.ID, prev.Start, prev.End))
			}
		}
	}
}

// checkWorkCenterExistence is sub-check 4.
func checkWorkCenterExistence(result *validation.Result, workOrders []*entity.WorkOrder, workCenters map[string]*entity.WorkCenter) {
	for _, wo := range workOrders {
		if _, ok := workCenters[wo.WorkCenterID]; !ok {
			result.AddError(CodeUnknownWorkCenter, fmt.Sprintf(
				"work order %s: unknown work center %s", wo.ID, wo.WorkCenterID))
		}
	}
}

// checkDependencies is sub-check 5: for every edge B depends on A where both
// exist, A must end at or before B starts.
func checkDependencies(result *validation.Result, workOrders []*entity.WorkOrder) {
	byID := make(map[string]*entity.WorkOrder, len(workOrders))
	for _, wo := range workOrders {
		byID[wo.ID] = wo
	}

	for _, dependent := range workOrders {
		for _, depID := range dependent.DependsOn {
			dep, ok := byID[depID]
			if !ok {
				continue
			}
			if dep.End.After(dependent.Start) {
				result.AddError(CodeDependencyViolated, fmt.Sprintf(
					"work order %s: dependency %s ends %s after start %s",
					dependent.ID, dep.ID, dep.End, dependent.Start))
			}
		}
	}
}

// checkCalendarCorrectness is sub-checks 6 and 7: for non-maintenance work
// orders on a center with a shift calendar, a maintenance calendar, or both,
// the stored end must match the calculator's recomputation within
// calendarTolerance. Centers with neither are skipped entirely; they have
// nothing to check against.
func checkCalendarCorrectness(result *validation.Result, workOrders []*entity.WorkOrder, workCenters map[string]*entity.WorkCenter) {
	for _, wo := range workOrders {
		if wo.IsMaintenance {
			continue
		}
		center, ok := workCenters[wo.WorkCenterID]
		if !ok || !center.HasCalendar() {
			continue
		}

		expected, reachable := Advance(wo.Start, wo.DurationMinutes, center.Shifts, center.MaintenanceWindows)
		if !reachable {
			result.AddError(CodeCalendarMismatch, fmt.Sprintf(
				"work order %s: calculator cannot place duration %d from %s on center %s",
				wo.ID, wo.DurationMinutes, wo.Start, center.ID))
			continue
		}

		delta := wo.End.Sub(expected)
		if delta < 0 {
			delta = -delta
		}
		if delta > calendarTolerance {
			result.AddError(CodeCalendarMismatch, fmt.Sprintf(
				"work order %s: stored end %s differs from calculated end %s by more than %s",
				wo.ID, wo.End, expected, calendarTolerance))
		}
	}
}
