package reflow

import (
	"fmt"
	"sort"
	"time"

	"github.com/naologic/reflow/internal/entity"
	"github.com/tiendc/go-deepcopy"
)

const explanationInfeasible = "infeasible"
const explanationNoChanges = "no changes needed"

type snapshot struct {
	start time.Time
	end   time.Time
}

// Reflow is the core's single entry point. It takes a deep copy of
// workOrders, runs the six-phase reschedule pipeline, and returns the
// revised work orders alongside a change list, an explanation, and the
// infeasibility verdict. workOrders, workCenters, and manufacturingOrders
// are never mutated.
func Reflow(workOrders []*entity.WorkOrder, workCenters []*entity.WorkCenter, manufacturingOrders []*entity.ManufacturingOrder) entity.ReflowResult {
	centersByID := make(map[string]*entity.WorkCenter, len(workCenters))
	for _, wc := range workCenters {
		centersByID[wc.ID] = wc
	}
	ordersByID := make(map[string]*entity.ManufacturingOrder, len(manufacturingOrders))
	for _, mo := range manufacturingOrders {
		ordersByID[mo.ID] = mo
	}

	var copied []*entity.WorkOrder
	if err := deepcopy.Copy(&copied, workOrders); err != nil {
		// The calculator's contract has no partial-failure path for a
		// copy error; fall back to per-element cloning, which the entity
		// package already guarantees is alias-free.
		copied = make([]*entity.WorkOrder, len(workOrders))
		for i, wo := range workOrders {
			copied[i] = wo.Clone()
		}
	}

	snapshots := make(map[string]snapshot, len(copied))
	for _, wo := range copied {
		snapshots[wo.ID] = snapshot{start: wo.Start, end: wo.End}
	}

	byID := make(map[string]*entity.WorkOrder, len(copied))
	for _, wo := range copied {
		byID[wo.ID] = wo
	}

	phaseZeroNormalizeEnds(copied, centersByID)
	phaseOneDueDateViolations(copied, centersByID, ordersByID)
	phaseTwoPrecedence(copied, byID, centersByID)
	phaseTwoPointFivePrecedenceOptimization(copied, byID, centersByID, ordersByID)
	phaseThreeOverlapResolution(copied, centersByID)

	feasible, diagnostics := CheckAll(copied, centersByID, ordersByID)
	_ = diagnostics // surfaced via the checker; the pipeline only needs the verdict

	changes := buildChangeList(copied, snapshots)
	explanation := explain(changes, len(copied), !feasible)

	return entity.ReflowResult{
		WorkOrders:  copied,
		Changes:     changes,
		Explanation: explanation,
		Infeasible:  !feasible,
	}
}

// phaseZeroNormalizeEnds recomputes every non-maintenance work order's end
// from its stored start so that later phases see pause-aware end dates
// instead of naive start+duration values.
func phaseZeroNormalizeEnds(workOrders []*entity.WorkOrder, centersByID map[string]*entity.WorkCenter) {
	for _, wo := range workOrders {
		if wo.IsMaintenance {
			continue
		}
		center, ok := centersByID[wo.WorkCenterID]
		if !ok {
			continue
		}
		if end, reachable := Advance(wo.Start, wo.DurationMinutes, center.Shifts, center.MaintenanceWindows); reachable {
			wo.End = end
		}
	}
}

// phaseOneDueDateViolations pulls the start of any work order that
// currently overruns its parent's due date back to due_date - duration,
// recomputing the end from the new start.
func phaseOneDueDateViolations(workOrders []*entity.WorkOrder, centersByID map[string]*entity.WorkCenter, ordersByID map[string]*entity.ManufacturingOrder) {
	for _, wo := range workOrders {
		if wo.IsMaintenance {
			continue
		}
		mo, ok := ordersByID[wo.ManufacturingOrderID]
		if !ok {
			continue
		}
		if !wo.End.After(mo.DueDate) {
			continue
		}
		center, ok := centersByID[wo.WorkCenterID]
		if !ok {
			continue
		}

		newStart := mo.DueDate.Add(-time.Duration(wo.DurationMinutes) * time.Minute)
		wo.Start = newStart
		if end, reachable := Advance(wo.Start, wo.DurationMinutes, center.Shifts, center.MaintenanceWindows); reachable {
			wo.End = end
		}
	}
}

// phaseTwoPrecedence propagates dependency chains: a work order's start is
// pulled forward to the latest end among its dependencies, iterating to a
// fixed point bounded by N = len(workOrders).
func phaseTwoPrecedence(workOrders []*entity.WorkOrder, byID map[string]*entity.WorkOrder, centersByID map[string]*entity.WorkCenter) {
	n := len(workOrders)
	for iter := 0; iter < n; iter++ {
		changed := false
		for _, wo := range workOrders {
			if wo.IsMaintenance || len(wo.DependsOn) == 0 {
				continue
			}
			maxEnd, found := latestDependencyEnd(wo, byID, true)
			if !found || !maxEnd.After(wo.Start) {
				continue
			}
			wo.Start = maxEnd
			if center, ok := centersByID[wo.WorkCenterID]; ok {
				if end, reachable := Advance(wo.Start, wo.DurationMinutes, center.Shifts, center.MaintenanceWindows); reachable {
					wo.End = end
				}
			}
			changed = true
		}
		if !changed {
			break
		}
	}
}

// phaseTwoPointFivePrecedenceOptimization looks, for each work order still
// overrunning its due date, at its limiting non-maintenance dependency and
// pulls that dependency's end earlier when doing so helps the dependent
// meet its due date, cascading the dependent's start forward to match.
func phaseTwoPointFivePrecedenceOptimization(workOrders []*entity.WorkOrder, byID map[string]*entity.WorkOrder, centersByID map[string]*entity.WorkCenter, ordersByID map[string]*entity.ManufacturingOrder) {
	n := len(workOrders)
	for iter := 0; iter < n; iter++ {
		changed := false
		for _, wo := range workOrders {
			if wo.IsMaintenance || len(wo.DependsOn) == 0 {
				continue
			}
			mo, ok := ordersByID[wo.ManufacturingOrderID]
			if !ok || !wo.End.After(mo.DueDate) {
				continue
			}

			limiting, found := limitingDependency(wo, byID)
			if !found {
				continue
			}

			targetStart := mo.DueDate.Add(-time.Duration(wo.DurationMinutes) * time.Minute)
			if !limiting.End.After(targetStart) {
				continue
			}

			depMO, ok := ordersByID[limiting.ManufacturingOrderID]
			if !ok {
				continue
			}
			newEnd := targetStart
			if depMO.DueDate.Before(newEnd) {
				newEnd = depMO.DueDate
			}
			if !newEnd.Before(limiting.End) {
				continue // proposed move does not actually reduce the dependency's end
			}

			limiting.Start = newEnd.Add(-time.Duration(limiting.DurationMinutes) * time.Minute)
			if center, ok := centersByID[limiting.WorkCenterID]; ok {
				if end, reachable := Advance(limiting.Start, limiting.DurationMinutes, center.Shifts, center.MaintenanceWindows); reachable {
					limiting.End = end
				}
			}

			wo.Start = limiting.End
			if center, ok := centersByID[wo.WorkCenterID]; ok {
				if end, reachable := Advance(wo.Start, wo.DurationMinutes, center.Shifts, center.MaintenanceWindows); reachable {
					wo.End = end
				}
			}
			changed = true
		}
		if !changed {
			break
		}
	}
}

// phaseThreeOverlapResolution partitions work orders by center, sweeps each
// partition in ascending start order, and pushes any non-maintenance work
// order that starts before the running cursor out to the cursor. Maintenance
// work orders are fixed blockers: the cursor advances past them but they are
// never moved.
func phaseThreeOverlapResolution(workOrders []*entity.WorkOrder, centersByID map[string]*entity.WorkCenter) {
	byCenter := make(map[string][]*entity.WorkOrder)
	for _, wo := range workOrders {
		byCenter[wo.WorkCenterID] = append(byCenter[wo.WorkCenterID], wo)
	}

	for _, orders := range byCenter {
		sorted := append([]*entity.WorkOrder(nil), orders...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Start.Before(sorted[j].Start)
		})

		var cursor time.Time
		hasCursor := false
		for _, wo := range sorted {
			if wo.IsMaintenance {
				cursor = wo.End
				hasCursor = true
				continue
			}
			if !hasCursor {
				cursor = wo.End
				hasCursor = true
				continue
			}
			if wo.Start.Before(cursor) {
				wo.Start = cursor
				if center, ok := centersByID[wo.WorkCenterID]; ok {
					if end, reachable := Advance(wo.Start, wo.DurationMinutes, center.Shifts, center.MaintenanceWindows); reachable {
						wo.End = end
					}
				}
			}
			cursor = wo.End
		}
	}
}

// latestDependencyEnd returns the latest current end among wo's present
// dependencies. When maintenanceEligible is false, maintenance dependencies
// are excluded from consideration.
func latestDependencyEnd(wo *entity.WorkOrder, byID map[string]*entity.WorkOrder, maintenanceEligible bool) (time.Time, bool) {
	var maxEnd time.Time
	found := false
	for _, depID := range wo.DependsOn {
		dep, ok := byID[depID]
		if !ok {
			continue
		}
		if dep.IsMaintenance && !maintenanceEligible {
			continue
		}
		if !found || dep.End.After(maxEnd) {
			maxEnd = dep.End
			found = true
		}
	}
	return maxEnd, found
}

// limitingDependency returns wo's non-maintenance dependency whose current
// end equals the maximum dependency end. Maintenance dependencies can never
// be limiting.
func limitingDependency(wo *entity.WorkOrder, byID map[string]*entity.WorkOrder) (*entity.WorkOrder, bool) {
	var limiting *entity.WorkOrder
	var maxEnd time.Time
	found := false
	for _, depID := range wo.DependsOn {
		dep, ok := byID[depID]
		if !ok || dep.IsMaintenance {
			continue
		}
		if !found || dep.End.After(maxEnd) {
			maxEnd = dep.End
			limiting = dep
			found = true
		}
	}
	return limiting, found
}

// buildChangeList emits one WorkOrderChange per work order whose start or
// end differs from its pre-pipeline snapshot, compared as parsed instants.
func buildChangeList(workOrders []*entity.WorkOrder, snapshots map[string]snapshot) []entity.WorkOrderChange {
	changes := make([]entity.WorkOrderChange, 0)
	for _, wo := range workOrders {
		snap := snapshots[wo.ID]
		if wo.Start.Equal(snap.start) && wo.End.Equal(snap.end) {
			continue
		}
		changes = append(changes, entity.WorkOrderChange{
			WorkOrderID: wo.ID,
			OldStart:    snap.start,
			NewStart:    wo.Start,
			OldEnd:      snap.end,
			NewEnd:      wo.End,
		})
	}
	return changes
}

// explain picks one of the three canonical explanation strings.
func explain(changes []entity.WorkOrderChange, total int, infeasible bool) string {
	if infeasible {
		return explanationInfeasible
	}
	if len(changes) == 0 {
		return explanationNoChanges
	}
	return fmt.Sprintf("%d of %d work orders rescheduled to satisfy constraints", len(changes), total)
}
