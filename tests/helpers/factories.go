package helpers

import (
	"fmt"
	"time"

	"github.com/naologic/reflow/internal/entity"
)

// Factory functions create valid entities with sensible defaults.

// CreateValidWorkOrder creates a valid WorkOrder with all required fields.
func CreateValidWorkOrder() *entity.WorkOrder {
	return NewWorkOrderBuilder().Build()
}

// CreateValidWorkOrderWithWindow creates a valid WorkOrder over a specific
// start/end window.
func CreateValidWorkOrderWithWindow(start, end time.Time) *entity.WorkOrder {
	return NewWorkOrderBuilder().
		WithStart(start).
		WithEnd(end).
		WithDurationMinutes(int(end.Sub(start).Minutes())).
		Build()
}

// CreateValidWorkOrderDependingOn creates a valid WorkOrder that depends on
// the given work order ids.
func CreateValidWorkOrderDependingOn(ids ...string) *entity.WorkOrder {
	return NewWorkOrderBuilder().
		WithDependsOn(ids...).
		Build()
}

// CreateValidMaintenanceWorkOrder creates a valid maintenance WorkOrder.
func CreateValidMaintenanceWorkOrder() *entity.WorkOrder {
	return NewWorkOrderBuilder().
		WithIsMaintenance(true).
		Build()
}

// CreateValidWorkCenter creates a valid WorkCenter with no calendar
// constraints (always open, no maintenance).
func CreateValidWorkCenter() *entity.WorkCenter {
	return NewWorkCenterBuilder().Build()
}

// CreateValidWorkCenterWithShifts creates a valid WorkCenter constrained to
// the given weekly shifts.
func CreateValidWorkCenterWithShifts(shifts ...entity.Shift) *entity.WorkCenter {
	return NewWorkCenterBuilder().
		WithShifts(shifts...).
		Build()
}

// CreateValidWorkCenterWithMaintenance creates a valid WorkCenter with the
// given maintenance windows.
func CreateValidWorkCenterWithMaintenance(windows ...entity.MaintenanceWindow) *entity.WorkCenter {
	return NewWorkCenterBuilder().
		WithMaintenanceWindows(windows...).
		Build()
}

// CreateValidManufacturingOrder creates a valid ManufacturingOrder.
func CreateValidManufacturingOrder() *entity.ManufacturingOrder {
	return NewManufacturingOrderBuilder().Build()
}

// CreateValidManufacturingOrderDueBy creates a valid ManufacturingOrder with
// a specific due date.
func CreateValidManufacturingOrderDueBy(dueDate time.Time) *entity.ManufacturingOrder {
	return NewManufacturingOrderBuilder().
		WithDueDate(dueDate).
		Build()
}

// BulkCreateValidWorkOrders creates count valid WorkOrders spread across the
// given work center, each one hour long and sequential from start.
func BulkCreateValidWorkOrders(count int, workCenterID string, start time.Time) []*entity.WorkOrder {
	workOrders := make([]*entity.WorkOrder, count)
	for i := 0; i < count; i++ {
		woStart := start.Add(time.Duration(i) * time.Hour)
		workOrders[i] = NewWorkOrderBuilder().
			WithID(fmt.Sprintf("wo-%d", i+1)).
			WithWorkCenterID(workCenterID).
			WithStart(woStart).
			WithEnd(woStart.Add(time.Hour)).
			WithDurationMinutes(60).
			Build()
	}
	return workOrders
}
