package helpers

import (
	"time"

	"github.com/naologic/reflow/internal/entity"
)

// WorkOrderBuilder builds WorkOrder entities with a fluent interface.
type WorkOrderBuilder struct {
	id                   string
	manufacturingOrderID string
	workCenterID         string
	start                time.Time
	end                  time.Time
	durationMinutes      int
	isMaintenance        bool
	dependsOn            []string
}

// NewWorkOrderBuilder creates a new WorkOrderBuilder with sensible defaults.
func NewWorkOrderBuilder() *WorkOrderBuilder {
	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	return &WorkOrderBuilder{
		id:                   "wo-1",
		manufacturingOrderID: "mo-1",
		workCenterID:         "wc-1",
		start:                start,
		end:                  start.Add(2 * time.Hour),
		durationMinutes:      120,
	}
}

func (b *WorkOrderBuilder) WithID(id string) *WorkOrderBuilder {
	b.id = id
	return b
}

func (b *WorkOrderBuilder) WithManufacturingOrderID(id string) *WorkOrderBuilder {
	b.manufacturingOrderID = id
	return b
}

func (b *WorkOrderBuilder) WithWorkCenterID(id string) *WorkOrderBuilder {
	b.workCenterID = id
	return b
}

func (b *WorkOrderBuilder) WithStart(start time.Time) *WorkOrderBuilder {
	b.start = start
	return b
}

func (b *WorkOrderBuilder) WithEnd(end time.Time) *WorkOrderBuilder {
	b.end = end
	return b
}

func (b *WorkOrderBuilder) WithDurationMinutes(minutes int) *WorkOrderBuilder {
	b.durationMinutes = minutes
	return b
}

func (b *WorkOrderBuilder) WithIsMaintenance(maintenance bool) *WorkOrderBuilder {
	b.isMaintenance = maintenance
	return b
}

func (b *WorkOrderBuilder) WithDependsOn(ids ...string) *WorkOrderBuilder {
	b.dependsOn = ids
	return b
}

// Build creates the WorkOrder entity.
func (b *WorkOrderBuilder) Build() *entity.WorkOrder {
	return &entity.WorkOrder{
		ID:                   b.id,
		ManufacturingOrderID: b.manufacturingOrderID,
		WorkCenterID:         b.workCenterID,
		Start:                b.start,
		End:                  b.end,
		DurationMinutes:      b.durationMinutes,
		IsMaintenance:        b.isMaintenance,
		DependsOn:            b.dependsOn,
	}
}

// WorkCenterBuilder builds WorkCenter entities with a fluent interface.
type WorkCenterBuilder struct {
	id                 string
	name               string
	shifts             []entity.Shift
	maintenanceWindows []entity.MaintenanceWindow
}

// NewWorkCenterBuilder creates a new WorkCenterBuilder with a default
// always-open calendar (no shifts, no maintenance windows).
func NewWorkCenterBuilder() *WorkCenterBuilder {
	return &WorkCenterBuilder{
		id:   "wc-1",
		name: "Press 1",
	}
}

func (b *WorkCenterBuilder) WithID(id string) *WorkCenterBuilder {
	b.id = id
	return b
}

func (b *WorkCenterBuilder) WithName(name string) *WorkCenterBuilder {
	b.name = name
	return b
}

func (b *WorkCenterBuilder) WithShifts(shifts ...entity.Shift) *WorkCenterBuilder {
	b.shifts = shifts
	return b
}

func (b *WorkCenterBuilder) WithMaintenanceWindows(windows ...entity.MaintenanceWindow) *WorkCenterBuilder {
	b.maintenanceWindows = windows
	return b
}

// Build creates the WorkCenter entity.
func (b *WorkCenterBuilder) Build() *entity.WorkCenter {
	return &entity.WorkCenter{
		ID:                 b.id,
		Name:               b.name,
		Shifts:             b.shifts,
		MaintenanceWindows: b.maintenanceWindows,
	}
}

// ManufacturingOrderBuilder builds ManufacturingOrder entities with a
// fluent interface.
type ManufacturingOrderBuilder struct {
	id      string
	dueDate time.Time
}

// NewManufacturingOrderBuilder creates a new ManufacturingOrderBuilder with
// sensible defaults.
func NewManufacturingOrderBuilder() *ManufacturingOrderBuilder {
	return &ManufacturingOrderBuilder{
		id:      "mo-1",
		dueDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func (b *ManufacturingOrderBuilder) WithID(id string) *ManufacturingOrderBuilder {
	b.id = id
	return b
}

func (b *ManufacturingOrderBuilder) WithDueDate(dueDate time.Time) *ManufacturingOrderBuilder {
	b.dueDate = dueDate
	return b
}

// Build creates the ManufacturingOrder entity.
func (b *ManufacturingOrderBuilder) Build() *entity.ManufacturingOrder {
	return &entity.ManufacturingOrder{
		ID:      b.id,
		DueDate: b.dueDate,
	}
}
