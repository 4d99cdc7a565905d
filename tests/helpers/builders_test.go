package helpers

import (
	"testing"
	"time"

	"github.com/naologic/reflow/internal/entity"
)

func TestWorkOrderBuilder_Default(t *testing.T) {
	wo := NewWorkOrderBuilder().Build()

	if wo.ID == "" {
		t.Error("expected work order ID to be set")
	}
	if wo.WorkCenterID == "" {
		t.Error("expected work center ID to be set")
	}
	if wo.ManufacturingOrderID == "" {
		t.Error("expected manufacturing order ID to be set")
	}
	if !wo.End.After(wo.Start) {
		t.Error("expected end to be after start")
	}
	if wo.IsMaintenance {
		t.Error("expected default work order to not be maintenance")
	}
}

func TestWorkOrderBuilder_WithMethods(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	wo := NewWorkOrderBuilder().
		WithID("wo-custom").
		WithWorkCenterID("wc-custom").
		WithManufacturingOrderID("mo-custom").
		WithStart(start).
		WithEnd(end).
		WithDurationMinutes(90).
		WithDependsOn("wo-a", "wo-b").
		Build()

	if wo.ID != "wo-custom" {
		t.Error("expected custom ID")
	}
	if wo.WorkCenterID != "wc-custom" {
		t.Error("expected custom work center ID")
	}
	if !wo.Start.Equal(start) || !wo.End.Equal(end) {
		t.Error("expected custom start/end")
	}
	if len(wo.DependsOn) != 2 {
		t.Error("expected two dependencies")
	}
}

func TestWorkOrderBuilder_Maintenance(t *testing.T) {
	wo := NewWorkOrderBuilder().WithIsMaintenance(true).Build()
	if !wo.IsMaintenance {
		t.Error("expected maintenance flag to be set")
	}
}

func TestWorkCenterBuilder_Default(t *testing.T) {
	wc := NewWorkCenterBuilder().Build()

	if wc.ID == "" {
		t.Error("expected work center ID to be set")
	}
	if wc.HasCalendar() {
		t.Error("expected default work center to have no calendar constraints")
	}
}

func TestWorkCenterBuilder_WithShiftsAndMaintenance(t *testing.T) {
	shift := entity.Shift{Day: entity.Monday, StartHour: 8, EndHour: 16}
	window := entity.MaintenanceWindow{
		Start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 4, 0, 0, 0, time.UTC),
	}

	wc := NewWorkCenterBuilder().
		WithShifts(shift).
		WithMaintenanceWindows(window).
		Build()

	if !wc.HasCalendar() {
		t.Error("expected calendar to be populated")
	}
	if len(wc.Shifts) != 1 || wc.Shifts[0] != shift {
		t.Error("expected shift to be set")
	}
	if len(wc.MaintenanceWindows) != 1 {
		t.Error("expected maintenance window to be set")
	}
}

func TestManufacturingOrderBuilder_Default(t *testing.T) {
	mo := NewManufacturingOrderBuilder().Build()

	if mo.ID == "" {
		t.Error("expected manufacturing order ID to be set")
	}
	if mo.DueDate.IsZero() {
		t.Error("expected due date to be set")
	}
}

func TestManufacturingOrderBuilder_WithDueDate(t *testing.T) {
	due := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	mo := NewManufacturingOrderBuilder().WithDueDate(due).Build()

	if !mo.DueDate.Equal(due) {
		t.Error("expected custom due date")
	}
}

func TestBuilders_Independence(t *testing.T) {
	builder1 := NewWorkOrderBuilder().WithID("wo-1")
	wo1 := builder1.Build()

	builder2 := NewWorkOrderBuilder().WithID("wo-2")
	wo2 := builder2.Build()

	if wo1.ID == wo2.ID {
		t.Error("expected builders to be independent")
	}

	wo1b := builder1.Build()
	if wo1b.ID != "wo-1" {
		t.Error("expected builder to remember its own state")
	}
}
