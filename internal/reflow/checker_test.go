package reflow

import (
	"testing"
	"time"

	"github.com/naologic/reflow/internal/entity"
	"github.com/stretchr/testify/assert"
)

func mustDate(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestCheckAllPassesOnNoOpFeasibleCase(t *testing.T) {
	center := &entity.WorkCenter{
		ID:     "wc-1",
		Shifts: []entity.Shift{{Day: entity.Monday, StartHour: 8, EndHour: 16}},
	}
	mo := &entity.ManufacturingOrder{ID: "mo-1", DueDate: mustDate(2024, 1, 20, 17, 0)}
	wo := &entity.WorkOrder{
		ID:                   "wo-1",
		ManufacturingOrderID: "mo-1",
		WorkCenterID:         "wc-1",
		Start:                mustDate(2024, 1, 15, 8, 0),
		End:                  mustDate(2024, 1, 15, 12, 0),
		DurationMinutes:      240,
	}

	ok, diags := CheckAll(
		[]*entity.WorkOrder{wo},
		map[string]*entity.WorkCenter{"wc-1": center},
		map[string]*entity.ManufacturingOrder{"mo-1": mo},
	)

	assert.True(t, ok)
	assert.Empty(t, diags)
}

func TestCheckAllFlagsOverlap(t *testing.T) {
	center := &entity.WorkCenter{ID: "wc-1"}
	a := &entity.WorkOrder{ID: "wo-a", WorkCenterID: "wc-1", Start: mustDate(2024, 1, 15, 8, 0), End: mustDate(2024, 1, 15, 12, 0), DurationMinutes: 240}
	b := &entity.WorkOrder{ID: "wo-b", WorkCenterID: "wc-1", Start: mustDate(2024, 1, 15, 10, 0), End: mustDate(2024, 1, 15, 14, 0), DurationMinutes: 240}

	ok, diags := CheckAll(
		[]*entity.WorkOrder{a, b},
		map[string]*entity.WorkCenter{"wc-1": center},
		nil,
	)

	assert.False(t, ok)
	assert.NotEmpty(t, diags)
}

func TestCheckAllFlagsInvalidTimestamps(t *testing.T) {
	wo := &entity.WorkOrder{ID: "wo-1", WorkCenterID: "wc-1", Start: mustDate(2024, 1, 15, 12, 0), End: mustDate(2024, 1, 15, 8, 0)}

	ok, diags := CheckAll(
		[]*entity.WorkOrder{wo},
		map[string]*entity.WorkCenter{"wc-1": {ID: "wc-1"}},
		nil,
	)

	assert.False(t, ok)
	assert.Len(t, diags, 1)
}

func TestCheckAllFlagsDueDateViolation(t *testing.T) {
	mo := &entity.ManufacturingOrder{ID: "mo-1", DueDate: mustDate(2024, 1, 14, 17, 0)}
	wo := &entity.WorkOrder{
		ID:                   "wo-1",
		ManufacturingOrderID: "mo-1",
		WorkCenterID:         "wc-1",
		Start:                mustDate(2024, 1, 15, 8, 0),
		End:                  mustDate(2024, 1, 15, 16, 0),
	}

	ok, diags := CheckAll(
		[]*entity.WorkOrder{wo},
		map[string]*entity.WorkCenter{"wc-1": {ID: "wc-1"}},
		map[string]*entity.ManufacturingOrder{"mo-1": mo},
	)

	assert.False(t, ok)
	assert.NotEmpty(t, diags)
}

func TestCheckAllFlagsUnknownWorkCenter(t *testing.T) {
	wo := &entity.WorkOrder{ID: "wo-1", WorkCenterID: "missing", Start: mustDate(2024, 1, 15, 8, 0), End: mustDate(2024, 1, 15, 9, 0)}

	ok, diags := CheckAll([]*entity.WorkOrder{wo}, map[string]*entity.WorkCenter{}, nil)

	assert.False(t, ok)
	assert.NotEmpty(t, diags)
}

func TestCheckAllFlagsDependencyViolation(t *testing.T) {
	a := &entity.WorkOrder{ID: "wo-a", WorkCenterID: "wc-1", Start: mustDate(2024, 1, 15, 8, 0), End: mustDate(2024, 1, 15, 10, 0)}
	b := &entity.WorkOrder{ID: "wo-b", WorkCenterID: "wc-1", Start: mustDate(2024, 1, 15, 9, 0), End: mustDate(2024, 1, 15, 11, 0), DependsOn: []string{"wo-a"}}

	ok, diags := CheckAll(
		[]*entity.WorkOrder{a, b},
		map[string]*entity.WorkCenter{"wc-1": {ID: "wc-1"}},
		nil,
	)

	assert.False(t, ok)
	assert.NotEmpty(t, diags)
}

func TestCheckAllFlagsCalendarMismatch(t *testing.T) {
	center := &entity.WorkCenter{
		ID:     "wc-1",
		Shifts: []entity.Shift{{Day: entity.Monday, StartHour: 8, EndHour: 16}},
	}
	wo := &entity.WorkOrder{
		ID:              "wo-1",
		WorkCenterID:    "wc-1",
		Start:           mustDate(2024, 1, 15, 8, 0),
		End:             mustDate(2024, 1, 15, 11, 0), // should be 12:00 for a 240-minute job
		DurationMinutes: 240,
	}

	ok, diags := CheckAll([]*entity.WorkOrder{wo}, map[string]*entity.WorkCenter{"wc-1": center}, nil)

	assert.False(t, ok)
	assert.NotEmpty(t, diags)
}

func TestCheckAllSkipsMaintenanceWorkOrdersForDueDateAndCalendar(t *testing.T) {
	center := &entity.WorkCenter{
		ID:     "wc-1",
		Shifts: []entity.Shift{{Day: entity.Monday, StartHour: 8, EndHour: 16}},
	}
	maintenance := &entity.WorkOrder{
		ID:              "maint-1",
		WorkCenterID:    "wc-1",
		Start:           mustDate(2024, 1, 15, 8, 0),
		End:             mustDate(2024, 1, 15, 9, 0),
		DurationMinutes: 999,
		IsMaintenance:   true,
	}

	ok, diags := CheckAll([]*entity.WorkOrder{maintenance}, map[string]*entity.WorkCenter{"wc-1": center}, nil)

	assert.True(t, ok)
	assert.Empty(t, diags)
}
