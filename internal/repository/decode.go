package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/naologic/reflow/internal/entity"
)

// ReflowRequestDocument is the JSON wire shape for one reflow invocation:
// the work orders, work centers, and manufacturing orders to reflow
// together. It plays the role of the document-schema wrapper the core
// treats as an out-of-scope collaborator — the core never sees JSON, only
// the entity values this type decodes into.
type ReflowRequestDocument struct {
	WorkOrders          []workOrderDocument          `json:"work_orders"`
	WorkCenters         []workCenterDocument         `json:"work_centers"`
	ManufacturingOrders []manufacturingOrderDocument `json:"manufacturing_orders"`
}

type workOrderDocument struct {
	ID                   string   `json:"id"`
	ManufacturingOrderID string   `json:"manufacturing_order_id"`
	WorkCenterID         string   `json:"work_center_id"`
	Start                string   `json:"start"`
	End                  string   `json:"end"`
	DurationMinutes      int      `json:"duration_minutes"`
	IsMaintenance        bool     `json:"is_maintenance"`
	DependsOn            []string `json:"depends_on"`
}

type shiftDocument struct {
	Day       int `json:"day"`
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

type maintenanceWindowDocument struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type workCenterDocument struct {
	ID                 string                      `json:"id"`
	Name               string                      `json:"name"`
	Shifts             []shiftDocument             `json:"shifts"`
	MaintenanceWindows []maintenanceWindowDocument `json:"maintenance_windows"`
}

type manufacturingOrderDocument struct {
	ID      string `json:"id"`
	DueDate string `json:"due_date"`
}

// DecodeReflowRequest parses a wire-format reflow request. It performs
// exactly the shape validation the core's invariants assume is already
// true on entry — ISO-8601 timestamps, shift hours within 0..23/0..24, and
// non-zero-length shifts — and rejects the document outright if any of
// that fails. It does not check cross-references between work orders,
// centers, and manufacturing orders; those are semantic, not shape,
// concerns and are left for the core's checker to report.
func DecodeReflowRequest(raw []byte) ([]*entity.WorkOrder, []*entity.WorkCenter, []*entity.ManufacturingOrder, error) {
	var doc ReflowRequestDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid reflow request: %w", err)
	}

	centers := make([]*entity.WorkCenter, 0, len(doc.WorkCenters))
	for _, wcDoc := range doc.WorkCenters {
		wc, err := decodeWorkCenter(wcDoc)
		if err != nil {
			return nil, nil, nil, err
		}
		centers = append(centers, wc)
	}

	manufacturingOrders := make([]*entity.ManufacturingOrder, 0, len(doc.ManufacturingOrders))
	for _, moDoc := range doc.ManufacturingOrders {
		dueDate, err := time.Parse(time.RFC3339, moDoc.DueDate)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("manufacturing order %s: invalid due_date: %w", moDoc.ID, err)
		}
		manufacturingOrders = append(manufacturingOrders, &entity.ManufacturingOrder{ID: moDoc.ID, DueDate: dueDate})
	}

	workOrders := make([]*entity.WorkOrder, 0, len(doc.WorkOrders))
	for _, woDoc := range doc.WorkOrders {
		wo, err := decodeWorkOrder(woDoc)
		if err != nil {
			return nil, nil, nil, err
		}
		workOrders = append(workOrders, wo)
	}

	return workOrders, centers, manufacturingOrders, nil
}

func decodeWorkOrder(doc workOrderDocument) (*entity.WorkOrder, error) {
	start, err := time.Parse(time.RFC3339, doc.Start)
	if err != nil {
		return nil, fmt.Errorf("work order %s: invalid start: %w", doc.ID, err)
	}
	end, err := time.Parse(time.RFC3339, doc.End)
	if err != nil {
		return nil, fmt.Errorf("work order %s: invalid end: %w", doc.ID, err)
	}
	return &entity.WorkOrder{
		ID:                   doc.ID,
		ManufacturingOrderID: doc.ManufacturingOrderID,
		WorkCenterID:         doc.WorkCenterID,
		Start:                start,
		End:                  end,
		DurationMinutes:      doc.DurationMinutes,
		IsMaintenance:        doc.IsMaintenance,
		DependsOn:            doc.DependsOn,
	}, nil
}

func decodeWorkCenter(doc workCenterDocument) (*entity.WorkCenter, error) {
	shifts := make([]entity.Shift, 0, len(doc.Shifts))
	for _, sDoc := range doc.Shifts {
		if sDoc.StartHour < 0 || sDoc.StartHour > 23 {
			return nil, fmt.Errorf("work center %s: shift start_hour %d out of range 0..23", doc.ID, sDoc.StartHour)
		}
		if sDoc.EndHour < 0 || sDoc.EndHour > 24 {
			return nil, fmt.Errorf("work center %s: shift end_hour %d out of range 0..24", doc.ID, sDoc.EndHour)
		}
		if sDoc.StartHour == sDoc.EndHour {
			return nil, fmt.Errorf("work center %s: zero-length shift on day %d", doc.ID, sDoc.Day)
		}
		shifts = append(shifts, entity.Shift{
			Day:       entity.Weekday(sDoc.Day),
			StartHour: sDoc.StartHour,
			EndHour:   sDoc.EndHour,
		})
	}

	windows := make([]entity.MaintenanceWindow, 0, len(doc.MaintenanceWindows))
	for _, wDoc := range doc.MaintenanceWindows {
		start, err := time.Parse(time.RFC3339, wDoc.Start)
		if err != nil {
			return nil, fmt.Errorf("work center %s: invalid maintenance window start: %w", doc.ID, err)
		}
		end, err := time.Parse(time.RFC3339, wDoc.End)
		if err != nil {
			return nil, fmt.Errorf("work center %s: invalid maintenance window end: %w", doc.ID, err)
		}
		windows = append(windows, entity.MaintenanceWindow{Start: start, End: end})
	}

	return &entity.WorkCenter{
		ID:                 doc.ID,
		Name:               doc.Name,
		Shifts:             shifts,
		MaintenanceWindows: windows,
	}, nil
}
