package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// WorkCenterRepository implements repository.WorkCenterRepository for
// PostgreSQL. Shifts and maintenance windows are stored as JSON columns
// since neither has independent identity outside its parent work center.
type WorkCenterRepository struct {
	db querier
}

// NewWorkCenterRepository creates a new WorkCenterRepository.
func NewWorkCenterRepository(db querier) *WorkCenterRepository {
	return &WorkCenterRepository{db: db}
}

type storedShift struct {
	Day       int `json:"day"`
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

type storedMaintenanceWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Create inserts a new work center.
func (r *WorkCenterRepository) Create(ctx context.Context, wc *entity.WorkCenter) error {
	shifts, err := encodeShifts(wc.Shifts)
	if err != nil {
		return fmt.Errorf("failed to encode shifts: %w", err)
	}
	windows, err := encodeMaintenanceWindows(wc.MaintenanceWindows)
	if err != nil {
		return fmt.Errorf("failed to encode maintenance windows: %w", err)
	}

	query := `
		INSERT INTO work_centers (id, name, shifts, maintenance_windows)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.db.ExecContext(ctx, query, wc.ID, wc.Name, shifts, windows)
	if err != nil {
		return fmt.Errorf("failed to create work center: %w", err)
	}
	return nil
}

// GetByID retrieves a work center by id.
func (r *WorkCenterRepository) GetByID(ctx context.Context, id string) (*entity.WorkCenter, error) {
	query := `SELECT id, name, shifts, maintenance_windows FROM work_centers WHERE id = $1`

	var shiftsJSON, windowsJSON []byte
	wc := &entity.WorkCenter{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&wc.ID, &wc.Name, &shiftsJSON, &windowsJSON)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "WorkCenter", ResourceID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work center: %w", err)
	}

	if wc.Shifts, err = decodeShifts(shiftsJSON); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	if wc.MaintenanceWindows, err = decodeMaintenanceWindows(windowsJSON); err != nil {
		return nil, fmt.Errorf("failed to decode maintenance windows: %w", err)
	}
	return wc, nil
}

// GetAll retrieves every work center.
func (r *WorkCenterRepository) GetAll(ctx context.Context) ([]*entity.WorkCenter, error) {
	query := `SELECT id, name, shifts, maintenance_windows FROM work_centers ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query work centers: %w", err)
	}
	defer rows.Close()

	var result []*entity.WorkCenter
	for rows.Next() {
		var shiftsJSON, windowsJSON []byte
		wc := &entity.WorkCenter{}
		if err := rows.Scan(&wc.ID, &wc.Name, &shiftsJSON, &windowsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan work center: %w", err)
		}
		if wc.Shifts, err = decodeShifts(shiftsJSON); err != nil {
			return nil, fmt.Errorf("failed to decode shifts: %w", err)
		}
		if wc.MaintenanceWindows, err = decodeMaintenanceWindows(windowsJSON); err != nil {
			return nil, fmt.Errorf("failed to decode maintenance windows: %w", err)
		}
		result = append(result, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work centers: %w", err)
	}
	return result, nil
}

// Update replaces an existing work center's name, shifts, and maintenance
// windows.
func (r *WorkCenterRepository) Update(ctx context.Context, wc *entity.WorkCenter) error {
	shifts, err := encodeShifts(wc.Shifts)
	if err != nil {
		return fmt.Errorf("failed to encode shifts: %w", err)
	}
	windows, err := encodeMaintenanceWindows(wc.MaintenanceWindows)
	if err != nil {
		return fmt.Errorf("failed to encode maintenance windows: %w", err)
	}

	query := `UPDATE work_centers SET name = $2, shifts = $3, maintenance_windows = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, wc.ID, wc.Name, shifts, windows)
	if err != nil {
		return fmt.Errorf("failed to update work center: %w", err)
	}
	return requireRowsAffected(result, "WorkCenter", wc.ID)
}

// Delete removes a work center.
func (r *WorkCenterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM work_centers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work center: %w", err)
	}
	return requireRowsAffected(result, "WorkCenter", id)
}

// Count returns the number of work centers.
func (r *WorkCenterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM work_centers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count work centers: %w", err)
	}
	return count, nil
}

func encodeShifts(shifts []entity.Shift) ([]byte, error) {
	stored := make([]storedShift, len(shifts))
	for i, s := range shifts {
		stored[i] = storedShift{Day: int(s.Day), StartHour: s.StartHour, EndHour: s.EndHour}
	}
	return json.Marshal(stored)
}

func decodeShifts(raw []byte) ([]entity.Shift, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var stored []storedShift
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	shifts := make([]entity.Shift, len(stored))
	for i, s := range stored {
		shifts[i] = entity.Shift{Day: entity.Weekday(s.Day), StartHour: s.StartHour, EndHour: s.EndHour}
	}
	return shifts, nil
}

func encodeMaintenanceWindows(windows []entity.MaintenanceWindow) ([]byte, error) {
	stored := make([]storedMaintenanceWindow, len(windows))
	for i, w := range windows {
		stored[i] = storedMaintenanceWindow{
			Start: w.Start.Format(timeLayout),
			End:   w.End.Format(timeLayout),
		}
	}
	return json.Marshal(stored)
}

func decodeMaintenanceWindows(raw []byte) ([]entity.MaintenanceWindow, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var stored []storedMaintenanceWindow
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	windows := make([]entity.MaintenanceWindow, len(stored))
	for i, w := range stored {
		start, err := timeParse(w.Start)
		if err != nil {
			return nil, err
		}
		end, err := timeParse(w.End)
		if err != nil {
			return nil, err
		}
		windows[i] = entity.MaintenanceWindow{Start: start, End: end}
	}
	return windows, nil
}
