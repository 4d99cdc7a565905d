package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// WorkOrderRepository implements repository.WorkOrderRepository for
// PostgreSQL.
type WorkOrderRepository struct {
	db querier
}

// NewWorkOrderRepository creates a new WorkOrderRepository.
func NewWorkOrderRepository(db querier) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

const workOrderColumns = `id, manufacturing_order_id, work_center_id, start_at, end_at, duration_minutes, is_maintenance, depends_on`

// Create inserts a new work order.
func (r *WorkOrderRepository) Create(ctx context.Context, wo *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		wo.ID, wo.ManufacturingOrderID, wo.WorkCenterID, wo.Start, wo.End,
		wo.DurationMinutes, wo.IsMaintenance, pq.Array(wo.DependsOn),
	)
	if err != nil {
		return fmt.Errorf("failed to create work order: %w", err)
	}
	return nil
}

func scanWorkOrder(row interface{ Scan(dest ...interface{}) error }) (*entity.WorkOrder, error) {
	wo := &entity.WorkOrder{}
	err := row.Scan(
		&wo.ID, &wo.ManufacturingOrderID, &wo.WorkCenterID, &wo.Start, &wo.End,
		&wo.DurationMinutes, &wo.IsMaintenance, pq.Array(&wo.DependsOn),
	)
	if err != nil {
		return nil, err
	}
	return wo, nil
}

// GetByID retrieves a work order by id.
func (r *WorkOrderRepository) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	wo, err := scanWorkOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "WorkOrder", ResourceID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work order: %w", err)
	}
	return wo, nil
}

func (r *WorkOrderRepository) queryAll(ctx context.Context, query string, args ...interface{}) ([]*entity.WorkOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query work orders: %w", err)
	}
	defer rows.Close()

	var result []*entity.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work order: %w", err)
		}
		result = append(result, wo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work orders: %w", err)
	}
	return result, nil
}

// GetByWorkCenter retrieves every work order assigned to a center.
func (r *WorkOrderRepository) GetByWorkCenter(ctx context.Context, workCenterID string) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE work_center_id = $1 ORDER BY start_at ASC`
	return r.queryAll(ctx, query, workCenterID)
}

// GetByManufacturingOrder retrieves every work order belonging to a
// manufacturing order.
func (r *WorkOrderRepository) GetByManufacturingOrder(ctx context.Context, manufacturingOrderID string) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE manufacturing_order_id = $1 ORDER BY start_at ASC`
	return r.queryAll(ctx, query, manufacturingOrderID)
}

// GetAll retrieves every work order.
func (r *WorkOrderRepository) GetAll(ctx context.Context) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders ORDER BY start_at ASC`
	return r.queryAll(ctx, query)
}

// GetAllByWorkCenterIDs is a batch accessor avoiding N+1 queries when a
// reflow run spans several centers at once.
func (r *WorkOrderRepository) GetAllByWorkCenterIDs(ctx context.Context, workCenterIDs []string) ([]*entity.WorkOrder, error) {
	if len(workCenterIDs) == 0 {
		return []*entity.WorkOrder{}, nil
	}
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE work_center_id = ANY($1) ORDER BY work_center_id, start_at ASC`
	return r.queryAll(ctx, query, pq.Array(workCenterIDs))
}

// Update replaces an existing work order's timestamps and other mutable
// fields.
func (r *WorkOrderRepository) Update(ctx context.Context, wo *entity.WorkOrder) error {
	query := `
		UPDATE work_orders
		SET manufacturing_order_id = $2, work_center_id = $3, start_at = $4, end_at = $5,
		    duration_minutes = $6, is_maintenance = $7, depends_on = $8
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		wo.ID, wo.ManufacturingOrderID, wo.WorkCenterID, wo.Start, wo.End,
		wo.DurationMinutes, wo.IsMaintenance, pq.Array(wo.DependsOn),
	)
	if err != nil {
		return fmt.Errorf("failed to update work order: %w", err)
	}
	return requireRowsAffected(result, "WorkOrder", wo.ID)
}

// Delete removes a work order.
func (r *WorkOrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM work_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work order: %w", err)
	}
	return requireRowsAffected(result, "WorkOrder", id)
}

// Count returns the number of work orders.
func (r *WorkOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM work_orders`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count work orders: %w", err)
	}
	return count, nil
}
