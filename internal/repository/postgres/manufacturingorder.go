package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// ManufacturingOrderRepository implements repository.ManufacturingOrderRepository
// for PostgreSQL.
type ManufacturingOrderRepository struct {
	db querier
}

// NewManufacturingOrderRepository creates a new ManufacturingOrderRepository.
func NewManufacturingOrderRepository(db querier) *ManufacturingOrderRepository {
	return &ManufacturingOrderRepository{db: db}
}

// Create inserts a new manufacturing order.
func (r *ManufacturingOrderRepository) Create(ctx context.Context, mo *entity.ManufacturingOrder) error {
	query := `INSERT INTO manufacturing_orders (id, due_date) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, mo.ID, mo.DueDate)
	if err != nil {
		return fmt.Errorf("failed to create manufacturing order: %w", err)
	}
	return nil
}

// GetByID retrieves a manufacturing order by id.
func (r *ManufacturingOrderRepository) GetByID(ctx context.Context, id string) (*entity.ManufacturingOrder, error) {
	mo := &entity.ManufacturingOrder{}
	query := `SELECT id, due_date FROM manufacturing_orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&mo.ID, &mo.DueDate)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "ManufacturingOrder", ResourceID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manufacturing order: %w", err)
	}
	return mo, nil
}

// GetAll retrieves every manufacturing order.
func (r *ManufacturingOrderRepository) GetAll(ctx context.Context) ([]*entity.ManufacturingOrder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, due_date FROM manufacturing_orders ORDER BY due_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query manufacturing orders: %w", err)
	}
	defer rows.Close()

	var result []*entity.ManufacturingOrder
	for rows.Next() {
		mo := &entity.ManufacturingOrder{}
		if err := rows.Scan(&mo.ID, &mo.DueDate); err != nil {
			return nil, fmt.Errorf("failed to scan manufacturing order: %w", err)
		}
		result = append(result, mo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manufacturing orders: %w", err)
	}
	return result, nil
}

// GetDueBefore retrieves every manufacturing order whose due date is before
// cutoff.
func (r *ManufacturingOrderRepository) GetDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.ManufacturingOrder, error) {
	query := `SELECT id, due_date FROM manufacturing_orders WHERE due_date < $1 ORDER BY due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query manufacturing orders: %w", err)
	}
	defer rows.Close()

	var result []*entity.ManufacturingOrder
	for rows.Next() {
		mo := &entity.ManufacturingOrder{}
		if err := rows.Scan(&mo.ID, &mo.DueDate); err != nil {
			return nil, fmt.Errorf("failed to scan manufacturing order: %w", err)
		}
		result = append(result, mo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manufacturing orders: %w", err)
	}
	return result, nil
}

// Update replaces an existing manufacturing order's due date.
func (r *ManufacturingOrderRepository) Update(ctx context.Context, mo *entity.ManufacturingOrder) error {
	result, err := r.db.ExecContext(ctx, `UPDATE manufacturing_orders SET due_date = $2 WHERE id = $1`, mo.ID, mo.DueDate)
	if err != nil {
		return fmt.Errorf("failed to update manufacturing order: %w", err)
	}
	return requireRowsAffected(result, "ManufacturingOrder", mo.ID)
}

// Delete removes a manufacturing order.
func (r *ManufacturingOrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM manufacturing_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete manufacturing order: %w", err)
	}
	return requireRowsAffected(result, "ManufacturingOrder", id)
}

// Count returns the number of manufacturing orders.
func (r *ManufacturingOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM manufacturing_orders`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count manufacturing orders: %w", err)
	}
	return count, nil
}
