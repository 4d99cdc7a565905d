package memory

import (
	"context"

	"github.com/naologic/reflow/internal/repository"
)

// Database is an in-memory repository.Database, used in development and in
// tests that don't need a real Postgres instance.
type Database struct {
	workCenters         *WorkCenterRepository
	manufacturingOrders *ManufacturingOrderRepository
	workOrders          *WorkOrderRepository
	reflowRuns          *ReflowRunRepository
}

// NewDatabase creates a new in-memory Database with all repositories empty.
func NewDatabase() *Database {
	return &Database{
		workCenters:         NewWorkCenterRepository(),
		manufacturingOrders: NewManufacturingOrderRepository(),
		workOrders:          NewWorkOrderRepository(),
		reflowRuns:          NewReflowRunRepository(),
	}
}

func (d *Database) WorkCenterRepository() repository.WorkCenterRepository {
	return d.workCenters
}

func (d *Database) ManufacturingOrderRepository() repository.ManufacturingOrderRepository {
	return d.manufacturingOrders
}

func (d *Database) WorkOrderRepository() repository.WorkOrderRepository {
	return d.workOrders
}

func (d *Database) ReflowRunRepository() repository.ReflowRunRepository {
	return d.reflowRuns
}

// BeginTx returns a transaction over the same in-memory stores; the
// in-memory backend has no rollback support, so Commit and Rollback are
// both no-ops and every write is visible immediately.
func (d *Database) BeginTx(ctx context.Context) (repository.Transaction, error) {
	return &transaction{db: d}, nil
}

// Close is a no-op for the in-memory backend.
func (d *Database) Close() error { return nil }

// Health always reports healthy for the in-memory backend.
func (d *Database) Health(ctx context.Context) error { return nil }

type transaction struct {
	db *Database
}

func (t *transaction) Commit() error   { return nil }
func (t *transaction) Rollback() error { return nil }

func (t *transaction) WorkCenterRepository() repository.WorkCenterRepository {
	return t.db.WorkCenterRepository()
}

func (t *transaction) ManufacturingOrderRepository() repository.ManufacturingOrderRepository {
	return t.db.ManufacturingOrderRepository()
}

func (t *transaction) WorkOrderRepository() repository.WorkOrderRepository {
	return t.db.WorkOrderRepository()
}

func (t *transaction) ReflowRunRepository() repository.ReflowRunRepository {
	return t.db.ReflowRunRepository()
}
