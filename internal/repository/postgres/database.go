package postgres

import (
	"context"
	"database/sql"

	"github.com/naologic/reflow/internal/repository"
)

// Database is the PostgreSQL-backed repository.Database.
type Database struct {
	db *DB

	workCenters         *WorkCenterRepository
	manufacturingOrders *ManufacturingOrderRepository
	workOrders          *WorkOrderRepository
	reflowRuns          *ReflowRunRepository
}

// NewDatabase wires all repositories against the same connection pool.
func NewDatabase(connString string) (*Database, error) {
	db, err := New(connString)
	if err != nil {
		return nil, err
	}

	return &Database{
		db:                  db,
		workCenters:         NewWorkCenterRepository(db.DB),
		manufacturingOrders: NewManufacturingOrderRepository(db.DB),
		workOrders:          NewWorkOrderRepository(db.DB),
		reflowRuns:          NewReflowRunRepository(db.DB),
	}, nil
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

func (d *Database) Close() error { return d.db.Close() }

func (d *Database) Health(ctx context.Context) error { return d.db.Health(ctx) }

// BeginTx starts a real SQL transaction and returns repositories bound to it
// instead of the pool, so all work inside the transaction is atomic.
func (d *Database) BeginTx(ctx context.Context) (repository.Transaction, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &transaction{tx: tx}, nil
}

type transaction struct {
	tx *sql.Tx
}

func (t *transaction) Commit() error   { return t.tx.Commit() }
func (t *transaction) Rollback() error { return t.tx.Rollback() }

func (t *transaction) WorkCenterRepository() repository.WorkCenterRepository {
	return &WorkCenterRepository{db: t.tx}
}

func (t *transaction) ManufacturingOrderRepository() repository.ManufacturingOrderRepository {
	return &ManufacturingOrderRepository{db: t.tx}
}

func (t *transaction) WorkOrderRepository() repository.WorkOrderRepository {
	return &WorkOrderRepository{db: t.tx}
}

func (t *transaction) ReflowRunRepository() repository.ReflowRunRepository {
	return &ReflowRunRepository{db: t.tx}
}
