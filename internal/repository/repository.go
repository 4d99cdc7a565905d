package repository

import (
	"context"
	"time"

	"github.com/naologic/reflow/internal/entity"
)

// Database provides access to all repositories backing the reflow service.
type Database interface {
	// Transaction management
	BeginTx(ctx context.Context) (Transaction, error)

	// Repository accessors
	WorkCenterRepository() WorkCenterRepository
	ManufacturingOrderRepository() ManufacturingOrderRepository
	WorkOrderRepository() WorkOrderRepository
	ReflowRunRepository() ReflowRunRepository

	// Connection management
	Close() error
	Health(ctx context.Context) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error

	WorkCenterRepository() WorkCenterRepository
	ManufacturingOrderRepository() ManufacturingOrderRepository
	WorkOrderRepository() WorkOrderRepository
	ReflowRunRepository() ReflowRunRepository
}

// WorkCenterRepository defines data access operations for work centers,
// including their shift calendar and maintenance windows.
type WorkCenterRepository interface {
	Create(ctx context.Context, wc *entity.WorkCenter) error
	GetByID(ctx context.Context, id string) (*entity.WorkCenter, error)
	GetAll(ctx context.Context) ([]*entity.WorkCenter, error)
	Update(ctx context.Context, wc *entity.WorkCenter) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ManufacturingOrderRepository defines data access operations for
// manufacturing orders.
type ManufacturingOrderRepository interface {
	Create(ctx context.Context, mo *entity.ManufacturingOrder) error
	GetByID(ctx context.Context, id string) (*entity.ManufacturingOrder, error)
	GetAll(ctx context.Context) ([]*entity.ManufacturingOrder, error)
	GetDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.ManufacturingOrder, error)
	Update(ctx context.Context, mo *entity.ManufacturingOrder) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// WorkOrderRepository defines data access operations for work orders.
type WorkOrderRepository interface {
	Create(ctx context.Context, wo *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	GetByWorkCenter(ctx context.Context, workCenterID string) ([]*entity.WorkOrder, error)
	GetByManufacturingOrder(ctx context.Context, manufacturingOrderID string) ([]*entity.WorkOrder, error)
	GetAll(ctx context.Context) ([]*entity.WorkOrder, error)
	Update(ctx context.Context, wo *entity.WorkOrder) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)

	// GetAllByWorkCenterIDs is a batch accessor avoiding N+1 queries when a
	// reflow run spans several centers at once.
	GetAllByWorkCenterIDs(ctx context.Context, workCenterIDs []string) ([]*entity.WorkOrder, error)
}

// ReflowRunRepository defines data access operations for recorded reflow
// invocations, used to expose job status and audit the change list a run
// produced.
type ReflowRunRepository interface {
	Create(ctx context.Context, run *entity.ReflowRun) error
	GetByID(ctx context.Context, id string) (*entity.ReflowRun, error)
	Update(ctx context.Context, run *entity.ReflowRun) error
	ListRecent(ctx context.Context, limit int) ([]*entity.ReflowRun, error)
	Count(ctx context.Context) (int64, error)
}

// NotFoundError represents a record not found error.
type NotFoundError struct {
	ResourceType string
	ResourceID   string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return "not found: " + e.ResourceType + " " + e.ResourceID
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ValidationError represents a validation error.
type ValidationError struct {
	Message string
	Field   string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
