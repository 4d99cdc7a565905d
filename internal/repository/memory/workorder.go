package memory

import (
	"context"
	"sync"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// WorkOrderRepository is an in-memory implementation for testing.
type WorkOrderRepository struct {
	mu         sync.RWMutex
	orders     map[string]*entity.WorkOrder
	queryCount int
}

// NewWorkOrderRepository creates a new in-memory work order repository.
func NewWorkOrderRepository() *WorkOrderRepository {
	return &WorkOrderRepository{
		orders: make(map[string]*entity.WorkOrder),
	}
}

// Create stores a new work order.
func (r *WorkOrderRepository) Create(ctx context.Context, wo *entity.WorkOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if wo == nil {
		return &repository.ValidationError{Field: "WorkOrder", Message: "must not be nil"}
	}
	r.orders[wo.ID] = wo
	return nil
}

// GetByID retrieves a work order by id.
func (r *WorkOrderRepository) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	wo, ok := r.orders[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "WorkOrder", ResourceID: id}
	}
	return wo, nil
}

// GetByWorkCenter retrieves every work order assigned to a center.
func (r *WorkOrderRepository) GetByWorkCenter(ctx context.Context, workCenterID string) ([]*entity.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	var result []*entity.WorkOrder
	for _, wo := range r.orders {
		if wo.WorkCenterID == workCenterID {
			result = append(result, wo)
		}
	}
	return result, nil
}

// GetByManufacturingOrder retrieves every work order belonging to a
// manufacturing order.
func (r *WorkOrderRepository) GetByManufacturingOrder(ctx context.Context, manufacturingOrderID string) ([]*entity.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	var result []*entity.WorkOrder
	for _, wo := range r.orders {
		if wo.ManufacturingOrderID == manufacturingOrderID {
			result = append(result, wo)
		}
	}
	return result, nil
}

// GetAll retrieves every work order.
func (r *WorkOrderRepository) GetAll(ctx context.Context) ([]*entity.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	result := make([]*entity.WorkOrder, 0, len(r.orders))
	for _, wo := range r.orders {
		result = append(result, wo)
	}
	return result, nil
}

// GetAllByWorkCenterIDs is a batch accessor avoiding N+1 queries when a
// reflow run spans several centers at once.
func (r *WorkOrderRepository) GetAllByWorkCenterIDs(ctx context.Context, workCenterIDs []string) ([]*entity.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	wanted := make(map[string]bool, len(workCenterIDs))
	for _, id := range workCenterIDs {
		wanted[id] = true
	}

	var result []*entity.WorkOrder
	for _, wo := range r.orders {
		if wanted[wo.WorkCenterID] {
			result = append(result, wo)
		}
	}
	return result, nil
}

// Update replaces an existing work order.
func (r *WorkOrderRepository) Update(ctx context.Context, wo *entity.WorkOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if _, ok := r.orders[wo.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "WorkOrder", ResourceID: wo.ID}
	}
	r.orders[wo.ID] = wo
	return nil
}

// Delete removes a work order.
func (r *WorkOrderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if _, ok := r.orders[id]; !ok {
		return &repository.NotFoundError{ResourceType: "WorkOrder", ResourceID: id}
	}
	delete(r.orders, id)
	return nil
}

// Count returns the number of stored work orders.
func (r *WorkOrderRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	return int64(len(r.orders)), nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *WorkOrderRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets the query count.
func (r *WorkOrderRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = make(map[string]*entity.WorkOrder)
	r.queryCount = 0
}
