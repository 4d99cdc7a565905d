package memory

import (
	"context"
	"sync"
	"time"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// ManufacturingOrderRepository is an in-memory implementation for testing.
type ManufacturingOrderRepository struct {
	mu         sync.RWMutex
	orders     map[string]*entity.ManufacturingOrder
	queryCount int
}

// NewManufacturingOrderRepository creates a new in-memory manufacturing
// order repository.
func NewManufacturingOrderRepository() *ManufacturingOrderRepository {
	return &ManufacturingOrderRepository{
		orders: make(map[string]*entity.ManufacturingOrder),
	}
}

// Create stores a new manufacturing order.
func (r *ManufacturingOrderRepository) Create(ctx context.Context, mo *entity.ManufacturingOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if mo == nil {
		return &repository.ValidationError{Field: "ManufacturingOrder", Message: "must not be nil"}
	}
	r.orders[mo.ID] = mo
	return nil
}

// GetByID retrieves a manufacturing order by id.
func (r *ManufacturingOrderRepository) GetByID(ctx context.Context, id string) (*entity.ManufacturingOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	mo, ok := r.orders[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "ManufacturingOrder", ResourceID: id}
	}
	return mo, nil
}

// GetAll retrieves every manufacturing order.
func (r *ManufacturingOrderRepository) GetAll(ctx context.Context) ([]*entity.ManufacturingOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	result := make([]*entity.ManufacturingOrder, 0, len(r.orders))
	for _, mo := range r.orders {
		result = append(result, mo)
	}
	return result, nil
}

// GetDueBefore retrieves every manufacturing order whose due date is before
// cutoff.
func (r *ManufacturingOrderRepository) GetDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.ManufacturingOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	var result []*entity.ManufacturingOrder
	for _, mo := range r.orders {
		if mo.DueDate.Before(cutoff) {
			result = append(result, mo)
		}
	}
	return result, nil
}

// Update replaces an existing manufacturing order.
func (r *ManufacturingOrderRepository) Update(ctx context.Context, mo *entity.ManufacturingOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if _, ok := r.orders[mo.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "ManufacturingOrder", ResourceID: mo.ID}
	}
	r.orders[mo.ID] = mo
	return nil
}

// Delete removes a manufacturing order.
func (r *ManufacturingOrderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if _, ok := r.orders[id]; !ok {
		return &repository.NotFoundError{ResourceType: "ManufacturingOrder", ResourceID: id}
	}
	delete(r.orders, id)
	return nil
}

// Count returns the number of stored manufacturing orders.
func (r *ManufacturingOrderRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	return int64(len(r.orders)), nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *ManufacturingOrderRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets the query count.
func (r *ManufacturingOrderRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = make(map[string]*entity.ManufacturingOrder)
	r.queryCount = 0
}
