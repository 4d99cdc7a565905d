package memory

import (
	"context"
	"sync"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// WorkCenterRepository is an in-memory implementation for testing and for
// running the service without a configured database.
type WorkCenterRepository struct {
	mu         sync.RWMutex
	centers    map[string]*entity.WorkCenter
	queryCount int
}

// NewWorkCenterRepository creates a new in-memory work center repository.
func NewWorkCenterRepository() *WorkCenterRepository {
	return &WorkCenterRepository{
		centers: make(map[string]*entity.WorkCenter),
	}
}

// Create stores a new work center.
func (r *WorkCenterRepository) Create(ctx context.Context, wc *entity.WorkCenter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if wc == nil {
		return &repository.ValidationError{Field: "WorkCenter", Message: "must not be nil"}
	}
	r.centers[wc.ID] = wc
	return nil
}

// GetByID retrieves a work center by id.
func (r *WorkCenterRepository) GetByID(ctx context.Context, id string) (*entity.WorkCenter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	wc, ok := r.centers[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "WorkCenter", ResourceID: id}
	}
	return wc, nil
}

// GetAll retrieves every work center.
func (r *WorkCenterRepository) GetAll(ctx context.Context) ([]*entity.WorkCenter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	result := make([]*entity.WorkCenter, 0, len(r.centers))
	for _, wc := range r.centers {
		result = append(result, wc)
	}
	return result, nil
}

// Update replaces an existing work center.
func (r *WorkCenterRepository) Update(ctx context.Context, wc *entity.WorkCenter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if _, ok := r.centers[wc.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "WorkCenter", ResourceID: wc.ID}
	}
	r.centers[wc.ID] = wc
	return nil
}

// Delete removes a work center.
func (r *WorkCenterRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if _, ok := r.centers[id]; !ok {
		return &repository.NotFoundError{ResourceType: "WorkCenter", ResourceID: id}
	}
	delete(r.centers, id)
	return nil
}

// Count returns the number of stored work centers.
func (r *WorkCenterRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	return int64(len(r.centers)), nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *WorkCenterRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets the query count.
func (r *WorkCenterRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.centers = make(map[string]*entity.WorkCenter)
	r.queryCount = 0
}
