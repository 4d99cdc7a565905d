package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// ReflowRunRepository is an in-memory implementation for testing.
type ReflowRunRepository struct {
	mu         sync.RWMutex
	runs       map[string]*entity.ReflowRun
	queryCount int
}

// NewReflowRunRepository creates a new in-memory reflow run repository.
func NewReflowRunRepository() *ReflowRunRepository {
	return &ReflowRunRepository{
		runs: make(map[string]*entity.ReflowRun),
	}
}

// Create stores a new reflow run record.
func (r *ReflowRunRepository) Create(ctx context.Context, run *entity.ReflowRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if run == nil {
		return &repository.ValidationError{Field: "ReflowRun", Message: "must not be nil"}
	}
	r.runs[run.ID] = run
	return nil
}

// GetByID retrieves a reflow run by id.
func (r *ReflowRunRepository) GetByID(ctx context.Context, id string) (*entity.ReflowRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	run, ok := r.runs[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "ReflowRun", ResourceID: id}
	}
	return run, nil
}

// Update replaces an existing reflow run record.
func (r *ReflowRunRepository) Update(ctx context.Context, run *entity.ReflowRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++

	if _, ok := r.runs[run.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "ReflowRun", ResourceID: run.ID}
	}
	r.runs[run.ID] = run
	return nil
}

// ListRecent returns up to limit reflow runs, most recently requested first.
func (r *ReflowRunRepository) ListRecent(ctx context.Context, limit int) ([]*entity.ReflowRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++

	all := make([]*entity.ReflowRun, 0, len(r.runs))
	for _, run := range r.runs {
		all = append(all, run)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].RequestedAt.After(all[j].RequestedAt)
	})
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Count returns the number of stored reflow runs.
func (r *ReflowRunRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	return int64(len(r.runs)), nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *ReflowRunRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets the query count.
func (r *ReflowRunRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = make(map[string]*entity.ReflowRun)
	r.queryCount = 0
}
