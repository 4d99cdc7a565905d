// Package mocks provides mutex-guarded, map-backed mock repositories for
// unit-testing job handlers and API handlers without a database.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// MockWorkCenterRepository is an injectable-error mock of
// repository.WorkCenterRepository.
type MockWorkCenterRepository struct {
	mu       sync.RWMutex
	centers  map[string]*entity.WorkCenter
	GetErr   error
	SaveErr  error
	ListErr  error
}

// NewMockWorkCenterRepository creates an empty mock work center repository.
func NewMockWorkCenterRepository() *MockWorkCenterRepository {
	return &MockWorkCenterRepository{centers: make(map[string]*entity.WorkCenter)}
}

func (m *MockWorkCenterRepository) Create(_ context.Context, wc *entity.WorkCenter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.centers[wc.ID] = wc
	return nil
}

func (m *MockWorkCenterRepository) GetByID(_ context.Context, id string) (*entity.WorkCenter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if wc, ok := m.centers[id]; ok {
		return wc, nil
	}
	return nil, &repository.NotFoundError{ResourceType: "WorkCenter", ResourceID: id}
}

func (m *MockWorkCenterRepository) GetAll(_ context.Context) ([]*entity.WorkCenter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	result := make([]*entity.WorkCenter, 0, len(m.centers))
	for _, wc := range m.centers {
		result = append(result, wc)
	}
	return result, nil
}

func (m *MockWorkCenterRepository) Update(ctx context.Context, wc *entity.WorkCenter) error {
	return m.Create(ctx, wc)
}

func (m *MockWorkCenterRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.centers[id]; !ok {
		return &repository.NotFoundError{ResourceType: "WorkCenter", ResourceID: id}
	}
	delete(m.centers, id)
	return nil
}

func (m *MockWorkCenterRepository) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.centers)), nil
}

// MockManufacturingOrderRepository is an injectable-error mock of
// repository.ManufacturingOrderRepository.
type MockManufacturingOrderRepository struct {
	mu      sync.RWMutex
	orders  map[string]*entity.ManufacturingOrder
	GetErr  error
	SaveErr error
}

// NewMockManufacturingOrderRepository creates an empty mock repository.
func NewMockManufacturingOrderRepository() *MockManufacturingOrderRepository {
	return &MockManufacturingOrderRepository{orders: make(map[string]*entity.ManufacturingOrder)}
}

func (m *MockManufacturingOrderRepository) Create(_ context.Context, mo *entity.ManufacturingOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.orders[mo.ID] = mo
	return nil
}

func (m *MockManufacturingOrderRepository) GetByID(_ context.Context, id string) (*entity.ManufacturingOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if mo, ok := m.orders[id]; ok {
		return mo, nil
	}
	return nil, &repository.NotFoundError{ResourceType: "ManufacturingOrder", ResourceID: id}
}

func (m *MockManufacturingOrderRepository) GetAll(_ context.Context) ([]*entity.ManufacturingOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*entity.ManufacturingOrder, 0, len(m.orders))
	for _, mo := range m.orders {
		result = append(result, mo)
	}
	return result, nil
}

func (m *MockManufacturingOrderRepository) GetDueBefore(_ context.Context, cutoff time.Time) ([]*entity.ManufacturingOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*entity.ManufacturingOrder
	for _, mo := range m.orders {
		if mo.DueDate.Before(cutoff) {
			result = append(result, mo)
		}
	}
	return result, nil
}

func (m *MockManufacturingOrderRepository) Update(ctx context.Context, mo *entity.ManufacturingOrder) error {
	return m.Create(ctx, mo)
}

func (m *MockManufacturingOrderRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return &repository.NotFoundError{ResourceType: "ManufacturingOrder", ResourceID: id}
	}
	delete(m.orders, id)
	return nil
}

func (m *MockManufacturingOrderRepository) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.orders)), nil
}

// MockWorkOrderRepository is an injectable-error mock of
// repository.WorkOrderRepository.
type MockWorkOrderRepository struct {
	mu         sync.RWMutex
	workOrders map[string]*entity.WorkOrder
	GetErr     error
	SaveErr    error
}

// NewMockWorkOrderRepository creates an empty mock repository.
func NewMockWorkOrderRepository() *MockWorkOrderRepository {
	return &MockWorkOrderRepository{workOrders: make(map[string]*entity.WorkOrder)}
}

func (m *MockWorkOrderRepository) Create(_ context.Context, wo *entity.WorkOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.workOrders[wo.ID] = wo
	return nil
}

func (m *MockWorkOrderRepository) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if wo, ok := m.workOrders[id]; ok {
		return wo, nil
	}
	return nil, &repository.NotFoundError{ResourceType: "WorkOrder", ResourceID: id}
}

func (m *MockWorkOrderRepository) GetByWorkCenter(_ context.Context, workCenterID string) ([]*entity.WorkOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*entity.WorkOrder
	for _, wo := range m.workOrders {
		if wo.WorkCenterID == workCenterID {
			result = append(result, wo)
		}
	}
	return result, nil
}

func (m *MockWorkOrderRepository) GetByManufacturingOrder(_ context.Context, manufacturingOrderID string) ([]*entity.WorkOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*entity.WorkOrder
	for _, wo := range m.workOrders {
		if wo.ManufacturingOrderID == manufacturingOrderID {
			result = append(result, wo)
		}
	}
	return result, nil
}

func (m *MockWorkOrderRepository) GetAll(_ context.Context) ([]*entity.WorkOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*entity.WorkOrder, 0, len(m.workOrders))
	for _, wo := range m.workOrders {
		result = append(result, wo)
	}
	return result, nil
}

func (m *MockWorkOrderRepository) GetAllByWorkCenterIDs(_ context.Context, workCenterIDs []string) ([]*entity.WorkOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[string]bool, len(workCenterIDs))
	for _, id := range workCenterIDs {
		wanted[id] = true
	}
	var result []*entity.WorkOrder
	for _, wo := range m.workOrders {
		if wanted[wo.WorkCenterID] {
			result = append(result, wo)
		}
	}
	return result, nil
}

func (m *MockWorkOrderRepository) Update(ctx context.Context, wo *entity.WorkOrder) error {
	return m.Create(ctx, wo)
}

func (m *MockWorkOrderRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.workOrders[id]; !ok {
		return &repository.NotFoundError{ResourceType: "WorkOrder", ResourceID: id}
	}
	delete(m.workOrders, id)
	return nil
}

func (m *MockWorkOrderRepository) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.workOrders)), nil
}

// MockReflowRunRepository is an injectable-error mock of
// repository.ReflowRunRepository.
type MockReflowRunRepository struct {
	mu      sync.RWMutex
	runs    map[string]*entity.ReflowRun
	GetErr  error
	SaveErr error
}

// NewMockReflowRunRepository creates an empty mock repository.
func NewMockReflowRunRepository() *MockReflowRunRepository {
	return &MockReflowRunRepository{runs: make(map[string]*entity.ReflowRun)}
}

func (m *MockReflowRunRepository) Create(_ context.Context, run *entity.ReflowRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.runs[run.ID] = run
	return nil
}

func (m *MockReflowRunRepository) GetByID(_ context.Context, id string) (*entity.ReflowRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if run, ok := m.runs[id]; ok {
		return run, nil
	}
	return nil, &repository.NotFoundError{ResourceType: "ReflowRun", ResourceID: id}
}

func (m *MockReflowRunRepository) Update(ctx context.Context, run *entity.ReflowRun) error {
	return m.Create(ctx, run)
}

func (m *MockReflowRunRepository) ListRecent(_ context.Context, limit int) ([]*entity.ReflowRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*entity.ReflowRun, 0, len(m.runs))
	for _, run := range m.runs {
		result = append(result, run)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestedAt.After(result[j].RequestedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockReflowRunRepository) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.runs)), nil
}

// MockDatabase implements repository.Database by aggregating the mock
// repositories above, for tests that need a repository.Database without a
// real backing store or transaction support.
type MockDatabase struct {
	WorkCenters         *MockWorkCenterRepository
	ManufacturingOrders *MockManufacturingOrderRepository
	WorkOrders          *MockWorkOrderRepository
	ReflowRuns          *MockReflowRunRepository
	HealthErr           error
}

// NewMockDatabase creates a MockDatabase with all repositories initialized
// and empty.
func NewMockDatabase() *MockDatabase {
	return &MockDatabase{
		WorkCenters:         NewMockWorkCenterRepository(),
		ManufacturingOrders: NewMockManufacturingOrderRepository(),
		WorkOrders:          NewMockWorkOrderRepository(),
		ReflowRuns:          NewMockReflowRunRepository(),
	}
}

func (d *MockDatabase) WorkCenterRepository() repository.WorkCenterRepository {
	return d.WorkCenters
}

func (d *MockDatabase) ManufacturingOrderRepository() repository.ManufacturingOrderRepository {
	return d.ManufacturingOrders
}

func (d *MockDatabase) WorkOrderRepository() repository.WorkOrderRepository {
	return d.WorkOrders
}

func (d *MockDatabase) ReflowRunRepository() repository.ReflowRunRepository {
	return d.ReflowRuns
}

func (d *MockDatabase) Close() error { return nil }

func (d *MockDatabase) Health(_ context.Context) error { return d.HealthErr }

// BeginTx returns a transaction bound to the same mock repositories; the
// mock has no rollback support, matching the in-memory backend.
func (d *MockDatabase) BeginTx(_ context.Context) (repository.Transaction, error) {
	return &mockTransaction{db: d}, nil
}

type mockTransaction struct {
	db *MockDatabase
}

func (t *mockTransaction) Commit() error   { return nil }
func (t *mockTransaction) Rollback() error { return nil }

func (t *mockTransaction) WorkCenterRepository() repository.WorkCenterRepository {
	return t.db.WorkCenters
}

func (t *mockTransaction) ManufacturingOrderRepository() repository.ManufacturingOrderRepository {
	return t.db.ManufacturingOrders
}

func (t *mockTransaction) WorkOrderRepository() repository.WorkOrderRepository {
	return t.db.WorkOrders
}

func (t *mockTransaction) ReflowRunRepository() repository.ReflowRunRepository {
	return t.db.ReflowRuns
}
