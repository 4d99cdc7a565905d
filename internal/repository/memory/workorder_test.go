package memory

import (
	"context"
	"testing"
	"time"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkOrderRepositoryCreateAndGet(t *testing.T) {
	repo := NewWorkOrderRepository()
	ctx := context.Background()

	wo := &entity.WorkOrder{ID: "wo-1", WorkCenterID: "wc-1", Start: time.Now().UTC(), End: time.Now().UTC().Add(time.Hour)}

	err := repo.Create(ctx, wo)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.QueryCount())

	retrieved, err := repo.GetByID(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, wo.ID, retrieved.ID)
}

func TestWorkOrderRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewWorkOrderRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.Error(t, err)
	assert.True(t, repository.IsNotFound(err))
}

func TestWorkOrderRepositoryGetByWorkCenter(t *testing.T) {
	repo := NewWorkOrderRepository()
	ctx := context.Background()

	a := &entity.WorkOrder{ID: "wo-a", WorkCenterID: "wc-1"}
	b := &entity.WorkOrder{ID: "wo-b", WorkCenterID: "wc-1"}
	c := &entity.WorkOrder{ID: "wo-c", WorkCenterID: "wc-2"}

	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, c))

	result, err := repo.GetByWorkCenter(ctx, "wc-1")
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestWorkOrderRepositoryUpdateMissingFails(t *testing.T) {
	repo := NewWorkOrderRepository()
	ctx := context.Background()

	err := repo.Update(ctx, &entity.WorkOrder{ID: "missing"})
	assert.Error(t, err)
	assert.True(t, repository.IsNotFound(err))
}

func TestWorkOrderRepositoryDeleteAndCount(t *testing.T) {
	repo := NewWorkOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.WorkOrder{ID: "wo-1"}))
	require.NoError(t, repo.Create(ctx, &entity.WorkOrder{ID: "wo-2"}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.Delete(ctx, "wo-1"))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWorkOrderRepositoryGetAllByWorkCenterIDs(t *testing.T) {
	repo := NewWorkOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.WorkOrder{ID: "wo-a", WorkCenterID: "wc-1"}))
	require.NoError(t, repo.Create(ctx, &entity.WorkOrder{ID: "wo-b", WorkCenterID: "wc-2"}))
	require.NoError(t, repo.Create(ctx, &entity.WorkOrder{ID: "wo-c", WorkCenterID: "wc-3"}))

	result, err := repo.GetAllByWorkCenterIDs(ctx, []string{"wc-1", "wc-3"})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestWorkOrderRepositoryReset(t *testing.T) {
	repo := NewWorkOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.WorkOrder{ID: "wo-1"}))
	repo.Reset()

	assert.Equal(t, 0, repo.QueryCount())
	_, err := repo.GetByID(ctx, "wo-1")
	assert.Error(t, err)
}
