package mocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/naologic/reflow/internal/entity"
)

func TestMockWorkCenterRepository_CRUDAndNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMockWorkCenterRepository()

	wc := &entity.WorkCenter{ID: "wc-1", Name: "Press 1"}
	require.NoError(t, repo.Create(ctx, wc))

	retrieved, err := repo.GetByID(ctx, "wc-1")
	require.NoError(t, err)
	require.Equal(t, "Press 1", retrieved.Name)

	_, err = repo.GetByID(ctx, "missing")
	require.Error(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, "wc-1"))
	require.Error(t, repo.Delete(ctx, "wc-1"))
}

func TestMockWorkCenterRepository_InjectedError(t *testing.T) {
	ctx := context.Background()
	repo := NewMockWorkCenterRepository()
	repo.GetErr = errors.New("connection reset")

	_, err := repo.GetByID(ctx, "anything")
	require.EqualError(t, err, "connection reset")
}

func TestMockManufacturingOrderRepository_GetDueBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewMockManufacturingOrderRepository()

	early := &entity.ManufacturingOrder{ID: "mo-1", DueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	late := &entity.ManufacturingOrder{ID: "mo-2", DueDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(ctx, early))
	require.NoError(t, repo.Create(ctx, late))

	due, err := repo.GetDueBefore(ctx, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "mo-1", due[0].ID)
}

func TestMockWorkOrderRepository_ScopedQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewMockWorkOrderRepository()

	wo1 := &entity.WorkOrder{ID: "wo-1", WorkCenterID: "wc-1", ManufacturingOrderID: "mo-1"}
	wo2 := &entity.WorkOrder{ID: "wo-2", WorkCenterID: "wc-2", ManufacturingOrderID: "mo-1"}
	require.NoError(t, repo.Create(ctx, wo1))
	require.NoError(t, repo.Create(ctx, wo2))

	byCenter, err := repo.GetByWorkCenter(ctx, "wc-1")
	require.NoError(t, err)
	require.Len(t, byCenter, 1)

	byMO, err := repo.GetByManufacturingOrder(ctx, "mo-1")
	require.NoError(t, err)
	require.Len(t, byMO, 2)

	byCenters, err := repo.GetAllByWorkCenterIDs(ctx, []string{"wc-1", "wc-2"})
	require.NoError(t, err)
	require.Len(t, byCenters, 2)
}

func TestMockReflowRunRepository_ListRecentOrdersAndTruncates(t *testing.T) {
	ctx := context.Background()
	repo := NewMockReflowRunRepository()

	older := &entity.ReflowRun{ID: "run-1", RequestedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &entity.ReflowRun{ID: "run-2", RequestedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	recent, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "run-2", recent[0].ID)
}

func TestMockDatabase_TransactionUsesSameBackingMaps(t *testing.T) {
	ctx := context.Background()
	db := NewMockDatabase()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)

	wc := &entity.WorkCenter{ID: "wc-1", Name: "Lathe"}
	require.NoError(t, tx.WorkCenterRepository().Create(ctx, wc))
	require.NoError(t, tx.Commit())

	_, err = db.WorkCenterRepository().GetByID(ctx, "wc-1")
	require.NoError(t, err)
}

func TestMockDatabase_HealthReflectsInjectedError(t *testing.T) {
	db := NewMockDatabase()
	require.NoError(t, db.Health(context.Background()))

	db.HealthErr = errors.New("unreachable")
	require.Error(t, db.Health(context.Background()))
}
