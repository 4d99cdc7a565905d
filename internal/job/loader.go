package job

import (
	"context"
	"fmt"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// loadScope reloads the work centers, work orders, and manufacturing orders
// a reflow invocation needs, fresh from the repositories, for the given
// work center ids.
func loadScope(ctx context.Context, db repository.Database, workCenterIDs []string) ([]*entity.WorkOrder, []*entity.WorkCenter, []*entity.ManufacturingOrder, error) {
	centers := make([]*entity.WorkCenter, 0, len(workCenterIDs))
	for _, id := range workCenterIDs {
		wc, err := db.WorkCenterRepository().GetByID(ctx, id)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load work center %s: %w", id, err)
		}
		centers = append(centers, wc)
	}

	workOrders, err := db.WorkOrderRepository().GetAllByWorkCenterIDs(ctx, workCenterIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load work orders: %w", err)
	}

	seen := make(map[string]bool)
	var manufacturingOrders []*entity.ManufacturingOrder
	for _, wo := range workOrders {
		if wo.ManufacturingOrderID == "" || seen[wo.ManufacturingOrderID] {
			continue
		}
		seen[wo.ManufacturingOrderID] = true
		mo, err := db.ManufacturingOrderRepository().GetByID(ctx, wo.ManufacturingOrderID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load manufacturing order %s: %w", wo.ManufacturingOrderID, err)
		}
		manufacturingOrders = append(manufacturingOrders, mo)
	}

	return workOrders, centers, manufacturingOrders, nil
}
