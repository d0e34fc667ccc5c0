// Package memory provides in-memory repository implementations for tests and
// embedding hosts that manage persistence themselves.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openmfg/prodplan/pkg/domain/entities"
	"github.com/openmfg/prodplan/pkg/domain/repositories"
)

type planRow struct {
	id        int64
	name      string
	state     entities.PlanState
	createdAt time.Time
	items     []entities.PlanItem
}

// PlanRepository provides in-memory plan storage
type PlanRepository struct {
	mu         sync.Mutex
	plans      map[int64]*planRow
	nextPlanID int64
	nextItemID int64
}

// NewPlanRepository creates a new in-memory plan repository
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{
		plans: make(map[int64]*planRow),
	}
}

// Verify interface compliance
var _ repositories.PlanRepository = (*PlanRepository)(nil)

// SavePlan applies a whole-plan replace: the stored item set becomes exactly
// the request's item set, with fresh identifiers assigned to new lines.
func (r *PlanRepository) SavePlan(ctx context.Context, req *entities.PlanSaveRequest) (*entities.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := entities.ParsePlanState(req.State)
	if err != nil {
		return nil, err
	}

	var row *planRow
	if req.PlanID == nil {
		r.nextPlanID++
		row = &planRow{
			id:        r.nextPlanID,
			createdAt: req.CreatedAt,
		}
		r.plans[row.id] = row
	} else {
		var ok bool
		row, ok = r.plans[*req.PlanID]
		if !ok {
			return nil, fmt.Errorf("plan %d not found", *req.PlanID)
		}
	}

	row.name = req.Name
	row.state = state
	row.items = make([]entities.PlanItem, 0, len(req.Items))
	for _, line := range req.Items {
		item := entities.PlanItem{
			SemiFinished: entities.SemiFinishedItem{
				ID:   line.SemiFinishedID,
				Name: line.Name,
				Code: line.Code,
			},
			Target:   entities.Quantity(line.Target),
			Produced: entities.Quantity(line.Produced),
		}
		if line.ItemID != nil {
			item.ID = *line.ItemID
		} else {
			r.nextItemID++
			item.ID = r.nextItemID
		}
		row.items = append(row.items, item)
	}

	return row.toPlan(), nil
}

// GetPlan retrieves a plan with its items by identifier
func (r *PlanRepository) GetPlan(ctx context.Context, id int64) (*entities.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %d not found", id)
	}
	return row.toPlan(), nil
}

// ListPlans returns all stored plans ordered by identifier
func (r *PlanRepository) ListPlans(ctx context.Context) ([]*entities.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plans := make([]*entities.Plan, 0, len(r.plans))
	for id := int64(1); id <= r.nextPlanID; id++ {
		if row, ok := r.plans[id]; ok {
			plans = append(plans, row.toPlan())
		}
	}
	return plans, nil
}

// SetPlanState persists a lifecycle state transition
func (r *PlanRepository) SetPlanState(ctx context.Context, id int64, state entities.PlanState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.plans[id]
	if !ok {
		return fmt.Errorf("plan %d not found", id)
	}
	row.state = state
	return nil
}

// DeletePlan removes a plan and all its items
func (r *PlanRepository) DeletePlan(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return fmt.Errorf("plan %d not found", id)
	}
	delete(r.plans, id)
	return nil
}

func (row *planRow) toPlan() *entities.Plan {
	plan := &entities.Plan{
		ID:        row.id,
		Name:      row.name,
		State:     row.state,
		CreatedAt: row.createdAt,
		Items:     make([]entities.PlanItem, len(row.items)),
	}
	copy(plan.Items, row.items)
	return plan
}
