// Package lifecycle enforces plan state-transition and mutability rules and
// produces the save representation handed to the persistence collaborator.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/openmfg/prodplan/pkg/domain/entities"
	"github.com/openmfg/prodplan/pkg/domain/repositories"
)

// BuildSaveRequest produces the serializable whole-plan representation for
// persistence. Lines that were never saved carry a nil item id to signal
// "create new line"; the plan id is nil for a plan not yet created.
func BuildSaveRequest(plan *entities.Plan) *entities.PlanSaveRequest {
	items := plan.Snapshot()

	req := &entities.PlanSaveRequest{
		Name:      plan.Name,
		State:     plan.State.String(),
		CreatedAt: plan.CreatedAt,
		Items:     make([]entities.PlanItemSaveLine, 0, len(items)),
	}
	if plan.ID != 0 {
		id := plan.ID
		req.PlanID = &id
	}

	for _, item := range items {
		line := entities.PlanItemSaveLine{
			SemiFinishedID: item.SemiFinished.ID,
			Name:           item.SemiFinished.Name,
			Code:           item.SemiFinished.Code,
			Target:         int64(item.Target),
			Produced:       int64(item.Produced),
		}
		if item.ID != 0 {
			id := item.ID
			line.ItemID = &id
		}
		req.Items = append(req.Items, line)
	}

	return req
}

// Manager drives plan lifecycle operations against a plan repository
type Manager struct {
	plans  repositories.PlanRepository
	logger *log.Logger
}

// NewManager creates a lifecycle manager
func NewManager(plans repositories.PlanRepository, logger *log.Logger) *Manager {
	return &Manager{
		plans:  plans,
		logger: logger,
	}
}

// CreatePlan creates and persists a new OPEN plan with an empty item set
func (m *Manager) CreatePlan(ctx context.Context, name string) (*entities.Plan, error) {
	plan, err := entities.NewPlan(name)
	if err != nil {
		return nil, err
	}

	saved, err := m.plans.SavePlan(ctx, BuildSaveRequest(plan))
	if err != nil {
		return nil, fmt.Errorf("failed to create plan %q: %w", name, err)
	}

	m.logger.Info("plan created", "plan", saved.Name, "id", saved.ID)
	return saved, nil
}

// AddItem appends a new line to an OPEN plan
func (m *Manager) AddItem(plan *entities.Plan, item entities.SemiFinishedItem, target entities.Quantity) error {
	return plan.AddItem(item, target)
}

// RemoveItem deletes a line from an OPEN plan
func (m *Manager) RemoveItem(plan *entities.Plan, index int) error {
	return plan.RemoveItem(index)
}

// EditItemQuantity replaces a line's target quantity on an OPEN plan
func (m *Manager) EditItemQuantity(plan *entities.Plan, index int, target entities.Quantity) error {
	return plan.SetItemQuantity(index, target)
}

// Save persists the plan's full item set and returns the stored plan with
// newly assigned row identifiers
func (m *Manager) Save(ctx context.Context, plan *entities.Plan) (*entities.Plan, error) {
	saved, err := m.plans.SavePlan(ctx, BuildSaveRequest(plan))
	if err != nil {
		return nil, fmt.Errorf("failed to save plan %q: %w", plan.Name, err)
	}

	m.logger.Info("plan saved", "plan", saved.Name, "id", saved.ID, "items", len(saved.Items))
	return saved, nil
}

// Close transitions a plan to CLOSED and persists the state
func (m *Manager) Close(ctx context.Context, plan *entities.Plan) error {
	plan.Close()
	if plan.ID == 0 {
		return nil
	}
	if err := m.plans.SetPlanState(ctx, plan.ID, entities.PlanClosed); err != nil {
		return fmt.Errorf("failed to close plan %q: %w", plan.Name, err)
	}
	m.logger.Info("plan closed", "plan", plan.Name, "id", plan.ID)
	return nil
}

// Reopen transitions a plan back to OPEN and persists the state
func (m *Manager) Reopen(ctx context.Context, plan *entities.Plan) error {
	plan.Reopen()
	if plan.ID == 0 {
		return nil
	}
	if err := m.plans.SetPlanState(ctx, plan.ID, entities.PlanOpen); err != nil {
		return fmt.Errorf("failed to reopen plan %q: %w", plan.Name, err)
	}
	m.logger.Info("plan reopened", "plan", plan.Name, "id", plan.ID)
	return nil
}

// Delete removes a plan and its items. Irreversible.
func (m *Manager) Delete(ctx context.Context, plan *entities.Plan) error {
	if plan.ID == 0 {
		return fmt.Errorf("plan %q has never been saved", plan.Name)
	}
	if err := m.plans.DeletePlan(ctx, plan.ID); err != nil {
		return fmt.Errorf("failed to delete plan %q: %w", plan.Name, err)
	}
	m.logger.Info("plan deleted", "plan", plan.Name, "id", plan.ID)
	return nil
}
