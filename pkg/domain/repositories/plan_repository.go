package repositories

import (
	"context"

	"github.com/openmfg/prodplan/pkg/domain/entities"
)

// PlanRepository persists plans and their items. Save applies whole-plan
// replace semantics: the request carries the full item set and the store
// reconciles rows against it.
type PlanRepository interface {
	SavePlan(ctx context.Context, req *entities.PlanSaveRequest) (*entities.Plan, error)
	GetPlan(ctx context.Context, id int64) (*entities.Plan, error)
	ListPlans(ctx context.Context) ([]*entities.Plan, error)
	SetPlanState(ctx context.Context, id int64, state entities.PlanState) error
	DeletePlan(ctx context.Context, id int64) error
}
