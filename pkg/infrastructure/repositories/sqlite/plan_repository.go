package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/openmfg/prodplan/pkg/domain/entities"
	"github.com/openmfg/prodplan/pkg/domain/repositories"
)

// PlanRepository implements repositories.PlanRepository with SQLite
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new SQLite plan repository
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Verify interface compliance
var _ repositories.PlanRepository = (*PlanRepository)(nil)

// SavePlan applies the save request transactionally. Lines carrying an item
// id are updated in place, lines without one are inserted, and rows absent
// from the request are deleted: whole-plan replace. Resaving an unmodified
// plan is a no-op on the stored data.
func (r *PlanRepository) SavePlan(ctx context.Context, req *entities.PlanSaveRequest) (*entities.Plan, error) {
	if _, err := entities.ParsePlanState(req.State); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("plan name cannot be empty")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	var planID int64
	if req.PlanID == nil {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO plans (name, state, created_at) VALUES (?, ?, ?)",
			req.Name, req.State, req.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert plan: %w", err)
		}
		planID, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve plan id: %w", err)
		}
	} else {
		planID = *req.PlanID
		res, err := tx.ExecContext(ctx,
			"UPDATE plans SET name = ?, state = ? WHERE id = ?",
			req.Name, req.State, planID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update plan: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check plan update: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("plan %d not found", planID)
		}
	}

	kept := make([]int64, 0, len(req.Items))
	for position, line := range req.Items {
		if line.ItemID != nil {
			_, err := tx.ExecContext(ctx,
				`UPDATE plan_items
				 SET semi_finished_id = ?, name = ?, code = ?, target = ?, produced = ?, position = ?
				 WHERE id = ? AND plan_id = ?`,
				line.SemiFinishedID, line.Name, line.Code, line.Target, line.Produced, position,
				*line.ItemID, planID,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to update plan item %d: %w", *line.ItemID, err)
			}
			kept = append(kept, *line.ItemID)
			continue
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO plan_items (plan_id, semi_finished_id, name, code, target, produced, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			planID, line.SemiFinishedID, line.Name, line.Code, line.Target, line.Produced, position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert plan item: %w", err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve plan item id: %w", err)
		}
		kept = append(kept, itemID)
	}

	if err := deleteOtherItems(ctx, tx, planID, kept); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit save: %w", err)
	}

	return r.GetPlan(ctx, planID)
}

func deleteOtherItems(ctx context.Context, tx *sql.Tx, planID int64, kept []int64) error {
	if len(kept) == 0 {
		if _, err := tx.ExecContext(ctx, "DELETE FROM plan_items WHERE plan_id = ?", planID); err != nil {
			return fmt.Errorf("failed to clear plan items: %w", err)
		}
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(kept)), ",")
	args := make([]any, 0, len(kept)+1)
	args = append(args, planID)
	for _, id := range kept {
		args = append(args, id)
	}

	query := fmt.Sprintf("DELETE FROM plan_items WHERE plan_id = ? AND id NOT IN (%s)", placeholders)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to prune removed plan items: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan with its items by identifier
func (r *PlanRepository) GetPlan(ctx context.Context, id int64) (*entities.Plan, error) {
	var (
		name      string
		stateStr  string
		createdAt time.Time
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT name, state, created_at FROM plans WHERE id = ?", id,
	).Scan(&name, &stateStr, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	state, err := entities.ParsePlanState(stateStr)
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}

	return &entities.Plan{
		ID:        id,
		Name:      name,
		State:     state,
		CreatedAt: createdAt,
		Items:     items,
	}, nil
}

func (r *PlanRepository) loadItems(ctx context.Context, planID int64) ([]entities.PlanItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, semi_finished_id, name, code, target, produced
		 FROM plan_items WHERE plan_id = ? ORDER BY position`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan items: %w", err)
	}
	defer rows.Close()

	items := []entities.PlanItem{}
	for rows.Next() {
		var (
			item             entities.PlanItem
			semiID           string
			name, code       string
			target, produced int64
		)
		if err := rows.Scan(&item.ID, &semiID, &name, &code, &target, &produced); err != nil {
			return nil, fmt.Errorf("failed to scan plan item: %w", err)
		}
		item.SemiFinished = entities.SemiFinishedItem{
			ID:   entities.SemiFinishedID(semiID),
			Name: name,
			Code: code,
		}
		item.Target = entities.Quantity(target)
		item.Produced = entities.Quantity(produced)
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListPlans returns all plans with their items, oldest first
func (r *PlanRepository) ListPlans(ctx context.Context) ([]*entities.Plan, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM plans ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan plan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	plans := make([]*entities.Plan, 0, len(ids))
	for _, id := range ids {
		plan, err := r.GetPlan(ctx, id)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// SetPlanState persists a lifecycle state transition
func (r *PlanRepository) SetPlanState(ctx context.Context, id int64, state entities.PlanState) error {
	res, err := r.db.ExecContext(ctx, "UPDATE plans SET state = ? WHERE id = ?", state.String(), id)
	if err != nil {
		return fmt.Errorf("failed to set plan state: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check state update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("plan %d not found", id)
	}
	return nil
}

// DeletePlan removes a plan; its items go with it via the cascade
func (r *PlanRepository) DeletePlan(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check plan delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("plan %d not found", id)
	}
	return nil
}
