package entities

import "time"

// PlanSaveRequest is the serializable representation of a plan handed to the
// persistence collaborator. A nil PlanID requests creation; a present one
// requests a whole-plan replace of the item set. Resaving an unmodified plan
// is idempotent.
type PlanSaveRequest struct {
	PlanID    *int64             `json:"plan_id"`
	Name      string             `json:"name"`
	State     string             `json:"state"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []PlanItemSaveLine `json:"items"`
}

// PlanItemSaveLine carries one plan line. A nil ItemID signals "create new
// line"; a present one keeps the persisted row.
type PlanItemSaveLine struct {
	ItemID         *int64         `json:"item_id"`
	SemiFinishedID SemiFinishedID `json:"semi_finished_id"`
	Name           string         `json:"name"`
	Code           string         `json:"code"`
	Target         int64          `json:"target"`
	Produced       int64          `json:"produced"`
}
