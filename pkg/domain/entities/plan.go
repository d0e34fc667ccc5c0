package entities

import (
	"fmt"
	"sync"
	"time"
)

// PlanState represents the lifecycle state of a plan
type PlanState int

const (
	PlanOpen PlanState = iota
	PlanClosed
)

// String method for PlanState enum
func (s PlanState) String() string {
	switch s {
	case PlanOpen:
		return "OPEN"
	case PlanClosed:
		return "CLOSED"
	default:
		return "Unknown"
	}
}

// ParsePlanState converts a stored state string back to a PlanState
func ParsePlanState(s string) (PlanState, error) {
	switch s {
	case "OPEN":
		return PlanOpen, nil
	case "CLOSED":
		return PlanClosed, nil
	default:
		return PlanOpen, fmt.Errorf("unknown plan state %q", s)
	}
}

// MutationKind identifies a plan item mutation for guard checks
type MutationKind int

const (
	MutationAddItem MutationKind = iota
	MutationRemoveItem
	MutationEditQuantity
)

// String method for MutationKind enum
func (m MutationKind) String() string {
	switch m {
	case MutationAddItem:
		return "AddItem"
	case MutationRemoveItem:
		return "RemoveItem"
	case MutationEditQuantity:
		return "EditQuantity"
	default:
		return "Unknown"
	}
}

// PlanItem is one target-vs-produced line within a plan. ID is the persisted
// row identifier, zero while the line has not been saved yet. Produced may
// exceed Target; pending demand clamps at zero instead.
type PlanItem struct {
	ID           int64
	SemiFinished SemiFinishedItem
	Target       Quantity
	Produced     Quantity
}

// PendingQty returns the unproduced remainder, floored at zero
func (i PlanItem) PendingQty() Quantity {
	if i.Produced >= i.Target {
		return 0
	}
	return i.Target - i.Produced
}

// Plan is a named, stateful collection of production targets. The plan owns
// its items; all item mutations must go through the guarded methods below,
// which serialize concurrent mutation attempts on the same instance.
type Plan struct {
	mu sync.Mutex

	ID        int64
	Name      string
	State     PlanState
	CreatedAt time.Time
	Items     []PlanItem
}

// NewPlan creates an OPEN plan with no items
func NewPlan(name string) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name cannot be empty")
	}

	return &Plan{
		Name:      name,
		State:     PlanOpen,
		CreatedAt: time.Now(),
		Items:     []PlanItem{},
	}, nil
}

// ValidateMutation reports whether the plan currently accepts the given
// mutation kind. CLOSED plans reject every kind.
func (p *Plan) ValidateMutation(kind MutationKind) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.validateMutationLocked(kind)
}

func (p *Plan) validateMutationLocked(kind MutationKind) error {
	if p.State == PlanClosed {
		return fmt.Errorf("%w: %s rejected on plan %q", ErrPlanClosed, kind, p.Name)
	}
	return nil
}

// AddItem appends a new line with produced = 0 and no persisted identifier.
// Duplicate semi-finished items are permitted as independent lines.
func (p *Plan) AddItem(item SemiFinishedItem, target Quantity) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.validateMutationLocked(MutationAddItem); err != nil {
		return err
	}
	if target <= 0 {
		return fmt.Errorf("%w: target must be positive, got %d", ErrInvalidQuantity, target)
	}

	p.Items = append(p.Items, PlanItem{
		SemiFinished: item,
		Target:       target,
		Produced:     0,
	})
	return nil
}

// RemoveItem deletes the line at the given position
func (p *Plan) RemoveItem(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.validateMutationLocked(MutationRemoveItem); err != nil {
		return err
	}
	if index < 0 || index >= len(p.Items) {
		return fmt.Errorf("%w: index %d, plan has %d items", ErrIndexOutOfRange, index, len(p.Items))
	}

	p.Items = append(p.Items[:index], p.Items[index+1:]...)
	return nil
}

// SetItemQuantity replaces the target quantity of the line at the given
// position
func (p *Plan) SetItemQuantity(index int, target Quantity) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.validateMutationLocked(MutationEditQuantity); err != nil {
		return err
	}
	if index < 0 || index >= len(p.Items) {
		return fmt.Errorf("%w: index %d, plan has %d items", ErrIndexOutOfRange, index, len(p.Items))
	}
	if target <= 0 {
		return fmt.Errorf("%w: target must be positive, got %d", ErrInvalidQuantity, target)
	}

	p.Items[index].Target = target
	return nil
}

// SetItemProduced records the produced roll-up for the line at the given
// position. Produced is a derived fact, not a target edit, so it is accepted
// regardless of lifecycle state.
func (p *Plan) SetItemProduced(index int, produced Quantity) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.Items) {
		return fmt.Errorf("%w: index %d, plan has %d items", ErrIndexOutOfRange, index, len(p.Items))
	}
	if produced < 0 {
		return fmt.Errorf("%w: produced cannot be negative, got %d", ErrInvalidInput, produced)
	}

	p.Items[index].Produced = produced
	return nil
}

// Close transitions the plan to CLOSED. Closing a closed plan is a no-op.
func (p *Plan) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.State = PlanClosed
}

// Reopen transitions the plan back to OPEN, restoring item mutability
func (p *Plan) Reopen() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.State = PlanOpen
}

// Snapshot returns a copy of the item list safe to hand to the pure engines
func (p *Plan) Snapshot() []PlanItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]PlanItem, len(p.Items))
	copy(items, p.Items)
	return items
}
