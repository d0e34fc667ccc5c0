package entities

import (
	"errors"
	"sync"
	"testing"
)

func TestNewPlan(t *testing.T) {
	plan, err := NewPlan("March assembly")
	if err != nil {
		t.Fatalf("Expected valid plan creation to succeed: %v", err)
	}
	if plan.State != PlanOpen {
		t.Errorf("Expected new plan to be OPEN, got %s", plan.State)
	}
	if len(plan.Items) != 0 {
		t.Errorf("Expected new plan to have no items, got %d", len(plan.Items))
	}
	if plan.ID != 0 {
		t.Errorf("Expected unsaved plan to have zero id, got %d", plan.ID)
	}

	if _, err := NewPlan(""); err == nil {
		t.Error("Expected empty name to be rejected")
	}
}

func testItem(id SemiFinishedID) SemiFinishedItem {
	return SemiFinishedItem{ID: id, Name: string(id), Code: "C-" + string(id)}
}

func TestPlan_AddItem(t *testing.T) {
	plan, _ := NewPlan("test")

	if err := plan.AddItem(testItem("A"), 100); err != nil {
		t.Fatalf("Expected add to succeed: %v", err)
	}
	if len(plan.Items) != 1 || plan.Items[0].Target != 100 || plan.Items[0].Produced != 0 {
		t.Errorf("Unexpected item after add: %+v", plan.Items)
	}
	if plan.Items[0].ID != 0 {
		t.Errorf("Expected new item to have no persisted id, got %d", plan.Items[0].ID)
	}

	// Duplicate semi-finished items are independent lines, never merged
	if err := plan.AddItem(testItem("A"), 50); err != nil {
		t.Fatalf("Expected duplicate item to be accepted: %v", err)
	}
	if len(plan.Items) != 2 {
		t.Errorf("Expected 2 independent lines, got %d", len(plan.Items))
	}

	testCases := []struct {
		name   string
		target Quantity
	}{
		{"zero quantity", 0},
		{"negative quantity", -5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := plan.AddItem(testItem("B"), tc.target); !errors.Is(err, ErrInvalidQuantity) {
				t.Errorf("Expected ErrInvalidQuantity, got %v", err)
			}
		})
	}
}

func TestPlan_RemoveItem(t *testing.T) {
	plan, _ := NewPlan("test")
	plan.AddItem(testItem("A"), 10)
	plan.AddItem(testItem("B"), 20)

	if err := plan.RemoveItem(0); err != nil {
		t.Fatalf("Expected remove to succeed: %v", err)
	}
	if len(plan.Items) != 1 || plan.Items[0].SemiFinished.ID != "B" {
		t.Errorf("Expected only item B to remain, got %+v", plan.Items)
	}

	for _, index := range []int{-1, 1, 99} {
		if err := plan.RemoveItem(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("index %d: expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
}

func TestPlan_SetItemQuantity(t *testing.T) {
	plan, _ := NewPlan("test")
	plan.AddItem(testItem("A"), 10)

	if err := plan.SetItemQuantity(0, 25); err != nil {
		t.Fatalf("Expected edit to succeed: %v", err)
	}
	if plan.Items[0].Target != 25 {
		t.Errorf("Expected target 25, got %d", plan.Items[0].Target)
	}

	if err := plan.SetItemQuantity(0, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}
	if err := plan.SetItemQuantity(5, 10); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestPlan_ClosedRejectsMutations(t *testing.T) {
	plan, _ := NewPlan("test")
	plan.AddItem(testItem("A"), 10)
	plan.Close()

	if plan.State != PlanClosed {
		t.Fatalf("Expected CLOSED, got %s", plan.State)
	}

	mutations := map[string]func() error{
		"AddItem":    func() error { return plan.AddItem(testItem("B"), 5) },
		"RemoveItem": func() error { return plan.RemoveItem(0) },
		"SetItemQty": func() error { return plan.SetItemQuantity(0, 99) },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			if err := mutate(); !errors.Is(err, ErrPlanClosed) {
				t.Errorf("Expected ErrPlanClosed, got %v", err)
			}
		})
	}

	// Failed mutations leave the plan untouched
	if len(plan.Items) != 1 || plan.Items[0].Target != 10 {
		t.Errorf("Closed plan items changed: %+v", plan.Items)
	}

	for _, kind := range []MutationKind{MutationAddItem, MutationRemoveItem, MutationEditQuantity} {
		if err := plan.ValidateMutation(kind); !errors.Is(err, ErrPlanClosed) {
			t.Errorf("%s: expected ErrPlanClosed, got %v", kind, err)
		}
	}
}

func TestPlan_ReopenRestoresMutability(t *testing.T) {
	plan, _ := NewPlan("test")
	plan.Close()
	plan.Reopen()

	if plan.State != PlanOpen {
		t.Fatalf("Expected OPEN after reopen, got %s", plan.State)
	}
	if err := plan.AddItem(testItem("A"), 10); err != nil {
		t.Errorf("Expected add to succeed after reopen: %v", err)
	}
}

func TestPlan_SetItemProduced(t *testing.T) {
	plan, _ := NewPlan("test")
	plan.AddItem(testItem("A"), 10)

	if err := plan.SetItemProduced(0, 4); err != nil {
		t.Fatalf("Expected produced update to succeed: %v", err)
	}
	if plan.Items[0].Produced != 4 {
		t.Errorf("Expected produced 4, got %d", plan.Items[0].Produced)
	}

	// Produced is a derived fact; a CLOSED plan still accepts the roll-up
	plan.Close()
	if err := plan.SetItemProduced(0, 10); err != nil {
		t.Errorf("Expected produced update on closed plan to succeed: %v", err)
	}

	if err := plan.SetItemProduced(0, -1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestPlanItem_PendingQty(t *testing.T) {
	testCases := []struct {
		name     string
		target   Quantity
		produced Quantity
		want     Quantity
	}{
		{"nothing produced", 100, 0, 100},
		{"partially produced", 100, 30, 70},
		{"fully produced", 10, 10, 0},
		{"over-produced clamps to zero", 10, 15, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item := PlanItem{Target: tc.target, Produced: tc.produced}
			if got := item.PendingQty(); got != tc.want {
				t.Errorf("Expected pending %d, got %d", tc.want, got)
			}
		})
	}
}

func TestPlan_ConcurrentMutations(t *testing.T) {
	plan, _ := NewPlan("test")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := plan.AddItem(testItem("A"), 1); err != nil {
				t.Errorf("concurrent add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(plan.Snapshot()) != 100 {
		t.Errorf("Expected 100 items, got %d", len(plan.Snapshot()))
	}
}

func TestParsePlanState(t *testing.T) {
	for _, state := range []PlanState{PlanOpen, PlanClosed} {
		parsed, err := ParsePlanState(state.String())
		if err != nil {
			t.Fatalf("round trip failed for %s: %v", state, err)
		}
		if parsed != state {
			t.Errorf("Expected %s, got %s", state, parsed)
		}
	}

	if _, err := ParsePlanState("DRAFT"); err == nil {
		t.Error("Expected unknown state to be rejected")
	}
}
