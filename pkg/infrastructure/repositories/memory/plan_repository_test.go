package memory

import (
	"context"
	"testing"
	"time"

	"github.com/openmfg/prodplan/pkg/domain/entities"
)

func saveRequest(planID *int64, name string, lines ...entities.PlanItemSaveLine) *entities.PlanSaveRequest {
	return &entities.PlanSaveRequest{
		PlanID:    planID,
		Name:      name,
		State:     "OPEN",
		CreatedAt: time.Now(),
		Items:     lines,
	}
}

func TestPlanRepository_SaveAssignsIdentifiers(t *testing.T) {
	repo := NewPlanRepository()
	ctx := context.Background()

	plan, err := repo.SavePlan(ctx, saveRequest(nil, "test",
		entities.PlanItemSaveLine{SemiFinishedID: "A", Name: "A", Target: 10},
	))
	if err != nil {
		t.Fatalf("Expected save to succeed: %v", err)
	}
	if plan.ID == 0 {
		t.Error("Expected plan id to be assigned")
	}
	if plan.Items[0].ID == 0 {
		t.Error("Expected item id to be assigned")
	}
}

func TestPlanRepository_WholePlanReplace(t *testing.T) {
	repo := NewPlanRepository()
	ctx := context.Background()

	plan, err := repo.SavePlan(ctx, saveRequest(nil, "test",
		entities.PlanItemSaveLine{SemiFinishedID: "A", Name: "A", Target: 10},
		entities.PlanItemSaveLine{SemiFinishedID: "B", Name: "B", Target: 20},
	))
	if err != nil {
		t.Fatal(err)
	}

	keptID := plan.Items[1].ID
	replaced, err := repo.SavePlan(ctx, saveRequest(&plan.ID, "renamed",
		entities.PlanItemSaveLine{ItemID: &keptID, SemiFinishedID: "B", Name: "B", Target: 25, Produced: 5},
	))
	if err != nil {
		t.Fatalf("Expected replace to succeed: %v", err)
	}

	if replaced.Name != "renamed" {
		t.Errorf("Expected renamed plan, got %s", replaced.Name)
	}
	if len(replaced.Items) != 1 {
		t.Fatalf("Expected 1 item after replace, got %d", len(replaced.Items))
	}
	if replaced.Items[0].ID != keptID {
		t.Errorf("Expected kept item to retain id %d, got %d", keptID, replaced.Items[0].ID)
	}
	if replaced.Items[0].Target != 25 || replaced.Items[0].Produced != 5 {
		t.Errorf("Unexpected item quantities: %+v", replaced.Items[0])
	}
}

func TestPlanRepository_SaveUnknownPlan(t *testing.T) {
	repo := NewPlanRepository()
	missing := int64(99)
	if _, err := repo.SavePlan(context.Background(), saveRequest(&missing, "nope")); err == nil {
		t.Error("Expected save of unknown plan to fail")
	}
}

func TestPlanRepository_ListAndDelete(t *testing.T) {
	repo := NewPlanRepository()
	ctx := context.Background()

	first, _ := repo.SavePlan(ctx, saveRequest(nil, "first"))
	second, _ := repo.SavePlan(ctx, saveRequest(nil, "second"))

	plans, err := repo.ListPlans(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 || plans[0].ID != first.ID || plans[1].ID != second.ID {
		t.Errorf("Unexpected list result: %+v", plans)
	}

	if err := repo.DeletePlan(ctx, first.ID); err != nil {
		t.Fatalf("Expected delete to succeed: %v", err)
	}
	if _, err := repo.GetPlan(ctx, first.ID); err == nil {
		t.Error("Expected deleted plan to be gone")
	}
	if err := repo.DeletePlan(ctx, first.ID); err == nil {
		t.Error("Expected double delete to fail")
	}
}

func TestPlanRepository_SetPlanState(t *testing.T) {
	repo := NewPlanRepository()
	ctx := context.Background()

	plan, _ := repo.SavePlan(ctx, saveRequest(nil, "test"))
	if err := repo.SetPlanState(ctx, plan.ID, entities.PlanClosed); err != nil {
		t.Fatalf("Expected state change to succeed: %v", err)
	}

	loaded, _ := repo.GetPlan(ctx, plan.ID)
	if loaded.State != entities.PlanClosed {
		t.Errorf("Expected CLOSED, got %s", loaded.State)
	}
}

func TestProductionRecordRepository_AppendAndList(t *testing.T) {
	repo := NewProductionRecordRepository()
	ctx := context.Background()

	first, err := entities.NewProductionRecord(1, "ivanova", "DOUGH", 10, 0, "", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	second, _ := entities.NewProductionRecord(1, "petrov", "SAUCE", 5, 1, "spill", time.Now())
	other, _ := entities.NewProductionRecord(2, "ivanova", "DOUGH", 7, 0, "", time.Now())

	for _, record := range []*entities.ProductionRecord{first, second, other} {
		if err := repo.AppendRecord(ctx, record); err != nil {
			t.Fatalf("Expected append to succeed: %v", err)
		}
		if record.ID == "" {
			t.Error("Expected record id to be assigned")
		}
	}

	records, err := repo.ListByPlan(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records for plan 1, got %d", len(records))
	}
	if records[0].Operator != "ivanova" || records[1].Operator != "petrov" {
		t.Errorf("Expected append order, got %+v", records)
	}
}
