package stats

import (
	"testing"
	"time"

	"github.com/openmfg/prodplan/pkg/domain/entities"
)

func item(id entities.SemiFinishedID, target, produced entities.Quantity) entities.PlanItem {
	return entities.PlanItem{
		SemiFinished: entities.SemiFinishedItem{ID: id, Name: string(id)},
		Target:       target,
		Produced:     produced,
	}
}

func record(operator string, id entities.SemiFinishedID, ok, scrap entities.Quantity) *entities.ProductionRecord {
	return &entities.ProductionRecord{
		PlanID:         1,
		Operator:       operator,
		SemiFinishedID: id,
		QtyOK:          ok,
		QtyScrap:       scrap,
		RecordedAt:     time.Now(),
	}
}

func TestComputeKPIs(t *testing.T) {
	kpis := ComputeKPIs([]entities.PlanItem{
		item("A", 50, 20),
		item("B", 30, 30),
	})

	if kpis.TotalRequired != 80 {
		t.Errorf("Expected total required 80, got %d", kpis.TotalRequired)
	}
	if kpis.TotalProduced != 50 {
		t.Errorf("Expected total produced 50, got %d", kpis.TotalProduced)
	}
	if kpis.TotalPending != 30 {
		t.Errorf("Expected total pending 30, got %d", kpis.TotalPending)
	}
	if kpis.OverallProgressPct != 62.5 {
		t.Errorf("Expected progress 62.5, got %v", kpis.OverallProgressPct)
	}
}

func TestComputeKPIs_ZeroRequired(t *testing.T) {
	kpis := ComputeKPIs(nil)
	if kpis.OverallProgressPct != 0 {
		t.Errorf("Expected progress 0 for empty plan, got %v", kpis.OverallProgressPct)
	}
	if kpis.TotalPending != 0 {
		t.Errorf("Expected pending 0 for empty plan, got %d", kpis.TotalPending)
	}
}

func TestComputeKPIs_OverProductionClampsPending(t *testing.T) {
	kpis := ComputeKPIs([]entities.PlanItem{
		item("A", 10, 50),
		item("B", 20, 0),
	})

	// 30 required, 50 produced: pending clamps to 0, never negative
	if kpis.TotalPending != 0 {
		t.Errorf("Expected pending clamped to 0, got %d", kpis.TotalPending)
	}
	if kpis.OverallProgressPct <= 100 {
		t.Errorf("Expected progress above 100, got %v", kpis.OverallProgressPct)
	}
}

func TestComputePerItemProgress(t *testing.T) {
	testCases := []struct {
		name         string
		it           entities.PlanItem
		wantPending  entities.Quantity
		wantPct      float64
		wantComplete bool
	}{
		{"in progress", item("A", 100, 30), 70, 30, false},
		{"complete", item("A", 10, 10), 0, 100, true},
		{"over-produced", item("A", 10, 20), 0, 200, true},
		{"zero target", item("A", 0, 0), 0, 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			progress := ComputePerItemProgress(tc.it)
			if progress.PendingQty != tc.wantPending {
				t.Errorf("Expected pending %d, got %d", tc.wantPending, progress.PendingQty)
			}
			if progress.ProgressPct != tc.wantPct {
				t.Errorf("Expected pct %v, got %v", tc.wantPct, progress.ProgressPct)
			}
			if progress.IsComplete != tc.wantComplete {
				t.Errorf("Expected complete=%v, got %v", tc.wantComplete, progress.IsComplete)
			}
		})
	}
}

func TestComputePerOperatorTotals(t *testing.T) {
	records := []*entities.ProductionRecord{
		record("petrov", "A", 10, 1),
		record("sidorova", "A", 25, 0),
		record("petrov", "B", 5, 2),
		record("ivanova", "B", 30, 0),
	}

	totals := ComputePerOperatorTotals(records)
	if len(totals) != 3 {
		t.Fatalf("Expected 3 operators, got %d", len(totals))
	}

	// ivanova 30, sidorova 25, petrov 15
	wantOrder := []string{"ivanova", "sidorova", "petrov"}
	for i, operator := range wantOrder {
		if totals[i].Operator != operator {
			t.Errorf("position %d: expected %s, got %s", i, operator, totals[i].Operator)
		}
	}

	if totals[2].TotalProduced != 15 {
		t.Errorf("Expected petrov total 15, got %d", totals[2].TotalProduced)
	}
	// Scrap never counts as production
	if totals[2].TotalScrapped != 3 {
		t.Errorf("Expected petrov scrap 3, got %d", totals[2].TotalScrapped)
	}
}

func TestComputePerOperatorTotals_TiesKeepFirstSeenOrder(t *testing.T) {
	records := []*entities.ProductionRecord{
		record("first", "A", 10, 0),
		record("second", "A", 10, 0),
	}

	totals := ComputePerOperatorTotals(records)
	if totals[0].Operator != "first" || totals[1].Operator != "second" {
		t.Errorf("Expected stable tie order, got %+v", totals)
	}
}

func TestApplyProduction(t *testing.T) {
	plan, err := entities.NewPlan("test")
	if err != nil {
		t.Fatal(err)
	}
	dough := entities.SemiFinishedItem{ID: "DOUGH", Name: "Dough"}
	sauce := entities.SemiFinishedItem{ID: "SAUCE", Name: "Sauce"}
	plan.AddItem(dough, 10)
	plan.AddItem(sauce, 5)
	plan.AddItem(dough, 10)

	records := []*entities.ProductionRecord{
		record("ivanova", "DOUGH", 12, 0),
		record("petrov", "SAUCE", 2, 1),
		record("ivanova", "DOUGH", 3, 0),
	}

	if err := ApplyProduction(plan, records); err != nil {
		t.Fatalf("Expected apply to succeed: %v", err)
	}

	items := plan.Snapshot()
	// 15 DOUGH total: first line fills to its target of 10, remainder 5
	// lands on the last DOUGH line.
	if items[0].Produced != 10 {
		t.Errorf("Expected first DOUGH line produced 10, got %d", items[0].Produced)
	}
	if items[1].Produced != 2 {
		t.Errorf("Expected SAUCE produced 2, got %d", items[1].Produced)
	}
	if items[2].Produced != 5 {
		t.Errorf("Expected second DOUGH line produced 5, got %d", items[2].Produced)
	}
}

func TestApplyProduction_OverflowStaysOnLastLine(t *testing.T) {
	plan, _ := entities.NewPlan("test")
	dough := entities.SemiFinishedItem{ID: "DOUGH", Name: "Dough"}
	plan.AddItem(dough, 10)

	records := []*entities.ProductionRecord{record("ivanova", "DOUGH", 25, 0)}
	if err := ApplyProduction(plan, records); err != nil {
		t.Fatalf("Expected apply to succeed: %v", err)
	}

	// Over-production is representable on the line itself
	if got := plan.Snapshot()[0].Produced; got != 25 {
		t.Errorf("Expected produced 25, got %d", got)
	}
}
