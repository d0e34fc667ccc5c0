package entities

import (
	"testing"
	"time"
)

func TestNewProductionRecord(t *testing.T) {
	now := time.Now()

	record, err := NewProductionRecord(1, "ivanova", "DOUGH", 40, 2, "torn edges", now)
	if err != nil {
		t.Fatalf("Expected valid record to succeed: %v", err)
	}
	if record.QtyOK != 40 || record.QtyScrap != 2 {
		t.Errorf("Unexpected quantities: %+v", record)
	}

	testCases := []struct {
		name     string
		operator string
		semiID   SemiFinishedID
		qtyOK    Quantity
		qtyScrap Quantity
	}{
		{"empty operator", "", "DOUGH", 10, 0},
		{"empty item", "ivanova", "", 10, 0},
		{"negative ok qty", "ivanova", "DOUGH", -1, 0},
		{"negative scrap qty", "ivanova", "DOUGH", 10, -1},
		{"no quantities at all", "ivanova", "DOUGH", 0, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewProductionRecord(1, tc.operator, tc.semiID, tc.qtyOK, tc.qtyScrap, "", now); err == nil {
				t.Error("Expected validation to fail")
			}
		})
	}

	// Scrap-only records are legitimate history
	if _, err := NewProductionRecord(1, "ivanova", "DOUGH", 0, 3, "burnt", now); err != nil {
		t.Errorf("Expected scrap-only record to succeed: %v", err)
	}
}
