package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, b := range bms {
		if b.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_EscalationAndRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10, 15, 3)

	if bms := bd.Check(WindowStats{Class: "stable"}); len(bms) != 0 {
		t.Errorf("first window should not bookmark, got %v", bms)
	}
	bd.Check(WindowStats{Class: "warning", Metric: 30})

	bms := bd.Check(WindowStats{Class: "critical", Metric: 70, WindowEndTick: 180})
	if !hasBookmark(bms, BookmarkEscalation) {
		t.Fatalf("expected escalation bookmark, got %v", bms)
	}
	if bms[0].Tick != 180 {
		t.Errorf("bookmark tick = %d, want 180", bms[0].Tick)
	}

	bms = bd.Check(WindowStats{Class: "stable"})
	if !hasBookmark(bms, BookmarkRecovery) {
		t.Fatalf("expected recovery bookmark, got %v", bms)
	}
	if bms[0].Description != "stable after 2 unstable windows" {
		t.Errorf("description = %q", bms[0].Description)
	}
}

func TestBookmarkDetector_SustainedCritical(t *testing.T) {
	bd := NewBookmarkDetector(10, 15, 3)

	fired := 0
	for i := 0; i < 6; i++ {
		if hasBookmark(bd.Check(WindowStats{Class: "critical"}), BookmarkSustainedCritical) {
			fired++
			if i != 2 {
				t.Errorf("sustained bookmark at window %d, want 2", i)
			}
		}
	}
	if fired != 1 {
		t.Errorf("sustained bookmark fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_PopulationCap(t *testing.T) {
	bd := NewBookmarkDetector(5, 15, 3)

	if !hasBookmark(bd.Check(WindowStats{Fixers: 15}), BookmarkPopulationCap) {
		t.Error("expected cap bookmark on first capped window")
	}
	if hasBookmark(bd.Check(WindowStats{Fixers: 15}), BookmarkPopulationCap) {
		t.Error("cap bookmark should not repeat while capped")
	}
	bd.Check(WindowStats{Fixers: 3})
	if !hasBookmark(bd.Check(WindowStats{Fixers: 15}), BookmarkPopulationCap) {
		t.Error("cap bookmark should fire again after dropping below the cap")
	}
}

func TestBookmarkDetector_BurstSpam(t *testing.T) {
	bd := NewBookmarkDetector(5, 15, 3)
	if !hasBookmark(bd.Check(WindowStats{BurstsRejected: 4}), BookmarkBurstSpam) {
		t.Error("expected burst spam bookmark")
	}
}

func TestBookmarkDetector_HistoryWraps(t *testing.T) {
	bd := NewBookmarkDetector(2, 15, 3)
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{Class: "warning"})
	}
	bms := bd.Check(WindowStats{Class: "stable"})
	if !hasBookmark(bms, BookmarkRecovery) {
		t.Fatal("expected recovery after wrapped history")
	}
	// Run length is bounded by the history size
	if bms[0].Description != "stable after 2 unstable windows" {
		t.Errorf("description = %q", bms[0].Description)
	}
}
