package feed

import (
	"math/rand"
	"testing"
)

// checkSinglePlaying asserts that at most one item is playing and that it is
// the active one.
func checkSinglePlaying(t *testing.T, tr *Tracker) {
	t.Helper()
	active, ok := tr.Active()
	playing := 0
	for i, paused := range tr.Intents() {
		if paused {
			continue
		}
		playing++
		if !ok || i != active {
			t.Fatalf("item %d is playing but active is %d (ok=%v)", i, active, ok)
		}
	}
	if playing > 1 {
		t.Fatalf("%d items playing at once", playing)
	}
}

func TestNewTrackerHasNoActiveItem(t *testing.T) {
	tr := NewTracker()
	if idx, ok := tr.Active(); ok || idx != NoActive {
		t.Errorf("expected no active item, got %d", idx)
	}
	if !tr.Paused(0) {
		t.Error("everything should be paused with no active item")
	}

	tr.OnVisibilityChanged([]VisibleItem{{Index: 0, Fraction: 1}})
	if _, ok := tr.Active(); ok {
		t.Error("visibility on an empty list should not activate anything")
	}
}

func TestLowestIndexWins(t *testing.T) {
	// [A, B, C], viewport reports B and C
	tr := NewTracker()
	tr.Replace(3)

	tr.OnVisibilityChanged([]VisibleItem{{Index: 1, Fraction: 0.6}, {Index: 2, Fraction: 0.9}})

	if idx, _ := tr.Active(); idx != 1 {
		t.Fatalf("expected active 1, got %d", idx)
	}
	if !tr.Paused(0) || tr.Paused(1) || !tr.Paused(2) {
		t.Errorf("expected A,C paused and B playing, got %v", tr.Intents())
	}
}

func TestVisibilityMinimumIndexProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 500; iter++ {
		n := 1 + rng.Intn(20)
		tr := NewTracker()
		tr.Replace(n)

		count := 1 + rng.Intn(n)
		visible := make([]VisibleItem, count)
		minIdx := n
		for i := range visible {
			idx := rng.Intn(n)
			visible[i] = VisibleItem{Index: idx, Fraction: rng.Float64()}
			minIdx = min(minIdx, idx)
		}

		tr.OnVisibilityChanged(visible)

		if idx, _ := tr.Active(); idx != minIdx {
			t.Fatalf("visible %v: expected active %d, got %d", visible, minIdx, idx)
		}
		checkSinglePlaying(t, tr)
	}
}

func TestEmptyVisibilityIsNoOp(t *testing.T) {
	tr := NewTracker()
	tr.Replace(5)
	tr.OnVisibilityChanged([]VisibleItem{{Index: 3}})
	tr.TogglePlayPause(3)

	tr.OnVisibilityChanged(nil)
	tr.OnVisibilityChanged([]VisibleItem{})

	if idx, _ := tr.Active(); idx != 3 {
		t.Errorf("empty visibility changed active to %d", idx)
	}
	if !tr.Paused(3) {
		t.Error("empty visibility should not touch the override")
	}
}

func TestOutOfRangeIndexesIgnored(t *testing.T) {
	tr := NewTracker()
	tr.Replace(3)
	tr.OnVisibilityChanged([]VisibleItem{{Index: 2}})

	tr.OnVisibilityChanged([]VisibleItem{{Index: -1}, {Index: 7}})
	if idx, _ := tr.Active(); idx != 2 {
		t.Errorf("out-of-range visibility should be ignored, active=%d", idx)
	}

	tr.OnVisibilityChanged([]VisibleItem{{Index: 9}, {Index: 1}})
	if idx, _ := tr.Active(); idx != 1 {
		t.Errorf("in-range entry should still apply, active=%d", idx)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	tr := NewTracker()
	tr.Replace(4)
	tr.OnVisibilityChanged([]VisibleItem{{Index: 2}})

	before := tr.Paused(2)
	tr.TogglePlayPause(2)
	if tr.Paused(2) == before {
		t.Fatal("toggle should flip the active item")
	}
	checkSinglePlaying(t, tr)
	tr.TogglePlayPause(2)
	if tr.Paused(2) != before {
		t.Error("double toggle should round-trip")
	}
}

func TestToggleInactiveIsNoOp(t *testing.T) {
	tr := NewTracker()
	tr.Replace(4)

	for k := 1; k < 4; k++ {
		before := tr.Intents()
		tr.TogglePlayPause(k)
		after := tr.Intents()
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("toggle(%d) changed flag %d", k, i)
			}
		}
	}
	tr.TogglePlayPause(-1)
	tr.TogglePlayPause(99)
	if tr.Paused(0) {
		t.Error("active item should still be playing")
	}
}

func TestBecomingActiveResetsOverride(t *testing.T) {
	tr := NewTracker()
	tr.Replace(3)
	tr.TogglePlayPause(0) // pause item 0

	tr.OnVisibilityChanged([]VisibleItem{{Index: 1}})
	if tr.Paused(1) {
		t.Error("newly active item should play")
	}

	tr.OnVisibilityChanged([]VisibleItem{{Index: 0}})
	if tr.Paused(0) {
		t.Error("returning to an item should reset its override to playing")
	}
}

func TestReplaceResets(t *testing.T) {
	tr := NewTracker()
	tr.Replace(3)
	tr.OnVisibilityChanged([]VisibleItem{{Index: 2}})
	tr.TogglePlayPause(2)

	tr.Replace(5)
	if idx, _ := tr.Active(); idx != 0 {
		t.Errorf("replace should activate item 0, got %d", idx)
	}
	if tr.Paused(0) {
		t.Error("item 0 should play after replace")
	}
	tr.OnVisibilityChanged([]VisibleItem{{Index: 2}})
	if tr.Paused(2) {
		t.Error("stale override leaked onto new content")
	}

	tr.Replace(0)
	if _, ok := tr.Active(); ok {
		t.Error("replace with an empty list should leave no active item")
	}
	if tr.Len() != 0 || len(tr.Intents()) != 0 {
		t.Error("empty list should have no intents")
	}
}

func TestSinglePlayingUnderRandomEvents(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := NewTracker()

	for step := 0; step < 2000; step++ {
		switch rng.Intn(4) {
		case 0:
			tr.Replace(rng.Intn(8))
		case 1:
			tr.TogglePlayPause(rng.Intn(10) - 1)
		default:
			var visible []VisibleItem
			for i := rng.Intn(3); i > 0; i-- {
				visible = append(visible, VisibleItem{Index: rng.Intn(10) - 1})
			}
			tr.OnVisibilityChanged(visible)
		}
		checkSinglePlaying(t, tr)
	}
}
