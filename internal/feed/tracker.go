// Package feed decides which item of a vertically paged feed is active and
// whether each item should be playing.
package feed

// NoActive is returned by Active when the feed is empty
const NoActive = -1

// VisibleItem is one entry of a visibility-change notification
type VisibleItem struct {
	Index    int
	Fraction float64 // Portion of the item's bounds inside the viewport
}

// Tracker holds the active index and per-item pause overrides.
//
// It is owned by a single screen and mutated only from the UI event loop,
// so it carries no locks. It emits intent only; whoever renders the feed
// drives the actual playback.
type Tracker struct {
	n        int
	active   int
	override map[int]bool // paused override, only meaningful for the active index
}

// NewTracker returns a tracker with no active item
func NewTracker() *Tracker {
	return &Tracker{active: NoActive, override: make(map[int]bool)}
}

// Replace installs a new list of n items. The first item becomes active
// and every override is dropped, so nothing leaks onto new content that
// happens to share an index.
func (t *Tracker) Replace(n int) {
	if n < 0 {
		n = 0
	}
	t.n = n
	t.override = make(map[int]bool)
	if n == 0 {
		t.active = NoActive
		return
	}
	t.active = 0
}

// OnVisibilityChanged moves the active index to the top-most visible item.
// Top of the viewport wins over largest visible fraction. Indices outside
// the list are ignored; an empty set leaves the active index alone so the
// feed does not flicker between snap points.
func (t *Tracker) OnVisibilityChanged(visible []VisibleItem) {
	next := NoActive
	for _, v := range visible {
		if v.Index < 0 || v.Index >= t.n {
			continue
		}
		if next == NoActive || v.Index < next {
			next = v.Index
		}
	}
	if next == NoActive || next == t.active {
		return
	}

	delete(t.override, t.active)
	t.active = next
	delete(t.override, next)
}

// TogglePlayPause flips the paused override of the active item.
// Inactive indices are always paused, so toggling them does nothing.
func (t *Tracker) TogglePlayPause(index int) {
	if t.active == NoActive || index != t.active {
		return
	}
	t.override[index] = !t.override[index]
}

// Paused reports the playback intent for index
func (t *Tracker) Paused(index int) bool {
	if index != t.active || t.active == NoActive {
		return true
	}
	return t.override[index]
}

// Active returns the active index, or NoActive and false for an empty feed
func (t *Tracker) Active() (int, bool) {
	return t.active, t.active != NoActive
}

// Len returns the number of items in the current list
func (t *Tracker) Len() int {
	return t.n
}

// Intents returns the paused flag of every item in presentation order
func (t *Tracker) Intents() []bool {
	intents := make([]bool, t.n)
	for i := range intents {
		intents[i] = t.Paused(i)
	}
	return intents
}
