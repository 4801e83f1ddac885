package feed

// DefaultThreshold is the fraction of an item that must be on screen for it
// to count as visible
const DefaultThreshold = 0.5

// Viewability turns a scroll position into visibility-change notifications.
// It works from geometry alone, so items that are not rendered still get the
// right answer.
type Viewability struct {
	threshold float64
	last      []VisibleItem
	primed    bool
}

// NewViewability creates a Viewability; thresholds outside (0, 1] fall back
// to DefaultThreshold
func NewViewability(threshold float64) *Viewability {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Viewability{threshold: threshold}
}

// Threshold returns the configured visibility threshold
func (v *Viewability) Threshold() float64 {
	return v.threshold
}

// Compute returns the visible items, in presentation order, for n items of
// itemHeight rows scrolled to offset inside a viewport rows tall.
func (v *Viewability) Compute(offset, viewport, itemHeight, n int) []VisibleItem {
	if n <= 0 || viewport <= 0 || itemHeight <= 0 {
		return nil
	}

	first := max(offset/itemHeight, 0)
	last := min((offset+viewport)/itemHeight, n-1)

	var visible []VisibleItem
	for i := first; i <= last; i++ {
		top := i * itemHeight
		bottom := top + itemHeight
		overlap := min(bottom, offset+viewport) - max(top, offset)
		if overlap <= 0 {
			continue
		}
		fraction := float64(overlap) / float64(itemHeight)
		if fraction >= v.threshold {
			visible = append(visible, VisibleItem{Index: i, Fraction: fraction})
		}
	}
	return visible
}

// Update computes the visible set and reports whether it differs from the
// previous call. Only index membership counts as a change.
func (v *Viewability) Update(offset, viewport, itemHeight, n int) ([]VisibleItem, bool) {
	visible := v.Compute(offset, viewport, itemHeight, n)
	changed := !v.primed || !sameIndexes(v.last, visible)
	v.last = visible
	v.primed = true
	return visible, changed
}

// Reset forgets the previous visible set
func (v *Viewability) Reset() {
	v.last = nil
	v.primed = false
}

func sameIndexes(a, b []VisibleItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Index != b[i].Index {
			return false
		}
	}
	return true
}
