package chat

// ScrollTracker implements the chat panel's auto-scroll policy: follow new
// content only while the viewer sits within a small distance of the bottom.
// A reader who scrolled up to re-read history keeps their position.
type ScrollTracker struct {
	threshold float64
	pinned    bool
}

// NewScrollTracker creates a tracker with the given near-bottom threshold.
// A fresh conversation starts pinned.
func NewScrollTracker(threshold float64) *ScrollTracker {
	return &ScrollTracker{threshold: threshold, pinned: true}
}

// Observe records the viewport position before a content update. offset is
// the scroll position, viewport the visible height, content the total height.
func (t *ScrollTracker) Observe(offset, viewport, content float64) {
	distanceFromBottom := content - (offset + viewport)
	t.pinned = distanceFromBottom <= t.threshold
}

// Pinned reports whether the viewer was near the bottom at the last Observe.
func (t *ScrollTracker) Pinned() bool {
	return t.pinned
}

// TargetOffset returns the offset to scroll to after a content update and
// whether scrolling should happen at all.
func (t *ScrollTracker) TargetOffset(viewport, content float64) (float64, bool) {
	if !t.pinned {
		return 0, false
	}
	target := content - viewport
	if target < 0 {
		target = 0
	}
	return target, true
}
