package tui

// scrollRegion models one scrollable container in the rendered view tree.
// Regions form a parent chain up to the root screen; most views have just
// the document pane inside the root.
type scrollRegion struct {
	parent        *scrollRegion
	contentHeight int
	visibleHeight int
	scrollEnabled bool
	offset        int
}

// canScroll reports whether this region actually scrolls: it must be
// scroll-enabled and its content must overflow the visible area.
func (r *scrollRegion) canScroll() bool {
	return r != nil && r.scrollEnabled && r.contentHeight > r.visibleHeight
}

// nearestScrollRegion ascends parent links from start to the first region
// that can scroll. Terminates at the root (nil parent).
func nearestScrollRegion(start *scrollRegion) *scrollRegion {
	for cur := start; cur != nil; cur = cur.parent {
		if cur.canScroll() {
			return cur
		}
	}
	return nil
}

func (r *scrollRegion) maxOffset() int {
	max := r.contentHeight - r.visibleHeight
	if max < 0 {
		max = 0
	}
	return max
}

func (r *scrollRegion) clampOffset() {
	if r.offset < 0 {
		r.offset = 0
	}
	if max := r.maxOffset(); r.offset > max {
		r.offset = max
	}
}
