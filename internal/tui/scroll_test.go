package tui

import "testing"

func TestNearestScrollRegionAscendsToScrollableParent(t *testing.T) {
	root := &scrollRegion{contentHeight: 100, visibleHeight: 40, scrollEnabled: true}
	inner := &scrollRegion{parent: root, contentHeight: 10, visibleHeight: 10}

	if got := nearestScrollRegion(inner); got != root {
		t.Fatalf("expected ascent to the scrollable root, got %+v", got)
	}
}

func TestNearestScrollRegionNilWhenNothingScrolls(t *testing.T) {
	root := &scrollRegion{contentHeight: 20, visibleHeight: 40, scrollEnabled: true}
	inner := &scrollRegion{parent: root}

	if got := nearestScrollRegion(inner); got != nil {
		t.Fatalf("no region overflows; expected nil, got %+v", got)
	}
	if got := nearestScrollRegion(nil); got != nil {
		t.Fatalf("nil start must return nil")
	}
}

func TestClampOffset(t *testing.T) {
	r := &scrollRegion{contentHeight: 50, visibleHeight: 20, scrollEnabled: true, offset: 99}
	r.clampOffset()
	if r.offset != 30 {
		t.Fatalf("offset = %d, want 30", r.offset)
	}
	r.offset = -5
	r.clampOffset()
	if r.offset != 0 {
		t.Fatalf("offset = %d, want 0", r.offset)
	}
}
