package tileset3d

import (
	"math"
	"testing"
)

func TestNewTilesetValidation(t *testing.T) {
	root := NewTile("root", RefineReplace, nil)
	q := newFakeQueries()

	if _, err := NewTileset(nil, 16, q); err != ErrNilRoot {
		t.Errorf("NewTileset(nil root) error = %v, want ErrNilRoot", err)
	}
	if _, err := NewTileset(root, 0, q); err != ErrInvalidBudget {
		t.Errorf("NewTileset(budget=0) error = %v, want ErrInvalidBudget", err)
	}
	if _, err := NewTileset(root, -1, q); err != ErrInvalidBudget {
		t.Errorf("NewTileset(negative budget) error = %v, want ErrInvalidBudget", err)
	}
	if _, err := NewTileset(root, math.Inf(1), q); err != ErrInvalidBudget {
		t.Errorf("NewTileset(+Inf budget) error = %v, want ErrInvalidBudget", err)
	}
	if _, err := NewTileset(root, math.NaN(), q); err != ErrInvalidBudget {
		t.Errorf("NewTileset(NaN budget) error = %v, want ErrInvalidBudget", err)
	}
	if _, err := NewTileset(root, 16, nil); err != ErrNilQueries {
		t.Errorf("NewTileset(nil queries) error = %v, want ErrNilQueries", err)
	}

	ts, err := NewTileset(root, 16, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.BaseScreenSpaceError != 16 {
		t.Error("BaseScreenSpaceError should default to maximumScreenSpaceError")
	}
	if _, ok := ts.Cache.(NoopCache); !ok {
		t.Error("Cache should default to NoopCache")
	}
	if ts.Priority == nil {
		t.Error("Priority should default to DefaultPriority")
	}
}

// TestWholeTreeMeetsSSE is scenario 1: the root alone already satisfies the
// budget, so SelectTiles should do no traversal work at all.
func TestWholeTreeMeetsSSE(t *testing.T) {
	root := withProps(NewTile("root", RefineReplace, nil), props{visible: true, inRequestVolume: true, sse: 10})
	ts := newTestTileset(root)

	ts.SelectTiles(&FrameState{FrameNumber: 1})

	if len(ts.SelectedTiles) != 0 {
		t.Errorf("SelectedTiles = %v, want none", ts.SelectedTiles)
	}
	if len(ts.RequestedTiles) != 0 {
		t.Errorf("RequestedTiles = %v, want none", ts.RequestedTiles)
	}
}

func TestSelectTilesReturnsFalseWhenRootInvisible(t *testing.T) {
	root := withProps(NewTile("root", RefineReplace, nil), props{visible: false, inRequestVolume: true, sse: 100})
	ts := newTestTileset(root)

	if ok := ts.SelectTiles(&FrameState{FrameNumber: 1}); ok {
		t.Error("SelectTiles should report false when the root is invisible")
	}
}

func TestSelectTilesHonorsDebugFreezeFrame(t *testing.T) {
	root := withProps(NewTile("root", RefineReplace, nil), props{visible: true, inRequestVolume: true, sse: 100})
	ts := newTestTileset(root)
	ts.DebugFreezeFrame = true

	if ok := ts.SelectTiles(&FrameState{FrameNumber: 1}); ok {
		t.Error("SelectTiles should report false while frozen")
	}
	if len(ts.SelectedTiles) != 0 {
		t.Error("a frozen frame should not touch the previous selection lists")
	}
}

func TestResetClearsOutputsAndStacks(t *testing.T) {
	root := withProps(NewTile("root", RefineReplace, nil), props{visible: true, inRequestVolume: true, sse: 100})
	child := leaf("c", 5)
	root.AddChild(child)

	ts := newTestTileset(root)
	ts.SelectTiles(&FrameState{FrameNumber: 1})

	ts.Reset()

	if ts.SelectedTiles != nil || ts.RequestedTiles != nil || ts.EmptyTiles != nil {
		t.Error("Reset should clear all output lists")
	}
	if ts.HasMixedContent {
		t.Error("Reset should clear HasMixedContent")
	}
	if !ts.traversalStack.empty() {
		t.Error("Reset should empty the traversal stack")
	}
}

func TestStatsReflectsLastSelectTiles(t *testing.T) {
	root := withProps(NewTile("root", RefineReplace, nil), props{visible: true, inRequestVolume: true, sse: 100})
	a := leaf("a", 5)
	a.ContentAvailable, a.ContentUnloaded = true, false
	root.AddChild(a)

	ts := newTestTileset(root)
	ts.SelectTiles(&FrameState{FrameNumber: 1})

	stats := ts.Stats()
	if stats.Visited == 0 {
		t.Error("Visited should be nonzero after a traversal that visits tiles")
	}
	if stats.SelectedCount != len(ts.SelectedTiles) {
		t.Errorf("SelectedCount = %d, want %d", stats.SelectedCount, len(ts.SelectedTiles))
	}
}

func TestTouchTileIsIdempotentPerFrame(t *testing.T) {
	tile := NewTile("t", RefineReplace, nil)
	cache := &fakeCache{}
	ts := newTestTileset(tile)
	ts.Cache = cache

	ts.touchTile(tile)
	ts.touchTile(tile)

	if len(cache.touched) != 1 {
		t.Errorf("Touch called %d times, want exactly 1 within the same frame", len(cache.touched))
	}
}

func TestUpdateTileAncestorContentLinksCountsRequestedAsContent(t *testing.T) {
	parent := NewTile("parent", RefineReplace, nil)
	child := NewTile("child", RefineReplace, nil)
	parent.AddChild(child)

	ts := newTestTileset(parent)
	parent.ContentUnloaded = true
	parent.requestedFrame = ts.frame.FrameNumber // requested this very frame

	ts.updateTileAncestorContentLinks(child)

	if child.ancestorWithContent != parent {
		t.Error("a parent requested this frame should count as content for its descendants' chain, even though unloaded")
	}
}

func TestOnSelectionEventFires(t *testing.T) {
	root := withProps(NewTile("root", RefineReplace, nil), props{visible: true, inRequestVolume: true, sse: 100})
	a := leaf("a", 5)
	root.AddChild(a)

	var events []SelectionEvent
	ts := newTestTileset(root)
	ts.OnSelectionEvent = func(e SelectionEvent) { events = append(events, e) }

	ts.SelectTiles(&FrameState{FrameNumber: 1})

	if len(events) == 0 {
		t.Error("OnSelectionEvent should fire at least once when tiles are requested/selected")
	}
}

// TestOnSelectionEventFiresDeselected covers the supplemented
// selected/deselected pair: a leaf selected on frame 1 that drops out of
// the frustum on frame 2 should fire EventDeselected exactly once, and not
// again on frame 3 once it has already dropped out.
func TestOnSelectionEventFiresDeselected(t *testing.T) {
	root := withProps(NewTile("root", RefineReplace, nil), props{visible: true, inRequestVolume: true, sse: 100})
	a := leaf("a", 5)
	a.ContentAvailable, a.ContentUnloaded = true, false
	root.AddChild(a)

	var events []SelectionEvent
	ts := newTestTileset(root)
	ts.OnSelectionEvent = func(e SelectionEvent) { events = append(events, e) }

	ts.SelectTiles(&FrameState{FrameNumber: 1})
	found := false
	for _, e := range ts.SelectedTiles {
		if e == a {
			found = true
		}
	}
	if !found {
		t.Fatal("setup failed: leaf a should be selected on frame 1")
	}

	events = nil
	propsOf(a).visible = false
	ts.SelectTiles(&FrameState{FrameNumber: 2})

	deselectedCount := 0
	for _, e := range events {
		if e.Kind == EventDeselected && e.Tile == a {
			deselectedCount++
		}
	}
	if deselectedCount != 1 {
		t.Errorf("EventDeselected fired %d times on frame 2, want exactly 1", deselectedCount)
	}

	events = nil
	ts.SelectTiles(&FrameState{FrameNumber: 3})
	for _, e := range events {
		if e.Kind == EventDeselected && e.Tile == a {
			t.Error("EventDeselected should not fire again once a tile has already dropped out")
		}
	}
}
