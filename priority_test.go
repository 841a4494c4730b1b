package tileset3d

import "testing"

// buildChain links parent -> a -> b as a straight line and returns them.
func buildChain() (parent, a, b *Tile) {
	parent = NewTile("parent", RefineReplace, nil)
	a = NewTile("a", RefineReplace, nil)
	b = NewTile("b", RefineReplace, nil)
	parent.AddChild(a)
	a.AddChild(b)
	return
}

func TestPropagatePriorityPicksMinChild(t *testing.T) {
	ts := &Tileset{}
	parent, a, b := buildChain()
	parent.priorityDistanceHolder = parent
	a.priorityDistanceHolder = a
	b.priorityDistanceHolder = b
	a.priorityDistance = 2
	b.priorityDistance = 7

	children := []*Tile{a, b}
	ts.propagatePriority(parent, children, a)

	if parent.priorityDistance != 2 {
		t.Errorf("parent.priorityDistance = %v, want 2", parent.priorityDistance)
	}
	if !a.wasMinChild {
		t.Error("a should be flagged wasMinChild")
	}
	if a.priorityDistanceHolder != parent || b.priorityDistanceHolder != parent {
		t.Error("children's priorityDistanceHolder should be reassigned to parent")
	}
}

func TestPropagatePriorityChainsThroughWasMinChild(t *testing.T) {
	ts := &Tileset{}
	grandparent := NewTile("gp", RefineReplace, nil)
	parent, a, b := buildChain()
	grandparent.AddChild(parent)

	parent.wasMinChild = true
	parent.priorityDistanceHolder = grandparent

	a.priorityDistance = 1
	ts.propagatePriority(parent, []*Tile{a, b}, a)

	if grandparent.priorityDistance != 1 {
		t.Errorf("grandparent.priorityDistance = %v, want 1 (chained through wasMinChild)", grandparent.priorityDistance)
	}
	if a.priorityDistanceHolder != grandparent {
		t.Error("a.priorityDistanceHolder should chain to grandparent, not parent")
	}
}

func TestPropagatePriorityNoopWithoutMinChild(t *testing.T) {
	ts := &Tileset{}
	parent := NewTile("parent", RefineReplace, nil)
	parent.priorityDistance = 9
	ts.propagatePriority(parent, nil, nil)
	if parent.priorityDistance != 9 {
		t.Error("propagatePriority with nil minChild must be a no-op")
	}
}

// TestUpdateMinMaxPriorityAsymmetry locks in the §9 asymmetry verbatim: max
// is read from the propagated holder, min from the tile's own raw value.
func TestUpdateMinMaxPriorityAsymmetry(t *testing.T) {
	ts := &Tileset{}
	holder := NewTile("holder", RefineReplace, nil)
	holder.priorityDistance = 100

	tile := NewTile("tile", RefineReplace, nil)
	tile.priorityDistance = 3
	tile.priorityDistanceHolder = holder

	ts.updateMinMaxPriority(tile)

	if ts.maxPriority != 100 {
		t.Errorf("maxPriority = %v, want 100 (from holder)", ts.maxPriority)
	}
	if ts.minPriority != 3 {
		t.Errorf("minPriority = %v, want 3 (from tile itself)", ts.minPriority)
	}
	if ts.requestedTilesCount != 1 {
		t.Errorf("requestedTilesCount = %d, want 1", ts.requestedTilesCount)
	}
}

func TestDefaultPriorityClampsToCenterZDepthRange(t *testing.T) {
	tile := NewTile("t", RefineReplace, fakeBV{radius: 10})
	tile.CenterZDepth = 50
	if got := DefaultPriority(tile, nil); got != 40 {
		t.Errorf("DefaultPriority = %v, want 40", got)
	}

	tile.CenterZDepth = 5
	if got := DefaultPriority(tile, nil); got != 0 {
		t.Errorf("DefaultPriority should clamp to 0 when radius exceeds centerZDepth, got %v", got)
	}

	noBV := NewTile("nobv", RefineReplace, nil)
	noBV.CenterZDepth = 20
	if got := DefaultPriority(noBV, nil); got != 20 {
		t.Errorf("DefaultPriority with nil BoundingVolume should use radius 0, got %v", got)
	}
}
