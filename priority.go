package tileset3d

// propagatePriority implements the sibling-propagation half of §4.C. It is
// called once per call to updateAndPushChildren, after every child's
// priorityDistance has been computed and the minimum-priority child found.
//
// The minimum child becomes the new urgency reference for its whole
// sibling group, and that reference is chained upward: if tile (the
// parent of the children being processed) was itself a minimum child, or
// is the root, the holder further up the chain is reused instead of
// starting a new one at tile. This lets the single most time-critical
// descendant in a subtree set the loading priority for its entire
// ancestor chain.
func (ts *Tileset) propagatePriority(tile *Tile, children []*Tile, minChild *Tile) {
	if minChild == nil {
		return
	}

	holder := tile
	if tile.wasMinChild || tile.Parent == nil {
		holder = tile.priorityDistanceHolder
	}

	holder.priorityDistance = minChild.priorityDistance
	minChild.wasMinChild = true
	for _, child := range children {
		child.priorityDistanceHolder = holder
	}
}

// updateMinMaxPriority refreshes the tileset-wide priority bookkeeping used
// to report a request's relative urgency. Preserves the asymmetry flagged
// in §9 verbatim: the max branch reads the propagated
// priorityDistanceHolder.priorityDistance, the min branch reads the tile's
// own raw priorityDistance. This is carried over unchanged rather than
// "fixed" to unify the two branches.
func (ts *Tileset) updateMinMaxPriority(tile *Tile) {
	if holder := tile.priorityDistanceHolder; holder != nil {
		if holder.priorityDistance > ts.maxPriority || ts.requestedTilesCount == 0 {
			ts.maxPriority = holder.priorityDistance
		}
	}
	if tile.priorityDistance < ts.minPriority || ts.requestedTilesCount == 0 {
		ts.minPriority = tile.priorityDistance
	}
	ts.requestedTilesCount++
}
