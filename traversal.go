package tileset3d

import "sort"

// executeTraversal is the iterative depth-first walk shared by base (D)
// and skip-LOD (F) traversal — the mode difference lives entirely in
// baseSSE/maxSSE and in inBaseTraversal/reachedSkippingThreshold, not in
// separate code paths. Iterative with an explicit, engine-owned stack so
// recursion depth never tracks tree depth and the stack can be reused and
// trimmed frame to frame (§9 Design Notes).
func (ts *Tileset) executeTraversal(root *Tile, baseSSE, maxSSE float64) {
	ts.traversalStack.reset()
	ts.traversalStack.push(root)

	for {
		tile, ok := ts.traversalStack.pop()
		if !ok {
			break
		}

		ts.updateTileAncestorContentLinks(tile)
		baseTraversal := ts.inBaseTraversal(tile, baseSSE)

		parentRefines := true
		if tile.Parent != nil {
			parentRefines = tile.Parent.refines
		}

		var refines bool
		if ts.canTraverse(tile, maxSSE) {
			childrenRefine := ts.updateAndPushChildren(tile, maxSSE)
			refines = childrenRefine && parentRefines
		} else {
			refines = false
		}
		stoppedRefining := !refines && parentRefines

		switch {
		case tile.HasEmptyContent || tile.HasTilesetContent:
			ts.EmptyTiles = append(ts.EmptyTiles, tile)
			ts.emit(tile, EventEmptied)
			ts.loadTile(tile)
			if stoppedRefining {
				ts.selectDesiredTile(tile)
			}
		case tile.Refine == RefineAdd:
			ts.selectDesiredTile(tile)
			ts.loadTile(tile)
		default: // RefineReplace
			if baseTraversal {
				ts.loadTile(tile)
				if stoppedRefining {
					ts.selectDesiredTile(tile)
				}
			} else if stoppedRefining {
				ts.selectDesiredTile(tile)
				ts.loadTile(tile)
			} else if ts.reachedSkippingThreshold(tile) {
				ts.loadTile(tile)
			}
		}

		ts.visitTile(tile)
		ts.touchTile(tile)
		tile.refines = refines
	}
}

// inBaseTraversal implements §4.D's inBaseTraversal predicate. The
// screenSpaceError == 0.0 check is a deliberate exact-float sentinel for
// "leaf SSE not computed" (§9) — not replaced with an epsilon comparison.
func (ts *Tileset) inBaseTraversal(tile *Tile, baseSSE float64) bool {
	if !ts.SkipLevelOfDetail {
		return true
	}
	if ts.ImmediatelyLoadDesiredLevelOfDetail {
		return false
	}
	if tile.ancestorWithContent == nil {
		return true
	}
	if tile.ScreenSpaceError == 0 && tile.Parent != nil && tile.Parent.ScreenSpaceError > baseSSE {
		return true
	}
	return tile.ScreenSpaceError > baseSSE
}

// canTraverse implements §4.D: a tile can be descended into only if it has
// children, is not an expired external tileset (§7 — about to be
// destroyed, must not be walked), and still exceeds the refinement budget.
func (ts *Tileset) canTraverse(tile *Tile, maxSSE float64) bool {
	if len(tile.children) == 0 {
		return false
	}
	if tile.HasTilesetContent && tile.ContentExpired {
		return false
	}
	return tile.ScreenSpaceError > maxSSE
}

// reachedSkippingThreshold implements §4.D: only meaningful outside
// immediate-load mode, and only once a tile has an ancestor with content
// to measure the skip ratio against.
func (ts *Tileset) reachedSkippingThreshold(tile *Tile) bool {
	if !ts.SkipLevelOfDetail || ts.ImmediatelyLoadDesiredLevelOfDetail {
		return false
	}
	ancestor := tile.ancestorWithContent
	if ancestor == nil {
		return false
	}
	return tile.ScreenSpaceError < ancestor.ScreenSpaceError/ts.SkipScreenSpaceErrorFactor &&
		tile.Depth > ancestor.Depth+ts.SkipLevels
}

// updateAndPushChildren implements §4.D's updateAndPushChildren: refresh
// every child, sort them farthest-first (so the nearer child pops and is
// visited first), push the visible ones, and fold the REPLACE-completeness
// check and priority propagation over the whole sibling group in one pass.
func (ts *Tileset) updateAndPushChildren(tile *Tile, maxSSE float64) bool {
	children := tile.children
	for _, child := range children {
		ts.updateTile(child, ts.frame)
	}

	sort.SliceStable(children, func(i, j int) bool {
		a, b := children[i], children[j]
		if a.DistanceToCamera != b.DistanceToCamera {
			return a.DistanceToCamera > b.DistanceToCamera
		}
		return a.CenterZDepth > b.CenterZDepth
	})

	checkRefines := !ts.SkipLevelOfDetail && tile.Refine == RefineReplace && !tile.HasEmptyContent

	anyChildrenVisible := false
	refines := true
	var minChild *Tile

	for _, child := range children {
		if child.Visible() {
			anyChildrenVisible = true
			ts.traversalStack.push(child)
		} else if checkRefines || ts.LoadSiblings {
			ts.loadTile(child)
			ts.touchTile(child)
		}

		if minChild == nil || child.priorityDistance < minChild.priorityDistance {
			minChild = child
		}

		if checkRefines {
			contributes := false
			if child.inRequestVolume {
				if child.HasEmptyContent {
					contributes = ts.executeEmptyTraversal(child)
				} else {
					contributes = child.ContentAvailable
				}
			}
			refines = refines && contributes
		}
	}

	if !anyChildrenVisible {
		refines = false
	}

	ts.propagatePriority(tile, children, minChild)

	return refines
}

// loadTile implements §4.D's loadTile: a tile whose content is unloaded or
// expired is requested (appended to RequestedTiles and stamped with the
// current frame) and folded into the frame's priority bookkeeping. Already
// up-to-date content is a no-op, matching the invariant that
// RequestedTiles contains only tiles with unloaded-or-expired content.
func (ts *Tileset) loadTile(tile *Tile) {
	if !tile.ContentUnloaded && !tile.ContentExpired {
		return
	}
	tile.requestedFrame = ts.frame.FrameNumber
	ts.updateMinMaxPriority(tile)
	ts.RequestedTiles = append(ts.RequestedTiles, tile)
	ts.emit(tile, EventRequested)
}
