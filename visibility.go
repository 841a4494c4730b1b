package tileset3d

// updateVisibility memoizes tile visibility within a single frame: a tile
// may be touched from more than one traversal (base + empty-subtree, or
// revisited while computing a parent's children-union cull), but its
// visibility should only ever be computed once per frame.
func (ts *Tileset) updateVisibility(tile *Tile, frame *FrameState) {
	if tile.updatedVisibilityFrame == ts.updatedVisibilityFrame {
		return
	}
	tile.updatedVisibilityFrame = ts.updatedVisibilityFrame
	ts.updateTileVisibility(tile, frame)
}

// updateTileVisibility layers three policies on top of the host's raw
// UpdateVisibility query (§4.B):
//
//  1. child-bounds optimization — an external-tileset root adopts its
//     single child's visibility, since the placeholder tile itself has no
//     meaningful bounds of its own.
//  2. early SSE check — a child of an ADD parent (other than an
//     external-tileset root) whose volume, measured with the parent's
//     geometric error, already meets budget doesn't need to draw even
//     though it's technically visible.
//  3. children-union cull — a REPLACE tile whose children are all
//     invisible can be culled outright, when the optimization is enabled.
func (ts *Tileset) updateTileVisibility(tile *Tile, frame *FrameState) {
	// Geometric fields are "recomputed per frame" (§3) and only ever read
	// after this point, so they are refreshed here, in the one place a
	// tile's visibility work is guaranteed to run exactly once per frame.
	tile.DistanceToCamera = ts.Queries.DistanceToTile(tile, frame)
	tile.CenterZDepth = ts.Queries.DistanceToTileCenter(tile, frame)
	tile.ScreenSpaceError = ts.Queries.ScreenSpaceError(tile, frame, false)

	ts.Queries.UpdateVisibility(tile, frame)
	if !tile.Visible() {
		return
	}

	if tile.HasTilesetContent && len(tile.children) > 0 {
		child := tile.children[0]
		ts.updateVisibility(child, frame)
		tile.visible = child.visible
		tile.inRequestVolume = child.inRequestVolume
		if !tile.Visible() {
			return
		}
	}

	if parent := tile.Parent; parent != nil && !parent.HasTilesetContent && parent.Refine == RefineAdd {
		if ts.Queries.ScreenSpaceError(tile, frame, true) <= ts.MaximumScreenSpaceError {
			tile.visible = false
			return
		}
	}

	if ts.UseChildrenUnionOptimization && tile.Refine == RefineReplace && len(tile.children) > 0 {
		anyVisible := false
		for _, child := range tile.children {
			ts.updateVisibility(child, frame)
			if child.Visible() {
				anyVisible = true
				break
			}
		}
		if !anyVisible {
			tile.visible = false
			ts.stats.NumberOfTilesCulledWithChildrenUnion++
		}
	}
}
