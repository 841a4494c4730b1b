package tileset3d

import "time"

// selectDesiredTile is the selection entry point reached from
// executeTraversal when a tile has stopped refining (or is ADD/empty).
// In base-only mode it selects immediately if content is ready and
// otherwise does nothing — a visible hole is acceptable because base
// traversal guarantees an ancestor was already selected instead. In
// skip-LOD modes it defers the actual emission to traverseAndSelect by
// flagging the best available stand-in (itself or its nearest loaded
// ancestor) with shouldSelect, falling back to a bounded descendant search
// when nothing upstream is loaded either.
func (ts *Tileset) selectDesiredTile(tile *Tile) {
	if !ts.SkipLevelOfDetail {
		if tile.ContentAvailable {
			ts.selectTile(tile)
		}
		return
	}

	loadedTile := tile.ancestorWithContentAvailable
	if tile.ContentAvailable {
		loadedTile = tile
	}
	if loadedTile != nil {
		loadedTile.shouldSelect = true
		return
	}
	ts.selectDescendants(tile)
}

// selectTile implements §4's selectTile: a final content-bounds frustum
// check gates selection, since a tile's coarser bounding volume may have
// passed visibility while its actual content bounds do not. Marks the
// tile for a style re-evaluation pass when its feature properties are
// dirty or it is newly selected after a gap, matching the teacher's
// EntityStore-style "notify only when something changed" shape.
func (ts *Tileset) selectTile(tile *Tile) {
	if ts.Queries.ContentVisibility(tile, ts.frame) == VisibilityOutside {
		return
	}

	frame := ts.frame.FrameNumber
	newlySelected := tile.selectedFrame == 0 || tile.selectedFrame+1 < frame
	switch {
	case tile.FeaturePropertiesDirty:
		tile.FeaturePropertiesDirty = false
		tile.LastStyleTime = time.Time{}
		ts.SelectedTilesToStyle = append(ts.SelectedTilesToStyle, tile)
	case tile.selectedFrame < frame-1:
		ts.SelectedTilesToStyle = append(ts.SelectedTilesToStyle, tile)
	}

	tile.selectedFrame = frame
	ts.SelectedTiles = append(ts.SelectedTiles, tile)
	if newlySelected {
		ts.emit(tile, EventSelected)
	}
}

// selectDescendants is §4.H: a bounded descent (at most
// DescendantSelectionDepth below root) that selects the nearest loaded
// descendants to fill a hole left by an unloaded desired tile with no
// loaded ancestor either.
func (ts *Tileset) selectDescendants(root *Tile) {
	type frontier struct {
		tile  *Tile
		depth int
	}
	stack := []frontier{{root, 0}}

	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		for _, child := range cur.tile.children {
			if !child.Visible() {
				continue
			}
			if child.ContentAvailable {
				ts.updateTile(child, ts.frame)
				ts.touchTile(child)
				ts.selectTile(child)
			} else if cur.depth+1 < DescendantSelectionDepth {
				stack = append(stack, frontier{child, cur.depth + 1})
			}
		}
	}
}

// traverseAndSelect is §4.G, the skip-LOD selection pass. It walks the
// tree a second time in preorder with a parallel ancestor stack so that
// deeper selected tiles are emitted before their selected REPLACE
// ancestors — the host renderer relies on this order to stencil children
// on top of the ancestor they are progressively replacing.
func (ts *Tileset) traverseAndSelect(root *Tile) {
	ts.selectionStack.reset()
	ts.ancestorStack.reset()
	ts.selectionStack.push(root)

	var lastAncestor *Tile

	for !ts.selectionStack.empty() || !ts.ancestorStack.empty() {
		if top, ok := ts.ancestorStack.top(); ok && top.stackLength == ts.selectionStack.length() {
			ts.ancestorStack.pop()
			if top != lastAncestor {
				top.finalResolution = false
			}
			ts.selectTile(top)
			continue
		}

		tile, ok := ts.selectionStack.pop()
		if !ok {
			continue
		}

		traverse := ts.canTraverse(tile, ts.MaximumScreenSpaceError)

		if tile.shouldSelect {
			if tile.Refine == RefineAdd {
				ts.selectTile(tile)
			} else {
				tile.selectionDepth = ts.ancestorStack.length()
				if tile.selectionDepth > 0 {
					ts.HasMixedContent = true
				}
				lastAncestor = tile
				if !traverse {
					ts.selectTile(tile)
					continue
				}
				tile.stackLength = ts.selectionStack.length()
				ts.ancestorStack.push(tile)
			}
		}

		if traverse {
			for _, child := range tile.children {
				if child.Visible() {
					ts.selectionStack.push(child)
				}
			}
		}
	}
}
