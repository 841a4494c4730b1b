package tileset3d

// executeEmptyTraversal is §4.E: a visibility-ignoring descent through a
// structural (empty) subtree, used to decide whether a REPLACE parent may
// claim to refine across it. Returns false — "would leave holes" — as soon
// as any descendant is neither traversable empty content nor itself
// available, which is exactly the signal updateAndPushChildren's
// checkRefines fold needs.
func (ts *Tileset) executeEmptyTraversal(root *Tile) bool {
	ts.emptyStack.reset()
	ts.emptyStack.push(root)

	allDescendantsLoaded := true

	for {
		tile, ok := ts.emptyStack.pop()
		if !ok {
			break
		}

		traverse := tile.HasEmptyContent && ts.canTraverse(tile, ts.MaximumScreenSpaceError)
		if !traverse && !tile.ContentAvailable {
			allDescendantsLoaded = false
		}

		ts.updateTile(tile, ts.frame)
		if !tile.Visible() {
			ts.loadTile(tile)
			ts.touchTile(tile)
		}

		if traverse {
			for _, child := range tile.children {
				ts.emptyStack.push(child)
			}
		}
	}

	return allDescendantsLoaded
}
