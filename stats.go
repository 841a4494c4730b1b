package tileset3d

// Statistics holds the per-frame counters produced as a side effect of
// SelectTiles. It is a snapshot, not a telemetry/FPS system — callers that
// want trends over time are expected to sample Stats() themselves; wiring
// this into a frame-rate monitor is explicitly out of scope (see spec
// Non-goals).
type Statistics struct {
	// Visited is the number of tiles visited (popped from the base/skip
	// traversal stack) this frame. Tiles reached only by the empty-subtree
	// probe or the selection pass are not counted.
	Visited uint64
	// NumberOfTilesCulledWithChildrenUnion counts REPLACE tiles culled by
	// the children-union visibility optimization in updateTileVisibility.
	NumberOfTilesCulledWithChildrenUnion uint64
	// SelectedCount is len(SelectedTiles) after the last SelectTiles call.
	SelectedCount int
	// RequestedCount is len(RequestedTiles) after the last SelectTiles call.
	RequestedCount int
	// EmptyCount is len(EmptyTiles) after the last SelectTiles call.
	EmptyCount int
	// MaxDepthVisited is the deepest tile.Depth visited this frame.
	MaxDepthVisited int
}

// Stats returns a snapshot of the engine's statistics as of the last
// SelectTiles call.
func (ts *Tileset) Stats() Statistics {
	return ts.stats
}

func (ts *Tileset) resetStats() {
	ts.stats = Statistics{}
}

// visitTile records a traversal visit: increments Visited, stamps
// visitedFrame, and tracks the frame's deepest tile — the bookkeeping half
// of §4.D step 7 ("visitTile (++visited, stamp frame)").
func (ts *Tileset) visitTile(tile *Tile) {
	tile.visitedFrame = ts.frame.FrameNumber
	ts.stats.Visited++
	if tile.Depth > ts.stats.MaxDepthVisited {
		ts.stats.MaxDepthVisited = tile.Depth
	}
}
