package tileset3d

import "math"

// DescendantSelectionDepth bounds how far selectDescendants (§4.H) will
// descend below the tile it was invoked on, looking for loaded content to
// fill a hole left by an unloaded desired tile and its unloaded ancestors.
const DescendantSelectionDepth = 2

// Tileset holds the engine's configuration, the tile tree it traverses,
// its engine-owned scratch stacks, and the output lists produced each
// frame. A Tileset is not safe for concurrent use — the scheduling model
// is single-threaded cooperative (§5): SelectTiles runs synchronously to
// completion within one frame, with no suspension point inside.
type Tileset struct {
	// Root is the root of the bounding-volume hierarchy.
	Root *Tile

	// --- Configuration (§6) ---

	// MaximumScreenSpaceError is the refinement stop criterion: a tile
	// whose projected error is at or below this is fine-grained enough,
	// and canTraverse will not descend past it.
	MaximumScreenSpaceError float64
	// BaseScreenSpaceError separates base-traversal tiles from skip-LOD
	// tiles in base+skip mode. Ignored unless SkipLevelOfDetail is set.
	BaseScreenSpaceError float64
	// SkipLevelOfDetail enables the skip-LOD traversal and selection pass
	// (modes F/G in §2).
	SkipLevelOfDetail bool
	// ImmediatelyLoadDesiredLevelOfDetail, when combined with
	// SkipLevelOfDetail, disables base traversal entirely: only the
	// desired (finest affordable) tiles are ever loaded, with no
	// intermediate-LOD fallback while they stream in.
	ImmediatelyLoadDesiredLevelOfDetail bool
	// SkipScreenSpaceErrorFactor is the ratio threshold used by
	// reachedSkippingThreshold: a tile may stop loading intermediate
	// ancestors once its own SSE is below ancestor.SSE / this factor.
	SkipScreenSpaceErrorFactor float64
	// SkipLevels is the minimum depth gap below the nearest ancestor with
	// content before skip-loading is allowed.
	SkipLevels int
	// LoadSiblings forces invisible siblings of a traversed tile to load
	// regardless of refine mode, trading bandwidth for fewer pop-ins when
	// the camera turns.
	LoadSiblings bool
	// UseChildrenUnionOptimization enables the children-union visibility
	// cull in updateTileVisibility: a REPLACE tile with no visible
	// children is marked invisible outright.
	UseChildrenUnionOptimization bool
	// DebugFreezeFrame short-circuits SelectTiles, leaving the previous
	// frame's selection in place.
	DebugFreezeFrame bool

	// Priority computes a tile's raw loading urgency. Defaults to
	// DefaultPriority in NewTileset; callers may substitute their own pure
	// function of (tile, frame) without forking the traversal.
	Priority PriorityFunc

	// Queries answers the geometric and visibility questions the engine
	// cannot compute itself.
	Queries TileQueries
	// Cache receives a Touch call for every tile visited this frame.
	// NoopCache{} is used if left nil.
	Cache Cache

	// OnSelectionEvent, if set, receives a push notification for every
	// selected/requested/emptied transition this frame, in addition to the
	// output lists below.
	OnSelectionEvent func(SelectionEvent)

	// --- Outputs (populated in traversal order; caller-readable after
	// SelectTiles returns, owned by the engine otherwise) ---

	SelectedTiles        []*Tile
	SelectedTilesToStyle []*Tile
	RequestedTiles       []*Tile
	EmptyTiles           []*Tile

	// HasMixedContent is set when a selected REPLACE tile has a selected
	// REPLACE ancestor also in SelectedTiles (selectionDepth > 0).
	HasMixedContent bool

	stats Statistics

	updatedVisibilityFrame uint64
	frame                  *FrameState

	minPriority          float64
	maxPriority          float64
	requestedTilesCount  int

	traversalStack tileStack
	emptyStack     tileStack
	selectionStack tileStack
	ancestorStack  tileStack

	// previousSelectedTiles is the SelectedTiles snapshot from the last
	// real (non-frozen) SelectTiles call, kept around solely so
	// emitDeselections can diff against it. Reused frame to frame rather
	// than reallocated, matching the stack-trimming idiom elsewhere.
	previousSelectedTiles []*Tile
}

// NewTileset constructs a Tileset rooted at root. maximumScreenSpaceError
// must be positive; queries must be non-nil. Cache defaults to NoopCache{}
// and Priority to DefaultPriority — both may be overridden afterward.
func NewTileset(root *Tile, maximumScreenSpaceError float64, queries TileQueries) (*Tileset, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	if maximumScreenSpaceError <= 0 || math.IsInf(maximumScreenSpaceError, 1) || math.IsNaN(maximumScreenSpaceError) {
		return nil, ErrInvalidBudget
	}
	if queries == nil {
		return nil, ErrNilQueries
	}
	return &Tileset{
		Root:                       root,
		MaximumScreenSpaceError:    maximumScreenSpaceError,
		BaseScreenSpaceError:       maximumScreenSpaceError,
		SkipScreenSpaceErrorFactor: 2,
		SkipLevels:                 1,
		Priority:                   DefaultPriority,
		Queries:                    queries,
		Cache:                      NoopCache{},
	}, nil
}

// Reset clears all engine-owned scratch — stacks, output lists, the
// visibility memoization epoch — without discarding the tile tree.
// Supplements §4.I's implicit per-frame reset with an explicit full reset
// for callers that need to re-run selection from a cold state (e.g. after
// a camera teleport that invalidates memoized visibility).
func (ts *Tileset) Reset() {
	ts.SelectedTiles = nil
	ts.SelectedTilesToStyle = nil
	ts.RequestedTiles = nil
	ts.EmptyTiles = nil
	ts.HasMixedContent = false
	ts.updatedVisibilityFrame = 0
	ts.resetStats()
	ts.traversalStack.reset()
	ts.emptyStack.reset()
	ts.selectionStack.reset()
	ts.ancestorStack.reset()
	ts.previousSelectedTiles = nil
}

// SelectTiles is the orchestrator (§4.I). It runs the traversal mode
// dictated by the tileset's configuration and populates SelectedTiles,
// SelectedTilesToStyle, RequestedTiles, and EmptyTiles for this frame. It
// returns true if a traversal actually ran (false if the root is invisible
// or the tree already meets budget, in which case the output lists are
// simply left empty — a valid render-nothing frame, not an error).
func (ts *Tileset) SelectTiles(frame *FrameState) bool {
	ts.frame = frame
	ts.updatedVisibilityFrame = frame.FrameNumber
	ts.RequestedTiles = ts.RequestedTiles[:0]

	if ts.DebugFreezeFrame {
		return false
	}

	ts.SelectedTiles = ts.SelectedTiles[:0]
	ts.SelectedTilesToStyle = ts.SelectedTilesToStyle[:0]
	ts.EmptyTiles = ts.EmptyTiles[:0]
	ts.HasMixedContent = false
	ts.resetStats()
	ts.minPriority = 0
	ts.maxPriority = 0
	ts.requestedTilesCount = 0

	root := ts.Root
	ts.updateTile(root, frame)
	if !root.Visible() {
		ts.finish()
		return false
	}

	rootSSE := ts.Queries.ScreenSpaceError(root, frame, true)
	if rootSSE <= ts.MaximumScreenSpaceError {
		ts.finish()
		return false
	}

	switch {
	case !ts.SkipLevelOfDetail:
		ts.executeTraversal(root, ts.MaximumScreenSpaceError, ts.MaximumScreenSpaceError)
	case ts.SkipLevelOfDetail && ts.ImmediatelyLoadDesiredLevelOfDetail:
		ts.executeTraversal(root, math.Inf(1), ts.MaximumScreenSpaceError)
		ts.traverseAndSelect(root)
	default:
		baseSSE := ts.BaseScreenSpaceError
		if ts.MaximumScreenSpaceError > baseSSE {
			baseSSE = ts.MaximumScreenSpaceError
		}
		ts.executeTraversal(root, baseSSE, ts.MaximumScreenSpaceError)
		ts.traverseAndSelect(root)
	}

	ts.finish()
	return true
}

func (ts *Tileset) finish() {
	ts.traversalStack.trimToHighWater()
	ts.emptyStack.trimToHighWater()
	ts.selectionStack.trimToHighWater()
	ts.ancestorStack.trimToHighWater()
	ts.emitDeselections()
	ts.stats.SelectedCount = len(ts.SelectedTiles)
	ts.stats.RequestedCount = len(ts.RequestedTiles)
	ts.stats.EmptyCount = len(ts.EmptyTiles)
}

// emitDeselections fires EventDeselected for every tile that was selected
// last frame (per the previousSelectedTiles snapshot) and is not selected
// this frame, then refreshes the snapshot from this frame's SelectedTiles.
// Not reached from SelectTiles' DebugFreezeFrame early return, since a
// frozen frame leaves the selection unchanged by definition.
func (ts *Tileset) emitDeselections() {
	frame := ts.frame.FrameNumber
	for _, tile := range ts.previousSelectedTiles {
		if tile.selectedFrame != frame {
			ts.emit(tile, EventDeselected)
		}
	}
	ts.previousSelectedTiles = append(ts.previousSelectedTiles[:0], ts.SelectedTiles...)
}

// updateTile is §4.A: reset the per-frame scratch block, refresh
// visibility, compute priority, refresh expiration.
func (ts *Tileset) updateTile(tile *Tile, frame *FrameState) {
	tile.resetFrame()
	tile.priorityDistanceHolder = tile
	ts.updateVisibility(tile, frame)
	tile.priorityDistance = ts.Priority(tile, frame)
	ts.Queries.UpdateExpiration(tile)
}

// updateTileAncestorContentLinks is §4.A: maintain ancestorWithContent and
// ancestorWithContentAvailable. Preserves the §9 rule verbatim: a tile
// requested this frame counts as "has content" for the purposes of its
// descendants' ancestor-content chain, even though its content is not yet
// actually available.
func (ts *Tileset) updateTileAncestorContentLinks(tile *Tile) {
	parent := tile.Parent
	if parent == nil {
		return
	}
	hasContent := !parent.ContentUnloaded || parent.requestedFrame == ts.frame.FrameNumber
	if hasContent {
		tile.ancestorWithContent = parent
	} else {
		tile.ancestorWithContent = parent.ancestorWithContent
	}
	if parent.ContentAvailable {
		tile.ancestorWithContentAvailable = parent
	} else {
		tile.ancestorWithContentAvailable = parent.ancestorWithContentAvailable
	}
}
