package tileset3d

import (
	"fmt"
	"time"
)

// Refine selects how a tile's children relate to it once they are ready.
type Refine uint8

const (
	// RefineAdd overlays children on top of the parent; the parent keeps
	// rendering alongside its children.
	RefineAdd Refine = iota
	// RefineReplace replaces the parent with its children once every
	// visible child either has content or its empty subtree is fully
	// resolved. See updateAndPushChildren for the completeness rule.
	RefineReplace
)

func (r Refine) String() string {
	if r == RefineAdd {
		return "ADD"
	}
	return "REPLACE"
}

// Tile is a node in the bounding-volume hierarchy. Tile objects outlive
// frames; only the "per-frame scratch" block below is reset on each visit
// during SelectTiles. parent/ancestorWithContent/ancestorWithContentAvailable/
// priorityDistanceHolder are non-owning back-references — children is the
// only owning link.
type Tile struct {
	// --- Structural (immutable after construction, except children/Parent) ---

	// Parent is this tile's parent, or nil for the root.
	Parent   *Tile
	children []*Tile

	// Depth is the distance from the root (root has depth 0). Maintained by
	// AddChild so the skip-LOD threshold (depth > ancestor.depth + skipLevels)
	// never needs a tree walk to compute.
	Depth int

	// Refine selects ADD or REPLACE semantics for this tile's children.
	Refine Refine

	// HasEmptyContent marks a structural-only tile with no renderable
	// geometry of its own (e.g. an internal LOD placeholder).
	HasEmptyContent bool
	// HasTilesetContent marks a tile that is the root placeholder of an
	// externally-referenced tileset. Its visibility is adopted from its
	// single child (see updateTileVisibility) and it is never descended
	// into once contentExpired.
	HasTilesetContent bool

	// BoundingVolume is the opaque geometric bound used by the priority
	// function. Frustum, occlusion, and distance math belong to TileQueries;
	// this is the one scalar (BoundingRadius) the engine reads itself.
	BoundingVolume BoundingVolume

	// --- Geometric (recomputed or cached per frame by TileQueries) ---

	// DistanceToCamera is the distance from the camera to the closest point
	// of the bounding volume.
	DistanceToCamera float64
	// CenterZDepth is the signed camera-space depth of the bounding
	// volume's center (may be negative if the center is behind the camera).
	CenterZDepth float64
	// ScreenSpaceError is the tile's projected geometric error. Exact zero
	// is a deliberate sentinel meaning "leaf, no SSE computed" — see
	// inBaseTraversal.
	ScreenSpaceError float64

	// --- Availability (owned by the caller's content/cache system) ---

	// ContentUnloaded is true until the tile's content has been fetched and
	// decoded. loadTile requests the tile while this is true.
	ContentUnloaded bool
	// ContentAvailable is true once content is resident and renderable.
	ContentAvailable bool
	// ContentExpired is true when previously-available content has aged
	// out per the host's expiration policy and must be reloaded.
	ContentExpired bool
	// FeaturePropertiesDirty is set by an external style system to force
	// re-evaluation the next time this tile is selected.
	FeaturePropertiesDirty bool

	// --- Per-frame scratch (reset at each visit by updateTile) ---

	visible              bool
	inRequestVolume      bool
	updatedVisibilityFrame uint64

	priorityDistance       float64
	priorityDistanceHolder *Tile

	wasMinChild     bool
	refines         bool
	finalResolution bool
	shouldSelect    bool

	selectionDepth int
	stackLength    int

	ancestorWithContent          *Tile
	ancestorWithContentAvailable *Tile

	visitedFrame   uint64
	touchedFrame   uint64
	selectedFrame  uint64
	requestedFrame uint64

	// LastStyleTime is zeroed to force a re-style pass; owned jointly by
	// the engine (selectTile zeroes it) and an external style evaluator.
	LastStyleTime time.Time

	// --- Metadata ---

	// Name is a human-readable label for debugging and demo visualization.
	Name string
	// UserData is an arbitrary value the host application can attach.
	UserData any
}

// NewTile creates a tile with the given refine mode and bounding volume.
// Content flags default to unloaded/unavailable; set HasEmptyContent or
// HasTilesetContent afterward for structural tiles.
func NewTile(name string, refine Refine, bv BoundingVolume) *Tile {
	return &Tile{
		Name:            name,
		Refine:          refine,
		BoundingVolume:  bv,
		ContentUnloaded: true,
		finalResolution: true,
	}
}

// AddChild appends child to this tile's children and sets child.Parent and
// child.Depth. Panics if child is nil or already has a parent — tiles form
// a tree built once at load time, not a mutable scene graph, so reparenting
// is deliberately unsupported.
func (t *Tile) AddChild(child *Tile) {
	if child == nil {
		panic("tileset3d: cannot add nil child")
	}
	if child.Parent != nil {
		panic(fmt.Sprintf("tileset3d: tile %q already has a parent", child.Name))
	}
	child.Parent = t
	child.Depth = t.Depth + 1
	t.children = append(t.children, child)
}

// Children returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (t *Tile) Children() []*Tile {
	return t.children
}

// NumChildren returns the number of children.
func (t *Tile) NumChildren() int {
	return len(t.children)
}

// Visible reports whether this tile passed both the bounding-volume
// visibility test and the request-volume test during the last
// updateVisibility call for the current frame — the invariant from §3:
// "a tile is visible iff visible ∧ inRequestVolume".
func (t *Tile) Visible() bool {
	return t.visible && t.inRequestVolume
}

// SetVisibility is called by a TileQueries.UpdateVisibility implementation
// to record this frame's bounding-volume and request-volume test results.
// It is the only way a host package can set the fields Visible reads, since
// TileQueries lives outside this package.
func (t *Tile) SetVisibility(visible, inRequestVolume bool) {
	t.visible = visible
	t.inRequestVolume = inRequestVolume
}

// SelectionDepth returns the tile's selection depth computed by the most
// recent traverseAndSelect pass (skip-LOD modes only). Meaningless outside
// that context; see §4.G.
func (t *Tile) SelectionDepth() int {
	return t.selectionDepth
}

// FinalResolution reports whether this tile was the deepest selected
// REPLACE tile along its path in the most recent selection pass.
func (t *Tile) FinalResolution() bool {
	return t.finalResolution
}

// resetFrame clears the per-frame scratch block. Called once per visit by
// updateTile; see §4.A.
func (t *Tile) resetFrame() {
	t.wasMinChild = false
	t.shouldSelect = false
	t.finalResolution = true
	t.refines = false
	t.selectionDepth = 0
	t.stackLength = 0
}
