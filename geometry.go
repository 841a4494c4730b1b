package tileset3d

// CameraState is the minimal camera description the engine threads through
// to [TileQueries]. It never interprets these fields itself — frustum and
// distance math live entirely in the host's query implementation.
type CameraState struct {
	// Position is the camera's world-space position.
	Position Vec3
	// Forward is the camera's unit-length viewing direction.
	Forward Vec3
}

// FrameState carries the per-frame inputs SelectTiles needs: a
// monotonically increasing frame number (used to stamp per-frame scratch
// fields so work is never repeated within a frame) and the camera the
// host's [TileQueries] implementation will use to answer geometric
// queries.
type FrameState struct {
	// FrameNumber must increase by at least 1 between calls to
	// [Tileset.SelectTiles]. The engine relies on strict monotonicity for
	// its "touched this frame" memoization (visibility epoch, LRU touch,
	// request/select stamps).
	FrameNumber uint64
	// Camera is passed through verbatim to every TileQueries call this frame.
	Camera CameraState
}

// BoundingVolume is an opaque geometric bound supplied by the caller (an
// AABB, bounding sphere, oriented box, or region). The engine does not
// interpret its shape beyond the single scalar query below; intersection,
// frustum, and occlusion math belong to the host renderer.
type BoundingVolume interface {
	// BoundingRadius returns the radius of the volume's enclosing sphere.
	// Used only by the priority function to clamp distance to the volume's
	// near edge along the camera's forward axis.
	BoundingRadius() float64
}

// TileQueries is implemented by the host renderer and supplies every
// geometric and visibility query the engine cannot compute itself.
// UpdateVisibility, DistanceToTile, DistanceToTileCenter and the tile's own
// ScreenSpaceError are asked at most once per tile per frame (memoized by
// frame via Tile.updatedVisibilityFrame, so even a non-memoizing
// implementation is only ever asked once). UpdateExpiration runs on every
// updateTile call and ContentVisibility on every selectTile call, so those
// two may be asked more than once for the same tile in a frame.
type TileQueries interface {
	// UpdateVisibility computes this frame's visibility and calls
	// tile.SetVisibility with the result, using the tile's bounding volume
	// and frame.Camera.
	UpdateVisibility(tile *Tile, frame *FrameState)
	// ContentVisibility runs a frustum test against the tile's content
	// bounds (which may be tighter than its bounding volume), used as the
	// final gate before a tile is actually selected for rendering.
	ContentVisibility(tile *Tile, frame *FrameState) Visibility
	// ScreenSpaceError projects the tile's geometric error to screen space.
	// When useParentGeometricError is true, the tile's own geometric error
	// is ignored in favor of its parent's (used for the root budget check
	// in SelectTiles and the early-SSE-check optimization in
	// updateTileVisibility).
	ScreenSpaceError(tile *Tile, frame *FrameState, useParentGeometricError bool) float64
	// DistanceToTile returns the distance from the camera to the closest
	// point of the tile's bounding volume.
	DistanceToTile(tile *Tile, frame *FrameState) float64
	// DistanceToTileCenter returns the signed camera-space depth of the
	// bounding volume's center (may be negative if behind the camera).
	DistanceToTileCenter(tile *Tile, frame *FrameState) float64
	// UpdateExpiration refreshes the tile's contentExpired flag against
	// whatever expiration policy (time-to-live, server ETag, ...) the host
	// renderer implements. A no-op implementation is valid for tilesets
	// without content expiration.
	UpdateExpiration(tile *Tile)
}

// PriorityFunc computes a tile's raw loading priority — smaller means more
// urgent. The default, [DefaultPriority], follows §4.C of the design: the
// distance from the camera to the near edge of the bounding sphere,
// clamped to the range [0, centerZDepth]. It is a field on [Tileset]
// rather than a hardcoded function so callers can substitute a
// multi-dimensional priority scheme without forking the traversal.
type PriorityFunc func(tile *Tile, frame *FrameState) float64

// DefaultPriority implements §4.C: the closest point of the bounding
// sphere along the camera's forward axis, clamped to [0, centerZDepth] so
// tiles straddling or behind the camera are prioritized first (priority 0
// loads before anything else).
func DefaultPriority(tile *Tile, _ *FrameState) float64 {
	radius := 0.0
	if tile.BoundingVolume != nil {
		radius = tile.BoundingVolume.BoundingRadius()
	}
	p := tile.CenterZDepth - radius
	if p < 0 {
		return 0
	}
	if p > tile.CenterZDepth {
		return tile.CenterZDepth
	}
	return p
}
