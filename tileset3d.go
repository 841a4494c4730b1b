// Package tileset3d implements a per-frame hierarchical tile selection
// engine for a streaming 3D tileset renderer. Given a bounded-volume
// hierarchy of tiles annotated with geometric error, screen-space error,
// and content-availability state, [Tileset.SelectTiles] decides each frame
// which tiles to render, which to request for asynchronous loading, and
// which are structural-only (empty).
//
// The engine does not fetch or decode tile content, upload anything to the
// GPU, run the render pass, compute frustum/occlusion geometry, or
// implement the LRU cache it touches — those are the host renderer's
// responsibility, reached through [TileQueries] and [Cache].
package tileset3d

// Vec3 is a 3D vector used for camera position and forward direction.
// The engine treats it as an opaque coordinate triple; all geometric
// interpretation (distance, projection) happens in the host's
// [TileQueries] implementation.
type Vec3 struct {
	X, Y, Z float64
}

// Visibility is the result of a content-level frustum test, finer-grained
// than the tile's own visible/inRequestVolume flags because it is checked
// against the tile's content bounds rather than its (possibly coarser)
// bounding volume.
type Visibility uint8

const (
	// VisibilityOutside means the content lies entirely outside the frustum.
	VisibilityOutside Visibility = iota
	// VisibilityIntersecting means the content straddles the frustum boundary.
	VisibilityIntersecting
	// VisibilityInside means the content lies entirely inside the frustum.
	VisibilityInside
)
