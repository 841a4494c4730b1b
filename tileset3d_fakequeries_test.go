package tileset3d

// props is stashed in a Tile's UserData by tests to describe the ground
// truth a real TileQueries implementation would otherwise derive from
// actual bounding-volume/frustum math — out of scope for this engine, so
// tests stand in a trivial fake instead.
type props struct {
	visible         bool
	inRequestVolume bool
	sse             float64
	distance        float64
	centerZ         float64
	contentOutside  bool
}

func withProps(tile *Tile, p props) *Tile {
	tile.UserData = &p
	return tile
}

func propsOf(tile *Tile) *props {
	if p, ok := tile.UserData.(*props); ok {
		return p
	}
	return &props{visible: true, inRequestVolume: true}
}

// fakeBV is a trivial BoundingVolume with a fixed radius.
type fakeBV struct{ radius float64 }

func (b fakeBV) BoundingRadius() float64 { return b.radius }

// fakeQueries is a deterministic TileQueries stand-in driven entirely by
// each tile's stashed props, used across the engine's tests.
type fakeQueries struct {
	expired map[*Tile]bool
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{expired: map[*Tile]bool{}}
}

func (q *fakeQueries) UpdateVisibility(tile *Tile, _ *FrameState) {
	p := propsOf(tile)
	tile.visible = p.visible
	tile.inRequestVolume = p.inRequestVolume
}

func (q *fakeQueries) ContentVisibility(tile *Tile, _ *FrameState) Visibility {
	if propsOf(tile).contentOutside {
		return VisibilityOutside
	}
	return VisibilityInside
}

func (q *fakeQueries) ScreenSpaceError(tile *Tile, _ *FrameState, useParentGeometricError bool) float64 {
	if useParentGeometricError && tile.Parent != nil {
		return propsOf(tile.Parent).sse
	}
	return propsOf(tile).sse
}

func (q *fakeQueries) DistanceToTile(tile *Tile, _ *FrameState) float64 {
	return propsOf(tile).distance
}

func (q *fakeQueries) DistanceToTileCenter(tile *Tile, _ *FrameState) float64 {
	return propsOf(tile).centerZ
}

func (q *fakeQueries) UpdateExpiration(tile *Tile) {
	tile.ContentExpired = q.expired[tile]
}

// fakeCache records Touch calls for assertions.
type fakeCache struct {
	touched []*Tile
}

func (c *fakeCache) Touch(tile *Tile) {
	c.touched = append(c.touched, tile)
}
