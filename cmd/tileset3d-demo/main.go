// Command tileset3d-demo runs a synthetic quadtree tileset through the
// debugview visualizer, draining requests through an internal/loader
// worker pool that simulates network latency.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/arborio/tileset3d"
	"github.com/arborio/tileset3d/debugview"
	"github.com/arborio/tileset3d/internal/loader"
)

func main() {
	depth := flag.Int("depth", 5, "quadtree depth of the synthetic tileset")
	maxSSE := flag.Float64("max-sse", 16, "maximum screen space error budget")
	concurrency := flag.Int64("concurrency", 4, "max concurrent simulated tile fetches")
	latencyMS := flag.Int("latency-ms", 80, "simulated per-tile fetch latency in milliseconds")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := buildQuadtree(*depth)
	ts, err := tileset3d.NewTileset(root, *maxSSE, demoQueries{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "tileset3d-demo:", err)
		os.Exit(1)
	}
	ts.SkipLevelOfDetail = true
	ts.UseChildrenUnionOptimization = true

	fetcher := loader.FetcherFunc(func(ctx context.Context, tile *tileset3d.Tile) error {
		select {
		case <-time.After(time.Duration(*latencyMS) * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
		tile.ContentAvailable = true
		tile.ContentUnloaded = false
		return nil
	})
	l := loader.New(fetcher, *concurrency, logger)

	waypoints := []debugview.Waypoint{
		{Position: tileset3d.Vec3{X: -200, Z: -200}, Duration: 3, Ease: ease.InOutSine},
		{Position: tileset3d.Vec3{X: 200, Z: -200}, Duration: 3, Ease: ease.InOutSine},
		{Position: tileset3d.Vec3{X: 200, Z: 200}, Duration: 3, Ease: ease.InOutSine},
		{Position: tileset3d.Vec3{X: -200, Z: 200}, Duration: 3, Ease: ease.InOutSine},
	}
	game := debugview.NewGame(ts, waypoints, 1.0)

	// Drain the engine's requests through the loader after every Update by
	// wrapping the game's Update hook — debugview.Game calls SelectTiles,
	// then we submit whatever it just requested.
	driver := &loaderDrivenGame{Game: game, loader: l}

	ebiten.SetWindowSize(960, 720)
	ebiten.SetWindowTitle("tileset3d demo")
	if err := ebiten.RunGame(driver); err != nil {
		fmt.Fprintln(os.Stderr, "tileset3d-demo:", err)
		os.Exit(1)
	}
}

type loaderDrivenGame struct {
	*debugview.Game
	loader *loader.Loader
}

func (d *loaderDrivenGame) Update() error {
	if err := d.Game.Update(); err != nil {
		return err
	}
	d.loader.Submit(context.Background(), d.Game.Tileset.RequestedTiles)
	return nil
}

// demoQueries is a deterministic TileQueries good enough to drive the
// demo's traversal: tiles are laid out on a fixed grid, so "distance to
// camera" and "screen space error" reduce to simple arithmetic instead of
// real frustum/projection math.
type demoQueries struct{}

func (demoQueries) UpdateVisibility(tile *tileset3d.Tile, frame *tileset3d.FrameState) {
	bv := tile.BoundingVolume.(gridBounds)
	dx := bv.cx - frame.Camera.Position.X
	dz := bv.cz - frame.Camera.Position.Z
	dist := dx*dx + dz*dz
	const visibleRadiusSquared = 500 * 500
	tile.SetVisibility(dist < visibleRadiusSquared, true)
}

func (demoQueries) ContentVisibility(*tileset3d.Tile, *tileset3d.FrameState) tileset3d.Visibility {
	return tileset3d.VisibilityInside
}

func (demoQueries) ScreenSpaceError(tile *tileset3d.Tile, frame *tileset3d.FrameState, useParentGeometricError bool) float64 {
	bv := tile.BoundingVolume.(gridBounds)
	dx := bv.cx - frame.Camera.Position.X
	dz := bv.cz - frame.Camera.Position.Z
	dist := dx*dx+dz*dz + 1
	geometricError := bv.size
	if useParentGeometricError && tile.Parent != nil {
		geometricError = tile.Parent.BoundingVolume.(gridBounds).size
	}
	return geometricError * geometricError * 4096 / dist
}

func (demoQueries) DistanceToTile(tile *tileset3d.Tile, frame *tileset3d.FrameState) float64 {
	bv := tile.BoundingVolume.(gridBounds)
	dx := bv.cx - frame.Camera.Position.X
	dz := bv.cz - frame.Camera.Position.Z
	return dx*dx + dz*dz
}

func (demoQueries) DistanceToTileCenter(tile *tileset3d.Tile, frame *tileset3d.FrameState) float64 {
	bv := tile.BoundingVolume.(gridBounds)
	return bv.cz - frame.Camera.Position.Z
}

func (demoQueries) UpdateExpiration(*tileset3d.Tile) {}

type gridBounds struct {
	cx, cz float64
	size   float64
}

func (b gridBounds) BoundingRadius() float64 { return b.size / 2 }

// buildQuadtree builds a synthetic quadtree tileset of the given depth
// centered on the origin, assigning each tile a random ADD/REPLACE
// mixture typical of a real tileset (mostly REPLACE, occasional ADD decor
// layer) and marking leaves with a 10% chance of empty content.
func buildQuadtree(depth int) *tileset3d.Tile {
	rng := rand.New(rand.NewSource(1))
	var build func(cx, cz, size float64, level int) *tileset3d.Tile
	build = func(cx, cz, size float64, level int) *tileset3d.Tile {
		refine := tileset3d.RefineReplace
		if level > 0 && rng.Intn(5) == 0 {
			refine = tileset3d.RefineAdd
		}
		tile := tileset3d.NewTile(fmt.Sprintf("L%d_%d_%d", level, int(cx), int(cz)), refine, gridBounds{cx: cx, cz: cz, size: size})
		if level == depth {
			if rng.Intn(10) == 0 {
				tile.HasEmptyContent = true
			}
			return tile
		}
		half := size / 4
		for _, off := range [4][2]float64{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
			tile.AddChild(build(cx+off[0]*half, cz+off[1]*half, size/2, level+1))
		}
		return tile
	}
	return build(0, 0, 1024, 0)
}
