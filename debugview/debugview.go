// Package debugview is an ebiten-based visualizer for a tileset3d.Tileset:
// every tile in the last SelectTiles call's selected, requested and empty
// lists is drawn as a colored box (green = selected, yellow = requested,
// gray = empty); other tiles are not drawn. A scripted
// gween camera fly-through drives the FrameState fed into the engine each
// tick. It exists to make traversal decisions visible during development,
// not as a renderer the engine depends on — SelectTiles never imports this
// package.
package debugview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/arborio/tileset3d"
)

// Waypoint is one stop along the scripted camera path.
type Waypoint struct {
	Position tileset3d.Vec3
	Duration float32
	Ease     ease.TweenFunc
}

// Game drives a Tileset through a scripted camera path once per tick and
// renders the resulting selection. Satisfies ebiten.Game.
type Game struct {
	Tileset    *tileset3d.Tileset
	Waypoints     []Waypoint
	PixelsPerUnit float64

	frame  uint64
	leg    int
	tweenX *gween.Tween
	tweenZ *gween.Tween
	camera tileset3d.CameraState
	stats  tileset3d.Statistics
}

// NewGame constructs a Game over ts with a looping camera path through
// waypoints. PixelsPerUnit controls the on-screen scale of the tileset's
// world-space coordinates; 1.0 is a reasonable starting point for
// small synthetic tilesets.
func NewGame(ts *tileset3d.Tileset, waypoints []Waypoint, pixelsPerUnit float64) *Game {
	g := &Game{
		Tileset:       ts,
		Waypoints:     waypoints,
		PixelsPerUnit: pixelsPerUnit,
	}
	if len(waypoints) > 0 {
		g.camera.Position = waypoints[0].Position
		g.startLeg(0)
	}
	return g
}

func (g *Game) startLeg(i int) {
	from := g.camera.Position
	to := g.Waypoints[i].Position
	g.tweenX = gween.New(float32(from.X), float32(to.X), g.Waypoints[i].Duration, g.Waypoints[i].Ease)
	g.tweenZ = gween.New(float32(from.Z), float32(to.Z), g.Waypoints[i].Duration, g.Waypoints[i].Ease)
	g.leg = i
}

// Update advances the scripted camera and re-runs tile selection for the
// new frame. While Tileset.DebugFreezeFrame is set, the camera tween is
// held in place and SelectTiles is not re-invoked — Draw keeps showing the
// frame the freeze caught, the same way the teacher's debug.go gates its
// overlays on a boolean rather than a separate code path.
func (g *Game) Update() error {
	if g.Tileset.DebugFreezeFrame {
		return nil
	}

	if len(g.Waypoints) > 0 {
		dt := 1.0 / float32(ebiten.TPS())
		x, doneX := g.tweenX.Update(dt)
		z, doneZ := g.tweenZ.Update(dt)
		g.camera.Position.X = float64(x)
		g.camera.Position.Z = float64(z)
		if doneX && doneZ {
			g.startLeg((g.leg + 1) % len(g.Waypoints))
		}
	}

	g.frame++
	g.Tileset.SelectTiles(&tileset3d.FrameState{FrameNumber: g.frame, Camera: g.camera})
	g.stats = g.Tileset.Stats()
	return nil
}

var (
	colorSelected  = color.RGBA{60, 200, 90, 255}
	colorRequested = color.RGBA{220, 190, 40, 255}
	colorEmpty     = color.RGBA{120, 120, 120, 255}
)

// Draw paints every selected/requested/empty tile from the last frame as a
// small box offset from the screen center by its DistanceToCamera
// (horizontally) and CenterZDepth (vertically), scaled by PixelsPerUnit.
// It does not read the tile's bounding volume or world position.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 24, 255})

	originX := float32(screen.Bounds().Dx()) / 2
	originZ := float32(screen.Bounds().Dy()) / 2

	draw := func(tile *tileset3d.Tile, c color.Color) {
		x := originX + float32(tile.DistanceToCamera)*float32(g.PixelsPerUnit)
		y := originZ + float32(tile.CenterZDepth)*float32(g.PixelsPerUnit)
		vector.DrawFilledRect(screen, x-4, y-4, 8, 8, c, false)
	}

	for _, tile := range g.Tileset.EmptyTiles {
		draw(tile, colorEmpty)
	}
	for _, tile := range g.Tileset.RequestedTiles {
		draw(tile, colorRequested)
	}
	for _, tile := range g.Tileset.SelectedTiles {
		draw(tile, colorSelected)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"frame %d  selected %d  requested %d  empty %d  visited %d",
		g.frame, len(g.Tileset.SelectedTiles), len(g.Tileset.RequestedTiles),
		len(g.Tileset.EmptyTiles), g.stats.Visited,
	))

	if g.Tileset.DebugFreezeFrame {
		ebitenutil.DebugPrintAt(screen, "FROZEN", 0, screen.Bounds().Dy()-16)
	}
}

// Layout implements ebiten.Game, using the outside (window) size as the
// logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
