package ecs

import (
	"github.com/arborio/tileset3d"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SelectionEventType is the Donburi event type for tileset selection
// events. Subscribe to this in your ECS systems to receive
// selected/requested/emptied notifications without polling a Tileset's
// SelectedTiles/RequestedTiles/EmptyTiles slices directly.
var SelectionEventType = events.NewEventType[tileset3d.SelectionEvent]()

// DonburiBridge publishes tileset3d.SelectionEvent values onto a Donburi
// world. Assign its Publish method to Tileset.OnSelectionEvent to wire a
// tileset into an ECS-driven renderer.
type DonburiBridge struct {
	world donburi.World
}

// NewDonburiBridge creates a bridge that publishes to world.
func NewDonburiBridge(world donburi.World) *DonburiBridge {
	return &DonburiBridge{world: world}
}

// Publish satisfies the signature of [tileset3d.Tileset.OnSelectionEvent].
func (b *DonburiBridge) Publish(event tileset3d.SelectionEvent) {
	SelectionEventType.Publish(b.world, event)
}
