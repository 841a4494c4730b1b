package ecs

import (
	"testing"

	"github.com/arborio/tileset3d"
	"github.com/yohamta/donburi"
)

func TestNewDonburiBridge(t *testing.T) {
	world := donburi.NewWorld()
	bridge := NewDonburiBridge(world)
	if bridge == nil {
		t.Fatal("NewDonburiBridge returned nil")
	}
}

func TestDonburiBridge_Publish(t *testing.T) {
	world := donburi.NewWorld()
	bridge := NewDonburiBridge(world)

	var received []tileset3d.SelectionEvent
	SelectionEventType.Subscribe(world, func(w donburi.World, e tileset3d.SelectionEvent) {
		received = append(received, e)
	})

	bridge.Publish(tileset3d.SelectionEvent{Kind: tileset3d.EventSelected, Frame: 1})
	bridge.Publish(tileset3d.SelectionEvent{Kind: tileset3d.EventRequested, Frame: 1})

	SelectionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Kind != tileset3d.EventSelected {
		t.Errorf("event 0 kind = %v, want EventSelected", received[0].Kind)
	}
	if received[1].Kind != tileset3d.EventRequested {
		t.Errorf("event 1 kind = %v, want EventRequested", received[1].Kind)
	}
}

func TestDonburiBridge_AsOnSelectionEvent(t *testing.T) {
	world := donburi.NewWorld()
	bridge := NewDonburiBridge(world)

	root := tileset3d.NewTile("root", tileset3d.RefineReplace, nil)
	var calls int
	SelectionEventType.Subscribe(world, func(w donburi.World, e tileset3d.SelectionEvent) {
		calls++
	})

	// OnSelectionEvent is a plain func(SelectionEvent); bridge.Publish must
	// satisfy that shape directly, with no adapter closure required.
	var onEvent func(tileset3d.SelectionEvent) = bridge.Publish
	onEvent(tileset3d.SelectionEvent{Tile: root, Kind: tileset3d.EventEmptied})
	SelectionEventType.ProcessEvents(world)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
