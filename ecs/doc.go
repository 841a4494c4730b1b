// Package ecs bridges a [Tileset]'s per-frame selection events into a
// Donburi world as typed events.
//
// The primary adapter is [NewDonburiBridge], which publishes
// [tileset3d.SelectionEvent] values onto [SelectionEventType]. Subscribe to
// that event type in your ECS systems to react to tiles being selected,
// requested, or emptied without polling the Tileset's output slices.
//
// Usage:
//
//	bridge := ecs.NewDonburiBridge(world)
//	tileset.OnSelectionEvent = bridge.Publish
//
// [Tileset]: https://pkg.go.dev/github.com/arborio/tileset3d#Tileset
package ecs
