package ecs

import (
	"github.com/phanxgames/flat2d"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DroppedQuadEvent reports an entity skipped for a frame because its
// texture or sprite sheet is not loaded yet.
type DroppedQuadEvent struct {
	Entity donburi.Entity
	flat2d.Drop
}

// DroppedQuadEventType is the Donburi event type for dropped quads.
// Events are queued during DrawFlat2D.Apply; subscribe in your systems and
// call ProcessEvents (or events.ProcessAllEvents) once per frame to receive
// them, for example to request the missing asset.
var DroppedQuadEventType = events.NewEventType[DroppedQuadEvent]()
