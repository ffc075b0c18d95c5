// Package ecs provides ECS adapters for trellis.
package ecs

import (
	"github.com/phanxgames/trellis"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GuiEventType is the Donburi event type for trellis Gui events.
// Subscribe to this in your ECS systems to receive highlight, press, and
// change events.
var GuiEventType = events.NewEventType[trellis.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Gui events
// are published to GuiEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiSink(world donburi.World) trellis.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event trellis.Event) {
	GuiEventType.Publish(s.world, event)
}
