// Package ecs provides ECS adapters for trellis Gui events.
//
// The primary adapter is [NewDonburiSink], which bridges Gui events
// (highlight, press, change) into a [Donburi] world as typed events.
// Subscribe to [GuiEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	gui.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
