package ecs

import (
	"github.com/phanxgames/trellis"
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	g := trellis.NewGui()
	visual := trellis.ButtonVisual()
	node := g.CreateNode(trellis.Style{}, &visual)

	var received []trellis.Event
	GuiEventType.Subscribe(world, func(w donburi.World, e trellis.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(trellis.Event{
		Kind: trellis.EventPress,
		Node: node,
		On:   true,
	})

	sink.EmitEvent(trellis.Event{
		Kind: trellis.EventHighlight,
	})

	// Events are queued until processed.
	GuiEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Kind != trellis.EventPress || e0.Node != node {
		t.Errorf("event 0: %+v", e0)
	}
	if !e0.On {
		t.Errorf("event 0 should carry On")
	}

	e1 := received[1]
	if e1.Kind != trellis.EventHighlight || e1.Node != (trellis.NodeId{}) {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink trellis.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	GuiEventType.Subscribe(world, func(w donburi.World, e trellis.Event) {
		count1++
	})
	GuiEventType.Subscribe(world, func(w donburi.World, e trellis.Event) {
		count2++
	})

	sink.EmitEvent(trellis.Event{Kind: trellis.EventChange})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
