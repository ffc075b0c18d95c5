// Package trellis is a retained-mode GUI core for [Ebitengine].
//
// Trellis provides the styled node tree, flexbox layout, themed widget
// rendering, pointer hit-testing, text layout, and batched quad rendering
// that a tool or game UI needs.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	gui := trellis.NewGui()
//	renderer := trellis.NewQuadRenderer(glyph.DefaultBrush(), true)
//	// ... add widgets under gui.Root() ...
//	trellis.Run(trellis.NewHost(gui, renderer), trellis.RunConfig{
//		Title: "My Tool", Width: 800, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself and call [Gui.Update],
// [Gui.Layout], [Gui.Render], and [QuadRenderer.Flush] directly; [Host]
// shows the expected ordering.
//
// # Node tree
//
// Every UI element is a node named by a [NodeId]. Nodes form a tree rooted
// at [Gui.Root]; each carries a flexbox [Style] and an optional [Visual]
// naming theme slots for its background, border, and foreground. Layout
// runs on [Gui.Layout] and the computed boxes drive both painting and
// hit-testing.
//
//	row := gui.CreateNode(trellis.Style{
//		Direction: trellis.DirectionRow,
//		Padding:   trellis.EdgesAll(16),
//	}, nil)
//	gui.AddChild(gui.Root(), row)
//
// # Widgets
//
// Widgets bundle a node with paint and pointer behavior: [NewButton],
// [NewToggleButton], [NewCheckbox], [NewRocker], and [NewLabel]. They live
// in a shared arena and are addressed by handles; borrow one with
// [WithWidget] to configure it or read its state.
//
//	button := trellis.NewButton(gui, "Save")
//	trellis.WithWidget(gui, button, func(b *trellis.Button) {
//		b.OnPress(func(g *trellis.Gui) { save() })
//	})
//	gui.AddChild(row, trellis.WidgetNode(gui, button))
//
// Widget callbacks run from the command queue on the next [Gui.Update], so
// they may freely mutate the tree.
//
// # Key features
//
// Trellis includes flexbox layout (via [flex]), a glyph atlas with TTF text
// layout, localization tables, pointer scripts for replayable input, theme
// and size tweens (via [gween]), and ECS integration (via [Donburi] adapter
// in trellis/ecs).
//
// [Ebitengine]: https://ebitengine.org
// [flex]: https://github.com/kjk/flex
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package trellis
