// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ggui is the rendering core of a retained-mode widget toolkit.
//
// # Overview
//
// Widgets describe what they draw as primitives: small vertex/index batches
// for quads, lines, bevelled panes, sprites and text runs. A Renderer owns
// every live primitive, keeps them in a stable layer/level order, packs all
// images and glyph sheets into a texture atlas, and submits everything to a
// render target once per frame with Display.
//
//	r, err := ggui.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	face, _ := glyph.NewGoRegularFace()
//	r.CreatePane(ggui.V2(10, 10), ggui.V2(200, 80), 2, ggui.Hex("#464646"), ggui.Hex("#303030"), 32)
//	r.CreateText(ggui.TextRun{Text: "OK", Face: face, Size: 14, Position: ggui.V2(20, 20), Color: ggui.White})
//
//	target := ggui.NewPixmapTarget(640, 480)
//	if err := r.Display(target); err != nil {
//	    log.Fatal(err)
//	}
//
// # Coordinate System
//
// Origin at the top-left, X to the right, Y down, units in pixels. Vertex
// positions produced by the builders are snapped to whole pixels.
//
// # Texture Coordinates
//
// Texture coordinates are atlas pixels on the virtual strip described in
// package atlas: the page is y / MaxTextureSize. Untextured geometry uses
// the unit square, which lies in the white region at the top of page 0.
//
// # Backends
//
// A backend is chosen once in New. The array backend rebuilds CPU batches
// and either rasterizes them into a PixelTarget or hands them to a host
// TriangleDrawer. The buffer backend packs all vertices into HAL buffers of
// an injected GPU device and hands draw ranges to a host BufferDrawer.
//
// # Threading
//
// A Renderer is not safe for concurrent use. All calls must come from the
// goroutine that owns the graphics context.
//
// # Logging
//
// ggui is silent by default. Call SetLogger to receive diagnostics such as
// oversized images or atlas page allocations.
package ggui
